package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/arran4/cardtext"
	"github.com/arran4/cardtext/cardpdf"
	"github.com/arran4/cardtext/internal/logger"
	"go.uber.org/zap"
)

func main() {
	title := flag.String("title", "", "Card title")
	text := flag.String("text", "", "Card body (markdown-lite)")
	in := flag.String("in", "", "Read the body from this file; - for stdin")
	size := flag.String("size", "63x88", "Card size in mm, <width>x<height>")
	dpi := flag.Int("dpi", 300, "Output resolution")
	margin := flag.Float64("margin", 5, "Margin inside the card edge in mm")
	bleed := flag.Float64("bleed", 3, "Bleed around the card in mm")
	border := flag.Float64("border", 0, "Border thickness in mm")
	titleSize := flag.Int("title-size", 0, "Title font size in px (0 = auto-fit)")
	fontSize := flag.Int("font-size", 0, "Body font size in px (0 = auto-fit)")
	center := flag.Bool("center", false, "Centre content horizontally and vertically")
	theme := flag.String("theme", "light", "Theme: light|dark")
	parser := flag.String("parser", cardtext.ParserLite, "Body parser: lite|commonmark")
	out := flag.String("out", "card.png", "Output file (.png, .jpg or .pdf)")
	dumpJSON := flag.Bool("json", false, "Print the draw instructions as JSON instead of writing an image")
	maxWidth := flag.Int("max-width", 0, "Scale raster output down to this width in px")
	fontRegular := flag.String("font", "", "Path to TTF for regular text (optional; default Go Regular)")
	fontBold := flag.String("fontbold", "", "Path to TTF for bold text (optional; default Go Bold)")
	fontItalic := flag.String("fontitalic", "", "Path to TTF for italic text (optional; default Go Italic)")
	fontBoldItalic := flag.String("fontbolditalic", "", "Path to TTF for bold italic text (optional; default Go Bold Italic)")
	verbose := flag.Bool("v", false, "Log fit decisions to stderr")
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		l, err := logger.New(true, "", "debug")
		if err != nil {
			fatal(err)
		}
		log = l
		defer func() { _ = log.Sync() }()
	}

	body := *text
	if *in != "" {
		var data []byte
		var err error
		if *in == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(*in)
		}
		if err != nil {
			fatal(err)
		}
		body = string(data)
	}

	w, h, err := cardtext.ParseCardSize(*size)
	if err != nil {
		fatal(err)
	}
	th, err := cardtext.ThemeByName(*theme)
	if err != nil {
		fatal(err)
	}
	fonts, err := cardtext.LoadFonts(cardtext.FontConfig{
		RegularPath:    *fontRegular,
		BoldPath:       *fontBold,
		ItalicPath:     *fontItalic,
		BoldItalicPath: *fontBoldItalic,
	})
	if err != nil {
		fatal(err)
	}

	opts := cardtext.DefaultOptions()
	opts.Parser = *parser
	opts.Logger = log
	card := cardtext.Card{
		Title: *title,
		Body:  body,
		Spec: cardtext.CardSpec{
			WidthMM:  w,
			HeightMM: h,
			BleedMM:  *bleed,
			MarginMM: *margin,
			BorderMM: *border,
			DPI:      *dpi,
		},
		TitleSize: *titleSize,
		BodySize:  *fontSize,
		Center:    *center,
	}
	ro := cardtext.RenderOptions{Theme: th, Fonts: fonts, Options: &opts}

	if *dumpJSON {
		_, instrs, err := cardtext.LayoutCard(card, ro)
		if err != nil {
			fatal(err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(instrs); err != nil {
			fatal(err)
		}
		return
	}

	format, err := cardtext.FormatFromPath(*out)
	if err != nil {
		fatal(err)
	}
	file, err := os.Create(*out)
	if err != nil {
		fatal(err)
	}
	defer file.Close()

	if format == cardtext.FormatPDF {
		geo, instrs, err := cardtext.LayoutCard(card, ro)
		if err != nil {
			fatal(err)
		}
		if err := cardpdf.Render(file, cardpdf.Page{
			Geometry:     geo,
			DPI:          *dpi,
			Theme:        th,
			Fonts:        fonts,
			Instructions: instrs,
			Title:        *title,
		}); err != nil {
			fatal(err)
		}
		return
	}

	img, _, err := cardtext.RenderCard(card, ro)
	if err != nil {
		fatal(err)
	}
	if err := cardtext.Encode(file, cardtext.ScaleToWidth(img, *maxWidth), format); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	_, _ = os.Stderr.WriteString("cardtext: " + err.Error() + "\n")
	os.Exit(1)
}
