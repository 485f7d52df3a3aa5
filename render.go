package cardtext

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/golang/freetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// ---- Styles & theme ----

type Theme struct {
	Bleed  color.Color
	Card   color.Color
	FG     color.Color
	Border color.Color
}

var (
	// LightTheme is a white card with black text on a light grey bleed.
	LightTheme = Theme{
		Bleed:  color.RGBA{0xEE, 0xEE, 0xEE, 0xFF},
		Card:   color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		FG:     color.RGBA{0x00, 0x00, 0x00, 0xFF},
		Border: color.RGBA{0x00, 0x00, 0x00, 0xFF},
	}
	// DarkTheme inverts the card and text colours.
	DarkTheme = Theme{
		Bleed:  color.RGBA{0x22, 0x22, 0x24, 0xFF},
		Card:   color.RGBA{0x12, 0x12, 0x14, 0xFF},
		FG:     color.RGBA{0xEE, 0xEE, 0xF0, 0xFF},
		Border: color.RGBA{0xEE, 0xEE, 0xF0, 0xFF},
	}
)

// ThemeByName returns a built-in theme by name ("light" or "dark").
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(name) {
	case "light", "":
		return LightTheme, nil
	case "dark":
		return DarkTheme, nil
	default:
		return Theme{}, &ValidationError{Field: "theme", Reason: "unknown theme " + name}
	}
}

// ---- Card compositing ----

// Card is the content and physical description of one card. Sizes of 0
// request auto-fit.
type Card struct {
	Title     string
	Body      string
	Spec      CardSpec
	TitleSize int
	BodySize  int
	Center    bool
}

// RenderOptions configure how a card is drawn. Zero values select the light
// theme, the bundled fonts and DefaultOptions.
type RenderOptions struct {
	Theme   Theme
	Fonts   Fonts
	Options *Options
}

func (o RenderOptions) resolved() (RenderOptions, error) {
	if (o.Theme == Theme{}) {
		o.Theme = LightTheme
	}
	if o.Fonts.Regular == nil {
		fonts, err := LoadFonts(FontConfig{})
		if err != nil {
			return o, err
		}
		o.Fonts = fonts
	}
	return o, nil
}

func (r Rect) rectangle() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}

// LayoutCard resolves the card geometry and lays out its content with the
// configured fonts without drawing anything.
func LayoutCard(card Card, opts RenderOptions) (CardGeometry, []DrawInstruction, error) {
	opts, err := opts.resolved()
	if err != nil {
		return CardGeometry{}, nil, err
	}
	return layoutCard(card, opts, NewFontMeasurer(opts.Fonts))
}

func layoutCard(card Card, opts RenderOptions, m Measurer) (CardGeometry, []DrawInstruction, error) {
	geo, err := card.Spec.Geometry()
	if err != nil {
		return geo, nil, err
	}
	instrs, err := Layout(Request{
		Title:     card.Title,
		Body:      card.Body,
		SafeArea:  geo.Safe,
		TitleSize: card.TitleSize,
		BodySize:  card.BodySize,
		Center:    card.Center,
		Measurer:  m,
		Options:   opts.Options,
	})
	return geo, instrs, err
}

// RenderCard lays out card and draws it: bleed, card face, border, then the
// draw instructions in order. The instructions are returned alongside the
// image so other renderers can replay them.
func RenderCard(card Card, opts RenderOptions) (*image.RGBA, []DrawInstruction, error) {
	opts, err := opts.resolved()
	if err != nil {
		return nil, nil, err
	}
	m := NewFontMeasurer(opts.Fonts)
	geo, instrs, err := layoutCard(card, opts, m)
	if err != nil {
		return nil, nil, err
	}

	img := image.NewRGBA(geo.Canvas.rectangle())
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Theme.Bleed), image.Point{}, draw.Src)
	draw.Draw(img, geo.Card.rectangle(), image.NewUniform(opts.Theme.Card), image.Point{}, draw.Src)
	drawBorder(img, geo.Card, geo.Border, opts.Theme.Border)

	dc := freetype.NewContext()
	dc.SetDPI(72)
	dc.SetClip(img.Bounds())
	dc.SetDst(img)
	dc.SetSrc(image.NewUniform(opts.Theme.FG))
	dc.SetHinting(font.HintingFull)
	for _, in := range instrs {
		dc.SetFont(opts.Fonts.Font(in.Style))
		dc.SetFontSize(float64(in.FontSize))
		pt := freetype.Pt(in.X, in.Y+m.Ascent(in.Style, in.FontSize))
		if _, err := dc.DrawString(in.Text, pt); err != nil {
			return nil, nil, err
		}
	}
	return img, instrs, nil
}

// drawBorder strokes a frame of thickness px inside r.
func drawBorder(img *image.RGBA, r Rect, px int, col color.Color) {
	if px <= 0 {
		return
	}
	src := image.NewUniform(col)
	edges := []Rect{
		{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y0 + px},
		{X0: r.X0, Y0: r.Y1 - px, X1: r.X1, Y1: r.Y1},
		{X0: r.X0, Y0: r.Y0, X1: r.X0 + px, Y1: r.Y1},
		{X0: r.X1 - px, Y0: r.Y0, X1: r.X1, Y1: r.Y1},
	}
	for _, e := range edges {
		draw.Draw(img, e.rectangle(), src, image.Point{}, draw.Src)
	}
}

// ScaleToWidth returns img resampled to maxWidth pixels wide with the height
// rounded to keep the aspect ratio. Images already narrow enough, and
// non-positive widths, return img itself.
func ScaleToWidth(img image.Image, maxWidth int) image.Image {
	if img == nil || maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return img
	}
	src := img.Bounds()
	height := max(1, int(math.Round(float64(src.Dy()*maxWidth)/float64(src.Dx()))))
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	return dst
}

// ---- Encoding ----

const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatPDF  = "pdf"
)

// FormatFromPath maps an output file extension to a format name.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", &ValidationError{Field: "format", Reason: "unsupported output extension " + ext}
	}
}

// Encode writes img as png or jpeg.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG, "jpg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
	default:
		return &ValidationError{Field: "format", Reason: "unsupported image format " + format}
	}
}
