// Package cardpdf replays card draw instructions onto a vector page and
// writes it as PDF. Pixel coordinates are mapped back to millimetres at the
// card's DPI so the page has the physical card size including bleed.
package cardpdf

import (
	"fmt"
	"image/color"
	"io"

	"github.com/arran4/cardtext"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"golang.org/x/image/font/gofont/goregular"
)

// Page is everything needed to draw one card page.
type Page struct {
	Geometry     cardtext.CardGeometry
	DPI          int
	Theme        cardtext.Theme
	Fonts        cardtext.Fonts
	Instructions []cardtext.DrawInstruction
	Title        string // document title metadata, optional
}

type renderer struct {
	dpi    int
	theme  cardtext.Theme
	family *canvas.FontFamily
	faces  map[faceKey]*canvas.FontFace
}

type faceKey struct {
	style cardtext.Style
	size  int
}

// Render writes p to w as a single page PDF.
func Render(w io.Writer, p Page) error {
	if p.DPI <= 0 {
		return &cardtext.ValidationError{Field: "dpi", Reason: "must be positive"}
	}
	if p.Geometry.Canvas.Empty() {
		return &cardtext.GeometryError{What: "canvas", Rect: p.Geometry.Canvas}
	}
	if (p.Theme == cardtext.Theme{}) {
		p.Theme = cardtext.LightTheme
	}
	family, err := loadFamily(p.Fonts)
	if err != nil {
		return err
	}
	r := &renderer{dpi: p.DPI, theme: p.Theme, family: family, faces: make(map[faceKey]*canvas.FontFace)}

	width := r.mm(p.Geometry.Canvas.Dx())
	height := r.mm(p.Geometry.Canvas.Dy())
	writer := pdf.New(w, width, height, nil)
	if p.Title != "" {
		writer.SetInfo(p.Title, "", "", "", "cardtext")
	}

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	r.fill(ctx, p.Geometry.Canvas, r.theme.Bleed)
	r.fill(ctx, p.Geometry.Card, r.theme.Card)
	if b := p.Geometry.Border; b > 0 {
		card := p.Geometry.Card
		r.fill(ctx, cardtext.Rect{X0: card.X0, Y0: card.Y0, X1: card.X1, Y1: card.Y0 + b}, r.theme.Border)
		r.fill(ctx, cardtext.Rect{X0: card.X0, Y0: card.Y1 - b, X1: card.X1, Y1: card.Y1}, r.theme.Border)
		r.fill(ctx, cardtext.Rect{X0: card.X0, Y0: card.Y0, X1: card.X0 + b, Y1: card.Y1}, r.theme.Border)
		r.fill(ctx, cardtext.Rect{X0: card.X1 - b, Y0: card.Y0, X1: card.X1, Y1: card.Y1}, r.theme.Border)
	}
	for _, in := range p.Instructions {
		face := r.face(in.Style, in.FontSize)
		line := canvas.NewTextLine(face, in.Text, canvas.Left)
		// Y is the top of the line box; text is drawn at its baseline.
		ctx.DrawText(r.mm(in.X), r.mm(in.Y)+face.Metrics().Ascent, line)
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return fmt.Errorf("cardpdf: write pdf: %w", err)
	}
	return nil
}

func (r *renderer) mm(px int) float64 { return cardtext.ToMM(float64(px), r.dpi) }

// pt converts a pixel font size at the card DPI to points.
func (r *renderer) pt(px int) float64 { return float64(px) * 72 / float64(r.dpi) }

func (r *renderer) fill(ctx *canvas.Context, rect cardtext.Rect, col color.Color) {
	if rect.Empty() {
		return
	}
	ctx.SetFillColor(col)
	ctx.SetStrokeColor(color.Transparent)
	ctx.DrawPath(r.mm(rect.X0), r.mm(rect.Y0), canvas.Rectangle(r.mm(rect.Dx()), r.mm(rect.Dy())))
}

func (r *renderer) face(style cardtext.Style, size int) *canvas.FontFace {
	key := faceKey{style: style, size: size}
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := r.family.Face(r.pt(size), r.theme.FG, canvasStyle(style), canvas.FontNormal)
	r.faces[key] = f
	return f
}

func canvasStyle(s cardtext.Style) canvas.FontStyle {
	style := canvas.FontRegular
	if s.Bold {
		style = canvas.FontBold
	}
	if s.Italic {
		style |= canvas.FontItalic
	}
	return style
}

// loadFamily registers one font file per style. Fonts not built by
// cardtext.LoadFonts carry no raw data and fall back to Go Regular.
func loadFamily(fonts cardtext.Fonts) (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily("cardtext")
	styles := []cardtext.Style{
		cardtext.Plain,
		cardtext.Bold,
		cardtext.Italic,
		{Bold: true, Italic: true},
	}
	for _, s := range styles {
		data := fonts.Data(s)
		if data == nil {
			data = goregular.TTF
		}
		if err := family.LoadFont(data, 0, canvasStyle(s)); err != nil {
			return nil, fmt.Errorf("cardpdf: load %s font: %w", s, err)
		}
	}
	return family, nil
}
