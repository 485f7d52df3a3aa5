package cardtext

import (
	"math"
	"strconv"
	"strings"
)

// ---- Units & geometry ----

const mmPerInch = 25.4

// Standard poker card size in millimetres.
const (
	PokerWidthMM  = 63
	PokerHeightMM = 88
)

// ToPixels converts a physical length in millimetres to whole pixels at dpi.
func ToPixels(lengthMM float64, dpi int) int {
	return int(math.Round(lengthMM / mmPerInch * float64(dpi)))
}

// ToMM is the inverse of ToPixels without rounding.
func ToMM(px float64, dpi int) float64 {
	if dpi <= 0 {
		return 0
	}
	return px / float64(dpi) * mmPerInch
}

// Rect is an integer pixel rectangle; X1/Y1 are exclusive.
type Rect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

func (r Rect) Dx() int     { return r.X1 - r.X0 }
func (r Rect) Dy() int     { return r.Y1 - r.Y0 }
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Inset shrinks r by d pixels on every side.
func (r Rect) Inset(d int) Rect {
	return Rect{X0: r.X0 + d, Y0: r.Y0 + d, X1: r.X1 - d, Y1: r.Y1 - d}
}

// CardSpec describes a physical card. Lengths are millimetres.
type CardSpec struct {
	WidthMM  float64
	HeightMM float64
	BleedMM  float64
	MarginMM float64
	BorderMM float64
	DPI      int
}

// CardGeometry is a CardSpec resolved to pixels.
type CardGeometry struct {
	Canvas Rect // full image including bleed
	Card   Rect // trimmed card
	Safe   Rect // area text may occupy
	Border int  // border thickness drawn inside Card
}

// Geometry resolves s to pixels. The bleed surrounds the card on all
// sides, the border is drawn inside the card edge and the safe area is the
// card inset by border and margin.
func (s CardSpec) Geometry() (CardGeometry, error) {
	if s.DPI <= 0 {
		return CardGeometry{}, &ValidationError{Field: "dpi", Reason: "must be positive"}
	}
	cardW := ToPixels(s.WidthMM, s.DPI)
	cardH := ToPixels(s.HeightMM, s.DPI)
	bleed := ToPixels(s.BleedMM, s.DPI)
	margin := ToPixels(s.MarginMM, s.DPI)
	border := ToPixels(s.BorderMM, s.DPI)
	if bleed < 0 {
		bleed = 0
	}
	if border < 0 {
		border = 0
	}

	g := CardGeometry{
		Canvas: Rect{X1: cardW + 2*bleed, Y1: cardH + 2*bleed},
		Card:   Rect{X0: bleed, Y0: bleed, X1: bleed + cardW, Y1: bleed + cardH},
		Border: border,
	}
	if g.Card.Empty() {
		return g, &GeometryError{What: "card", Rect: g.Card}
	}
	g.Safe = g.Card.Inset(border + margin)
	if g.Safe.Empty() {
		return g, &GeometryError{What: "safe area", Rect: g.Safe}
	}
	return g, nil
}

// ParseCardSize parses "<width>x<height>" in millimetres, e.g. "63x88".
func ParseCardSize(s string) (w, h float64, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, &ValidationError{Field: "size", Reason: `invalid size format, use "<width>x<height>"`}
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errH != nil {
		return 0, 0, &ValidationError{Field: "size", Reason: `invalid size format, use "<width>x<height>"`}
	}
	return w, h, nil
}
