package cardtext

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// ---- Measurement capability ----

// Measurer reports text metrics in pixels for a style at a pixel size.
// Layout calls it for every candidate size and never caches results.
type Measurer interface {
	Measure(text string, style Style, size int) float64
	LineHeight(style Style, size int) float64
}

// ---- Font loading ----

// Fonts holds one parsed font per style. Parsed fonts are read-only and may
// be shared between goroutines; faces may not, see FontMeasurer.
type Fonts struct {
	Regular    *truetype.Font
	Bold       *truetype.Font
	Italic     *truetype.Font
	BoldItalic *truetype.Font

	data map[Style][]byte
}

type FontConfig struct {
	RegularPath    string
	BoldPath       string
	ItalicPath     string
	BoldItalicPath string
}

func loadFont(path string, fallback []byte) (*truetype.Font, []byte, error) {
	data := fallback
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		data = b
	}
	ft, err := truetype.Parse(data)
	if err != nil {
		if path == "" {
			path = "bundled font"
		}
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ft, data, nil
}

// LoadFonts returns a Fonts set using the provided FontConfig. Styles without
// a path fall back to Go's bundled fonts.
func LoadFonts(cfg FontConfig) (Fonts, error) {
	f := Fonts{data: make(map[Style][]byte, 4)}
	sources := []struct {
		style    Style
		path     string
		fallback []byte
		dst      **truetype.Font
	}{
		{Plain, cfg.RegularPath, goregular.TTF, &f.Regular},
		{Bold, cfg.BoldPath, gobold.TTF, &f.Bold},
		{Italic, cfg.ItalicPath, goitalic.TTF, &f.Italic},
		{Style{Bold: true, Italic: true}, cfg.BoldItalicPath, gobolditalic.TTF, &f.BoldItalic},
	}
	for _, src := range sources {
		ft, data, err := loadFont(src.path, src.fallback)
		if err != nil {
			return f, err
		}
		*src.dst = ft
		f.data[src.style] = data
	}
	return f, nil
}

// Data returns the raw font file for style with the same fallback as Font.
// It is nil for a Fonts value not built by LoadFonts.
func (f Fonts) Data(style Style) []byte {
	order := []Style{style}
	if style.Bold && style.Italic {
		order = append(order, Bold)
	}
	order = append(order, Plain)
	for _, s := range order {
		if b := f.data[s]; b != nil {
			return b
		}
	}
	return nil
}

// Font returns the font for style, falling back towards Regular.
func (f Fonts) Font(style Style) *truetype.Font {
	var ft *truetype.Font
	switch {
	case style.Bold && style.Italic:
		ft = f.BoldItalic
		if ft == nil {
			ft = f.Bold
		}
	case style.Bold:
		ft = f.Bold
	case style.Italic:
		ft = f.Italic
	}
	if ft == nil {
		ft = f.Regular
	}
	return ft
}

// ---- freetype measurer ----

type faceKey struct {
	style Style
	size  int
}

// FontMeasurer measures text with truetype faces at 72 DPI, so one point of
// font size is one pixel. Faces are created on demand and kept for the life
// of the measurer; create one per request since faces are not safe for
// concurrent use.
type FontMeasurer struct {
	fonts Fonts
	faces map[faceKey]font.Face
}

var _ Measurer = (*FontMeasurer)(nil)

func NewFontMeasurer(fonts Fonts) *FontMeasurer {
	return &FontMeasurer{fonts: fonts, faces: make(map[faceKey]font.Face)}
}

// Face returns the face for style at size pixels.
func (m *FontMeasurer) Face(style Style, size int) font.Face {
	key := faceKey{style: style, size: size}
	if face, ok := m.faces[key]; ok {
		return face
	}
	face := truetype.NewFace(m.fonts.Font(style), &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	m.faces[key] = face
	return face
}

func (m *FontMeasurer) Measure(text string, style Style, size int) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	return fixedToFloat(font.MeasureString(m.Face(style, size), text))
}

func (m *FontMeasurer) LineHeight(style Style, size int) float64 {
	if size <= 0 {
		return 0
	}
	return fixedToFloat(m.Face(style, size).Metrics().Height)
}

// Ascent is the distance from the top of a line to its baseline.
func (m *FontMeasurer) Ascent(style Style, size int) int {
	if size <= 0 {
		return 0
	}
	return m.Face(style, size).Metrics().Ascent.Ceil()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
