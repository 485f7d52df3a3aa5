package cardtext

import (
	"errors"
	"math"
	"testing"
)

func TestToPixels(t *testing.T) {
	tests := []struct {
		mm   float64
		dpi  int
		want int
	}{
		{25.4, 300, 300},
		{63, 300, 744},
		{88, 300, 1039},
		{3, 300, 35},
		{5, 300, 59},
		{0, 300, 0},
		{1, 127, 5},
	}
	for _, tt := range tests {
		if got := ToPixels(tt.mm, tt.dpi); got != tt.want {
			t.Fatalf("ToPixels(%v, %d) = %d, want %d", tt.mm, tt.dpi, got, tt.want)
		}
	}
}

func TestToMM(t *testing.T) {
	if got := ToMM(300, 300); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("ToMM(300, 300) = %v", got)
	}
	if got := ToMM(10, 0); got != 0 {
		t.Fatalf("ToMM with zero dpi = %v", got)
	}
}

func TestCardGeometry(t *testing.T) {
	g, err := CardSpec{WidthMM: 63, HeightMM: 88, BleedMM: 3, MarginMM: 5, BorderMM: 1, DPI: 300}.Geometry()
	if err != nil {
		t.Fatalf("Geometry: %v", err)
	}
	if g.Canvas != (Rect{X1: 814, Y1: 1109}) {
		t.Fatalf("canvas = %+v", g.Canvas)
	}
	if g.Card != (Rect{X0: 35, Y0: 35, X1: 779, Y1: 1074}) {
		t.Fatalf("card = %+v", g.Card)
	}
	if g.Border != 12 {
		t.Fatalf("border = %d", g.Border)
	}
	if want := g.Card.Inset(12 + 59); g.Safe != want {
		t.Fatalf("safe = %+v, want %+v", g.Safe, want)
	}
}

func TestCardGeometryErrors(t *testing.T) {
	if _, err := (CardSpec{WidthMM: 63, HeightMM: 88}).Geometry(); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero dpi: err = %v", err)
	}
	if _, err := (CardSpec{WidthMM: 0, HeightMM: 88, DPI: 300}).Geometry(); !errors.Is(err, ErrGeometry) {
		t.Fatalf("zero width: err = %v", err)
	}
	_, err := CardSpec{WidthMM: 10, HeightMM: 10, MarginMM: 5, DPI: 300}.Geometry()
	var ge *GeometryError
	if !errors.As(err, &ge) || ge.What != "safe area" {
		t.Fatalf("margin eats card: err = %v", err)
	}
}

func TestParseCardSize(t *testing.T) {
	tests := []struct {
		in   string
		w, h float64
		ok   bool
	}{
		{"63x88", 63, 88, true},
		{"63X88", 63, 88, true},
		{" 70 x 120.5 ", 70, 120.5, true},
		{"63", 0, 0, false},
		{"63x88x2", 0, 0, false},
		{"axb", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		w, h, err := ParseCardSize(tt.in)
		if tt.ok {
			if err != nil || w != tt.w || h != tt.h {
				t.Fatalf("ParseCardSize(%q) = %v, %v, %v", tt.in, w, h, err)
			}
			continue
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("ParseCardSize(%q): err = %v, want validation error", tt.in, err)
		}
	}
}
