package cardtext

import (
	"errors"
	"reflect"
	"testing"
)

func TestLayoutPureTitleCentered(t *testing.T) {
	instrs, err := Layout(Request{
		Title:    "ACE",
		SafeArea: Rect{X1: 600, Y1: 800},
		Center:   true,
		Measurer: fakeMeasurer{},
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(instrs) != 1 {
		t.Fatalf("expected one instruction, got %+v", instrs)
	}
	in := instrs[0]
	if in.Text != "ACE" || in.Style != Bold || in.FontSize != 90 {
		t.Fatalf("instruction = %+v", in)
	}
	width := fakeMeasurer{}.Measure("ACE", Bold, in.FontSize)
	if width > 600 {
		t.Fatalf("title width %v exceeds safe width", width)
	}
	if in.X != 219 || in.Y != 346 {
		t.Fatalf("position (%d,%d), want (219,346)", in.X, in.Y)
	}
}

func TestLayoutListBlocks(t *testing.T) {
	instrs, err := Layout(Request{
		Body:     "- first\n- second",
		SafeArea: Rect{X0: 10, Y0: 20, X1: 410, Y1: 420},
		BodySize: 20,
		Measurer: fakeMeasurer{},
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	want := []DrawInstruction{
		{Text: "•", Style: Plain, FontSize: 20, X: 10, Y: 20},
		{Text: "first", Style: Plain, FontSize: 20, X: 58, Y: 20},
		{Text: "•", Style: Plain, FontSize: 20, X: 10, Y: 48},
		{Text: "second", Style: Plain, FontSize: 20, X: 58, Y: 48},
	}
	if !reflect.DeepEqual(instrs, want) {
		t.Fatalf("instructions = %+v\nwant %+v", instrs, want)
	}
}

func TestLayoutNumberedMarkersVerbatim(t *testing.T) {
	instrs, err := Layout(Request{
		Body:     "3. three",
		SafeArea: Rect{X1: 400, Y1: 400},
		BodySize: 10,
		Measurer: fakeMeasurer{},
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(instrs) != 2 || instrs[0].Text != "3." || instrs[1].X != 48 {
		t.Fatalf("instructions = %+v", instrs)
	}
}

func TestLayoutCenteringSymmetry(t *testing.T) {
	m := fakeMeasurer{}
	safe := Rect{X0: 7, X1: 107, Y1: 500}
	for _, body := range []string{"abc", "ab cd", "a **bold** word", "x"} {
		instrs, err := Layout(Request{Body: body, SafeArea: safe, BodySize: 10, Center: true, Measurer: m})
		if err != nil {
			t.Fatalf("Layout(%q): %v", body, err)
		}
		first, last := instrs[0], instrs[len(instrs)-1]
		for _, in := range instrs {
			if in.Y != first.Y {
				t.Fatalf("%q wrapped unexpectedly", body)
			}
		}
		right := last.X + int(m.Measure(last.Text, last.Style, last.FontSize))
		leftGap := first.X - safe.X0
		rightGap := safe.X1 - right
		if d := leftGap - rightGap; d < -1 || d > 1 {
			t.Fatalf("%q: left gap %d, right gap %d", body, leftGap, rightGap)
		}
	}
}

func TestLayoutTitleThenBody(t *testing.T) {
	plan, err := BuildPlan(Request{
		Title:     "T",
		Body:      "x",
		SafeArea:  Rect{X1: 200, Y1: 200},
		TitleSize: 20,
		BodySize:  10,
		Measurer:  fakeMeasurer{},
	})
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if plan.Title == nil || plan.Body == nil {
		t.Fatalf("plan missing parts: %+v", plan)
	}
	if len(plan.Instructions) != 2 {
		t.Fatalf("instructions = %+v", plan.Instructions)
	}
	if got := plan.Instructions[1].Y; got != 24+4 {
		t.Fatalf("body starts at y=%d, want 28", got)
	}
}

func TestLayoutBodyBudgetExcludesTitle(t *testing.T) {
	plan, err := BuildPlan(Request{
		Title:    "Heading",
		Body:     "Some body text that should wrap a few times inside the card.",
		SafeArea: Rect{X1: 300, Y1: 300},
		Measurer: fakeMeasurer{},
	})
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	remaining := 300 - float64(plan.Title.Height) - 4
	if plan.Body.FontSize > 10 && float64(plan.Body.Height) > remaining+1 {
		t.Fatalf("body height %d exceeds remaining %v", plan.Body.Height, remaining)
	}
}

func TestLayoutOverflowPinnedToTop(t *testing.T) {
	safe := Rect{X0: 5, Y0: 9, X1: 100, Y1: 50}
	instrs, err := Layout(Request{
		Body:     "one\ntwo\nthree\nfour",
		SafeArea: safe,
		BodySize: 30,
		Center:   true,
		Measurer: fakeMeasurer{},
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if instrs[0].Y != safe.Y0 {
		t.Fatalf("first line at y=%d, want pinned to %d", instrs[0].Y, safe.Y0)
	}
	for _, in := range instrs {
		if in.X < safe.X0 {
			t.Fatalf("instruction left of safe area: %+v", in)
		}
	}
}

func TestLayoutIdempotent(t *testing.T) {
	req := Request{
		Title:    "Fireball",
		Body:     "Deal **3** damage to *any* target.\n- burn\n2. twice",
		SafeArea: Rect{X0: 30, Y0: 30, X1: 700, Y1: 1000},
		Center:   true,
		Measurer: fakeMeasurer{},
	}
	a, err := Layout(req)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	b, err := Layout(req)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("layouts differ:\n%+v\n%+v", a, b)
	}
}

func TestLayoutErrors(t *testing.T) {
	safe := Rect{X1: 100, Y1: 100}
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"no content", Request{SafeArea: safe, Measurer: fakeMeasurer{}}, ErrValidation},
		{"blank content", Request{Title: "  ", Body: "\n", SafeArea: safe, Measurer: fakeMeasurer{}}, ErrValidation},
		{"empty safe area", Request{Title: "A", SafeArea: Rect{X1: 0, Y1: 100}, Measurer: fakeMeasurer{}}, ErrGeometry},
		{"inverted safe area", Request{Title: "A", SafeArea: Rect{X0: 50, X1: 40, Y1: 100}, Measurer: fakeMeasurer{}}, ErrGeometry},
		{"no measurer", Request{Title: "A", SafeArea: safe}, ErrValidation},
		{"unknown parser", Request{Body: "A", SafeArea: safe, Measurer: fakeMeasurer{}, Options: &Options{Parser: "rst"}}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instrs, err := Layout(tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if instrs != nil {
				t.Fatalf("expected no instructions, got %+v", instrs)
			}
		})
	}
	var ve *ValidationError
	_, err := Layout(Request{SafeArea: safe, Measurer: fakeMeasurer{}})
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestLayoutCommonMarkParser(t *testing.T) {
	opts := DefaultOptions()
	opts.Parser = ParserCommonMark
	instrs, err := Layout(Request{
		Body:     "1. one\n2. two",
		SafeArea: Rect{X1: 400, Y1: 400},
		BodySize: 10,
		Measurer: fakeMeasurer{},
		Options:  &opts,
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	var markers []string
	for _, in := range instrs {
		if in.X == 0 {
			markers = append(markers, in.Text)
		}
	}
	if !reflect.DeepEqual(markers, []string{"1.", "2."}) {
		t.Fatalf("markers = %q", markers)
	}
}

func TestPlaceTitleOnlyHasNoGap(t *testing.T) {
	m := fakeMeasurer{}
	title := FitTitle("A", Bold, FitParams{MaxWidth: 100, MaxHeight: 100, Size: 10}, m)
	instrs := Place(&title, nil, Rect{X1: 100, Y1: 100}, true, DefaultOptions(), m)
	// one line of 12 px centred in 100 px
	if len(instrs) != 1 || instrs[0].Y != 44 {
		t.Fatalf("instructions = %+v", instrs)
	}
}

func TestLayoutCentersBulletWithText(t *testing.T) {
	// At size 10 the item wraps at 200-48 px into "aaaa ... ffff " and "gggg".
	instrs, err := Layout(Request{
		Body:     "- aaaa bbbb cccc dddd eeee ffff gggg",
		SafeArea: Rect{X1: 200, Y1: 400},
		BodySize: 10,
		Center:   true,
		Measurer: fakeMeasurer{},
	})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(instrs) != 8 {
		t.Fatalf("instructions = %+v", instrs)
	}
	bullet, first, second := instrs[0], instrs[1], instrs[7]
	if bullet.Text != "•" || bullet.X != 4 || bullet.Y != 188 {
		t.Fatalf("bullet = %+v, want at (4,188)", bullet)
	}
	if first.Text != "aaaa " || first.X != bullet.X+48 || first.Y != 188 {
		t.Fatalf("first line = %+v", first)
	}
	// 145 px of visible text after the indent leaves 3 px on the right.
	if right := 200 - (first.X + 145); bullet.X-right > 1 || right-bullet.X > 1 {
		t.Fatalf("unit gaps %d and %d", bullet.X, right)
	}
	if second.Text != "gggg" || second.X != 114 || second.Y != 200 {
		t.Fatalf("second line = %+v, want at (114,200)", second)
	}
	for _, in := range instrs[1:] {
		if in.Text == "•" {
			t.Fatalf("bullet repeated on a continuation line: %+v", in)
		}
	}
}
