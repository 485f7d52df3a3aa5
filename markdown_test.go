package cardtext

import (
	"reflect"
	"testing"
)

func TestParseInlineRoundTrip(t *testing.T) {
	got := ParseInline("**bold** and *italic* and plain")
	want := []Span{
		{Text: "bold", Style: Bold},
		{Text: " and ", Style: Plain},
		{Text: "italic", Style: Italic},
		{Text: " and plain", Style: Plain},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseInline = %#v, want %#v", got, want)
	}
}

func TestParseInlineDelimiters(t *testing.T) {
	tests := []struct {
		in   string
		want []Span
	}{
		{"__bold__", []Span{{Text: "bold", Style: Bold}}},
		{"_it_ x", []Span{{Text: "it", Style: Italic}, {Text: " x", Style: Plain}}},
		{"**unpaired", []Span{{Text: "**unpaired", Style: Plain}}},
		{"2 * 3 = 6", []Span{{Text: "2 * 3 = 6", Style: Plain}}},
		{"**", []Span{{Text: "**", Style: Plain}}},
		{"** **", []Span{{Text: " ", Style: Bold}}},
		{"**a *b* c**", []Span{{Text: "a *b* c", Style: Bold}}},
		{"x *y", []Span{{Text: "x *y", Style: Plain}}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseInline(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("ParseInline(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestParseBlocksListItems(t *testing.T) {
	blocks := ParseBlocks("- first\n- second")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	for i, want := range []string{"first", "second"} {
		b := blocks[i]
		if b.Kind != ListItem || b.Marker != "-" {
			t.Fatalf("block %d = %+v, want list item with marker -", i, b)
		}
		if PlainText(b.Spans) != want {
			t.Fatalf("block %d text = %q, want %q", i, PlainText(b.Spans), want)
		}
	}
}

func TestParseBlocksKinds(t *testing.T) {
	blocks := ParseBlocks("Intro **now**\r\n\r\n* star\n12. twelve\n1.5 kg\n-dash\n  - indented")
	want := []struct {
		kind   BlockKind
		marker string
		text   string
	}{
		{Paragraph, "", "Intro now"},
		{Paragraph, "", ""},
		{ListItem, "*", "star"},
		{ListItem, "12.", "twelve"},
		{Paragraph, "", "1.5 kg"},
		{Paragraph, "", "-dash"},
		{ListItem, "-", "indented"},
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %+v", len(blocks), len(want), blocks)
	}
	for i, w := range want {
		b := blocks[i]
		if b.Kind != w.kind || b.Marker != w.marker || PlainText(b.Spans) != w.text {
			t.Fatalf("block %d = {%s %q %q}, want {%s %q %q}", i, b.Kind, b.Marker, PlainText(b.Spans), w.kind, w.marker, w.text)
		}
	}
	if blocks[1].Spans != nil {
		t.Fatalf("empty line should have no spans, got %#v", blocks[1].Spans)
	}
}

func TestParseBlocksEmpty(t *testing.T) {
	if blocks := ParseBlocks(""); blocks != nil {
		t.Fatalf("expected nil, got %#v", blocks)
	}
}
