package cardtext

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseCommonMarkBlocks(t *testing.T) {
	input := "# Heading\n\nSome **bold** and *it* text\nsecond line\n\n- one\n- ***both***\n\n3. three\n4. four\n\n```\ncode line\n```\n"
	blocks := ParseCommonMark(input)
	want := []struct {
		kind   BlockKind
		marker string
		text   string
	}{
		{Paragraph, "", "Heading"},
		{Paragraph, "", "Some bold and it text second line"},
		{ListItem, "-", "one"},
		{ListItem, "-", "both"},
		{ListItem, "3.", "three"},
		{ListItem, "4.", "four"},
		{Paragraph, "", "code line"},
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

	if got := blocks[0].Spans; !reflect.DeepEqual(got, []Span{{Text: "Heading", Style: Bold}}) {
		t.Fatalf("heading spans = %#v", got)
	}
	styles := map[string]Style{}
	for _, s := range blocks[1].Spans {
		styles[strings.TrimSpace(s.Text)] = s.Style
	}
	if styles["bold"] != Bold || styles["it"] != Italic {
		t.Fatalf("paragraph styles = %#v", blocks[1].Spans)
	}
	if got := blocks[3].Spans; len(got) != 1 || got[0].Style != (Style{Bold: true, Italic: true}) {
		t.Fatalf("nested emphasis spans = %#v", got)
	}
}

func TestParseCommonMarkInlineText(t *testing.T) {
	blocks := ParseCommonMark("see [the docs](http://example.com) and `code` now")
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks", len(blocks))
	}
	if got := PlainText(blocks[0].Spans); got != "see the docs and code now" {
		t.Fatalf("text = %q", got)
	}
}

func TestParseCommonMarkNestedListFlattened(t *testing.T) {
	blocks := ParseCommonMark("- outer\n  - inner\n- last\n")
	var got []string
	for _, b := range blocks {
		if b.Kind != ListItem {
			t.Fatalf("unexpected paragraph %+v", b)
		}
		got = append(got, PlainText(b.Spans))
	}
	if !reflect.DeepEqual(got, []string{"outer", "inner", "last"}) {
		t.Fatalf("items = %q", got)
	}
}

func TestParseCommonMarkTable(t *testing.T) {
	blocks := ParseCommonMark("| a | b |\n| --- | --- |\n| 1 | 2 |\n")
	var got []string
	for _, b := range blocks {
		got = append(got, strings.Join(strings.Fields(PlainText(b.Spans)), " "))
	}
	if !reflect.DeepEqual(got, []string{"a | b", "1 | 2"}) {
		t.Fatalf("rows = %q", got)
	}
}

func TestParseCommonMarkEmpty(t *testing.T) {
	if blocks := ParseCommonMark(""); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %+v", blocks)
	}
}

func TestParseCommonMarkListItemChildren(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"blockquote", "- a\n\n  > quoted\n\n  after\n", []string{"list-item:a", "paragraph:quoted", "paragraph:after"}},
		{"fenced code", "- a\n\n  ```\n  code\n  ```\n\n  after\n", []string{"list-item:a", "paragraph:code", "paragraph:after"}},
		{"heading", "- a\n\n  # head\n\n  after\n- b\n", []string{"list-item:a", "paragraph:head", "paragraph:after", "list-item:b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, b := range ParseCommonMark(tt.input) {
				got = append(got, b.Kind.String()+":"+strings.TrimSpace(PlainText(b.Spans)))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("blocks = %q, want %q", got, tt.want)
			}
		})
	}
}
