package cardtext

import (
	"strings"
)

// ---- Line wrapping ----

// Chunk is a drawable piece of a wrapped line: a word with its trailing
// space, measured at the size the line was wrapped for.
type Chunk struct {
	Text  string  `json:"text"`
	Style Style   `json:"style"`
	Width float64 `json:"width"`
}

// WrappedLine is one output line. Width is the sum of its chunk widths.
type WrappedLine struct {
	Chunks []Chunk `json:"chunks"`
	Width  float64 `json:"width"`
}

// Text returns the line content without styles.
func (l WrappedLine) Text() string {
	var b strings.Builder
	for _, c := range l.Chunks {
		b.WriteString(c.Text)
	}
	return b.String()
}

// splitChunks cuts a span on single spaces and gives every piece except the
// last its space back, so " and x" yields " ", "and ", "x".
func splitChunks(text string) []string {
	parts := strings.Split(text, " ")
	out := make([]string, 0, len(parts))
	for i, p := range parts {
		if i < len(parts)-1 {
			p += " "
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// WrapSpans greedily packs styled chunks into lines no wider than maxWidth.
// A chunk that does not fit starts a new line; when it is wider than
// maxWidth on its own it is placed alone and allowed to overflow. A space
// that does not fit is absorbed by the break.
func WrapSpans(spans []Span, maxWidth float64, size int, m Measurer) []WrappedLine {
	var lines []WrappedLine
	var line WrappedLine

	flush := func() {
		if len(line.Chunks) > 0 {
			lines = append(lines, line)
		}
		line = WrappedLine{}
	}

	for _, span := range spans {
		for _, text := range splitChunks(span.Text) {
			w := m.Measure(text, span.Style, size)
			if len(line.Chunks) > 0 && line.Width+w > maxWidth {
				flush()
				if isBlank(text) {
					continue
				}
			}
			line.Chunks = append(line.Chunks, Chunk{Text: text, Style: span.Style, Width: w})
			line.Width += w
		}
	}
	flush()
	return lines
}

// WrapWords is the plain-text variant used for titles: it joins whole words
// with single spaces and measures each candidate line as a whole.
func WrapWords(text string, style Style, maxWidth float64, size int, m Measurer) []WrappedLine {
	var lines []WrappedLine
	current := ""
	emit := func() {
		if current == "" {
			return
		}
		w := m.Measure(current, style, size)
		lines = append(lines, WrappedLine{
			Chunks: []Chunk{{Text: current, Style: style, Width: w}},
			Width:  w,
		})
	}
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current == "" || m.Measure(candidate, style, size) <= maxWidth {
			current = candidate
			continue
		}
		emit()
		current = word
	}
	emit()
	return lines
}
