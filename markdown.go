package cardtext

import (
	"strings"
)

// ---- Markdown-lite model ----

// Style is the typographic style of a run of text.
type Style struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
}

var (
	Plain  = Style{}
	Bold   = Style{Bold: true}
	Italic = Style{Italic: true}
)

func (s Style) String() string {
	switch {
	case s.Bold && s.Italic:
		return "bold-italic"
	case s.Bold:
		return "bold"
	case s.Italic:
		return "italic"
	default:
		return "regular"
	}
}

// Span is a run of one style inside one block. It never holds a line break.
type Span struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// BlockKind distinguishes paragraphs from list items.
type BlockKind int

const (
	Paragraph BlockKind = iota
	ListItem
)

func (k BlockKind) String() string {
	if k == ListItem {
		return "list-item"
	}
	return "paragraph"
}

// Block is one source line of body text. Marker is set for list items only
// and is either "-", "*" or a numeric "N." token copied from the input.
type Block struct {
	Kind   BlockKind `json:"kind"`
	Marker string    `json:"marker,omitempty"`
	Spans  []Span    `json:"spans"`
}

// ---- Block parsing ----

// ParseBlocks splits body text into one block per source line. Lines starting
// with "-", "*" or "N." followed by a space become list items; everything else,
// including empty lines, becomes a paragraph.
func ParseBlocks(text string) []Block {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, ln := range lines {
		ln = strings.TrimRight(ln, "\r")
		if marker, rest, ok := matchListMarker(ln); ok {
			blocks = append(blocks, Block{Kind: ListItem, Marker: marker, Spans: ParseInline(rest)})
			continue
		}
		blocks = append(blocks, Block{Kind: Paragraph, Spans: ParseInline(ln)})
	}
	return blocks
}

// matchListMarker recognises "- ", "* " and "<digits>. " at the start of a
// line, ignoring leading indentation. rest has the marker and the spaces
// that follow it removed.
func matchListMarker(line string) (marker, rest string, ok bool) {
	s := strings.TrimLeft(line, " \t")
	if s == "" {
		return "", "", false
	}
	n := 0
	switch {
	case s[0] == '-' || s[0] == '*':
		n = 1
	case isDigit(s[0]):
		for n < len(s) && isDigit(s[n]) {
			n++
		}
		if n >= len(s) || s[n] != '.' {
			return "", "", false
		}
		n++
	default:
		return "", "", false
	}
	if n >= len(s) || s[n] != ' ' {
		return "", "", false
	}
	return s[:n], strings.TrimLeft(s[n:], " "), true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// ---- Inline scanning ----

// ParseInline scans one line into styled spans. "**x**" and "__x__" are
// bold, "*x*" and "_x_" italic. A delimiter without a partner on the same
// line is literal text, and the interior of a recognised region is not
// scanned again, so emphasis never nests.
func ParseInline(line string) []Span {
	var spans []Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String(), Style: Plain})
			plain.Reset()
		}
	}

	for i := 0; i < len(line); {
		c := line[i]
		if c != '*' && c != '_' {
			plain.WriteByte(c)
			i++
			continue
		}
		double := string([]byte{c, c})
		if strings.HasPrefix(line[i:], double) {
			if end := closingDelimiter(line, i+2, double); end >= 0 {
				flush()
				spans = append(spans, Span{Text: line[i+2 : end], Style: Bold})
				i = end + 2
				continue
			}
		}
		if end := closingDelimiter(line, i+1, string(c)); end >= 0 {
			flush()
			spans = append(spans, Span{Text: line[i+1 : end], Style: Italic})
			i = end + 1
			continue
		}
		plain.WriteByte(c)
		i++
	}
	flush()
	return spans
}

// closingDelimiter returns the index of the first delim at or after from that
// closes a non-empty region, or -1.
func closingDelimiter(line string, from int, delim string) int {
	if from >= len(line) {
		return -1
	}
	idx := strings.Index(line[from:], delim)
	if idx <= 0 {
		return -1
	}
	return from + idx
}

// PlainText joins the text of spans, dropping styles.
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
