package cardtext

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extensionAST "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ---- CommonMark front end ----

// ParseCommonMark parses body text as GitHub-flavoured CommonMark and maps it
// onto the same block model as ParseBlocks: headings become bold paragraphs,
// nested lists are flattened to one level, code is kept as plain lines and
// table rows become paragraphs with cells separated by " | ". Emphasis
// styles combine, so ***x*** is bold italic.
func ParseCommonMark(body string) []Block {
	src := []byte(body)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))
	c := &cmCollector{src: src}
	c.blocks(doc)
	return c.out
}

type cmCollector struct {
	src []byte
	out []Block
}

func (c *cmCollector) blocks(node ast.Node) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		c.block(child)
	}
}

// block emits the blocks for one node, leaving its siblings alone.
func (c *cmCollector) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		c.out = append(c.out, Block{Kind: Paragraph, Spans: c.inline(n, Plain)})
	case *ast.Heading:
		c.out = append(c.out, Block{Kind: Paragraph, Spans: c.inline(n, Bold)})
	case *ast.List:
		c.list(n)
	case *ast.CodeBlock, *ast.FencedCodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(c.src)), "\r\n")
			blk := Block{Kind: Paragraph}
			if line != "" {
				blk.Spans = []Span{{Text: line, Style: Plain}}
			}
			c.out = append(c.out, blk)
		}
	case *ast.ThematicBreak:
		c.out = append(c.out, Block{Kind: Paragraph})
	case *extensionAST.Table:
		c.table(n)
	default:
		if node.HasChildren() {
			c.blocks(node)
		}
	}
}

func (c *cmCollector) list(list *ast.List) {
	start := list.Start
	if !list.IsOrdered() || start == 0 {
		start = 1
	}
	index := 0
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "-"
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d.", start+index)
		} else if list.Marker == '*' {
			marker = "*"
		}
		opened := false
		for child := li.FirstChild(); child != nil; child = child.NextSibling() {
			switch n := child.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				kind := Paragraph
				if !opened {
					kind = ListItem
					opened = true
				}
				blk := Block{Kind: kind, Spans: c.inline(n, Plain)}
				if kind == ListItem {
					blk.Marker = marker
				}
				c.out = append(c.out, blk)
			case *ast.List:
				if !opened {
					c.out = append(c.out, Block{Kind: ListItem, Marker: marker})
					opened = true
				}
				c.list(n)
			default:
				c.block(child)
			}
		}
		if !opened {
			c.out = append(c.out, Block{Kind: ListItem, Marker: marker})
		}
		index++
	}
}

func (c *cmCollector) table(tbl *extensionAST.Table) {
	for row := tbl.FirstChild(); row != nil; row = row.NextSibling() {
		var spans []Span
		first := true
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if _, ok := cell.(*extensionAST.TableCell); !ok {
				continue
			}
			if !first {
				spans = appendSpan(spans, " | ", Plain)
			}
			first = false
			c.collect(cell, Plain, &spans)
		}
		c.out = append(c.out, Block{Kind: Paragraph, Spans: spans})
	}
}

func (c *cmCollector) inline(node ast.Node, style Style) []Span {
	var spans []Span
	c.collect(node, style, &spans)
	return spans
}

func (c *cmCollector) collect(node ast.Node, style Style, out *[]Span) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			*out = appendSpan(*out, strings.TrimRight(string(n.Segment.Value(c.src)), "\n"), style)
			if n.SoftLineBreak() || n.HardLineBreak() {
				*out = appendSpan(*out, " ", style)
			}
		case *ast.String:
			*out = appendSpan(*out, string(n.Value), style)
		case *ast.Emphasis:
			next := style
			if n.Level >= 2 {
				next.Bold = true
			} else {
				next.Italic = true
			}
			c.collect(n, next, out)
		case *ast.AutoLink:
			*out = appendSpan(*out, string(n.Label(c.src)), style)
		case *ast.RawHTML:
			// dropped
		default:
			if child.HasChildren() {
				c.collect(child, style, out)
			}
		}
	}
}

// appendSpan adds text, merging with the previous span when styles match.
func appendSpan(spans []Span, s string, style Style) []Span {
	if s == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Style == style {
		spans[n-1].Text += s
		return spans
	}
	return append(spans, Span{Text: s, Style: style})
}
