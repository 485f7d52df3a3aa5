package cardtext

import (
	"math"

	"go.uber.org/zap"
)

// ---- Fit solver ----

// BlockLines is a block wrapped at a particular size. Heights holds one
// line height per entry in Lines.
type BlockLines struct {
	Block   Block         `json:"block"`
	Lines   []WrappedLine `json:"lines"`
	Heights []float64     `json:"heights"`
}

// FitResult is the accepted layout of a title or body at one font size.
type FitResult struct {
	FontSize int          `json:"fontSize"`
	Blocks   []BlockLines `json:"blocks"`
	Height   int          `json:"height"`

	exact float64
}

// extent is the unrounded stacked height, falling back to Height for
// results built outside the solver.
func (r FitResult) extent() float64 {
	if r.exact > 0 {
		return r.exact
	}
	return float64(r.Height)
}

// LineCount is the number of wrapped lines over all blocks.
func (r FitResult) LineCount() int {
	n := 0
	for _, b := range r.Blocks {
		n += len(b.Lines)
	}
	return n
}

// overflows reports whether some line is wider than maxWidth - indent for
// its block.
func (r FitResult) overflows(maxWidth float64, indent int) bool {
	for _, b := range r.Blocks {
		limit := maxWidth
		if b.Block.Kind == ListItem {
			limit -= float64(indent)
		}
		for _, ln := range b.Lines {
			if ln.Width > limit {
				return true
			}
		}
	}
	return false
}

// FitParams bounds a fit search. Size > 0 requests that exact size with no
// search. Otherwise sizes from Start down to Floor in Step decrements are
// tried and the first whose layout fits is taken; Floor is taken when
// nothing fits. A body fits on height alone; a title must also keep every
// line within MaxWidth.
type FitParams struct {
	MaxWidth  float64
	MaxHeight float64
	Size      int
	Start     int
	Floor     int
	Step      int
	MaxLines  int // 0 means no line limit
	Indent    int // list item text offset, body only
	Gap       int // space between blocks, body only
	Logger    *zap.Logger

	checkWidth bool
}

func (p FitParams) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

func (p FitParams) accepts(r FitResult) bool {
	if r.exact > p.MaxHeight {
		return false
	}
	if p.MaxLines > 0 && r.LineCount() > p.MaxLines {
		return false
	}
	return !p.checkWidth || !r.overflows(p.MaxWidth, p.Indent)
}

// MaxIterations is the number of layouts an auto-fit search performs at most.
func (p FitParams) MaxIterations() int {
	if p.Size > 0 {
		return 1
	}
	step := p.Step
	if step <= 0 {
		step = 1
	}
	start := p.Start
	if start < p.Floor {
		start = p.Floor
	}
	return (start-p.Floor+step-1)/step + 1
}

func search(target string, p FitParams, layoutAt func(size int) FitResult) FitResult {
	if p.Size > 0 {
		return layoutAt(p.Size)
	}
	if p.Step <= 0 {
		p.Step = 1
	}
	log := p.logger()
	size := p.Start
	if size < p.Floor {
		size = p.Floor
	}
	for {
		r := layoutAt(size)
		if size <= p.Floor || p.accepts(r) {
			return r
		}
		log.Debug("candidate size rejected",
			zap.String("target", target),
			zap.Int("size", size),
			zap.Float64("height", r.exact),
			zap.Float64("budget", p.MaxHeight),
			zap.Int("lines", r.LineCount()),
		)
		size -= p.Step
		if size < p.Floor {
			size = p.Floor
		}
	}
}

func lineHeight(ln WrappedLine, size int, m Measurer) float64 {
	if len(ln.Chunks) == 0 {
		return m.LineHeight(Plain, size)
	}
	h := 0.0
	for _, c := range ln.Chunks {
		if lh := m.LineHeight(c.Style, size); lh > h {
			h = lh
		}
	}
	return h
}

func finish(size int, blocks []BlockLines, gap int, m Measurer) FitResult {
	total := 0.0
	for i, b := range blocks {
		if i > 0 {
			total += float64(gap)
		}
		if len(b.Lines) == 0 {
			total += m.LineHeight(Plain, size)
			continue
		}
		for _, h := range b.Heights {
			total += h
		}
	}
	return FitResult{FontSize: size, Blocks: blocks, Height: int(math.Ceil(total)), exact: total}
}

// FitTitle fits a plain-text title: whole words, one style.
func FitTitle(title string, style Style, p FitParams, m Measurer) FitResult {
	p.checkWidth = true
	return search("title", p, func(size int) FitResult {
		lines := WrapWords(title, style, p.MaxWidth, size, m)
		heights := make([]float64, len(lines))
		for i, ln := range lines {
			heights[i] = lineHeight(ln, size, m)
		}
		blk := BlockLines{
			Block:   Block{Kind: Paragraph, Spans: []Span{{Text: title, Style: style}}},
			Lines:   lines,
			Heights: heights,
		}
		return finish(size, []BlockLines{blk}, 0, m)
	})
}

// FitBody fits parsed body blocks. List item text wraps at MaxWidth-Indent.
func FitBody(blocks []Block, p FitParams, m Measurer) FitResult {
	return search("body", p, func(size int) FitResult {
		out := make([]BlockLines, 0, len(blocks))
		for _, blk := range blocks {
			width := p.MaxWidth
			if blk.Kind == ListItem {
				width -= float64(p.Indent)
			}
			if width < 0 {
				width = 0
			}
			lines := WrapSpans(blk.Spans, width, size, m)
			heights := make([]float64, len(lines))
			for i, ln := range lines {
				heights[i] = lineHeight(ln, size, m)
			}
			out = append(out, BlockLines{Block: blk, Lines: lines, Heights: heights})
		}
		return finish(size, out, p.Gap, m)
	})
}
