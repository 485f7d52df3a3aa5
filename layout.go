package cardtext

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

// ---- Options ----

const (
	ParserLite       = "lite"
	ParserCommonMark = "commonmark"
)

// Options tune fitting and placement. Distances are pixels.
type Options struct {
	MinFontSize   int     // auto-fit never goes below this size
	Step          int     // auto-fit decrement
	TitleRatio    float64 // title start size as a fraction of safe width
	BodyRatio     float64 // body start size as a fraction of remaining height
	TitleGap      int     // between title and body
	BlockGap      int     // between body blocks
	ListIndent    int     // list text offset from the bullet edge
	TitleMaxLines int     // lines a title may wrap into while auto-fitting; 0 is unlimited
	Bullet        string  // glyph drawn for "-" and "*" markers
	TitleStyle    Style
	Parser        string // ParserLite or ParserCommonMark
	Logger        *zap.Logger
}

// DefaultOptions returns the settings of a standard poker card at 300 DPI.
func DefaultOptions() Options {
	return Options{
		MinFontSize:   10,
		Step:          2,
		TitleRatio:    0.15,
		BodyRatio:     0.25,
		TitleGap:      4,
		BlockGap:      4,
		ListIndent:    48,
		TitleMaxLines: 1,
		Bullet:        "•",
		TitleStyle:    Bold,
		Parser:        ParserLite,
	}
}

func (o Options) sanitized() Options {
	def := DefaultOptions()
	if o.MinFontSize <= 0 {
		o.MinFontSize = def.MinFontSize
	}
	if o.Step <= 0 {
		o.Step = def.Step
	}
	if o.TitleRatio <= 0 {
		o.TitleRatio = def.TitleRatio
	}
	if o.BodyRatio <= 0 {
		o.BodyRatio = def.BodyRatio
	}
	if o.TitleGap < 0 {
		o.TitleGap = 0
	}
	if o.BlockGap < 0 {
		o.BlockGap = 0
	}
	if o.ListIndent < 0 {
		o.ListIndent = 0
	}
	if o.TitleMaxLines < 0 {
		o.TitleMaxLines = 0
	}
	if o.Bullet == "" {
		o.Bullet = def.Bullet
	}
	if o.Parser == "" {
		o.Parser = ParserLite
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// ---- Request & plan ----

// Request is one layout job. Empty Title or Body means absent; at least one
// must be present. Sizes of 0 request auto-fit.
type Request struct {
	Title     string
	Body      string
	SafeArea  Rect
	TitleSize int
	BodySize  int
	Center    bool
	Measurer  Measurer
	Options   *Options // nil means DefaultOptions
}

// DrawInstruction is one positioned run of text. X, Y is the top-left corner
// of the run's line box.
type DrawInstruction struct {
	Text     string `json:"text"`
	Style    Style  `json:"style"`
	FontSize int    `json:"fontSize"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// Plan is the full result of a layout: the accepted fits and the draw
// instructions derived from them.
type Plan struct {
	Title        *FitResult        `json:"title,omitempty"`
	Body         *FitResult        `json:"body,omitempty"`
	Instructions []DrawInstruction `json:"instructions"`
}

// Layout fits and places the request's content and returns draw instructions
// in reading order.
func Layout(req Request) ([]DrawInstruction, error) {
	plan, err := BuildPlan(req)
	if err != nil {
		return nil, err
	}
	return plan.Instructions, nil
}

// BuildPlan is Layout keeping the intermediate fit results.
func BuildPlan(req Request) (*Plan, error) {
	hasTitle := strings.TrimSpace(req.Title) != ""
	hasBody := strings.TrimSpace(req.Body) != ""
	if !hasTitle && !hasBody {
		return nil, &ValidationError{Reason: "at least one of title or body is required"}
	}
	if req.SafeArea.Empty() {
		return nil, &GeometryError{What: "safe area", Rect: req.SafeArea}
	}
	if req.Measurer == nil {
		return nil, &ValidationError{Field: "measurer", Reason: "missing text measurer"}
	}
	opts := DefaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}
	opts = opts.sanitized()
	m := req.Measurer

	var blocks []Block
	if hasBody {
		switch opts.Parser {
		case ParserLite:
			blocks = ParseBlocks(req.Body)
		case ParserCommonMark:
			blocks = ParseCommonMark(req.Body)
		default:
			return nil, &ValidationError{Field: "parser", Reason: "unknown parser " + opts.Parser}
		}
	}

	safeW := float64(req.SafeArea.Dx())
	safeH := float64(req.SafeArea.Dy())
	plan := &Plan{}

	remaining := safeH
	if hasTitle {
		title := FitTitle(req.Title, opts.TitleStyle, FitParams{
			MaxWidth:  safeW,
			MaxHeight: safeH,
			Size:      req.TitleSize,
			Start:     int(safeW * opts.TitleRatio),
			Floor:     opts.MinFontSize,
			Step:      opts.Step,
			MaxLines:  opts.TitleMaxLines,
			Logger:    opts.Logger,
		}, m)
		plan.Title = &title
		remaining -= float64(title.Height)
		if hasBody {
			remaining -= float64(opts.TitleGap)
		}
	}
	if hasBody {
		body := FitBody(blocks, FitParams{
			MaxWidth:  safeW,
			MaxHeight: remaining,
			Size:      req.BodySize,
			Start:     int(remaining * opts.BodyRatio),
			Floor:     opts.MinFontSize,
			Step:      opts.Step,
			Indent:    opts.ListIndent,
			Gap:       opts.BlockGap,
			Logger:    opts.Logger,
		}, m)
		plan.Body = &body
	}

	plan.Instructions = Place(plan.Title, plan.Body, req.SafeArea, req.Center, opts, m)
	opts.Logger.Debug("layout planned",
		zap.Int("instructions", len(plan.Instructions)),
		zap.Bool("title", hasTitle),
		zap.Int("blocks", len(blocks)),
	)
	return plan, nil
}

// ---- Placement ----

// placer folds fitted lines into absolute draw instructions.
type placer struct {
	safe   Rect
	center bool
	opts   Options
	m      Measurer
	y      float64
	out    []DrawInstruction
}

// visibleWidth is the line width without the trailing space of its last chunk.
func visibleWidth(ln WrappedLine, size int, m Measurer) float64 {
	if len(ln.Chunks) == 0 {
		return 0
	}
	last := ln.Chunks[len(ln.Chunks)-1]
	trimmed := strings.TrimRight(last.Text, " ")
	if trimmed == last.Text {
		return ln.Width
	}
	return ln.Width - last.Width + m.Measure(trimmed, last.Style, size)
}

// left returns the x where a unit of the given width starts.
func (p *placer) left(width float64) int {
	x := p.safe.X0
	if p.center {
		if off := math.Round((float64(p.safe.Dx()) - width) / 2); off > 0 {
			x += int(off)
		}
	}
	return x
}

func (p *placer) emitLine(ln WrappedLine, x, size int) {
	y := int(math.Round(p.y))
	cx := 0.0
	for _, c := range ln.Chunks {
		p.out = append(p.out, DrawInstruction{
			Text:     c.Text,
			Style:    c.Style,
			FontSize: size,
			X:        x + int(math.Round(cx)),
			Y:        y,
		})
		cx += c.Width
	}
}

func (p *placer) marker(blk Block) string {
	if blk.Marker == "-" || blk.Marker == "*" {
		return p.opts.Bullet
	}
	return blk.Marker
}

func (p *placer) placeBlock(bl BlockLines, size int) {
	indent := 0
	if bl.Block.Kind == ListItem {
		indent = p.opts.ListIndent
	}
	if len(bl.Lines) == 0 {
		if bl.Block.Kind == ListItem {
			p.emitMarker(bl.Block, p.left(float64(indent)), size)
		}
		p.y += p.m.LineHeight(Plain, size)
		return
	}
	for i, ln := range bl.Lines {
		x := p.left(float64(indent) + visibleWidth(ln, size, p.m))
		if i == 0 && bl.Block.Kind == ListItem {
			p.emitMarker(bl.Block, x, size)
		}
		p.emitLine(ln, x+indent, size)
		if i < len(bl.Heights) {
			p.y += bl.Heights[i]
		} else {
			p.y += lineHeight(ln, size, p.m)
		}
	}
}

func (p *placer) emitMarker(blk Block, x, size int) {
	p.out = append(p.out, DrawInstruction{
		Text:     p.marker(blk),
		Style:    Plain,
		FontSize: size,
		X:        x,
		Y:        int(math.Round(p.y)),
	})
}

// Place stacks title and body top-down inside safe. With center set the
// stack is centred vertically, pinned to the top when it overflows, and
// every line is centred horizontally; a list item's bullet and text are
// centred together.
func Place(title, body *FitResult, safe Rect, center bool, opts Options, m Measurer) []DrawInstruction {
	opts = opts.sanitized()
	p := &placer{safe: safe, center: center, opts: opts, m: m, y: float64(safe.Y0)}

	total := 0.0
	if title != nil {
		total += title.extent()
	}
	if body != nil {
		total += body.extent()
		if title != nil {
			total += float64(opts.TitleGap)
		}
	}
	if center {
		if off := math.Floor((float64(safe.Dy()) - total) / 2); off > 0 {
			p.y += off
		}
	}

	if title != nil {
		for _, bl := range title.Blocks {
			p.placeBlock(bl, title.FontSize)
		}
		if body != nil {
			p.y += float64(opts.TitleGap)
		}
	}
	if body != nil {
		for i, bl := range body.Blocks {
			if i > 0 {
				p.y += float64(opts.BlockGap)
			}
			p.placeBlock(bl, body.FontSize)
		}
	}
	return p.out
}
