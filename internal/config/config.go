// Package config loads the card service configuration from YAML or JSON with
// CARDTEXT_* environment overrides.
package config

import (
	"github.com/arran4/cardtext"
)

type Config struct {
	Server *ServerConfig `yaml:"server" json:"server"`
	Log    *LogConfig    `yaml:"log" json:"log"`
	Card   *CardConfig   `yaml:"card" json:"card"`
	Layout *LayoutConfig `yaml:"layout" json:"layout"`
	Fonts  *FontsConfig  `yaml:"fonts" json:"fonts"`
}

type ServerConfig struct {
	Address      string   `yaml:"address" json:"address"`
	Port         int      `yaml:"port" json:"port"`
	ReadTimeout  int      `yaml:"read_timeout" json:"read_timeout"`   // seconds
	WriteTimeout int      `yaml:"write_timeout" json:"write_timeout"` // seconds
	RateLimit    float64  `yaml:"rate_limit" json:"rate_limit"`       // requests per second, 0 disables
	RateBurst    int      `yaml:"rate_burst" json:"rate_burst"`
	CORSOrigins  []string `yaml:"cors_origins" json:"cors_origins"`

	// Per-request limits on the rendered canvas.
	MaxDPI          int `yaml:"max_dpi" json:"max_dpi"`
	MaxCanvasPixels int `yaml:"max_canvas_pixels" json:"max_canvas_pixels"`
}

type LogConfig struct {
	Level       string `yaml:"level" json:"level"`
	Development bool   `yaml:"development" json:"development"`
	Path        string `yaml:"path" json:"path"`
}

// CardConfig is the default physical card. Lengths are millimetres.
type CardConfig struct {
	WidthMM  float64 `yaml:"width_mm" json:"width_mm"`
	HeightMM float64 `yaml:"height_mm" json:"height_mm"`
	DPI      int     `yaml:"dpi" json:"dpi"`
	MarginMM float64 `yaml:"margin_mm" json:"margin_mm"`
	BleedMM  float64 `yaml:"bleed_mm" json:"bleed_mm"`
	BorderMM float64 `yaml:"border_mm" json:"border_mm"`
	Theme    string  `yaml:"theme" json:"theme"`
}

type LayoutConfig struct {
	MinFontSize   int     `yaml:"min_font_size" json:"min_font_size"`
	Step          int     `yaml:"step" json:"step"`
	TitleRatio    float64 `yaml:"title_ratio" json:"title_ratio"`
	BodyRatio     float64 `yaml:"body_ratio" json:"body_ratio"`
	TitleGap      int     `yaml:"title_gap" json:"title_gap"`
	BlockGap      int     `yaml:"block_gap" json:"block_gap"`
	ListIndent    int     `yaml:"list_indent" json:"list_indent"`
	TitleMaxLines int     `yaml:"title_max_lines" json:"title_max_lines"`
	Bullet        string  `yaml:"bullet" json:"bullet"`
	Parser        string  `yaml:"parser" json:"parser"`
}

// FontsConfig holds optional TTF paths; empty selects the bundled Go fonts.
type FontsConfig struct {
	Regular    string `yaml:"regular" json:"regular"`
	Bold       string `yaml:"bold" json:"bold"`
	Italic     string `yaml:"italic" json:"italic"`
	BoldItalic string `yaml:"bold_italic" json:"bold_italic"`
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:      "0.0.0.0",
		Port:         5000,
		ReadTimeout:  30,
		WriteTimeout: 30,
		RateLimit:    0,
		RateBurst:    10,
		CORSOrigins:  []string{"*"},

		MaxDPI:          1200,
		MaxCanvasPixels: 40_000_000,
	}
}

func NewLogConfig() *LogConfig {
	return &LogConfig{Level: "info", Path: "./logs/cardtext.log"}
}

func NewCardConfig() *CardConfig {
	return &CardConfig{
		WidthMM:  cardtext.PokerWidthMM,
		HeightMM: cardtext.PokerHeightMM,
		DPI:      300,
		MarginMM: 5,
		BleedMM:  3,
		BorderMM: 0,
		Theme:    "light",
	}
}

func NewLayoutConfig() *LayoutConfig {
	def := cardtext.DefaultOptions()
	return &LayoutConfig{
		MinFontSize:   def.MinFontSize,
		Step:          def.Step,
		TitleRatio:    def.TitleRatio,
		BodyRatio:     def.BodyRatio,
		TitleGap:      def.TitleGap,
		BlockGap:      def.BlockGap,
		ListIndent:    def.ListIndent,
		TitleMaxLines: def.TitleMaxLines,
		Bullet:        def.Bullet,
		Parser:        def.Parser,
	}
}

// Default returns a configuration with every section populated.
func Default() *Config {
	return &Config{
		Server: NewServerConfig(),
		Log:    NewLogConfig(),
		Card:   NewCardConfig(),
		Layout: NewLayoutConfig(),
		Fonts:  &FontsConfig{},
	}
}

// fillDefaults gives every nil section its defaults.
func (c *Config) fillDefaults() {
	if c.Server == nil {
		c.Server = NewServerConfig()
	}
	if c.Log == nil {
		c.Log = NewLogConfig()
	}
	if c.Card == nil {
		c.Card = NewCardConfig()
	}
	if c.Layout == nil {
		c.Layout = NewLayoutConfig()
	}
	if c.Fonts == nil {
		c.Fonts = &FontsConfig{}
	}
}

// CardSpec is the configured card in engine units.
func (c *Config) CardSpec() cardtext.CardSpec {
	return cardtext.CardSpec{
		WidthMM:  c.Card.WidthMM,
		HeightMM: c.Card.HeightMM,
		BleedMM:  c.Card.BleedMM,
		MarginMM: c.Card.MarginMM,
		BorderMM: c.Card.BorderMM,
		DPI:      c.Card.DPI,
	}
}

// Options is the configured layout tuning. The logger is left for the caller.
func (c *Config) Options() cardtext.Options {
	opts := cardtext.DefaultOptions()
	l := c.Layout
	opts.MinFontSize = l.MinFontSize
	opts.Step = l.Step
	opts.TitleRatio = l.TitleRatio
	opts.BodyRatio = l.BodyRatio
	opts.TitleGap = l.TitleGap
	opts.BlockGap = l.BlockGap
	opts.ListIndent = l.ListIndent
	opts.TitleMaxLines = l.TitleMaxLines
	opts.Bullet = l.Bullet
	opts.Parser = l.Parser
	return opts
}

func (c *Config) FontConfig() cardtext.FontConfig {
	return cardtext.FontConfig{
		RegularPath:    c.Fonts.Regular,
		BoldPath:       c.Fonts.Bold,
		ItalicPath:     c.Fonts.Italic,
		BoldItalicPath: c.Fonts.BoldItalic,
	}
}
