package config

import (
	"fmt"

	"github.com/arran4/cardtext"
)

// Validate checks the values the engine and server cannot work with.
func (c *Config) Validate() error {
	c.fillDefaults()
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be in 1-65535", ErrInvalidValue)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("%w: server.rate_limit must not be negative", ErrInvalidValue)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst <= 0 {
		return fmt.Errorf("%w: server.rate_burst must be positive when rate_limit is set", ErrInvalidValue)
	}
	if c.Server.MaxDPI <= 0 || c.Server.MaxCanvasPixels <= 0 {
		return fmt.Errorf("%w: server.max_dpi and server.max_canvas_pixels must be positive", ErrInvalidValue)
	}
	if c.Card.DPI > c.Server.MaxDPI {
		return fmt.Errorf("%w: card.dpi exceeds server.max_dpi", ErrInvalidValue)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level must be debug, info, warn or error", ErrInvalidValue)
	}

	if c.Card.DPI <= 0 {
		return fmt.Errorf("%w: card.dpi must be positive", ErrInvalidValue)
	}
	if c.Card.WidthMM <= 0 || c.Card.HeightMM <= 0 {
		return fmt.Errorf("%w: card size must be positive", ErrInvalidValue)
	}
	if c.Card.MarginMM < 0 || c.Card.BleedMM < 0 || c.Card.BorderMM < 0 {
		return fmt.Errorf("%w: card margin, bleed and border must not be negative", ErrInvalidValue)
	}
	if _, err := cardtext.ThemeByName(c.Card.Theme); err != nil {
		return fmt.Errorf("%w: card.theme: %v", ErrInvalidValue, err)
	}

	l := c.Layout
	if l.Step <= 0 {
		return fmt.Errorf("%w: layout.step must be positive", ErrInvalidValue)
	}
	if l.MinFontSize <= 0 {
		return fmt.Errorf("%w: layout.min_font_size must be positive", ErrInvalidValue)
	}
	if l.TitleGap < 0 || l.BlockGap < 0 || l.ListIndent < 0 || l.TitleMaxLines < 0 {
		return fmt.Errorf("%w: layout gaps, indent and title_max_lines must not be negative", ErrInvalidValue)
	}
	switch l.Parser {
	case cardtext.ParserLite, cardtext.ParserCommonMark:
	default:
		return fmt.Errorf("%w: layout.parser must be %q or %q", ErrInvalidValue, cardtext.ParserLite, cardtext.ParserCommonMark)
	}
	return nil
}
