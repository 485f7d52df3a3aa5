package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/arran4/cardtext"
	"github.com/arran4/cardtext/cardpdf"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const errNoContent = "At least one of 'text' or 'title' is required"

var contentTypes = map[string]string{
	cardtext.FormatPNG:  "image/png",
	cardtext.FormatJPEG: "image/jpeg",
	cardtext.FormatPDF:  "application/pdf",
}

// cardQuery is the parsed /card query string.
type cardQuery struct {
	card     cardtext.Card
	theme    cardtext.Theme
	format   string
	maxWidth int
}

func (s *Server) parseCardQuery(c *gin.Context) (cardQuery, error) {
	q := cardQuery{format: cardtext.FormatPNG}
	q.card.Title = c.Query("title")
	q.card.Body = c.Query("text")
	if strings.TrimSpace(q.card.Title) == "" && strings.TrimSpace(q.card.Body) == "" {
		return q, &cardtext.ValidationError{Reason: errNoContent}
	}

	spec := s.cfg.CardSpec()
	if size, ok := c.GetQuery("size"); ok {
		w, h, err := cardtext.ParseCardSize(size)
		if err != nil {
			return q, &cardtext.ValidationError{Field: "size", Reason: `Invalid size format. Use "<width>x<height>"`}
		}
		spec.WidthMM, spec.HeightMM = w, h
	}
	var err error
	if spec.MarginMM, err = floatParam(c, "margin", spec.MarginMM); err != nil {
		return q, err
	}
	if spec.BleedMM, err = floatParam(c, "bleed", spec.BleedMM); err != nil {
		return q, err
	}
	if spec.BorderMM, err = floatParam(c, "border", spec.BorderMM); err != nil {
		return q, err
	}
	if spec.DPI, err = intParam(c, "dpi", spec.DPI); err != nil {
		return q, err
	}
	if err := s.checkCanvas(spec); err != nil {
		return q, err
	}
	q.card.Spec = spec

	if q.card.BodySize, err = intParam(c, "font_size", 0); err != nil {
		return q, err
	}
	if q.card.TitleSize, err = intParam(c, "title_size", 0); err != nil {
		return q, err
	}
	if q.maxWidth, err = intParam(c, "max_width", 0); err != nil {
		return q, err
	}
	q.card.Center = true
	if v, ok := c.GetQuery("center"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return q, &cardtext.ValidationError{Field: "center", Reason: "must be a boolean"}
		}
		q.card.Center = b
	}

	if q.theme, err = cardtext.ThemeByName(c.DefaultQuery("theme", s.cfg.Card.Theme)); err != nil {
		return q, err
	}
	if f, ok := c.GetQuery("format"); ok {
		f = strings.ToLower(f)
		if f == "jpg" {
			f = cardtext.FormatJPEG
		}
		if _, known := contentTypes[f]; !known {
			return q, &cardtext.ValidationError{Field: "format", Reason: "must be png, jpeg or pdf"}
		}
		q.format = f
	}
	return q, nil
}

// checkCanvas bounds the raster a request may allocate.
func (s *Server) checkCanvas(spec cardtext.CardSpec) error {
	if spec.DPI > s.cfg.Server.MaxDPI {
		return &cardtext.ValidationError{Field: "dpi", Reason: fmt.Sprintf("must not exceed %d", s.cfg.Server.MaxDPI)}
	}
	w := int64(cardtext.ToPixels(spec.WidthMM+2*spec.BleedMM, spec.DPI))
	h := int64(cardtext.ToPixels(spec.HeightMM+2*spec.BleedMM, spec.DPI))
	if w*h > int64(s.cfg.Server.MaxCanvasPixels) {
		return &cardtext.ValidationError{Field: "size", Reason: fmt.Sprintf("canvas of %dx%d px exceeds %d pixels", w, h, s.cfg.Server.MaxCanvasPixels)}
	}
	return nil
}

func floatParam(c *gin.Context, name string, def float64) (float64, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &cardtext.ValidationError{Field: name, Reason: "must be a number"}
	}
	if f < 0 {
		return 0, &cardtext.ValidationError{Field: name, Reason: "must not be negative"}
	}
	return f, nil
}

func intParam(c *gin.Context, name string, def int) (int, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &cardtext.ValidationError{Field: name, Reason: "must be an integer"}
	}
	if n < 0 {
		return 0, &cardtext.ValidationError{Field: name, Reason: "must not be negative"}
	}
	return n, nil
}

func (s *Server) handleCard(c *gin.Context) {
	q, err := s.parseCardQuery(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	opts := s.cfg.Options()
	opts.Logger = s.log.With(zap.String("request_id", c.GetString(requestIDKey)))
	ro := cardtext.RenderOptions{Theme: q.theme, Fonts: s.fonts, Options: &opts}

	var buf bytes.Buffer
	if q.format == cardtext.FormatPDF {
		geo, instrs, err := cardtext.LayoutCard(q.card, ro)
		if err != nil {
			s.fail(c, err)
			return
		}
		err = cardpdf.Render(&buf, cardpdf.Page{
			Geometry:     geo,
			DPI:          q.card.Spec.DPI,
			Theme:        q.theme,
			Fonts:        s.fonts,
			Instructions: instrs,
			Title:        q.card.Title,
		})
		if err != nil {
			s.fail(c, err)
			return
		}
	} else {
		img, _, err := cardtext.RenderCard(q.card, ro)
		if err != nil {
			s.fail(c, err)
			return
		}
		if err := cardtext.Encode(&buf, cardtext.ScaleToWidth(img, q.maxWidth), q.format); err != nil {
			s.fail(c, err)
			return
		}
	}
	c.Data(http.StatusOK, contentTypes[q.format], buf.Bytes())
}

// fail maps engine errors to 400 and everything else to 500.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if errors.Is(err, cardtext.ErrValidation) || errors.Is(err, cardtext.ErrGeometry) {
		msg := err.Error()
		var ve *cardtext.ValidationError
		if errors.As(err, &ve) && (ve.Reason == errNoContent || ve.Field == "size") {
			msg = ve.Reason
		}
		abortJSON(c, http.StatusBadRequest, msg)
		return
	}
	abortJSON(c, http.StatusInternalServerError, "Internal Server Error")
}
