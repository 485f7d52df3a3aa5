package cardtext

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("cardtext: invalid request")
	// ErrGeometry matches every *GeometryError.
	ErrGeometry = errors.New("cardtext: degenerate geometry")
)

// ValidationError reports a request that cannot be laid out at all, such as
// one with neither title nor body.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "cardtext: " + e.Reason
	}
	return fmt.Sprintf("cardtext: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// GeometryError reports a rectangle with no usable area.
type GeometryError struct {
	What string
	Rect Rect
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("cardtext: %s is empty (%dx%d px)", e.What, e.Rect.Dx(), e.Rect.Dy())
}

func (e *GeometryError) Is(target error) bool { return target == ErrGeometry }
