package cardtext

import "unicode/utf8"

// fakeMeasurer gives every rune a fixed advance of size/2 pixels, or
// 3*size/5 in bold, and a line height of 6*size/5.
type fakeMeasurer struct{}

func (fakeMeasurer) Measure(text string, style Style, size int) float64 {
	n := utf8.RuneCountInString(text)
	if style.Bold {
		return float64(n*size*3) / 5
	}
	return float64(n*size) / 2
}

func (fakeMeasurer) LineHeight(style Style, size int) float64 {
	return float64(size*6) / 5
}
