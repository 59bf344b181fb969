// Package position converts between grid units and pixel geometry.
//
// The calculator is purely numeric and independent of collision detection
// and compaction: it is used both by the rendering boundary (grid→pixel) and
// by the engine's callers when translating gesture pixel deltas back into
// grid coordinates (pixel→grid).
package position

import "math"

// =============================================================================
// Calculator
// =============================================================================

// Calc holds the container geometry needed for unit conversion. All pixel
// values are float64 so hosts with fractional device pixels round only once,
// at the end.
type Calc struct {
	Cols           int
	ContainerWidth float64
	RowHeight      float64

	// MarginX and MarginY are the gaps between adjacent grid units. Margins
	// apply only between units, never after the last one.
	MarginX float64
	MarginY float64

	// PaddingX is the horizontal container padding, applied once per side.
	PaddingX float64
}

// ColWidth returns the pixel width of a single column.
func (c Calc) ColWidth() float64 {
	cols := c.Cols
	if cols < 1 {
		cols = 1
	}
	return (c.ContainerWidth - 2*c.PaddingX - float64(cols-1)*c.MarginX) / float64(cols)
}

// Rect is a pixel-space rectangle.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToPixels converts grid-unit geometry to a pixel rectangle.
func (c Calc) ToPixels(x, y, w, h int) Rect {
	colW := c.ColWidth()
	return Rect{
		Left:   float64(x) * (colW + c.MarginX),
		Top:    float64(y) * (c.RowHeight + c.MarginY),
		Width:  float64(w)*colW + float64(w-1)*c.MarginX,
		Height: float64(h)*c.RowHeight + float64(h-1)*c.MarginY,
	}
}

// ToGridPosition converts a pixel position back to grid coordinates, rounded
// to the nearest cell and clamped to non-negative values. It is the inverse
// of ToPixels for the position components.
func (c Calc) ToGridPosition(left, top float64) (x, y int) {
	x = int(math.Round(left / (c.ColWidth() + c.MarginX)))
	y = int(math.Round(top / (c.RowHeight + c.MarginY)))
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

// ToGridSize converts a pixel extent back to grid units, rounded to the
// nearest whole unit with a floor of 1.
func (c Calc) ToGridSize(width, height float64) (w, h int) {
	w = int(math.Round((width + c.MarginX) / (c.ColWidth() + c.MarginX)))
	h = int(math.Round((height + c.MarginY) / (c.RowHeight + c.MarginY)))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Clamp bounds v to [lo, hi]. It underlies all bounds logic in this module.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
