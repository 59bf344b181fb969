// Package constraint filters proposed item geometry before it reaches the
// move/resize engine.
//
// A pipeline is an ordered sequence of adjustment functions applied left to
// right, so later constraints see earlier outputs. The pipeline is not
// required for the compaction or bounds invariants to hold; it narrows what
// the engine is asked to do, typically turning raw gesture-derived values
// into legal grid coordinates. Any function matching Func can be appended as
// a custom constraint.
package constraint

import (
	"math"

	"github.com/gridrack/gridrack/pkg/grid"
	"github.com/gridrack/gridrack/pkg/grid/position"
)

// =============================================================================
// Pipeline
// =============================================================================

// Proposed is a candidate geometry in grid units. Values are float64 because
// proposals usually originate from pixel math and are only snapped to
// integers by the Snap constraint.
type Proposed struct {
	X, Y, W, H float64
}

// Axis names the coordinate a directional constraint is driven by.
type Axis int

// Axes.
const (
	AxisX Axis = iota
	AxisY
)

// Context carries the ambient grid state a constraint may consult.
type Context struct {
	Cols int

	// DrivenBy tells direction-aware constraints which axis the active
	// gesture is changing, e.g. the edge being dragged during a resize.
	DrivenBy Axis
}

// Func adjusts a proposed geometry for one item. Implementations must be
// pure: same inputs, same output.
type Func func(item grid.LayoutItem, p Proposed, ctx Context) Proposed

// Pipeline applies its constraints in order.
type Pipeline []Func

// Apply runs the pipeline left to right and returns the final proposal.
func (pl Pipeline) Apply(item grid.LayoutItem, p Proposed, ctx Context) Proposed {
	for _, fn := range pl {
		p = fn(item, p, ctx)
	}
	return p
}

// =============================================================================
// Built-ins
// =============================================================================

// GridBounds clamps X into [0, cols-W] and Y to ≥ 0.
func GridBounds() Func {
	return func(_ grid.LayoutItem, p Proposed, ctx Context) Proposed {
		cols := float64(ctx.Cols)
		if cols < 1 {
			cols = 1
		}
		p.X = position.Clamp(p.X, 0, math.Max(0, cols-p.W))
		p.Y = math.Max(p.Y, 0)
		return p
	}
}

// SizeBounds clamps W and H to the item's min/max bounds and the column
// count, with a floor of one grid unit.
func SizeBounds() Func {
	return func(item grid.LayoutItem, p Proposed, ctx Context) Proposed {
		minW, minH := 1.0, 1.0
		if item.MinW > 0 {
			minW = float64(item.MinW)
		}
		if item.MinH > 0 {
			minH = float64(item.MinH)
		}
		maxW, maxH := math.Inf(1), math.Inf(1)
		if item.MaxW > 0 {
			maxW = float64(item.MaxW)
		}
		if item.MaxH > 0 {
			maxH = float64(item.MaxH)
		}
		if ctx.Cols > 0 {
			maxW = math.Min(maxW, float64(ctx.Cols))
		}
		p.W = position.Clamp(p.W, minW, maxW)
		p.H = position.Clamp(p.H, minH, maxH)
		return p
	}
}

// AspectRatio locks W/H to ratio. The driven axis wins: dragging a
// horizontal edge derives the height from the width, and vice versa.
func AspectRatio(ratio float64) Func {
	return func(_ grid.LayoutItem, p Proposed, ctx Context) Proposed {
		if ratio <= 0 {
			return p
		}
		if ctx.DrivenBy == AxisX {
			p.H = p.W / ratio
		} else {
			p.W = p.H * ratio
		}
		return p
	}
}

// Snap rounds all four components to the nearest integer grid unit, with
// sizes floored at one unit and coordinates at zero.
func Snap() Func {
	return func(_ grid.LayoutItem, p Proposed, _ Context) Proposed {
		p.X = math.Max(math.Round(p.X), 0)
		p.Y = math.Max(math.Round(p.Y), 0)
		p.W = math.Max(math.Round(p.W), 1)
		p.H = math.Max(math.Round(p.H), 1)
		return p
	}
}

// OnlyX restricts fn to the horizontal components; Y and H pass through
// untouched.
func OnlyX(fn Func) Func {
	return func(item grid.LayoutItem, p Proposed, ctx Context) Proposed {
		adjusted := fn(item, p, ctx)
		adjusted.Y, adjusted.H = p.Y, p.H
		return adjusted
	}
}

// OnlyY restricts fn to the vertical components; X and W pass through
// untouched.
func OnlyY(fn Func) Func {
	return func(item grid.LayoutItem, p Proposed, ctx Context) Proposed {
		adjusted := fn(item, p, ctx)
		adjusted.X, adjusted.W = p.X, p.W
		return adjusted
	}
}

// Default is the pipeline the CLI and API run before handing coordinates to
// the engine: size bounds, then grid bounds, then snap.
func Default() Pipeline {
	return Pipeline{SizeBounds(), GridBounds(), Snap()}
}
