// Package responsive selects and derives layouts per viewport breakpoint.
//
// A host registers a table of named breakpoints (minimum viewport widths), a
// column count per breakpoint, and optionally a stored layout per
// breakpoint. When the viewport width changes, the resolver picks the active
// breakpoint and either reuses the stored layout or derives one from the
// previously active breakpoint's layout by proportional scaling, followed by
// bounds correction and compaction.
//
// An empty breakpoint table is the one fatal configuration error in this
// module: no column count can be derived from it, so it is surfaced to the
// caller instead of silently defaulted.
package responsive

import (
	"math"
	"sort"

	"github.com/gridrack/gridrack/pkg/errors"
	"github.com/gridrack/gridrack/pkg/grid"
	"github.com/gridrack/gridrack/pkg/grid/compact"
)

// =============================================================================
// Breakpoint Tables
// =============================================================================

// Breakpoint names a viewport-width threshold, e.g. "lg", "md", "sm".
type Breakpoint string

// Breakpoints maps breakpoint names to their minimum viewport width in
// pixels.
type Breakpoints map[Breakpoint]float64

// Cols maps breakpoint names to column counts.
type Cols map[Breakpoint]int

// Layouts maps breakpoint names to stored layouts.
type Layouts map[Breakpoint]grid.Layout

// Sorted returns the breakpoint names ordered by ascending minimum width,
// with name order as the deterministic tie-break.
func (b Breakpoints) Sorted() []Breakpoint {
	names := make([]Breakpoint, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if b[names[i]] != b[names[j]] {
			return b[names[i]] < b[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// =============================================================================
// Breakpoint Resolution
// =============================================================================

// FromWidth returns the active breakpoint for the given viewport width:
// among breakpoints whose minimum width does not exceed width, the one with
// the largest minimum width. If none qualifies, the breakpoint with the
// smallest minimum width is used so narrow viewports still resolve.
//
// An empty table returns ErrCodeInvalidBreakpoints.
func FromWidth(b Breakpoints, width float64) (Breakpoint, error) {
	if len(b) == 0 {
		return "", errors.New(errors.ErrCodeInvalidBreakpoints, "no breakpoints defined")
	}
	sorted := b.Sorted()
	active := sorted[0]
	for _, name := range sorted {
		if b[name] <= width {
			active = name
		}
	}
	return active, nil
}

// ColsFor returns the column count for a breakpoint.
func ColsFor(c Cols, bp Breakpoint) (int, error) {
	cols, ok := c[bp]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidBreakpoints, "no column count for breakpoint %q", bp)
	}
	if cols < 1 {
		return 0, errors.New(errors.ErrCodeInvalidBreakpoints, "breakpoint %q has column count %d", bp, cols)
	}
	return cols, nil
}

// =============================================================================
// Layout Derivation
// =============================================================================

// FindOrGenerate returns the layout for the target breakpoint. A stored
// layout is reused after bounds correction and compaction; otherwise one is
// derived from the previous breakpoint's layout by scaling each item
// proportionally to the column ratio.
func FindOrGenerate(layouts Layouts, bp, prev Breakpoint, cols, prevCols int, t grid.CompactType, allowOverlap bool) grid.Layout {
	if stored, ok := layouts[bp]; ok {
		return normalize(stored, cols, t, allowOverlap)
	}
	source := layouts[prev]
	return normalize(Scale(source, prevCols, cols), cols, t, allowOverlap)
}

// Scale derives a layout for a different column count by scaling X and W of
// every item proportionally: newX = round(oldX × newCols/oldCols), newW
// likewise, with W clamped to [1, newCols]. Heights and rows are untouched;
// vertical geometry does not depend on the column count.
func Scale(l grid.Layout, oldCols, newCols int) grid.Layout {
	if oldCols < 1 || newCols < 1 {
		return l.Clone()
	}
	ratio := float64(newCols) / float64(oldCols)
	out := l.Clone()
	for i := range out {
		out[i].X = int(math.Round(float64(out[i].X) * ratio))
		out[i].W = int(math.Round(float64(out[i].W) * ratio))
		if out[i].W < 1 {
			out[i].W = 1
		}
		if out[i].W > newCols {
			out[i].W = newCols
		}
	}
	return out
}

// normalize applies the always-on correction pair: bounds, then compaction.
func normalize(l grid.Layout, cols int, t grid.CompactType, allowOverlap bool) grid.Layout {
	corrected := grid.CorrectBounds(l, grid.Bounds{Cols: cols})
	return compact.Compact(corrected, t, cols, allowOverlap)
}
