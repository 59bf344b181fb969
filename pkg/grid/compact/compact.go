package compact

import "github.com/gridrack/gridrack/pkg/grid"

// =============================================================================
// Compaction
// =============================================================================

// Compact returns a new layout with movable items pulled toward the leading
// edge of the compaction axis. CompactNone returns the input unchanged apart
// from clearing the transient Moved flags; bounds correction is a separate,
// always-applied step upstream.
//
// With allowOverlap, the obstacle check is skipped entirely: items are moved
// straight to the axis origin and only clamped to the grid bounds.
func Compact(l grid.Layout, t grid.CompactType, cols int, allowOverlap bool) grid.Layout {
	out := l.Clone()
	if t == grid.CompactNone {
		clearMoved(out)
		return out
	}
	if cols < 1 {
		cols = 1
	}

	// Statics are obstacles from the start; every compacted item joins the
	// placed set afterward.
	placed := l.Statics()
	sorted := grid.SortForCompact(l, t)

	for _, item := range sorted {
		if !item.Static {
			if allowOverlap {
				item = pullToOrigin(item, t)
			} else {
				item = settle(placed, item, t, cols)
			}
			placed = append(placed, item)
		}
		item.Moved = false
		out[indexOf(out, item.ID)] = item
	}
	return out
}

// settle moves item toward the leading edge one unit at a time until it
// would collide with a placed item or reach the grid edge, then resolves any
// remaining overlap by placing the item immediately past the obstacle's
// trailing edge.
func settle(placed grid.Layout, item grid.LayoutItem, t grid.CompactType, cols int) grid.LayoutItem {
	if t == grid.CompactVertical {
		// Jump straight below the lowest placed item, then walk up.
		if b := placed.Bottom(); item.Y > b {
			item.Y = b
		}
		for item.Y > 0 {
			probe := item
			probe.Y--
			if _, hit := grid.FirstCollision(placed, probe); hit {
				break
			}
			item = probe
		}
	} else {
		for item.X > 0 {
			probe := item
			probe.X--
			if _, hit := grid.FirstCollision(placed, probe); hit {
				break
			}
			item = probe
		}
	}

	// Walking up/left can still leave the item inside an obstacle when it
	// started overlapping. Push past trailing edges until the box is free.
	for {
		obstacle, hit := grid.FirstCollision(placed, item)
		if !hit {
			break
		}
		if t == grid.CompactHorizontal {
			item.X = obstacle.Right()
			if item.X+item.W > cols {
				// No room left in this row; wrap to the next one and
				// re-settle from the left edge.
				item.X = cols - item.W
				if item.X < 0 {
					item.X = 0
				}
				item.Y++
				for item.X > 0 {
					probe := item
					probe.X--
					if _, inner := grid.FirstCollision(placed, probe); inner {
						break
					}
					item = probe
				}
			}
		} else {
			item.Y = obstacle.Bottom()
		}
	}

	if item.X < 0 {
		item.X = 0
	}
	if item.Y < 0 {
		item.Y = 0
	}
	return item
}

// pullToOrigin implements the allow-overlap variants: the item goes straight
// to the leading edge of the compaction axis, clamped to the grid bounds on
// the other axis.
func pullToOrigin(item grid.LayoutItem, t grid.CompactType) grid.LayoutItem {
	if t == grid.CompactVertical {
		item.Y = 0
		if item.X < 0 {
			item.X = 0
		}
	} else {
		item.X = 0
		if item.Y < 0 {
			item.Y = 0
		}
	}
	return item
}

func clearMoved(l grid.Layout) {
	for i := range l {
		l[i].Moved = false
	}
}

func indexOf(l grid.Layout, id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}
