package engine

import "github.com/gridrack/gridrack/pkg/grid"

// =============================================================================
// Options
// =============================================================================

// Options carries the ambient policy for a move or resize call.
type Options struct {
	// Cols is the grid column count.
	Cols int

	// CompactType selects the displacement axis: collided items are pushed
	// down for vertical compaction and right for horizontal. CompactNone
	// displaces vertically, matching the compactor's tie-break axis.
	CompactType grid.CompactType

	// PreventCollision rejects moves and resizes whose target box is
	// occupied instead of displacing the occupants.
	PreventCollision bool

	// AllowOverlap places the item at its target and skips displacement
	// entirely; overlapping boxes are left for the host to tolerate.
	AllowOverlap bool
}

func (o Options) cols() int {
	if o.Cols < 1 {
		return 1
	}
	return o.Cols
}

func (o Options) horizontal() bool { return o.CompactType == grid.CompactHorizontal }

// =============================================================================
// Move
// =============================================================================

// Move returns a new layout with the item carrying id placed at (newX, newY).
//
// Static items and unknown ids leave the layout unchanged. newX is clamped
// to [0, cols-w] and newY to ≥ 0 before placement. When PreventCollision is
// set and the target box is occupied by an item that does not allow overlap,
// the move is rejected and the item keeps its prior position.
//
// isUserAction marks moves that originate from a live gesture; for those the
// displacement algorithm first tries to relocate a collided neighbor to the
// near side of the moved item, which keeps drags feeling stable instead of
// shoving everything toward the trailing edge.
func Move(l grid.Layout, id string, newX, newY int, isUserAction bool, opts Options) grid.Layout {
	out := l.Clone()
	idx := indexOf(out, id)
	if idx < 0 || out[idx].Static {
		return out
	}
	clearMoved(out)

	item := out[idx]
	newX = clampInt(newX, 0, opts.cols()-item.W)
	if newY < 0 {
		newY = 0
	}
	// Compare after clamping: a target the grid edge absorbs is a no-op.
	if item.X == newX && item.Y == newY {
		return out
	}

	movingTowardOrigin := (opts.horizontal() && newX < item.X) ||
		(!opts.horizontal() && newY < item.Y)

	out[idx].X = newX
	out[idx].Y = newY
	out[idx].Moved = true

	// Scan candidates in compaction order so nearer items are displaced
	// first; reversed when the drag points toward the leading edge.
	var sorted grid.Layout
	if movingTowardOrigin {
		sorted = grid.SortReversed(out, opts.CompactType)
	} else {
		sorted = grid.SortForCompact(out, opts.CompactType)
	}
	collisions := grid.AllCollisions(sorted, out[idx])

	if len(collisions) > 0 {
		if opts.AllowOverlap {
			return out
		}
		if opts.PreventCollision {
			out[idx].X = item.X
			out[idx].Y = item.Y
			out[idx].Moved = false
			return out
		}
	}

	for _, c := range collisions {
		ci := indexOf(out, c.ID)
		if out[ci].Moved {
			continue
		}
		if out[ci].Static {
			// Statics never move; shove the dragged item past them instead.
			moveAwayFromCollision(out, ci, idx, isUserAction, opts)
		} else {
			moveAwayFromCollision(out, idx, ci, isUserAction, opts)
		}
	}
	return out
}

// moveInPlace is the recursive core of Move operating on the working slice.
// It mirrors Move but mutates out directly so a displacement chain shares one
// visited set.
func moveInPlace(out grid.Layout, idx, newX, newY int, isUserAction bool, opts Options) {
	if out[idx].Static {
		return
	}
	item := out[idx]
	newX = clampInt(newX, 0, opts.cols()-item.W)
	if newY < 0 {
		newY = 0
	}
	// Compare after clamping. A push the grid edge absorbs makes no
	// progress; it must end the chain here or the same collision would
	// recurse forever.
	if item.X == newX && item.Y == newY {
		return
	}

	movingTowardOrigin := (opts.horizontal() && newX < item.X) ||
		(!opts.horizontal() && newY < item.Y)

	out[idx].X = newX
	out[idx].Y = newY
	out[idx].Moved = true

	var sorted grid.Layout
	if movingTowardOrigin {
		sorted = grid.SortReversed(out, opts.CompactType)
	} else {
		sorted = grid.SortForCompact(out, opts.CompactType)
	}

	for _, c := range grid.AllCollisions(sorted, out[idx]) {
		ci := indexOf(out, c.ID)
		if out[ci].Moved {
			continue
		}
		if out[ci].Static {
			moveAwayFromCollision(out, ci, idx, isUserAction, opts)
		} else {
			moveAwayFromCollision(out, idx, ci, isUserAction, opts)
		}
	}
}

// moveAwayFromCollision displaces the item at moveIdx out of the box of the
// item at obstacleIdx, one step along the compaction axis. For user actions
// it first probes the near side of the obstacle, which avoids cascading the
// whole column when there is room above (or left of) the drag.
func moveAwayFromCollision(out grid.Layout, obstacleIdx, moveIdx int, isUserAction bool, opts Options) {
	obstacle := out[obstacleIdx]
	item := out[moveIdx]

	if isUserAction {
		probe := item
		probe.Moved = false
		if opts.horizontal() {
			probe.X = maxInt(obstacle.X-item.W, 0)
		} else {
			probe.Y = maxInt(obstacle.Y-item.H, 0)
		}
		if _, hit := grid.FirstCollision(out, probe); !hit {
			moveInPlace(out, moveIdx, probe.X, probe.Y, false, opts)
			return
		}
	}

	if opts.horizontal() {
		moveInPlace(out, moveIdx, item.X+1, item.Y, false, opts)
	} else {
		moveInPlace(out, moveIdx, item.X, item.Y+1, false, opts)
	}
}

// =============================================================================
// Helpers
// =============================================================================

func indexOf(l grid.Layout, id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}

func clearMoved(l grid.Layout) {
	for i := range l {
		l[i].Moved = false
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
