package engine

import "github.com/gridrack/gridrack/pkg/grid"

// =============================================================================
// Resize
// =============================================================================

// ResizeRequest describes a proposed size change. W and H are the target
// dimensions in grid units. X and Y are optional replacement coordinates
// supplied by the caller when the active handle moves a leading edge (a
// resize anchored at the top or left), so the opposite edge stays fixed.
type ResizeRequest struct {
	W, H int
	X, Y *int
}

// Resize returns a new layout with the item carrying id resized.
//
// The target size is clamped to the item's min/max bounds and to the column
// count before placement. Items newly overlapped by the changed footprint
// are resolved with the same displacement chain as Move. Under
// PreventCollision an occupied target rejects the whole request: both the
// size and any accompanying leading-edge shift revert, since the proposal is
// atomic.
//
// Static items and unknown ids leave the layout unchanged.
func Resize(l grid.Layout, id string, req ResizeRequest, opts Options) grid.Layout {
	out := l.Clone()
	idx := indexOf(out, id)
	if idx < 0 || out[idx].Static {
		return out
	}
	clearMoved(out)

	prior := out[idx]

	w, h := prior.ClampSize(req.W, req.H)
	if w > opts.cols() {
		w = opts.cols()
	}

	x, y := prior.X, prior.Y
	if req.X != nil {
		x = *req.X
	}
	if req.Y != nil {
		y = *req.Y
	}
	x = clampInt(x, 0, opts.cols()-w)
	if y < 0 {
		y = 0
	}

	out[idx].X = x
	out[idx].Y = y
	out[idx].W = w
	out[idx].H = h

	collisions := grid.AllCollisions(grid.SortForCompact(out, opts.CompactType), out[idx])
	if len(collisions) == 0 || opts.AllowOverlap {
		return out
	}

	if opts.PreventCollision || hasStatic(collisions) {
		// Statics cannot be displaced, so growing into one rejects the
		// resize just like PreventCollision does.
		out[idx] = prior
		return out
	}

	out[idx].Moved = true
	for _, c := range collisions {
		ci := indexOf(out, c.ID)
		if out[ci].Moved {
			continue
		}
		moveAwayFromCollision(out, idx, ci, false, opts)
	}
	return out
}

func hasStatic(l grid.Layout) bool {
	for _, it := range l {
		if it.Static {
			return true
		}
	}
	return false
}
