package grid

// =============================================================================
// Bounds Correction
// =============================================================================

// Bounds describes the grid extent used for bounds correction.
type Bounds struct {
	Cols int
}

// CorrectBounds returns a new layout in which every item fits the column
// range [0, cols):
//
//   - W is clamped to [1, cols] and H to ≥ 1
//   - X is clamped to [0, cols-W]; when both X and W are out of range the
//     position shrinks before the width does
//   - a negative Y (other than a stray AppendBottom sentinel, which is
//     treated the same way) is clamped to 0
//
// Static items are corrected against grid bounds exactly like movable ones,
// but never against occupancy: bounds correction does not relocate any item
// because of collisions. CorrectBounds is idempotent, so hosts can call it
// defensively on already-normalized layouts.
func CorrectBounds(l Layout, b Bounds) Layout {
	cols := b.Cols
	if cols < 1 {
		cols = 1
	}
	out := l.Clone()
	for i := range out {
		it := &out[i]
		if it.W < 1 {
			it.W = 1
		}
		if it.H < 1 {
			it.H = 1
		}
		if it.W > cols {
			it.W = cols
		}
		if it.X+it.W > cols {
			it.X = cols - it.W
		}
		if it.X < 0 {
			it.X = 0
		}
		if it.Y < 0 {
			it.Y = 0
		}
	}
	return out
}
