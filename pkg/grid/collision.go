package grid

// =============================================================================
// Collision Detection
// =============================================================================

// Collides reports whether two items overlap. Boxes are half-open intervals
// [X, X+W) × [Y, Y+H), so items that share only an edge do not collide. An
// item never collides with itself, and zero-area items collide with nothing.
func Collides(a, b LayoutItem) bool {
	if a.ID == b.ID {
		return false
	}
	if a.W <= 0 || a.H <= 0 || b.W <= 0 || b.H <= 0 {
		return false
	}
	if a.X+a.W <= b.X || b.X+b.W <= a.X {
		return false
	}
	if a.Y+a.H <= b.Y || b.Y+b.H <= a.Y {
		return false
	}
	return true
}

// FirstCollision scans the layout in order and returns the first item that
// overlaps with item, excluding item itself. The scan order is the layout
// order, which makes collision resolution deterministic.
func FirstCollision(l Layout, item LayoutItem) (LayoutItem, bool) {
	for _, other := range l {
		if Collides(other, item) {
			return other, true
		}
	}
	return LayoutItem{}, false
}

// AllCollisions returns every item in layout order that overlaps with item,
// excluding item itself.
func AllCollisions(l Layout, item LayoutItem) Layout {
	var out Layout
	for _, other := range l {
		if Collides(other, item) {
			out = append(out, other)
		}
	}
	return out
}

// HasOverlaps reports whether any two items in the layout collide. Used by
// tests and by hosts asserting the no-overlap invariant after compaction.
func HasOverlaps(l Layout) bool {
	for i := range l {
		for j := i + 1; j < len(l); j++ {
			if Collides(l[i], l[j]) {
				return true
			}
		}
	}
	return false
}
