package grid

import "sort"

// =============================================================================
// Compaction Sort Order
// =============================================================================

// SortForCompact returns a copy of the layout ordered for compaction.
// Vertical compaction sorts by (Y, X) ascending, horizontal by (X, Y)
// ascending, and CompactNone preserves the input order. The sort is stable,
// so ties are broken by layout order as required for deterministic packing.
func SortForCompact(l Layout, t CompactType) Layout {
	out := l.Clone()
	switch t {
	case CompactVertical:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Y != out[j].Y {
				return out[i].Y < out[j].Y
			}
			return out[i].X < out[j].X
		})
	case CompactHorizontal:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].X != out[j].X {
				return out[i].X < out[j].X
			}
			return out[i].Y < out[j].Y
		})
	}
	return out
}

// SortReversed returns a copy ordered for compaction, reversed. The move
// engine scans collisions in reverse order when the drag direction points
// toward the leading edge.
func SortReversed(l Layout, t CompactType) Layout {
	sorted := SortForCompact(l, t)
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted
}
