// Package compact removes gaps and overlaps from a layout along one axis.
//
// The compactor is a strategy polymorphic over the three grid.CompactType
// values, each with an allow-overlap variant, for six behaviors in total.
// Movable items are processed in compaction sort order (stable, so ties fall
// back to layout order) and pulled toward the leading edge of the compaction
// axis until they rest against a previously placed item or the grid edge.
// Static items are never repositioned but remain obstacles for every item
// placed after them.
//
// Compaction is idempotent: compacting an already-compacted layout returns a
// structurally equal result, which lets hosts invoke it defensively.
package compact
