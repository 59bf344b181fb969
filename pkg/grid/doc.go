// Package grid defines the core data model for GridRack layouts.
//
// A Layout is an ordered sequence of LayoutItem values positioned on a
// discrete column/row grid. The order is insertion order, not spatial order,
// and it is load-bearing: it is the tie-break order for collision resolution
// and the stability anchor for compaction sorting.
//
// All operations in this package (and in the subpackages compact, engine,
// position, constraint and responsive) are pure: inputs are never mutated and
// a new Layout is always returned, so callers can retain prior snapshots for
// diffing, animation, or rollback.
//
// # Coordinates
//
// Item geometry is expressed in grid units. An item occupies the half-open
// box [X, X+W) × [Y, Y+H), so items that merely share an edge do not collide.
// Width and height are at least 1; X and Y are non-negative, with the single
// exception of the AppendBottom sentinel for Y, which Add resolves to one
// past the current bottom row before any arithmetic.
//
// # Serialization
//
// LayoutItem uses the conventional short field names (i, x, y, w, h) in JSON
// so hosts can persist and round-trip layouts verbatim. BSON tags mirror the
// JSON tags for the Mongo-backed store.
package grid
