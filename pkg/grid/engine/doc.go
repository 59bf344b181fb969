// Package engine computes new layouts from drag and resize intents.
//
// The engine owns the displacement algorithm: when a moved or resized item
// lands on top of others, each collided item is pushed one step further along
// the compaction axis and re-checked, cascading through the layout. The
// transient Moved flag acts as a per-call visited set, so every item is
// displaced at most once per call and the chain terminates within O(items)
// steps even on collision cycles.
//
// The engine's responsibility ends at producing a collision-consistent
// layout; callers pass the result through the compactor afterward to remove
// gaps. Like everything else in this module the entry points are pure: the
// input layout is cloned up front and never mutated.
package engine
