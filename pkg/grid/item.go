package grid

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Constants
// =============================================================================

// AppendBottom is the sentinel Y value requesting placement one past the
// current bottom row. Add resolves it before any arithmetic; no algorithm in
// this module ever sees a negative Y.
const AppendBottom = -1

// CompactType selects the axis along which layouts are compacted.
type CompactType string

// Compaction strategies.
const (
	CompactVertical   CompactType = "vertical"
	CompactHorizontal CompactType = "horizontal"
	CompactNone       CompactType = "none"
)

// Valid reports whether t is one of the built-in compaction strategies.
func (t CompactType) Valid() bool {
	switch t {
	case CompactVertical, CompactHorizontal, CompactNone:
		return true
	}
	return false
}

// =============================================================================
// LayoutItem
// =============================================================================

// LayoutItem is a rectangular item on the grid.
//
// The zero value is not valid; use NewItem or normalize with Normalize.
// Static items are immovable and unresizable by every algorithm in this
// module but still act as collision obstacles.
type LayoutItem struct {
	ID string `json:"i" bson:"i"`
	X  int    `json:"x" bson:"x"`
	Y  int    `json:"y" bson:"y"`
	W  int    `json:"w" bson:"w"`
	H  int    `json:"h" bson:"h"`

	// Size bounds. Zero means unbounded (MinW/MinH effectively 1).
	MinW int `json:"minW,omitempty" bson:"minW,omitempty"`
	MinH int `json:"minH,omitempty" bson:"minH,omitempty"`
	MaxW int `json:"maxW,omitempty" bson:"maxW,omitempty"`
	MaxH int `json:"maxH,omitempty" bson:"maxH,omitempty"`

	// Static items never move or resize but remain obstacles.
	Static bool `json:"static,omitempty" bson:"static,omitempty"`

	// Per-item overrides of the ambient drag/resize policy. Nil inherits.
	IsDraggable *bool `json:"isDraggable,omitempty" bson:"isDraggable,omitempty"`
	IsResizable *bool `json:"isResizable,omitempty" bson:"isResizable,omitempty"`

	// ResizeHandles overrides which edges/corners permit resizing, using the
	// compass notation "n", "e", "s", "w", "ne", "se", "sw", "nw".
	ResizeHandles []string `json:"resizeHandles,omitempty" bson:"resizeHandles,omitempty"`

	// Moved is a transient scratch flag, meaningful only within a single
	// move/resize or compaction pass. It is never serialized.
	Moved bool `json:"-" bson:"-"`
}

// NewItem creates an item with normalized geometry.
func NewItem(id string, x, y, w, h int) LayoutItem {
	it := LayoutItem{ID: id, X: x, Y: y, W: w, H: h}
	it.normalizeSize()
	return it
}

// Right returns the exclusive right edge (X+W).
func (it LayoutItem) Right() int { return it.X + it.W }

// Bottom returns the exclusive bottom edge (Y+H).
func (it LayoutItem) Bottom() int { return it.Y + it.H }

// SamePlace reports whether two items share position and size.
func (it LayoutItem) SamePlace(other LayoutItem) bool {
	return it.X == other.X && it.Y == other.Y && it.W == other.W && it.H == other.H
}

// ClampSize clamps w and h to the item's min/max bounds. Unset bounds leave
// the corresponding side unconstrained apart from the w,h ≥ 1 invariant.
func (it LayoutItem) ClampSize(w, h int) (int, int) {
	if it.MinW > 0 && w < it.MinW {
		w = it.MinW
	}
	if it.MaxW > 0 && w > it.MaxW {
		w = it.MaxW
	}
	if it.MinH > 0 && h < it.MinH {
		h = it.MinH
	}
	if it.MaxH > 0 && h > it.MaxH {
		h = it.MaxH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// normalizeSize enforces w,h ≥ 1 and non-negative x. Y may hold the
// AppendBottom sentinel until Add resolves it.
func (it *LayoutItem) normalizeSize() {
	if it.W < 1 {
		it.W = 1
	}
	if it.H < 1 {
		it.H = 1
	}
	if it.X < 0 {
		it.X = 0
	}
	if it.Y < 0 && it.Y != AppendBottom {
		it.Y = 0
	}
}

// =============================================================================
// Layout
// =============================================================================

// Layout is an ordered sequence of items. See the package documentation for
// the ordering contract.
type Layout []LayoutItem

// Clone returns a deep copy of the layout. ResizeHandles slices are copied so
// the clone shares no memory with the original.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	copy(out, l)
	for i := range out {
		if out[i].ResizeHandles != nil {
			out[i].ResizeHandles = append([]string(nil), out[i].ResizeHandles...)
		}
	}
	return out
}

// Item returns the item with the given id and whether it exists.
func (l Layout) Item(id string) (LayoutItem, bool) {
	for _, it := range l {
		if it.ID == id {
			return it, true
		}
	}
	return LayoutItem{}, false
}

// index returns the position of id in the layout, or -1.
func (l Layout) index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}

// Statics returns the static items in layout order.
func (l Layout) Statics() Layout {
	var out Layout
	for _, it := range l {
		if it.Static {
			out = append(out, it)
		}
	}
	return out
}

// Bottom returns the row just past the lowest occupied cell, i.e. the Y at
// which a new item appended at the bottom would be placed. An empty layout
// has bottom 0.
func (l Layout) Bottom() int {
	max := 0
	for _, it := range l {
		if b := it.Bottom(); b > max {
			max = b
		}
	}
	return max
}

// Add returns a new layout with item appended. A Y of AppendBottom is
// resolved to the current bottom row; geometry is normalized per the data
// model invariants. Adding an id that already exists replaces that item in
// place, preserving its order slot.
func (l Layout) Add(item LayoutItem) Layout {
	item.normalizeSize()
	if item.Y == AppendBottom {
		item.Y = l.Bottom()
	}
	out := l.Clone()
	if i := out.index(item.ID); i >= 0 {
		out[i] = item
		return out
	}
	return append(out, item)
}

// Remove returns a new layout without the item carrying id. Unknown ids are
// a no-op.
func (l Layout) Remove(id string) Layout {
	i := l.index(id)
	if i < 0 {
		return l.Clone()
	}
	out := make(Layout, 0, len(l)-1)
	for j, it := range l {
		if j != i {
			out = append(out, it)
		}
	}
	return out
}

// Validate checks the structural invariants that hosts rely on: unique ids
// and positive sizes. Positional invariants are enforced by CorrectBounds
// rather than reported as errors.
func (l Layout) Validate() error {
	seen := make(map[string]struct{}, len(l))
	for _, it := range l {
		if it.ID == "" {
			return fmt.Errorf("layout item with empty id")
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("duplicate item id %q", it.ID)
		}
		seen[it.ID] = struct{}{}
		if it.W < 1 || it.H < 1 {
			return fmt.Errorf("item %q has non-positive size %dx%d", it.ID, it.W, it.H)
		}
	}
	return nil
}

// Equal reports structural equality of two layouts, ignoring the transient
// Moved flag. Used by hosts to detect no-op normalizations.
func (l Layout) Equal(other Layout) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		a, b := l[i], other[i]
		a.Moved, b.Moved = false, false
		if a.ID != b.ID || !a.SamePlace(b) || a.Static != b.Static {
			return false
		}
	}
	return true
}

// =============================================================================
// Serialization
// =============================================================================

// Marshal serializes a layout to pretty-printed JSON.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes a layout from JSON and validates its structure.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}
