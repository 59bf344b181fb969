package grid

import "testing"

func TestCollides(t *testing.T) {
	tests := []struct {
		name     string
		a, b     LayoutItem
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewItem("a", 0, 0, 2, 2),
			b:        NewItem("b", 1, 1, 2, 2),
			expected: true,
		},
		{
			name:     "identical boxes",
			a:        NewItem("a", 3, 3, 2, 2),
			b:        NewItem("b", 3, 3, 2, 2),
			expected: true,
		},
		{
			name:     "adjacent horizontally",
			a:        NewItem("a", 0, 0, 2, 2),
			b:        NewItem("b", 2, 0, 2, 2),
			expected: false,
		},
		{
			name:     "adjacent vertically",
			a:        NewItem("a", 0, 0, 2, 2),
			b:        NewItem("b", 0, 2, 2, 2),
			expected: false,
		},
		{
			name:     "disjoint",
			a:        NewItem("a", 0, 0, 1, 1),
			b:        NewItem("b", 5, 5, 1, 1),
			expected: false,
		},
		{
			name:     "same id never collides",
			a:        NewItem("a", 0, 0, 2, 2),
			b:        NewItem("a", 0, 0, 2, 2),
			expected: false,
		},
		{
			name:     "zero area never collides",
			a:        LayoutItem{ID: "a", X: 0, Y: 0, W: 0, H: 2},
			b:        NewItem("b", 0, 0, 2, 2),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collides(tt.a, tt.b); got != tt.expected {
				t.Errorf("Collides() = %v, want %v", got, tt.expected)
			}
			// Collision is symmetric for distinct ids.
			if tt.a.ID != tt.b.ID {
				if got := Collides(tt.b, tt.a); got != tt.expected {
					t.Errorf("Collides() reversed = %v, want %v", got, tt.expected)
				}
			}
		})
	}
}

func TestFirstCollision(t *testing.T) {
	layout := Layout{
		NewItem("a", 0, 0, 2, 2),
		NewItem("b", 0, 0, 2, 2),
		NewItem("c", 0, 0, 2, 2),
	}

	probe := NewItem("b", 0, 1, 2, 2)
	hit, ok := FirstCollision(layout, probe)
	if !ok {
		t.Fatal("FirstCollision() found nothing")
	}
	// "a" precedes "c" in layout order; "b" is excluded as self.
	if hit.ID != "a" {
		t.Errorf("FirstCollision() = %s, want a", hit.ID)
	}

	if _, ok := FirstCollision(layout, NewItem("z", 10, 10, 1, 1)); ok {
		t.Error("FirstCollision() reported a hit for a free box")
	}
}

func TestAllCollisions(t *testing.T) {
	layout := Layout{
		NewItem("a", 0, 0, 2, 2),
		NewItem("b", 4, 0, 2, 2),
		NewItem("c", 1, 1, 2, 2),
	}

	hits := AllCollisions(layout, NewItem("probe", 0, 0, 3, 3))
	if len(hits) != 2 {
		t.Fatalf("AllCollisions() = %d hits, want 2", len(hits))
	}
	if hits[0].ID != "a" || hits[1].ID != "c" {
		t.Errorf("AllCollisions() order = [%s %s], want [a c]", hits[0].ID, hits[1].ID)
	}
}

func TestHasOverlaps(t *testing.T) {
	clean := Layout{NewItem("a", 0, 0, 2, 2), NewItem("b", 2, 0, 2, 2)}
	if HasOverlaps(clean) {
		t.Error("HasOverlaps() = true for a clean layout")
	}
	dirty := append(clean.Clone(), NewItem("c", 1, 0, 2, 2))
	if !HasOverlaps(dirty) {
		t.Error("HasOverlaps() = false for an overlapping layout")
	}
}
