package responsive

import (
	"testing"

	"github.com/gridrack/gridrack/pkg/errors"
	"github.com/gridrack/gridrack/pkg/grid"
)

func defaultBreakpoints() Breakpoints {
	return Breakpoints{"lg": 1200, "md": 996, "sm": 768, "xs": 480, "xxs": 0}
}

func defaultCols() Cols {
	return Cols{"lg": 12, "md": 10, "sm": 6, "xs": 4, "xxs": 2}
}

func TestSortedOrdersByWidth(t *testing.T) {
	got := defaultBreakpoints().Sorted()
	want := []Breakpoint{"xxs", "xs", "sm", "md", "lg"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sorted() = %v, want %v", got, want)
		}
	}
}

func TestSortedTieBreakIsName(t *testing.T) {
	b := Breakpoints{"b": 100, "a": 100, "c": 0}
	got := b.Sorted()
	want := []Breakpoint{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sorted() = %v, want %v", got, want)
		}
	}
}

func TestFromWidth(t *testing.T) {
	b := defaultBreakpoints()
	tests := []struct {
		width float64
		want  Breakpoint
	}{
		{1400, "lg"},
		{1200, "lg"}, // at the threshold the breakpoint activates
		{1000, "md"},
		{800, "sm"},
		{500, "xs"},
		{100, "xxs"},
	}
	for _, tt := range tests {
		got, err := FromWidth(b, tt.width)
		if err != nil {
			t.Fatalf("FromWidth(%v) error = %v", tt.width, err)
		}
		if got != tt.want {
			t.Errorf("FromWidth(%v) = %s, want %s", tt.width, got, tt.want)
		}
	}
}

func TestFromWidthBelowAllThresholds(t *testing.T) {
	b := Breakpoints{"sm": 768, "lg": 1200}
	got, err := FromWidth(b, 100)
	if err != nil {
		t.Fatalf("FromWidth() error = %v", err)
	}
	if got != "sm" {
		t.Errorf("FromWidth() = %s, want sm (smallest threshold)", got)
	}
}

func TestFromWidthEmptyTable(t *testing.T) {
	_, err := FromWidth(Breakpoints{}, 800)
	if err == nil {
		t.Fatal("FromWidth() accepted an empty table")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidBreakpoints {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidBreakpoints)
	}
}

func TestColsFor(t *testing.T) {
	cols, err := ColsFor(defaultCols(), "md")
	if err != nil || cols != 10 {
		t.Errorf("ColsFor(md) = %d, %v; want 10", cols, err)
	}
	if _, err := ColsFor(defaultCols(), "xl"); err == nil {
		t.Error("ColsFor() accepted an unknown breakpoint")
	}
	if _, err := ColsFor(Cols{"lg": 0}, "lg"); err == nil {
		t.Error("ColsFor() accepted a zero column count")
	}
}

func TestScaleProportional(t *testing.T) {
	l := grid.Layout{
		grid.NewItem("a", 0, 0, 6, 2),
		grid.NewItem("b", 6, 0, 6, 2),
	}
	out := Scale(l, 12, 10)

	a, _ := out.Item("a")
	b, _ := out.Item("b")
	if a.W != 5 {
		t.Errorf("a.W = %d, want 5", a.W)
	}
	if b.X != 5 || b.W != 5 {
		t.Errorf("b = x:%d w:%d, want 5/5", b.X, b.W)
	}
	// Vertical geometry is independent of the column count.
	if a.H != 2 || a.Y != 0 {
		t.Errorf("vertical geometry changed: %+v", a)
	}
}

func TestScaleClampsWidth(t *testing.T) {
	l := grid.Layout{grid.NewItem("a", 0, 0, 12, 1)}
	out := Scale(l, 12, 2)
	if out[0].W != 2 {
		t.Errorf("a.W = %d, want 2", out[0].W)
	}

	tiny := Scale(grid.Layout{grid.NewItem("a", 0, 0, 1, 1)}, 12, 2)
	if tiny[0].W != 1 {
		t.Errorf("a.W = %d, want floor of 1", tiny[0].W)
	}
}

func TestFindOrGenerateReusesStoredLayout(t *testing.T) {
	stored := grid.Layout{grid.NewItem("a", 0, 4, 2, 2)}
	layouts := Layouts{"sm": stored}

	out := FindOrGenerate(layouts, "sm", "lg", 6, 12, grid.CompactVertical, false)
	a, _ := out.Item("a")
	if a.Y != 0 {
		t.Errorf("stored layout not normalized: a.Y = %d, want 0", a.Y)
	}
	if a.W != 2 {
		t.Errorf("stored layout rescaled: a.W = %d, want 2", a.W)
	}
}

func TestFindOrGenerateDerivesFromPrevious(t *testing.T) {
	layouts := Layouts{
		"lg": grid.Layout{
			grid.NewItem("a", 0, 0, 6, 2),
			grid.NewItem("b", 6, 0, 6, 2),
		},
	}

	out := FindOrGenerate(layouts, "md", "lg", 10, 12, grid.CompactVertical, false)
	if len(out) != 2 {
		t.Fatalf("derived %d items, want 2", len(out))
	}
	a, _ := out.Item("a")
	b, _ := out.Item("b")
	if a.W != 5 || b.W != 5 {
		t.Errorf("widths = %d/%d, want 5/5", a.W, b.W)
	}
	if grid.HasOverlaps(out) {
		t.Error("derived layout has overlaps")
	}
	for _, it := range out {
		if it.Right() > 10 {
			t.Errorf("%s out of bounds after derivation: x=%d w=%d", it.ID, it.X, it.W)
		}
	}
}

func TestFindOrGenerateMissingPrevious(t *testing.T) {
	out := FindOrGenerate(Layouts{}, "sm", "lg", 6, 12, grid.CompactVertical, false)
	if len(out) != 0 {
		t.Errorf("derived %d items from nothing, want 0", len(out))
	}
}

// A full viewport change: resolve the breakpoint, look up its columns, derive
// the layout.
func TestViewportChangeFlow(t *testing.T) {
	layouts := Layouts{
		"lg": grid.Layout{grid.NewItem("a", 0, 0, 6, 2), grid.NewItem("b", 6, 0, 6, 2)},
	}

	bp, err := FromWidth(defaultBreakpoints(), 800)
	if err != nil {
		t.Fatalf("FromWidth: %v", err)
	}
	if bp != "sm" {
		t.Fatalf("breakpoint = %s, want sm", bp)
	}
	cols, err := ColsFor(defaultCols(), bp)
	if err != nil {
		t.Fatalf("ColsFor: %v", err)
	}

	out := FindOrGenerate(layouts, bp, "lg", cols, 12, grid.CompactVertical, false)
	if grid.HasOverlaps(out) {
		t.Error("overlaps after viewport change")
	}
	for _, it := range out {
		if it.Right() > cols {
			t.Errorf("%s exceeds %d columns", it.ID, cols)
		}
	}
}
