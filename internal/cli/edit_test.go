package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gridrack/gridrack/pkg/grid"
	"github.com/gridrack/gridrack/pkg/grid/responsive"
	"github.com/gridrack/gridrack/pkg/store"
)

func editSet(t *testing.T) *store.LayoutSet {
	t.Helper()
	set := store.NewLayoutSet("dash",
		responsive.Breakpoints{"lg": 1200, "sm": 768},
		responsive.Cols{"lg": 12, "sm": 6},
	)
	set.Layouts["lg"] = grid.Layout{
		grid.NewItem("a", 0, 0, 2, 2),
		grid.NewItem("b", 2, 0, 2, 2),
	}
	return set
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m editModel, keys ...string) editModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(editModel)
		if !ok {
			t.Fatalf("Update returned %T, want editModel", next)
		}
	}
	return m
}

func TestEditTarget(t *testing.T) {
	set := editSet(t)

	bp, cols, err := editTarget(set, "")
	if err != nil {
		t.Fatalf("editTarget: %v", err)
	}
	if bp != "lg" || cols != 12 {
		t.Errorf("got %s/%d, want lg/12 (widest stored)", bp, cols)
	}

	bp, cols, err = editTarget(set, "sm")
	if err != nil {
		t.Fatalf("editTarget: %v", err)
	}
	if bp != "sm" || cols != 6 {
		t.Errorf("got %s/%d, want sm/6", bp, cols)
	}

	if _, _, err := editTarget(set, "xl"); err == nil {
		t.Error("editTarget accepted unknown breakpoint")
	}
}

func TestEditModelMoveDisplacesNeighbor(t *testing.T) {
	m := newEditModel(editSet(t), "lg", 12)

	// Move "a" onto "b"; the engine swaps them sideways.
	m = press(t, m, "right", "right")

	if !m.dirty {
		t.Error("move did not mark the model dirty")
	}
	if grid.HasOverlaps(m.layout) {
		t.Error("layout has overlaps after move")
	}
	a, _ := m.layout.Item("a")
	if a.X != 2 {
		t.Errorf("a.X = %d, want 2", a.X)
	}
}

func TestEditModelResizeMode(t *testing.T) {
	m := newEditModel(editSet(t), "lg", 12)

	m = press(t, m, "r", "right", "down")
	if !m.resize {
		t.Error("r did not enable resize mode")
	}

	a, _ := m.layout.Item("a")
	if a.W != 3 || a.H != 3 {
		t.Errorf("a = %dx%d, want 3x3", a.W, a.H)
	}
	if grid.HasOverlaps(m.layout) {
		t.Error("layout has overlaps after resize")
	}
}

func TestEditModelResizeFloorsAtOne(t *testing.T) {
	m := newEditModel(editSet(t), "lg", 12)

	m = press(t, m, "r", "left", "left", "up", "up")
	a, _ := m.layout.Item("a")
	if a.W != 1 || a.H != 1 {
		t.Errorf("a = %dx%d, want 1x1", a.W, a.H)
	}
}

func TestEditModelSelectionCycles(t *testing.T) {
	m := newEditModel(editSet(t), "lg", 12)

	m = press(t, m, "tab")
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	m = press(t, m, "tab")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (wrapped)", m.cursor)
	}
}

func TestEditModelSaveQuits(t *testing.T) {
	m := newEditModel(editSet(t), "lg", 12)

	next, cmd := m.Update(keyMsg("s"))
	m = next.(editModel)
	if !m.save {
		t.Error("s did not request a save")
	}
	if cmd == nil {
		t.Error("s should quit the program")
	}
}

func TestEditModelViewShowsItems(t *testing.T) {
	m := newEditModel(editSet(t), "lg", 12)

	view := m.View()
	if !strings.Contains(view, "dash") {
		t.Error("view missing set name")
	}
	if !strings.Contains(view, "12 cols") {
		t.Error("view missing column count")
	}
}
