package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gridrack/gridrack/pkg/grid"
	"github.com/gridrack/gridrack/pkg/grid/compact"
	"github.com/gridrack/gridrack/pkg/grid/engine"
	"github.com/gridrack/gridrack/pkg/grid/responsive"
	"github.com/gridrack/gridrack/pkg/store"
)

// editCommand creates the edit command, an interactive grid editor for
// stored layout sets.
func (c *CLI) editCommand() *cobra.Command {
	var breakpoint string

	cmd := &cobra.Command{
		Use:   "edit <set>",
		Short: "Interactively rearrange a stored layout set",
		Long: `Edit opens a terminal grid editor for one breakpoint of a stored set.
Items are moved and resized with the same displacement rules the engine
applies everywhere else, so the editor previews exactly what a dashboard
host would show.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd, args[0], breakpoint)
		},
	}

	cmd.Flags().StringVarP(&breakpoint, "breakpoint", "b", "", "breakpoint to edit (default widest stored)")

	return cmd
}

func (c *CLI) runEdit(cmd *cobra.Command, name, breakpoint string) error {
	return c.withStore(cmd, func(st store.Store) error {
		set, err := st.Get(cmd.Context(), name)
		if err != nil {
			return err
		}

		bp, cols, err := editTarget(set, breakpoint)
		if err != nil {
			return err
		}

		model := newEditModel(set, bp, cols)
		final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
		if err != nil {
			return err
		}

		m, ok := final.(editModel)
		if !ok || !m.save {
			if m.dirty {
				printWarning("Changes discarded")
			}
			return nil
		}

		set.Layouts[bp] = m.layout
		if err := st.Save(cmd.Context(), set); err != nil {
			return err
		}
		printSuccess("Saved %q (%s)", name, bp)
		return nil
	})
}

// editTarget resolves the breakpoint to edit. An explicit name must be
// configured on the set; otherwise the widest breakpoint with a stored
// layout wins, falling back to the widest configured one.
func editTarget(set *store.LayoutSet, breakpoint string) (responsive.Breakpoint, int, error) {
	sorted := set.Breakpoints.Sorted()
	if len(sorted) == 0 {
		return "", 0, fmt.Errorf("set %q has no breakpoints", set.Name)
	}

	var bp responsive.Breakpoint
	if breakpoint != "" {
		bp = responsive.Breakpoint(breakpoint)
		if _, ok := set.Breakpoints[bp]; !ok {
			return "", 0, fmt.Errorf("set %q has no breakpoint %q", set.Name, breakpoint)
		}
	} else {
		bp = sorted[len(sorted)-1]
		for i := len(sorted) - 1; i >= 0; i-- {
			if _, ok := set.Layouts[sorted[i]]; ok {
				bp = sorted[i]
				break
			}
		}
	}

	cols, err := responsive.ColsFor(set.Cols, bp)
	if err != nil {
		return "", 0, err
	}
	return bp, cols, nil
}

// =============================================================================
// editModel - Interactive Grid Editor
// =============================================================================

// itemPalette colors the blocks in the editor, cycling by item index.
var itemPalette = []lipgloss.Color{
	colorCyan, colorGreen, colorYellow, colorBlue, colorRed, colorWhite,
}

// editModel is the bubbletea model for the grid editor.
type editModel struct {
	setName string
	bp      responsive.Breakpoint
	cols    int
	layout  grid.Layout

	cursor int  // index of the selected item
	resize bool // arrow keys resize instead of move
	dirty  bool // layout differs from the stored one
	save   bool // persist on exit
	status string
}

// newEditModel builds the editor state for one breakpoint of a set.
func newEditModel(set *store.LayoutSet, bp responsive.Breakpoint, cols int) editModel {
	layout := set.Layouts[bp].Clone()
	layout = compact.Compact(layout, grid.CompactVertical, cols, false)
	return editModel{
		setName: set.Name,
		bp:      bp,
		cols:    cols,
		layout:  layout,
	}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "s":
		if len(m.layout) > 0 {
			m.save = true
		}
		return m, tea.Quit
	case "tab", "n":
		if len(m.layout) > 0 {
			m.cursor = (m.cursor + 1) % len(m.layout)
		}
	case "shift+tab", "p":
		if len(m.layout) > 0 {
			m.cursor = (m.cursor - 1 + len(m.layout)) % len(m.layout)
		}
	case "r":
		m.resize = !m.resize
		if m.resize {
			m.status = "resize mode"
		} else {
			m.status = "move mode"
		}
	case "c":
		m.layout = compact.Compact(m.layout, grid.CompactVertical, m.cols, false)
		m.status = "compacted"
	case "up", "k":
		m = m.nudge(0, -1)
	case "down", "j":
		m = m.nudge(0, 1)
	case "left", "h":
		m = m.nudge(-1, 0)
	case "right", "l":
		m = m.nudge(1, 0)
	}
	return m, nil
}

// nudge moves or grows the selected item by one cell, letting the engine
// displace whatever is in the way.
func (m editModel) nudge(dx, dy int) editModel {
	if len(m.layout) == 0 || m.cursor >= len(m.layout) {
		return m
	}
	item := m.layout[m.cursor]
	opts := engine.Options{Cols: m.cols, CompactType: grid.CompactVertical}

	var next grid.Layout
	if m.resize {
		w, h := item.W+dx, item.H+dy
		if w < 1 || h < 1 {
			return m
		}
		next = engine.Resize(m.layout, item.ID, engine.ResizeRequest{W: w, H: h}, opts)
	} else {
		next = engine.Move(m.layout, item.ID, item.X+dx, item.Y+dy, true, opts)
	}
	next = compact.Compact(next, grid.CompactVertical, m.cols, false)

	if !next.Equal(m.layout) {
		m.dirty = true
		m.status = ""
	}
	m.layout = next
	m.cursor = indexOfItem(m.layout, item.ID)
	return m
}

func indexOfItem(l grid.Layout, id string) int {
	for i, it := range l {
		if it.ID == id {
			return i
		}
	}
	return 0
}

func (m editModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s · %s · %d cols", m.setName, m.bp, m.cols)
	b.WriteString(StyleTitle.Render(title))
	if m.dirty {
		b.WriteString(StyleWarning.Render(" *"))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("tab select  arrows move  r resize  c compact  s save  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	if len(m.layout) > 0 && m.cursor < len(m.layout) {
		it := m.layout[m.cursor]
		mode := "move"
		if m.resize {
			mode = "resize"
		}
		info := fmt.Sprintf("  %s  x=%d y=%d w=%d h=%d  [%s]", it.ID, it.X, it.Y, it.W, it.H, mode)
		b.WriteString(StyleHighlight.Render(info))
	}
	if m.status != "" {
		b.WriteString(StyleDim.Render("  " + m.status))
	}
	b.WriteString("\n")

	return b.String()
}

// renderGrid draws the layout as a character raster, two columns per cell.
func (m editModel) renderGrid() string {
	rows := m.layout.Bottom()
	if rows < 4 {
		rows = 4
	}

	occupant := make(map[[2]int]int)
	for idx, it := range m.layout {
		for y := it.Y; y < it.Bottom(); y++ {
			for x := it.X; x < it.Right(); x++ {
				occupant[[2]int{x, y}] = idx
			}
		}
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		b.WriteString("  ")
		for x := 0; x < m.cols; x++ {
			idx, ok := occupant[[2]int{x, y}]
			if !ok {
				b.WriteString(StyleDim.Render("··"))
				continue
			}
			style := lipgloss.NewStyle().Foreground(itemPalette[idx%len(itemPalette)])
			if idx == m.cursor {
				style = style.Bold(true).Reverse(true)
			}
			if m.layout[idx].Static {
				b.WriteString(style.Render("▒▒"))
			} else {
				b.WriteString(style.Render("██"))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
