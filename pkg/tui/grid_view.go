package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tabledeck/tabledeck-cli/pkg/grid"
)

// View renders the grid or, below the breakpoint, the card fallback.
func (m *GridModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.search.View())

	switch {
	case m.focus == focusConfirm && m.confirm.Active():
		sections = append(sections, m.confirm.View())
	case m.focus == focusPanel && m.openPanel != nil:
		sections = append(sections, m.openPanel.View())
	case m.focus == focusPicker && len(m.picker) > 0:
		sections = append(sections, m.renderPicker())
	case m.CardMode():
		sections = append(sections, m.renderCards())
	default:
		sections = append(sections, m.renderTable())
	}

	if m.focus == focusEditor && m.editor.Active() {
		sections = append(sections, m.renderEditOverlay())
	}
	if bar := m.renderBulkBar(); bar != "" {
		sections = append(sections, bar)
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// columnGap is the spacing between columns for a density preset.
func columnGap(d grid.Density) string {
	if d == grid.DensityCompact {
		return " "
	}
	return "  "
}

func (m *GridModel) renderTable() string {
	cols := m.visibleColumns()
	if len(cols) == 0 {
		return EmptyInactiveStyle.Render("No visible columns.")
	}

	header := m.renderHeader(cols)
	m.viewport.SetContent(m.buildTableContent(cols))
	m.syncViewportScroll()

	return lipgloss.JoinVertical(lipgloss.Left, "  "+header, m.viewport.View())
}

func (m *GridModel) renderHeader(cols []grid.Column) string {
	gap := columnGap(m.state.Density)
	parts := make([]string, 0, len(cols))
	for i, c := range cols {
		w := m.state.Width(c)
		label := c.Label
		if mark := m.sortMarker(c.ID); mark != "" {
			label += mark
		}
		if len(label) > w {
			label = label[:w]
		}
		cell := fmt.Sprintf("%-*s", w, label)

		style := HeaderStyle
		if m.state.Frozen[c.ID] {
			style = FrozenHeaderStyle
		}
		if i == m.colCursor && m.focus == focusTable {
			style = GetActiveHeaderStyle(true)
		}
		parts = append(parts, style.Render(cell))
	}
	return strings.Join(parts, gap)
}

func (m *GridModel) sortMarker(columnID string) string {
	for i, k := range m.state.Sorting {
		if k.ColumnID != columnID {
			continue
		}
		arrow := "↑"
		if k.Descending {
			arrow = "↓"
		}
		if len(m.state.Sorting) > 1 {
			return fmt.Sprintf(" %s%d", arrow, i+1)
		}
		return " " + arrow
	}
	return ""
}

func (m *GridModel) buildTableContent(cols []grid.Column) string {
	d := m.derive()
	if len(d.Rows) == 0 {
		return EmptyActiveStyle.Render("No records match.")
	}

	var content strings.Builder
	rowIndex := 0
	if d.Groups != nil {
		m.writeGroups(&content, cols, d.Groups, 0, &rowIndex)
	} else {
		for _, r := range d.Rows {
			m.writeRow(&content, cols, r, rowIndex)
			rowIndex++
		}
	}
	return strings.TrimRight(content.String(), "\n")
}

func (m *GridModel) writeGroups(content *strings.Builder, cols []grid.Column, groups []grid.Group, depth int, rowIndex *int) {
	for _, g := range groups {
		label := g.Value
		if label == "" {
			label = "(empty)"
		}
		indent := strings.Repeat("  ", depth)
		content.WriteString(indent + GroupHeaderStyle.Render(fmt.Sprintf("▸ %s (%d)", label, countGroupRows(g))) + "\n")
		if g.Children != nil {
			m.writeGroups(content, cols, g.Children, depth+1, rowIndex)
			continue
		}
		for _, r := range g.Rows {
			m.writeRow(content, cols, r, *rowIndex)
			*rowIndex++
		}
		if depth == 0 {
			content.WriteString("\n")
		}
	}
}

func countGroupRows(g grid.Group) int {
	n := len(g.Rows)
	for _, c := range g.Children {
		n += countGroupRows(c)
	}
	return n
}

func (m *GridModel) writeRow(content *strings.Builder, cols []grid.Column, r grid.Row, index int) {
	gap := columnGap(m.state.Density)

	prefix := "  "
	if index == m.rowCursor && m.focus == focusTable {
		prefix = "▸ "
	}
	marker := " "
	if m.state.Selection[r.Key()] {
		marker = CursorStyle.Render("●")
	}

	cells := make([]string, 0, len(cols))
	for i, c := range cols {
		cell := RenderCell(r, c, m.state.Width(c))
		if index == m.rowCursor && i == m.colCursor && m.focus == focusTable {
			cell = SelectedStyle.Render(RenderCellPlain(r, c))
			cell = padCell(cell, m.state.Width(c))
		}
		cells = append(cells, cell)
	}

	content.WriteString(prefix + marker + " " + strings.Join(cells, gap) + "\n")
	if m.state.Density == grid.DensityComfortable {
		content.WriteString("\n")
	}
}

// syncViewportScroll keeps the cursor row visible, accounting for group
// header lines and comfortable-density spacing.
func (m *GridModel) syncViewportScroll() {
	line := m.cursorLine()
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m *GridModel) cursorLine() int {
	perRow := 1
	if m.state.Density == grid.DensityComfortable {
		perRow = 2
	}
	d := m.derive()
	if d.Groups == nil {
		return m.rowCursor * perRow
	}
	line := 0
	index := 0
	var walk func(groups []grid.Group, depth int) bool
	walk = func(groups []grid.Group, depth int) bool {
		for _, g := range groups {
			line++ // group header
			if g.Children != nil {
				if walk(g.Children, depth+1) {
					return true
				}
				continue
			}
			for range g.Rows {
				if index == m.rowCursor {
					return true
				}
				line += perRow
				index++
			}
			if depth == 0 {
				line++ // blank line between top-level groups
			}
		}
		return false
	}
	walk(d.Groups, 0)
	return line
}

func (m *GridModel) renderPicker() string {
	var b strings.Builder
	b.WriteString(GetActiveHeaderStyle(true).Render("▸ "+m.pickerTitle) + "\n")
	for i, choice := range m.picker {
		if i == m.pickerIdx {
			b.WriteString("▸ " + SelectedStyle.Render(choice))
		} else {
			b.WriteString("  " + NormalStyle.Render(choice))
		}
		if i < len(m.picker)-1 {
			b.WriteString("\n")
		}
	}
	return ActiveBorderStyle.Padding(0, 1).Render(b.String())
}

func (m *GridModel) renderEditOverlay() string {
	col := m.editor.Column()
	var b strings.Builder
	b.WriteString(GetActiveHeaderStyle(true).Render("Edit " + col.Label))
	if col.Type == grid.FieldMultiSelect {
		var badges []string
		for _, tag := range m.editor.Tags() {
			badges = append(badges, NeutralBadgeStyle.Render(tag))
		}
		if len(badges) > 0 {
			b.WriteString("  " + strings.Join(badges, " "))
		}
		b.WriteString("\n" + m.editInput.View())
		b.WriteString("\n" + EmptyInactiveStyle.Render("enter add · backspace remove last · enter on empty commit · esc cancel"))
	} else {
		b.WriteString("\n" + m.editInput.View())
		b.WriteString("\n" + EmptyInactiveStyle.Render("enter commit · esc cancel"))
	}
	return InputStyle.Render(b.String())
}

// renderBulkBar shows the selection count and bulk actions while any
// rows are selected.
func (m *GridModel) renderBulkBar() string {
	n := len(m.state.Selection)
	if n == 0 {
		return ""
	}
	actions := "r assign role · t deactivate · T activate · D delete · x export · esc clear"
	return BulkBarStyle.Render(fmt.Sprintf("%d selected", n)) + "  " + EmptyInactiveStyle.Render(actions)
}

func (m *GridModel) renderFooter() string {
	if m.statusMsg != "" {
		return NormalStyle.Render(m.statusMsg)
	}
	if m.CardMode() {
		return EmptyInactiveStyle.Render("↑/↓ move · space select · e edit · / search · f/s/g panels · q quit")
	}
	return EmptyInactiveStyle.Render("arrows move · space select · e edit · o sort · / search · f/s/g panels · [/] move col · </> resize · p pin · v hide · d density · q quit")
}
