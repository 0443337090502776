package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/tabledeck/tabledeck-cli/pkg/grid"
)

// CardSlot is a semantic position on a card. Hosts may map slots to
// column ids explicitly; otherwise the column roles decide, with a
// name-based lookup as the last resort.
type CardSlot string

const (
	SlotTitle    CardSlot = "title"
	SlotSubtitle CardSlot = "subtitle"
	SlotBadge    CardSlot = "badge"
	SlotDetail   CardSlot = "detail"
)

// slotColumn resolves which column fills a card slot.
func (m *GridModel) slotColumn(slot CardSlot) (grid.Column, bool) {
	if id, ok := m.opts.CardSlots[slot]; ok {
		return grid.ColumnByID(m.cols, id)
	}

	byRole := func(role grid.ColumnRole) (grid.Column, bool) {
		for _, c := range m.cols {
			if c.Role == role {
				return c, true
			}
		}
		return grid.Column{}, false
	}
	byName := func(names ...string) (grid.Column, bool) {
		for _, n := range names {
			if c, ok := grid.ColumnByID(m.cols, n); ok {
				return c, true
			}
		}
		return grid.Column{}, false
	}

	switch slot {
	case SlotTitle:
		if c, ok := byRole(grid.RoleName); ok {
			return c, true
		}
		return byName("name", "title", "label")
	case SlotSubtitle:
		if c, ok := byRole(grid.RoleEmail); ok {
			return c, true
		}
		return byName("email", "description")
	case SlotBadge:
		if c, ok := byRole(grid.RoleStatus); ok {
			return c, true
		}
		return byName("status", "state")
	default:
		return grid.Column{}, false
	}
}

// renderCards is the narrow-viewport fallback: one card per derived
// row, same derivation output as the grid. Column layout affordances
// do not apply here.
func (m *GridModel) renderCards() string {
	d := m.derive()
	if len(d.Rows) == 0 {
		return EmptyActiveStyle.Render("No records match.")
	}

	titleCol, hasTitle := m.slotColumn(SlotTitle)
	subtitleCol, hasSubtitle := m.slotColumn(SlotSubtitle)
	badgeCol, hasBadge := m.slotColumn(SlotBadge)

	cardWidth := m.width - 6
	if cardWidth < 20 {
		cardWidth = 20
	}

	var cards []string
	for i, r := range d.Rows {
		cards = append(cards, m.renderCard(r, i, cardWidth, titleCol, hasTitle, subtitleCol, hasSubtitle, badgeCol, hasBadge))
	}

	m.viewport.SetContent(strings.Join(cards, "\n"))
	m.syncCardScroll(len(cards))
	return m.viewport.View()
}

func (m *GridModel) renderCard(r grid.Row, index, width int, titleCol grid.Column, hasTitle bool, subtitleCol grid.Column, hasSubtitle bool, badgeCol grid.Column, hasBadge bool) string {
	var b strings.Builder

	title := "Record " + r.Key()
	if hasTitle {
		title = RenderCellPlain(r, titleCol)
	}
	line := CardTitleStyle.Render(title)
	if hasBadge {
		if v, ok := r.Get(badgeCol.FieldKey()); ok && !grid.IsEmptyValue(v) {
			line += "  " + GetStatusBadgeStyle(grid.Stringify(v)).Render(grid.Stringify(v))
		}
	}
	if m.state.Selection[r.Key()] {
		line = CursorStyle.Render("● ") + line
	}
	b.WriteString(line + "\n")

	if hasSubtitle {
		b.WriteString(EmptyInactiveStyle.Render(RenderCellPlain(r, subtitleCol)) + "\n")
	}

	// Remaining visible columns become label/value detail lines.
	used := map[string]bool{}
	if hasTitle {
		used[titleCol.ID] = true
	}
	if hasSubtitle {
		used[subtitleCol.ID] = true
	}
	if hasBadge {
		used[badgeCol.ID] = true
	}
	for _, c := range m.visibleColumns() {
		if used[c.ID] {
			continue
		}
		value := RenderCellPlain(r, c)
		text := fmt.Sprintf("%s: %s", CardLabelStyle.Render(c.Label), value)
		b.WriteString(wordwrap.String(text, width-4) + "\n")
	}

	style := InactiveBorderStyle
	if index == m.rowCursor && m.focus == focusTable {
		style = ActiveBorderStyle
	}
	return style.Width(width).Padding(0, 1).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *GridModel) syncCardScroll(count int) {
	if count == 0 {
		return
	}
	// Cards have variable height; approximate by even division.
	per := 1
	if content := m.viewport.TotalLineCount(); content > 0 && count > 0 {
		per = content / count
		if per < 1 {
			per = 1
		}
	}
	line := m.rowCursor * per
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line+per > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line + per - m.viewport.Height)
	}
}
