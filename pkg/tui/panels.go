package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabledeck/tabledeck-cli/pkg/grid"
)

// panelKind selects which view-state slice a panel edits.
type panelKind int

const (
	panelFilter panelKind = iota
	panelSort
	panelGroup
)

func (k panelKind) title() string {
	switch k {
	case panelFilter:
		return "FILTERS"
	case panelSort:
		return "SORT"
	default:
		return "GROUP BY"
	}
}

// condField is the part of a condition the panel cursor sits on.
type condField int

const (
	fieldColumn condField = iota
	fieldOperator
	fieldValue
	fieldDirection
)

// Panel edits one slice of the view state: filter conditions, sort keys
// or grouping columns. Conditions are user-ordered; order is priority
// for sort and nesting depth for grouping.
type Panel struct {
	kind   panelKind
	state  *grid.ViewState
	cols   []grid.Column
	cursor int
	field  condField
	input  textinput.Model
	active bool
	width  int
}

// NewPanel creates a panel bound to a view state.
func NewPanel(kind panelKind, state *grid.ViewState) *Panel {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.CharLimit = 100
	ti.Width = 24
	return &Panel{kind: kind, state: state, input: ti}
}

// SetColumns refreshes the eligible column set.
func (p *Panel) SetColumns(cols []grid.Column) {
	switch p.kind {
	case panelFilter:
		p.cols = grid.FilterableColumns(cols)
	case panelSort:
		p.cols = grid.SortableColumns(cols)
	case panelGroup:
		p.cols = grid.GroupableColumns(cols)
	}
}

func (p *Panel) SetWidth(width int) { p.width = width }

// Open activates the panel.
func (p *Panel) Open() {
	p.active = true
	p.clampCursor()
	p.syncInput()
}

// Close deactivates the panel.
func (p *Panel) Close() {
	p.active = false
	p.input.Blur()
}

// Active reports whether the panel is open.
func (p *Panel) Active() bool { return p.active }

func (p *Panel) length() int {
	switch p.kind {
	case panelFilter:
		return len(p.state.Filters)
	case panelSort:
		return len(p.state.Sorting)
	default:
		return len(p.state.Grouping)
	}
}

func (p *Panel) clampCursor() {
	if n := p.length(); p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.kind != panelFilter && p.field == fieldValue {
		p.field = fieldColumn
	}
	if p.kind == panelGroup {
		p.field = fieldColumn
	}
}

// Update handles key events while the panel is open. Typing goes to the
// value input when a filter value is selected; everything else is
// structural.
func (p *Panel) Update(msg tea.KeyMsg) tea.Cmd {
	if !p.active {
		return nil
	}

	switch msg.String() {
	case "esc":
		p.commitInput()
		p.Close()
		return nil
	case "up":
		p.commitInput()
		if p.cursor > 0 {
			p.cursor--
		}
		p.syncInput()
		return nil
	case "down":
		p.commitInput()
		if p.cursor < p.length()-1 {
			p.cursor++
		}
		p.syncInput()
		return nil
	case "tab":
		p.commitInput()
		p.nextField()
		p.syncInput()
		return nil
	case "shift+tab":
		p.commitInput()
		p.prevField()
		p.syncInput()
		return nil
	case "ctrl+a":
		p.commitInput()
		p.addCondition()
		p.syncInput()
		return nil
	case "ctrl+d":
		p.commitInput()
		p.removeCondition()
		p.syncInput()
		return nil
	case "ctrl+x":
		p.clearAll()
		p.syncInput()
		return nil
	case "ctrl+up":
		p.commitInput()
		p.moveCondition(-1)
		return nil
	case "ctrl+down":
		p.commitInput()
		p.moveCondition(1)
		return nil
	}

	if p.editingValue() {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		p.commitInput()
		return cmd
	}

	switch msg.String() {
	case "left", "h":
		p.cycleField(-1)
	case "right", "l", "enter", " ":
		p.cycleField(1)
	}
	return nil
}

func (p *Panel) editingValue() bool {
	if p.kind != panelFilter || p.field != fieldValue || p.length() == 0 {
		return false
	}
	return p.state.Filters[p.cursor].Operator.NeedsValue()
}

func (p *Panel) nextField() {
	switch p.kind {
	case panelFilter:
		p.field = (p.field + 1) % 3 // column, operator, value
	case panelSort:
		if p.field == fieldColumn {
			p.field = fieldDirection
		} else {
			p.field = fieldColumn
		}
	}
}

func (p *Panel) prevField() {
	switch p.kind {
	case panelFilter:
		p.field = (p.field + 2) % 3
	case panelSort:
		p.nextField()
	}
}

// addCondition appends a condition with the first eligible column and a
// default operator or direction.
func (p *Panel) addCondition() {
	switch p.kind {
	case panelFilter:
		if f, ok := grid.NewFilterCondition(p.cols); ok {
			p.state.SetFilters(append(p.state.Filters, f))
			p.cursor = len(p.state.Filters) - 1
		}
	case panelSort:
		if k, ok := grid.NewSortCondition(p.cols, p.state.Sorting); ok {
			p.state.SetSorting(append(p.state.Sorting, k))
			p.cursor = len(p.state.Sorting) - 1
		}
	case panelGroup:
		if id, ok := grid.NewGroupCondition(p.cols, p.state.Grouping); ok {
			p.state.SetGrouping(append(p.state.Grouping, id))
			p.cursor = len(p.state.Grouping) - 1
		}
	}
	p.clampCursor()
}

func (p *Panel) removeCondition() {
	switch p.kind {
	case panelFilter:
		p.state.SetFilters(grid.RemoveAt(p.state.Filters, p.cursor))
	case panelSort:
		p.state.SetSorting(grid.RemoveAt(p.state.Sorting, p.cursor))
	case panelGroup:
		p.state.SetGrouping(grid.RemoveAt(p.state.Grouping, p.cursor))
	}
	p.clampCursor()
}

func (p *Panel) clearAll() {
	switch p.kind {
	case panelFilter:
		p.state.SetFilters(nil)
	case panelSort:
		p.state.SetSorting(nil)
	case panelGroup:
		p.state.SetGrouping(nil)
	}
	p.cursor = 0
}

func (p *Panel) moveCondition(delta int) {
	i, j := p.cursor, p.cursor+delta
	if i < 0 || j < 0 || j >= p.length() {
		return
	}
	switch p.kind {
	case panelFilter:
		p.state.Filters[i], p.state.Filters[j] = p.state.Filters[j], p.state.Filters[i]
	case panelSort:
		p.state.Sorting[i], p.state.Sorting[j] = p.state.Sorting[j], p.state.Sorting[i]
	case panelGroup:
		p.state.Grouping[i], p.state.Grouping[j] = p.state.Grouping[j], p.state.Grouping[i]
	}
	p.cursor = j
}

// cycleField advances the selected part of the current condition: the
// column among eligible columns, the operator among all operators, or
// the sort direction.
func (p *Panel) cycleField(delta int) {
	if p.length() == 0 || len(p.cols) == 0 {
		return
	}
	switch p.kind {
	case panelFilter:
		f := &p.state.Filters[p.cursor]
		switch p.field {
		case fieldColumn:
			f.ColumnID = p.cycleColumn(f.ColumnID, delta)
		case fieldOperator:
			f.Operator = cycleOperator(f.Operator, delta)
			p.syncInput()
		}
	case panelSort:
		k := &p.state.Sorting[p.cursor]
		switch p.field {
		case fieldColumn:
			k.ColumnID = p.cycleColumn(k.ColumnID, delta)
		case fieldDirection:
			k.Descending = !k.Descending
		}
	case panelGroup:
		p.state.Grouping[p.cursor] = p.cycleColumn(p.state.Grouping[p.cursor], delta)
	}
}

func (p *Panel) cycleColumn(current string, delta int) string {
	idx := 0
	for i, c := range p.cols {
		if c.ID == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(p.cols)) % len(p.cols)
	return p.cols[idx].ID
}

func cycleOperator(current grid.FilterOperator, delta int) grid.FilterOperator {
	idx := 0
	for i, op := range grid.FilterOperators {
		if op == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(grid.FilterOperators)) % len(grid.FilterOperators)
	return grid.FilterOperators[idx]
}

// syncInput loads the value input from the filter under the cursor and
// focuses it when the value field is selected.
func (p *Panel) syncInput() {
	if !p.editingValue() {
		p.input.Blur()
		return
	}
	p.input.SetValue(p.state.Filters[p.cursor].Value)
	p.input.CursorEnd()
	p.input.Focus()
}

// commitInput writes the value input back into the filter under the
// cursor.
func (p *Panel) commitInput() {
	if p.kind != panelFilter || p.cursor >= len(p.state.Filters) {
		return
	}
	if p.field == fieldValue {
		p.state.Filters[p.cursor].Value = p.input.Value()
	}
}

func (p *Panel) columnLabel(id string) string {
	if c, ok := grid.ColumnByID(p.cols, id); ok {
		return c.Label
	}
	return id
}

// View renders the open panel.
func (p *Panel) View() string {
	var b strings.Builder
	b.WriteString(GetActiveHeaderStyle(true).Render("▸ "+p.kind.title()) + "\n")

	if p.length() == 0 {
		b.WriteString(EmptyInactiveStyle.Render("No conditions. Press ctrl+a to add one."))
	}

	for i := 0; i < p.length(); i++ {
		prefix := "  "
		if i == p.cursor {
			prefix = "▸ "
		}
		b.WriteString(prefix + p.renderCondition(i, i == p.cursor))
		if i < p.length()-1 {
			b.WriteString("\n")
		}
	}

	help := "\n" + EmptyInactiveStyle.Render("ctrl+a add · ctrl+d remove · ctrl+x clear · tab field · ←/→ change · ctrl+↑/↓ reorder · esc close")
	b.WriteString(help)

	style := ActiveBorderStyle.Padding(0, 1)
	if p.width > 4 {
		style = style.Width(p.width - 4)
	}
	return style.Render(b.String())
}

func (p *Panel) renderCondition(i int, selected bool) string {
	part := func(text string, f condField) string {
		if selected && p.field == f {
			return SelectedStyle.Render(text)
		}
		return NormalStyle.Render(text)
	}

	switch p.kind {
	case panelFilter:
		f := p.state.Filters[i]
		segs := []string{
			part(p.columnLabel(f.ColumnID), fieldColumn),
			part(string(f.Operator), fieldOperator),
		}
		if f.Operator.NeedsValue() {
			value := f.Value
			if selected && p.field == fieldValue {
				value = p.input.View()
			} else if value == "" {
				value = "(empty)"
			}
			segs = append(segs, part(value, fieldValue))
		}
		return strings.Join(segs, "  ")

	case panelSort:
		k := p.state.Sorting[i]
		dir := "ascending"
		if k.Descending {
			dir = "descending"
		}
		priority := EmptyInactiveStyle.Render(fmt.Sprintf("%d.", i+1))
		return priority + " " + part(p.columnLabel(k.ColumnID), fieldColumn) + "  " + part(dir, fieldDirection)

	default:
		depth := strings.Repeat("  ", i)
		return depth + part(p.columnLabel(p.state.Grouping[i]), fieldColumn)
	}
}
