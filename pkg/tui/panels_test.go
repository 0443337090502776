package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabledeck/tabledeck-cli/pkg/grid"
)

func ctrlKey(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func newTestPanel(kind panelKind) (*Panel, *grid.ViewState) {
	state := grid.NewViewState()
	state.SyncColumns(testColumns())
	p := NewPanel(kind, state)
	p.SetColumns(testColumns())
	p.Open()
	return p, state
}

func TestFilterPanelAddEditRemove(t *testing.T) {
	p, state := newTestPanel(panelFilter)

	p.Update(ctrlKey(tea.KeyCtrlA))
	if len(state.Filters) != 1 {
		t.Fatalf("ctrl+a added %d filters", len(state.Filters))
	}
	f := state.Filters[0]
	if f.ColumnID != "name" || f.Operator != grid.OpContains {
		t.Errorf("default filter = %+v", f)
	}

	// Tab twice onto the value field and type.
	p.Update(ctrlKey(tea.KeyTab))
	p.Update(ctrlKey(tea.KeyTab))
	if !p.editingValue() {
		t.Fatal("value field of a contains filter should take input")
	}
	for _, r := range "ali" {
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if state.Filters[0].Value != "ali" {
		t.Errorf("typed value = %q", state.Filters[0].Value)
	}

	p.Update(ctrlKey(tea.KeyCtrlD))
	if len(state.Filters) != 0 {
		t.Error("ctrl+d should remove the condition")
	}
}

func TestFilterPanelOperatorCycleStopsValueInput(t *testing.T) {
	p, state := newTestPanel(panelFilter)
	p.Update(ctrlKey(tea.KeyCtrlA))

	// Move to the operator field and cycle until isEmpty.
	p.Update(ctrlKey(tea.KeyTab))
	for state.Filters[0].Operator != grid.OpIsEmpty {
		p.Update(key("l"))
	}

	p.Update(ctrlKey(tea.KeyTab)) // value field
	if p.editingValue() {
		t.Error("isEmpty needs no value, input should stay inert")
	}
}

func TestSortPanelDirectionAndReorder(t *testing.T) {
	p, state := newTestPanel(panelSort)

	p.Update(ctrlKey(tea.KeyCtrlA))
	p.Update(ctrlKey(tea.KeyCtrlA))
	if len(state.Sorting) != 2 {
		t.Fatalf("added %d sort keys", len(state.Sorting))
	}
	if state.Sorting[0].ColumnID == state.Sorting[1].ColumnID {
		t.Error("second key should pick an unused column")
	}

	// Cursor sits on the newest key. Flip its direction.
	p.Update(ctrlKey(tea.KeyTab))
	p.Update(key("l"))
	if !state.Sorting[1].Descending {
		t.Error("direction toggle did not flip to descending")
	}

	// Raise its priority.
	first := state.Sorting[1].ColumnID
	p.Update(ctrlKey(tea.KeyCtrlUp))
	if state.Sorting[0].ColumnID != first {
		t.Errorf("reorder did not move the key, got %+v", state.Sorting)
	}
	if p.cursor != 0 {
		t.Errorf("cursor should follow the moved key, got %d", p.cursor)
	}
}

func TestGroupPanelAddAndClear(t *testing.T) {
	p, state := newTestPanel(panelGroup)

	p.Update(ctrlKey(tea.KeyCtrlA))
	p.Update(ctrlKey(tea.KeyCtrlA))
	if len(state.Grouping) != 2 {
		t.Fatalf("added %d grouping columns", len(state.Grouping))
	}
	if state.Grouping[0] != "status" || state.Grouping[1] != "role" {
		t.Errorf("grouping = %v, want groupable columns in order", state.Grouping)
	}

	p.Update(ctrlKey(tea.KeyCtrlX))
	if len(state.Grouping) != 0 {
		t.Error("ctrl+x should clear every condition")
	}
}

func TestPanelEscCloses(t *testing.T) {
	p, _ := newTestPanel(panelFilter)
	if !p.Active() {
		t.Fatal("panel should be active after Open")
	}
	p.Update(key("esc"))
	if p.Active() {
		t.Error("esc should close the panel")
	}
}
