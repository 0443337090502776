package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabledeck/tabledeck-cli/pkg/grid"
)

func testColumns() []grid.Column {
	return []grid.Column{
		{ID: "name", Label: "Name", Type: grid.FieldText, Role: grid.RoleName, Sortable: true, Filterable: true, Resizable: true, Editable: true},
		{ID: "email", Label: "Email", Type: grid.FieldEmail, Role: grid.RoleEmail, Sortable: true, Filterable: true, Resizable: true, Editable: true},
		{ID: "status", Label: "Status", Type: grid.FieldSelect, Role: grid.RoleStatus, Options: []string{"Active", "Inactive"}, Sortable: true, Filterable: true, Groupable: true, Editable: true},
		{ID: "role", Label: "Role", Type: grid.FieldSelect, Role: grid.RoleRole, Options: []string{"Admin", "Member"}, Sortable: true, Filterable: true, Groupable: true, Editable: true},
	}
}

func testRows() []grid.Row {
	return []grid.Row{
		grid.MapRow{ID: "u1", Fields: map[string]any{"name": "Alice", "email": "alice@example.com", "status": "Active", "role": "Admin"}},
		grid.MapRow{ID: "u2", Fields: map[string]any{"name": "Bob", "email": "bob@example.com", "status": "Inactive", "role": "Member"}},
		grid.MapRow{ID: "u3", Fields: map[string]any{"name": "Carol", "email": "carol@example.com", "status": "Active", "role": "Member"}},
	}
}

func newTestModel(t *testing.T, opts Options) *GridModel {
	t.Helper()
	m := NewGridModel(testRows(), testColumns(), Callbacks{}, opts)
	t.Cleanup(m.Close)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *GridModel, keys ...string) {
	for _, k := range keys {
		m.Update(key(k))
	}
}

func derivedKeys(m *GridModel) []string {
	d := m.derive()
	keys := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		keys[i] = r.Key()
	}
	return keys
}

func TestCardModeBreakpoint(t *testing.T) {
	m := newTestModel(t, Options{Breakpoint: 80})

	if m.CardMode() {
		t.Error("card mode before any size is set")
	}

	m.SetSize(50, 30)
	if !m.CardMode() {
		t.Error("width 50 under breakpoint 80 should use cards")
	}

	m.SetSize(120, 30)
	if m.CardMode() {
		t.Error("width 120 over breakpoint 80 should use the grid")
	}
}

func TestDefaultBreakpoint(t *testing.T) {
	m := newTestModel(t, Options{})
	m.SetSize(DefaultBreakpoint-1, 30)
	if !m.CardMode() {
		t.Error("width just under the default breakpoint should use cards")
	}
	m.SetSize(DefaultBreakpoint, 30)
	if m.CardMode() {
		t.Error("width at the default breakpoint should use the grid")
	}
}

// Switching presentation must not change what rows are shown: both
// render the same derived sequence.
func TestPresentationSwitchKeepsDerivedRows(t *testing.T) {
	m := newTestModel(t, Options{Breakpoint: 80})
	m.state.SetSorting([]grid.SortKey{{ColumnID: "name", Descending: true}})

	m.SetSize(50, 30)
	narrow := derivedKeys(m)
	if out := m.View(); !containsVisible(out, "Carol") {
		t.Errorf("card view missing row content:\n%s", stripANSI(out))
	}

	m.SetSize(120, 30)
	wide := derivedKeys(m)
	if out := m.View(); !containsVisible(out, "Carol") {
		t.Errorf("grid view missing row content:\n%s", stripANSI(out))
	}

	if len(narrow) != len(wide) {
		t.Fatalf("row counts differ: %d vs %d", len(narrow), len(wide))
	}
	for i := range narrow {
		if narrow[i] != wide[i] {
			t.Errorf("row %d differs: %s vs %s", i, narrow[i], wide[i])
		}
	}
	if wide[0] != "u3" {
		t.Errorf("descending name sort should put Carol first, got %v", wide)
	}
}

func TestDeriveMemoizesUntilInputsChange(t *testing.T) {
	m := newTestModel(t, Options{})

	d1 := m.derive()
	d2 := m.derive()
	if len(d1.Rows) == 0 || &d1.Rows[0] != &d2.Rows[0] {
		t.Error("repeated derive with unchanged inputs should return the cached result")
	}

	m.state.SetSearch("alice")
	d3 := m.derive()
	if len(d3.Rows) != 1 || d3.Rows[0].Key() != "u1" {
		t.Errorf("search change not picked up: %v", derivedKeys(m))
	}

	m.state.SetSearch("")
	m.SetRows(testRows()[:2])
	if got := len(m.derive().Rows); got != 2 {
		t.Errorf("row replacement not picked up, derived %d rows", got)
	}
}

func TestNavigationAndSelectionKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	m.SetSize(120, 30)

	press(m, "j", "j", "k")
	if m.rowCursor != 1 {
		t.Errorf("rowCursor = %d after j j k", m.rowCursor)
	}

	press(m, " ")
	if !m.state.Selection["u2"] {
		t.Error("space should select the cursor row")
	}
	press(m, " ")
	if m.state.Selection["u2"] {
		t.Error("space again should deselect")
	}

	press(m, "a")
	if len(m.state.Selection) != 3 {
		t.Errorf("select all selected %d rows", len(m.state.Selection))
	}
	press(m, "a")
	if len(m.state.Selection) != 0 {
		t.Error("select all on a full selection should clear it")
	}

	press(m, " ", "esc")
	if len(m.state.Selection) != 0 {
		t.Error("esc should clear the selection")
	}
}

func TestSortKeyCyclesCurrentColumn(t *testing.T) {
	m := newTestModel(t, Options{})
	m.SetSize(120, 30)

	press(m, "o")
	if len(m.state.Sorting) != 1 || m.state.Sorting[0].ColumnID != "name" || m.state.Sorting[0].Descending {
		t.Errorf("first press should sort name ascending, got %+v", m.state.Sorting)
	}
	press(m, "o")
	if len(m.state.Sorting) != 1 || !m.state.Sorting[0].Descending {
		t.Errorf("second press should flip to descending, got %+v", m.state.Sorting)
	}
	press(m, "o")
	if len(m.state.Sorting) != 0 {
		t.Errorf("third press should clear the sort, got %+v", m.state.Sorting)
	}
}

func TestColumnLayoutKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	m.SetSize(120, 30)

	w := m.state.Width(testColumns()[0])
	press(m, ">")
	if got := m.state.Width(testColumns()[0]); got != w+2 {
		t.Errorf("resize wider: width %d, want %d", got, w+2)
	}
	press(m, "<")
	if got := m.state.Width(testColumns()[0]); got != w {
		t.Errorf("resize back: width %d, want %d", got, w)
	}

	press(m, "]")
	if got := m.state.Order; got[0] != "email" || got[1] != "name" {
		t.Errorf("move right: order %v", got)
	}
	if m.colCursor != 1 {
		t.Errorf("cursor should follow the moved column, got %d", m.colCursor)
	}
	press(m, "[")
	if got := m.state.Order; got[0] != "name" {
		t.Errorf("move left: order %v", got)
	}

	press(m, "p")
	if !m.state.Frozen["name"] {
		t.Error("p should freeze the current column")
	}
	press(m, "p")
	if m.state.Frozen["name"] {
		t.Error("p again should unfreeze")
	}

	press(m, "v")
	if m.state.Visibility["name"] {
		t.Error("v should hide the current column")
	}
	press(m, "V")
	if !m.state.Visibility["name"] {
		t.Error("V should restore every column")
	}
}

func TestCardModeDisablesColumnKeys(t *testing.T) {
	m := newTestModel(t, Options{Breakpoint: 80})
	m.SetSize(50, 30)

	press(m, "l")
	if m.colCursor != 0 {
		t.Error("column cursor should not move in card mode")
	}
	press(m, "v")
	if !m.state.Visibility["name"] {
		t.Error("hide should be inert in card mode")
	}
	w := m.state.Width(testColumns()[0])
	press(m, ">")
	if got := m.state.Width(testColumns()[0]); got != w {
		t.Error("resize should be inert in card mode")
	}
}

func TestEditFlowCommitsThroughCallback(t *testing.T) {
	var gotRow, gotCol string
	var gotValue any
	m := NewGridModel(testRows(), testColumns(), Callbacks{
		OnCellEdit: func(row grid.Row, columnID string, value any) error {
			gotRow, gotCol, gotValue = row.Key(), columnID, value
			return nil
		},
	}, Options{})
	t.Cleanup(m.Close)
	m.SetSize(120, 30)

	press(m, "e")
	if m.focus != focusEditor {
		t.Fatal("e on a text cell should open the edit input")
	}
	m.editInput.SetValue("Alicia")
	press(m, "enter")

	if gotRow != "u1" || gotCol != "name" || gotValue != "Alicia" {
		t.Errorf("commit = (%s, %s, %v)", gotRow, gotCol, gotValue)
	}
	if m.focus != focusTable {
		t.Error("focus should return to the table after commit")
	}
}

func TestEditEscapeCancels(t *testing.T) {
	called := false
	m := NewGridModel(testRows(), testColumns(), Callbacks{
		OnCellEdit: func(grid.Row, string, any) error {
			called = true
			return nil
		},
	}, Options{})
	t.Cleanup(m.Close)
	m.SetSize(120, 30)

	press(m, "e")
	m.editInput.SetValue("discarded")
	press(m, "esc")

	if called {
		t.Error("escape must not commit")
	}
	if m.editor.Active() {
		t.Error("editor should be inactive after cancel")
	}
}

func TestSelectCellOpensPicker(t *testing.T) {
	var gotValue any
	m := NewGridModel(testRows(), testColumns(), Callbacks{
		OnCellEdit: func(_ grid.Row, _ string, value any) error {
			gotValue = value
			return nil
		},
	}, Options{})
	t.Cleanup(m.Close)
	m.SetSize(120, 30)

	press(m, "l", "l") // move to the status column
	press(m, "e")
	if m.focus != focusPicker {
		t.Fatal("editing a select cell should open the option picker")
	}
	press(m, "j", "enter") // second option
	if gotValue != "Inactive" {
		t.Errorf("picker commit = %v, want Inactive", gotValue)
	}
}

func TestBulkActionUsesFullSelection(t *testing.T) {
	var gotAction string
	var gotKeys []string
	m := NewGridModel(testRows(), testColumns(), Callbacks{
		OnBulkAction: func(action string, rows []grid.Row, args ...string) error {
			gotAction = action
			for _, r := range rows {
				gotKeys = append(gotKeys, r.Key())
			}
			return nil
		},
	}, Options{})
	t.Cleanup(m.Close)
	m.SetSize(120, 30)

	// Select u1 and u3, then filter u3 out of view. The action must
	// still reach both selected records.
	press(m, " ", "j", "j", " ")
	m.state.SetFilters([]grid.Filter{{ColumnID: "name", Operator: grid.OpNotContains, Value: "carol"}})

	press(m, "t")
	if gotAction != "deactivate" {
		t.Errorf("action = %q", gotAction)
	}
	if len(gotKeys) != 2 || gotKeys[0] != "u1" || gotKeys[1] != "u3" {
		t.Errorf("acted on %v, want [u1 u3]", gotKeys)
	}
}

func TestBulkBarVisibility(t *testing.T) {
	m := newTestModel(t, Options{})
	m.SetSize(120, 30)

	if bar := m.renderBulkBar(); bar != "" {
		t.Error("bulk bar should be hidden with no selection")
	}
	press(m, " ")
	if bar := m.renderBulkBar(); !containsVisible(bar, "1 selected") {
		t.Errorf("bulk bar = %q", stripANSI(bar))
	}
}

func TestSlotColumnRoleMapping(t *testing.T) {
	m := newTestModel(t, Options{})

	tests := []struct {
		slot CardSlot
		want string
	}{
		{SlotTitle, "name"},
		{SlotSubtitle, "email"},
		{SlotBadge, "status"},
	}
	for _, tt := range tests {
		col, ok := m.slotColumn(tt.slot)
		if !ok || col.ID != tt.want {
			t.Errorf("slot %s resolved to %q, want %q", tt.slot, col.ID, tt.want)
		}
	}
	if _, ok := m.slotColumn(SlotDetail); ok {
		t.Error("detail slot has no default mapping")
	}
}

func TestSlotColumnExplicitOverride(t *testing.T) {
	m := newTestModel(t, Options{
		CardSlots: map[CardSlot]string{SlotTitle: "email"},
	})
	col, ok := m.slotColumn(SlotTitle)
	if !ok || col.ID != "email" {
		t.Errorf("explicit slot mapping resolved to %q", col.ID)
	}
}

func TestSlotColumnNameFallback(t *testing.T) {
	cols := []grid.Column{
		{ID: "title", Label: "Title", Type: grid.FieldText},
		{ID: "state", Label: "State", Type: grid.FieldSelect},
	}
	m := NewGridModel(nil, cols, Callbacks{}, Options{})
	t.Cleanup(m.Close)

	if col, ok := m.slotColumn(SlotTitle); !ok || col.ID != "title" {
		t.Errorf("title fallback resolved to %q", col.ID)
	}
	if col, ok := m.slotColumn(SlotBadge); !ok || col.ID != "state" {
		t.Errorf("badge fallback resolved to %q", col.ID)
	}
	if _, ok := m.slotColumn(SlotSubtitle); ok {
		t.Error("no subtitle candidate should resolve")
	}
}

func TestGroupedTableRendersHeaders(t *testing.T) {
	m := newTestModel(t, Options{})
	m.SetSize(120, 30)
	m.state.SetGrouping([]string{"status"})

	out := m.View()
	if !containsVisible(out, "Active (2)") || !containsVisible(out, "Inactive (1)") {
		t.Errorf("group headers missing:\n%s", stripANSI(out))
	}
}

func TestSortMarker(t *testing.T) {
	m := newTestModel(t, Options{})

	m.state.SetSorting([]grid.SortKey{{ColumnID: "name"}})
	if got := m.sortMarker("name"); got != " ↑" {
		t.Errorf("single ascending marker = %q", got)
	}
	m.state.SetSorting([]grid.SortKey{
		{ColumnID: "name", Descending: true},
		{ColumnID: "email"},
	})
	if got := m.sortMarker("name"); got != " ↓1" {
		t.Errorf("multi sort primary marker = %q", got)
	}
	if got := m.sortMarker("email"); got != " ↑2" {
		t.Errorf("multi sort secondary marker = %q", got)
	}
	if got := m.sortMarker("status"); got != "" {
		t.Errorf("unsorted column marker = %q", got)
	}
}
