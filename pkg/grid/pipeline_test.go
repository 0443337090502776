package grid

import (
	"fmt"
	"testing"
	"time"
)

func testColumns() []Column {
	return []Column{
		{ID: "name", Label: "Name", Type: FieldText, Sortable: true, Filterable: true},
		{ID: "email", Label: "Email", Type: FieldEmail, Sortable: true, Filterable: true},
		{ID: "status", Label: "Status", Type: FieldSelect, Sortable: true, Filterable: true, Groupable: true},
		{ID: "role", Label: "Role", Type: FieldSelect, Sortable: true, Filterable: true, Groupable: true},
		{ID: "age", Label: "Age", Type: FieldText, Sortable: true, Filterable: true},
		{ID: "joined", Label: "Joined", Type: FieldDate, Sortable: true, Filterable: true},
	}
}

func row(id string, fields map[string]any) Row {
	return MapRow{ID: id, Fields: fields}
}

func keysOf(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key()
	}
	return out
}

func sameKeys(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMatchesFilter(t *testing.T) {
	cols := testColumns()
	r := row("1", map[string]any{
		"name":   "Ada Smith",
		"email":  "ada@example.com",
		"status": "Active",
		"role":   "",
	})

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"equals case-insensitive", Filter{"status", OpEquals, "active"}, true},
		{"equals mismatch", Filter{"status", OpEquals, "inactive"}, false},
		{"notEquals", Filter{"status", OpNotEquals, "inactive"}, true},
		{"contains", Filter{"name", OpContains, "smith"}, true},
		{"contains mismatch", Filter{"name", OpContains, "jones"}, false},
		{"notContains", Filter{"name", OpNotContains, "jones"}, true},
		{"startsWith", Filter{"email", OpStartsWith, "ADA"}, true},
		{"startsWith mismatch", Filter{"email", OpStartsWith, "bob"}, false},
		{"endsWith", Filter{"email", OpEndsWith, ".COM"}, true},
		{"isEmpty ignores value", Filter{"role", OpIsEmpty, "whatever"}, true},
		{"isEmpty on non-empty", Filter{"name", OpIsEmpty, ""}, false},
		{"isNotEmpty ignores value", Filter{"name", OpIsNotEmpty, "x"}, true},
		{"isNotEmpty on empty", Filter{"role", OpIsNotEmpty, ""}, false},
		{"unknown column passes", Filter{"missing", OpEquals, "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesFilter(r, cols, tt.filter); got != tt.want {
				t.Errorf("MatchesFilter(%v) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestDeriveGlobalSearch(t *testing.T) {
	cols := testColumns()
	rows := []Row{
		row("1", map[string]any{"name": "Ada Smith", "status": "Active"}),
		row("2", map[string]any{"name": "Bob Jones", "status": "Active"}),
		row("3", map[string]any{"name": "Cleo Smith", "status": "Inactive"}),
	}

	d := Derive(rows, cols, Query{Search: "SMITH"})
	if got := keysOf(d.Rows); !sameKeys(got, []string{"1", "3"}) {
		t.Errorf("search derived %v, want [1 3]", got)
	}
}

func TestDeriveFilterAndSearchScenario(t *testing.T) {
	cols := testColumns()
	var rows []Row
	for i := 0; i < 100; i++ {
		status := "Active"
		if i%2 == 1 {
			status = "Suspended"
		}
		name := fmt.Sprintf("User %03d", i)
		if i%5 == 0 {
			name = fmt.Sprintf("Smith %03d", i)
		}
		rows = append(rows, row(fmt.Sprintf("u%d", i), map[string]any{
			"name":   name,
			"status": status,
		}))
	}

	d := Derive(rows, cols, Query{
		Search:  "smith",
		Filters: []Filter{{ColumnID: "status", Operator: OpEquals, Value: "active"}},
	})

	for _, r := range d.Rows {
		if FieldString(r, "status") != "Active" {
			t.Errorf("row %s has status %q, want Active", r.Key(), FieldString(r, "status"))
		}
	}
	// Multiples of 10 are Smiths with even index, i.e. Active.
	if len(d.Rows) != 10 {
		t.Errorf("derived %d rows, want 10", len(d.Rows))
	}
}

func TestSortEmptyIsIdentity(t *testing.T) {
	cols := testColumns()
	rows := []Row{
		row("3", map[string]any{"name": "Cleo"}),
		row("1", map[string]any{"name": "Ada"}),
		row("2", map[string]any{"name": "Bob"}),
	}

	d := Derive(rows, cols, Query{})
	if got := keysOf(d.Rows); !sameKeys(got, []string{"3", "1", "2"}) {
		t.Errorf("empty sort reordered rows: %v", got)
	}
}

func TestSortMultiKeyTieBreak(t *testing.T) {
	cols := []Column{
		{ID: "a", Sortable: true},
		{ID: "b", Sortable: true},
	}
	rows := []Row{
		row("first", map[string]any{"a": 1, "b": 2}),
		row("second", map[string]any{"a": 1, "b": 1}),
	}

	d := Derive(rows, cols, Query{Sorting: []SortKey{
		{ColumnID: "a"},
		{ColumnID: "b"},
	}})
	if got := keysOf(d.Rows); !sameKeys(got, []string{"second", "first"}) {
		t.Errorf("tie-break order = %v, want [second first]", got)
	}
}

func TestSortNullOrdering(t *testing.T) {
	cols := testColumns()
	rows := []Row{
		row("null1", map[string]any{"name": nil}),
		row("b", map[string]any{"name": "Bob"}),
		row("null2", map[string]any{}),
		row("a", map[string]any{"name": "Ada"}),
	}

	tests := []struct {
		name string
		desc bool
		want []string
	}{
		{"ascending puts nulls last", false, []string{"a", "b", "null1", "null2"}},
		{"descending puts nulls first", true, []string{"null1", "null2", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Derive(rows, cols, Query{Sorting: []SortKey{{ColumnID: "name", Descending: tt.desc}}})
			if got := keysOf(d.Rows); !sameKeys(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortNumericAndDate(t *testing.T) {
	cols := testColumns()
	rows := []Row{
		row("old", map[string]any{"age": 30, "joined": time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}),
		row("young", map[string]any{"age": 9, "joined": time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}),
	}

	d := Derive(rows, cols, Query{Sorting: []SortKey{{ColumnID: "age"}}})
	if got := keysOf(d.Rows); !sameKeys(got, []string{"young", "old"}) {
		t.Errorf("numeric sort = %v, want [young old] (9 before 30)", got)
	}

	d = Derive(rows, cols, Query{Sorting: []SortKey{{ColumnID: "joined", Descending: true}}})
	if got := keysOf(d.Rows); !sameKeys(got, []string{"young", "old"}) {
		t.Errorf("date desc sort = %v, want [young old]", got)
	}
}

func TestSortIsStable(t *testing.T) {
	cols := testColumns()
	var rows []Row
	for i := 0; i < 20; i++ {
		rows = append(rows, row(fmt.Sprintf("r%d", i), map[string]any{"status": "Same"}))
	}

	d := Derive(rows, cols, Query{Sorting: []SortKey{{ColumnID: "status"}}})
	for i, r := range d.Rows {
		if r.Key() != fmt.Sprintf("r%d", i) {
			t.Fatalf("stable sort broke input order at %d: got %s", i, r.Key())
		}
	}
}

func TestGrouping(t *testing.T) {
	cols := testColumns()
	rows := []Row{
		row("1", map[string]any{"status": "Active", "role": "Admin", "name": "Ada"}),
		row("2", map[string]any{"status": "Inactive", "role": "Admin", "name": "Bob"}),
		row("3", map[string]any{"status": "Active", "role": "Member", "name": "Cleo"}),
		row("4", map[string]any{"status": "Active", "role": "Admin", "name": "Dan"}),
	}

	d := Derive(rows, cols, Query{Grouping: []string{"status"}})
	if len(d.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(d.Groups))
	}
	if d.Groups[0].Value != "Active" || d.Groups[1].Value != "Inactive" {
		t.Errorf("group order = %q,%q; want Active,Inactive (first-encounter order)", d.Groups[0].Value, d.Groups[1].Value)
	}
	if got := keysOf(d.Groups[0].Rows); !sameKeys(got, []string{"1", "3", "4"}) {
		t.Errorf("Active group rows = %v, want [1 3 4]", got)
	}

	// Nested grouping partitions within each outer group.
	d = Derive(rows, cols, Query{Grouping: []string{"status", "role"}})
	active := d.Groups[0]
	if len(active.Rows) != 0 || len(active.Children) != 2 {
		t.Fatalf("nested grouping: outer group should only hold children, got %d rows %d children", len(active.Rows), len(active.Children))
	}
	if got := keysOf(active.Children[0].Rows); !sameKeys(got, []string{"1", "4"}) {
		t.Errorf("Active/Admin rows = %v, want [1 4]", got)
	}

	// Unknown grouping column is skipped, not fatal.
	d = Derive(rows, cols, Query{Grouping: []string{"nope", "status"}})
	if len(d.Groups) != 2 {
		t.Errorf("unknown grouping column should be skipped, got %d groups", len(d.Groups))
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	cols := testColumns()
	rows := []Row{
		row("2", map[string]any{"name": "Bob"}),
		row("1", map[string]any{"name": "Ada"}),
	}

	Derive(rows, cols, Query{Sorting: []SortKey{{ColumnID: "name"}}})
	if got := keysOf(rows); !sameKeys(got, []string{"2", "1"}) {
		t.Errorf("Derive mutated its input: %v", got)
	}
}
