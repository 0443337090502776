package models

import (
	"testing"

	"github.com/tabledeck/tabledeck-cli/pkg/grid"
)

func TestGridColumnParsing(t *testing.T) {
	spec := ColumnSpec{
		ID:       "status",
		Label:    "Status",
		Type:     "select",
		Role:     "status",
		Options:  []string{"Active", "Inactive"},
		Sortable: true,
	}
	col, err := spec.GridColumn()
	if err != nil {
		t.Fatalf("GridColumn() error = %v", err)
	}
	if col.Type != grid.FieldSelect || col.Role != grid.RoleStatus {
		t.Errorf("parsed type %v role %v", col.Type, col.Role)
	}
	if !col.Sortable || col.Filterable {
		t.Error("flags should carry over as declared")
	}
}

func TestGridColumnDefaults(t *testing.T) {
	col, err := ColumnSpec{ID: "notes"}.GridColumn()
	if err != nil {
		t.Fatalf("GridColumn() error = %v", err)
	}
	if col.Type != grid.FieldText {
		t.Errorf("empty type should default to text, got %v", col.Type)
	}
	if col.Label != "notes" {
		t.Errorf("empty label should fall back to the id, got %q", col.Label)
	}
}

func TestGridColumnRejectsUnknowns(t *testing.T) {
	if _, err := (ColumnSpec{ID: "x", Type: "blob"}).GridColumn(); err == nil {
		t.Error("unknown field type should error")
	}
	if _, err := (ColumnSpec{ID: "x", Role: "owner"}).GridColumn(); err == nil {
		t.Error("unknown role should error")
	}
}

func TestDatasetRecordOps(t *testing.T) {
	ds := &Dataset{
		Name: "users",
		Records: []Record{
			{ID: "u1", Fields: map[string]any{"name": "Alice"}},
			{ID: "u2", Fields: map[string]any{"name": "Bob"}},
			{ID: "u3", Fields: map[string]any{"name": "Carol"}},
		},
	}

	rec, ok := ds.RecordByID("u2")
	if !ok {
		t.Fatal("u2 not found")
	}
	rec.Fields["name"] = "Robert"
	if ds.Records[1].Fields["name"] != "Robert" {
		t.Error("RecordByID must return a write-through pointer")
	}

	if n := ds.RemoveRecords([]string{"u1", "u3", "ghost"}); n != 2 {
		t.Errorf("removed %d records, want 2", n)
	}
	if len(ds.Records) != 1 || ds.Records[0].ID != "u2" {
		t.Errorf("remaining records = %+v", ds.Records)
	}

	rows := ds.Rows()
	if len(rows) != 1 || rows[0].Key() != "u2" {
		t.Errorf("Rows() = %v", rows)
	}
}
