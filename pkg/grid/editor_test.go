package grid

import (
	"reflect"
	"testing"
	"time"
)

type commitRecord struct {
	rowKey   string
	columnID string
	value    any
}

func newTestEditor() (*Editor, *ViewState, *[]commitRecord) {
	s := NewViewState()
	var commits []commitRecord
	e := NewEditor(s, func(row Row, col Column, value any) {
		commits = append(commits, commitRecord{row.Key(), col.ID, value})
	})
	return e, s, &commits
}

func TestEditorStartAndCommit(t *testing.T) {
	e, s, commits := newTestEditor()
	col := Column{ID: "name", Type: FieldText, Editable: true}
	r := row("r1", map[string]any{"name": "Ada"})

	e.Start(r, col)
	if s.Editing == nil || s.Editing.RowKey != "r1" || s.Editing.ColumnID != "name" {
		t.Fatalf("editing cell = %+v", s.Editing)
	}
	if e.Draft() != "Ada" {
		t.Errorf("draft seeded with %q, want committed value", e.Draft())
	}

	e.SetDraft("Ada Lovelace")
	e.Commit()
	if s.Editing != nil {
		t.Error("commit left cell in edit mode")
	}
	if len(*commits) != 1 || (*commits)[0].value != "Ada Lovelace" {
		t.Errorf("commits = %+v", *commits)
	}
}

func TestEditorCancelRevertsDraft(t *testing.T) {
	e, s, commits := newTestEditor()
	col := Column{ID: "name", Type: FieldText, Editable: true}

	e.Start(row("r1", map[string]any{"name": "Ada"}), col)
	e.SetDraft("mistake")
	e.Cancel()
	if s.Editing != nil {
		t.Error("cancel left cell in edit mode")
	}
	if len(*commits) != 0 {
		t.Errorf("cancel must not commit, got %+v", *commits)
	}
}

func TestEditorIgnoresNonEditable(t *testing.T) {
	e, s, _ := newTestEditor()
	e.Start(row("r1", map[string]any{"name": "Ada"}), Column{ID: "name", Type: FieldText})
	if s.Editing != nil {
		t.Error("non-editable column entered edit mode")
	}
}

func TestEditorSingleCellInvariant(t *testing.T) {
	e, s, commits := newTestEditor()
	textCol := Column{ID: "name", Type: FieldText, Editable: true}
	otherCol := Column{ID: "phone", Type: FieldPhone, Editable: true}

	e.Start(row("r1", map[string]any{"name": "Ada"}), textCol)
	e.SetDraft("Ada L")
	e.Start(row("r2", map[string]any{"phone": "555"}), otherCol)

	if s.Editing == nil || s.Editing.RowKey != "r2" {
		t.Fatalf("editing cell = %+v, want r2", s.Editing)
	}
	// Switching away from a text edit is a loss of focus, which commits.
	if len(*commits) != 1 || (*commits)[0].rowKey != "r1" || (*commits)[0].value != "Ada L" {
		t.Errorf("implicit commit missing: %+v", *commits)
	}
}

func TestEditorSelectDiscardsOnBlur(t *testing.T) {
	e, s, commits := newTestEditor()
	sel := Column{ID: "status", Type: FieldSelect, Editable: true, Options: []string{"Active", "Inactive"}}

	e.Start(row("r1", map[string]any{"status": "Active"}), sel)
	e.Blur()
	if s.Editing != nil {
		t.Error("blur left select edit active")
	}
	if len(*commits) != 0 {
		t.Errorf("select blur must not commit, got %+v", *commits)
	}

	e.Start(row("r1", map[string]any{"status": "Active"}), sel)
	e.Choose("Inactive")
	if len(*commits) != 1 || (*commits)[0].value != "Inactive" {
		t.Errorf("choose should commit immediately: %+v", *commits)
	}
}

func TestEditorMultiSelectTags(t *testing.T) {
	e, _, commits := newTestEditor()
	col := Column{ID: "teams", Type: FieldMultiSelect, Editable: true}

	e.Start(row("r1", map[string]any{"teams": []string{"Core"}}), col)
	e.AddTag("Support")
	e.AddTag("support") // duplicate, case-insensitive
	e.AddTag("  ")
	e.AddTag("Ops")
	e.RemoveTag(0) // drop Core
	e.Blur()       // multi-select commits on loss of focus

	if len(*commits) != 1 {
		t.Fatalf("commits = %+v", *commits)
	}
	got, ok := (*commits)[0].value.([]string)
	if !ok || !reflect.DeepEqual(got, []string{"Support", "Ops"}) {
		t.Errorf("committed tags = %v", (*commits)[0].value)
	}
}

func TestEditorDateDraftParses(t *testing.T) {
	e, _, commits := newTestEditor()
	col := Column{ID: "joined", Type: FieldDate, Editable: true}

	e.Start(row("r1", map[string]any{}), col)
	e.Choose("2024-03-15")

	if len(*commits) != 1 {
		t.Fatalf("commits = %+v", *commits)
	}
	ts, ok := (*commits)[0].value.(time.Time)
	if !ok || ts.Year() != 2024 || ts.Month() != time.March || ts.Day() != 15 {
		t.Errorf("committed date = %v", (*commits)[0].value)
	}
}

func TestEditorRestartSameCellKeepsDraft(t *testing.T) {
	e, _, commits := newTestEditor()
	col := Column{ID: "name", Type: FieldText, Editable: true}
	r := row("r1", map[string]any{"name": "Ada"})

	e.Start(r, col)
	e.SetDraft("typed")
	e.Start(r, col)
	if e.Draft() != "typed" {
		t.Errorf("re-starting the same cell reset the draft to %q", e.Draft())
	}
	if len(*commits) != 0 {
		t.Errorf("re-starting the same cell committed: %+v", *commits)
	}
}
