package grid

import (
	"strings"
	"time"
)

// CommitFunc receives the edited row, the column that was edited and the
// draft value the user committed. It is the engine's only write path
// back to the host; the editor never retries a failed commit but keeps
// the draft intact until the callback has run.
type CommitFunc func(row Row, col Column, value any)

// Editor is the per-grid cell edit state machine. At most one cell is in
// edit mode at a time; starting an edit on another cell finishes the
// current one first, committing or discarding per its field type.
type Editor struct {
	state  *ViewState
	commit CommitFunc

	row   Row
	col   Column
	draft string
	tags  []string
}

// NewEditor binds an editor to a grid's view state and commit callback.
func NewEditor(state *ViewState, commit CommitFunc) *Editor {
	return &Editor{state: state, commit: commit}
}

// Active reports whether a cell is currently in edit mode.
func (e *Editor) Active() bool { return e.state.Editing != nil }

// EditingCell returns the cell currently being edited, if any.
func (e *Editor) EditingCell() *CellRef { return e.state.Editing }

// Draft returns the current draft text for text-like fields.
func (e *Editor) Draft() string { return e.draft }

// Tags returns the accumulated multi-select draft entries.
func (e *Editor) Tags() []string { return e.tags }

// Column returns the descriptor governing the active edit.
func (e *Editor) Column() Column { return e.col }

// Start enters edit mode on a cell. A cell already in edit mode is
// finished first: text-like and multi-select drafts commit (edit-in-B is
// a loss of focus for A), select and date edits discard since they only
// commit on an explicit choice. Non-editable columns are ignored.
func (e *Editor) Start(row Row, col Column) {
	if !col.Editable {
		return
	}
	if cur := e.state.Editing; cur != nil {
		if cur.RowKey == row.Key() && cur.ColumnID == col.ID {
			return
		}
		e.Blur()
	}

	e.row = row
	e.col = col
	e.tags = nil
	e.draft = ""

	raw, _ := row.Get(col.FieldKey())
	switch col.Type {
	case FieldMultiSelect:
		e.tags = append(e.tags, toStringSlice(raw)...)
	case FieldText, FieldEmail, FieldPhone, FieldSelect, FieldDate, FieldCustom:
		e.draft = Stringify(raw)
	}

	e.state.Editing = &CellRef{RowKey: row.Key(), ColumnID: col.ID}
}

// SetDraft replaces the draft text for text-like and date fields.
func (e *Editor) SetDraft(text string) {
	if e.state.Editing == nil {
		return
	}
	e.draft = text
}

// AddTag appends a multi-select entry to the draft, ignoring blanks and
// duplicates.
func (e *Editor) AddTag(tag string) {
	if e.state.Editing == nil || e.col.Type != FieldMultiSelect {
		return
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	for _, t := range e.tags {
		if strings.EqualFold(t, tag) {
			return
		}
	}
	e.tags = append(e.tags, tag)
}

// RemoveTag deletes one multi-select entry from the draft by position.
func (e *Editor) RemoveTag(index int) {
	if e.state.Editing == nil || index < 0 || index >= len(e.tags) {
		return
	}
	e.tags = append(e.tags[:index], e.tags[index+1:]...)
}

// Choose commits a select or date edit with the picked value. Other
// field types treat it as a draft replacement followed by a commit.
func (e *Editor) Choose(value string) {
	if e.state.Editing == nil {
		return
	}
	e.draft = value
	e.Commit()
}

// Commit submits the draft through the host callback and returns the
// cell to display mode. The draft survives until the callback has run.
func (e *Editor) Commit() {
	if e.state.Editing == nil {
		return
	}
	row, col := e.row, e.col
	value := e.draftValue()
	if e.commit != nil {
		e.commit(row, col, value)
	}
	e.reset()
}

// Cancel discards the draft and returns the cell to display mode.
func (e *Editor) Cancel() {
	if e.state.Editing == nil {
		return
	}
	e.reset()
}

// Blur handles loss of focus: text-like and multi-select edits commit,
// select and date edits discard (their pickers commit on choice only).
func (e *Editor) Blur() {
	if e.state.Editing == nil {
		return
	}
	switch e.col.Type {
	case FieldSelect, FieldDate:
		e.Cancel()
	case FieldText, FieldEmail, FieldPhone, FieldMultiSelect, FieldCustom:
		e.Commit()
	}
}

func (e *Editor) draftValue() any {
	switch e.col.Type {
	case FieldMultiSelect:
		out := make([]string, len(e.tags))
		copy(out, e.tags)
		return out
	case FieldDate:
		if t, err := time.Parse("2006-01-02", strings.TrimSpace(e.draft)); err == nil {
			return t
		}
		return e.draft
	default:
		return e.draft
	}
}

func (e *Editor) reset() {
	e.state.Editing = nil
	e.row = nil
	e.col = Column{}
	e.draft = ""
	e.tags = nil
}

func toStringSlice(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, e := range val {
			out = append(out, Stringify(e))
		}
		return out
	case nil:
		return nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil
		}
		return []string{val}
	default:
		return []string{Stringify(v)}
	}
}
