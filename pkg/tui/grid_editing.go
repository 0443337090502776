package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabledeck/tabledeck-cli/pkg/grid"
)

// startEdit enters edit mode on the cell under the cursor. The field
// type decides the affordance: text-like and date cells get an input,
// select cells get the option picker, multi-select gets the tag input.
func (m *GridModel) startEdit() {
	row, okR := m.currentRow()
	col, okC := m.currentColumn()
	if !okR || !okC || !col.Editable {
		return
	}
	m.editor.Start(row, col)
	if !m.editor.Active() {
		return
	}

	switch col.Type {
	case grid.FieldSelect:
		m.openPicker("Choose "+col.Label, col.Options, func(choice string) {
			m.editor.Choose(choice)
		})
	case grid.FieldText, grid.FieldEmail, grid.FieldPhone, grid.FieldDate, grid.FieldCustom:
		m.editInput.SetValue(m.editor.Draft())
		if col.Type == grid.FieldDate {
			m.editInput.Placeholder = "YYYY-MM-DD"
		} else {
			m.editInput.Placeholder = ""
		}
		m.editInput.CursorEnd()
		m.editInput.Focus()
		m.focus = focusEditor
	case grid.FieldMultiSelect:
		m.editInput.SetValue("")
		m.editInput.Placeholder = "add entry, enter on empty to finish"
		m.editInput.Focus()
		m.focus = focusEditor
	}
}

// updateEditor routes keys while a cell edit input is open. Confirm
// commits, escape cancels and reverts the draft, and leaving the input
// any other way counts as loss of focus.
func (m *GridModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.editor.Active() {
		m.focus = focusTable
		return m, nil
	}
	col := m.editor.Column()

	switch msg.String() {
	case "esc":
		m.editor.Cancel()
		m.editInput.Blur()
		m.focus = focusTable
		return m, nil

	case "enter":
		if col.Type == grid.FieldMultiSelect {
			text := strings.TrimSpace(m.editInput.Value())
			if text != "" {
				m.editor.AddTag(text)
				m.editInput.SetValue("")
				return m, nil
			}
			// Enter on an empty input is the blur that commits the tags.
			m.editor.Blur()
		} else {
			m.editor.SetDraft(m.editInput.Value())
			m.editor.Commit()
		}
		m.editInput.Blur()
		m.focus = focusTable
		return m, nil

	case "backspace":
		if col.Type == grid.FieldMultiSelect && m.editInput.Value() == "" {
			if n := len(m.editor.Tags()); n > 0 {
				m.editor.RemoveTag(n - 1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	if col.Type != grid.FieldMultiSelect {
		m.editor.SetDraft(m.editInput.Value())
	}
	return m, cmd
}

// commitCell is the editor's commit sink: it forwards the draft to the
// host callback and reports the outcome. The editor keeps the draft
// alive until this returns, so a failing host still saw the value.
func (m *GridModel) commitCell(row grid.Row, col grid.Column, value any) {
	if m.callbacks.OnCellEdit == nil {
		return
	}
	if err := m.callbacks.OnCellEdit(row, col.ID, value); err != nil {
		m.setStatus("Edit failed: %v", err)
		return
	}
	m.rowsVersion++
	m.setStatus("Updated %s", col.Label)
}
