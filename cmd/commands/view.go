package commands

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabledeck/tabledeck-cli/pkg/export"
	"github.com/tabledeck/tabledeck-cli/pkg/files"
	"github.com/tabledeck/tabledeck-cli/pkg/grid"
	"github.com/tabledeck/tabledeck-cli/pkg/models"
	"github.com/tabledeck/tabledeck-cli/pkg/tui"
)

// RunView opens the interactive grid over a dataset and wires the
// grid's callbacks to the dataset file, which stands in for the backend
// the records live on.
func RunView(name string) error {
	ds, err := files.ReadDataset(name)
	if err != nil {
		return err
	}
	cols, err := ds.GridColumns()
	if err != nil {
		return err
	}

	settings, err := files.ReadSettings()
	if err != nil {
		settings = models.DefaultSettings()
	}

	host := &datasetHost{dataset: ds, columns: cols}

	opts := tui.Options{
		PrefsDir:   files.PrefsPath(),
		Breakpoint: settings.UI.CardBreakpoint,
		Density:    grid.Density(settings.UI.Density),
		Debounce:   time.Duration(settings.Prefs.DebounceMS) * time.Millisecond,
	}
	if settings.Prefs.Enabled {
		opts.StorageKey = name
	}

	model := tui.NewGridModel(ds.Rows(), cols, tui.Callbacks{
		OnCellEdit:   host.cellEdit,
		OnRowDelete:  host.rowDelete,
		OnBulkAction: host.bulkAction,
		OnExport:     host.export,
	}, opts)
	host.refresh = model.SetRows

	app := tui.NewApp(ds.Name, model)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

// datasetHost implements the grid callbacks against a YAML dataset.
type datasetHost struct {
	dataset *models.Dataset
	columns []grid.Column
	refresh func(rows []grid.Row)
}

func (h *datasetHost) save() error {
	if err := files.WriteDataset(h.dataset); err != nil {
		return err
	}
	if h.refresh != nil {
		h.refresh(h.dataset.Rows())
	}
	return nil
}

func (h *datasetHost) cellEdit(row grid.Row, columnID string, value any) error {
	rec, ok := h.dataset.RecordByID(row.Key())
	if !ok {
		return fmt.Errorf("record %s not found", row.Key())
	}
	col, ok := grid.ColumnByID(h.columns, columnID)
	if !ok {
		return fmt.Errorf("column %s not found", columnID)
	}
	if rec.Fields == nil {
		rec.Fields = make(map[string]any)
	}
	rec.Fields[col.FieldKey()] = value
	return h.save()
}

func (h *datasetHost) rowDelete(rows []grid.Row) error {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Key()
	}
	if h.dataset.RemoveRecords(ids) == 0 {
		return fmt.Errorf("no matching records")
	}
	return h.save()
}

// bulkAction applies a named action to every selected record. Actions
// operate on the full row objects, so records filtered out of view are
// still affected when selected.
func (h *datasetHost) bulkAction(action string, rows []grid.Row, args ...string) error {
	field, value, err := h.bulkMutation(action, args)
	if err != nil {
		return err
	}
	for _, r := range rows {
		rec, ok := h.dataset.RecordByID(r.Key())
		if !ok {
			continue
		}
		if rec.Fields == nil {
			rec.Fields = make(map[string]any)
		}
		rec.Fields[field] = value
	}
	return h.save()
}

func (h *datasetHost) bulkMutation(action string, args []string) (field, value string, err error) {
	switch action {
	case "assign-role":
		if len(args) != 1 {
			return "", "", fmt.Errorf("assign-role needs a role argument")
		}
		col, ok := h.columnByRole(grid.RoleRole)
		if !ok {
			return "", "", fmt.Errorf("dataset has no role column")
		}
		return col.FieldKey(), args[0], nil
	case "activate", "deactivate":
		col, ok := h.columnByRole(grid.RoleStatus)
		if !ok {
			return "", "", fmt.Errorf("dataset has no status column")
		}
		value := "Active"
		if action == "deactivate" {
			value = "Inactive"
		}
		return col.FieldKey(), value, nil
	default:
		return "", "", fmt.Errorf("unknown bulk action %q", action)
	}
}

func (h *datasetHost) columnByRole(role grid.ColumnRole) (grid.Column, bool) {
	for _, c := range h.columns {
		if c.Role == role {
			return c, true
		}
	}
	return grid.Column{}, false
}

func (h *datasetHost) export(format export.Format, rows []grid.Row) error {
	path := fmt.Sprintf("%s-export.%s", h.dataset.Name, format)
	return export.ToFile(path, format, h.columns, rows)
}
