package models

import (
	"fmt"

	"github.com/tabledeck/tabledeck-cli/pkg/grid"
)

// Record is one entry of a dataset. Fields are schemaless; the column
// specs of the owning dataset decide which ones are shown.
type Record struct {
	ID     string         `yaml:"id"`
	Fields map[string]any `yaml:"fields"`
}

// ColumnSpec is the YAML form of a grid column descriptor.
type ColumnSpec struct {
	ID         string   `yaml:"id"`
	Key        string   `yaml:"key,omitempty"`
	Label      string   `yaml:"label"`
	Type       string   `yaml:"type"`
	Role       string   `yaml:"role,omitempty"`
	Options    []string `yaml:"options,omitempty"`
	Sortable   bool     `yaml:"sortable"`
	Filterable bool     `yaml:"filterable"`
	Resizable  bool     `yaml:"resizable"`
	Groupable  bool     `yaml:"groupable"`
	Editable   bool     `yaml:"editable"`
	MinWidth   int      `yaml:"min_width,omitempty"`
	Width      int      `yaml:"width,omitempty"`
	MaxWidth   int      `yaml:"max_width,omitempty"`
}

// Dataset is a named record collection plus its column configuration.
type Dataset struct {
	Name    string       `yaml:"name"`
	Path    string       `yaml:"-"`
	Columns []ColumnSpec `yaml:"columns"`
	Records []Record     `yaml:"records"`
}

// Rows adapts the dataset's records to the grid's row interface.
func (d *Dataset) Rows() []grid.Row {
	rows := make([]grid.Row, len(d.Records))
	for i, r := range d.Records {
		rows[i] = grid.MapRow{ID: r.ID, Fields: r.Fields}
	}
	return rows
}

// GridColumns converts the column specs to grid descriptors.
func (d *Dataset) GridColumns() ([]grid.Column, error) {
	cols := make([]grid.Column, 0, len(d.Columns))
	for _, spec := range d.Columns {
		c, err := spec.GridColumn()
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", d.Name, err)
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// RecordByID returns a pointer into the dataset's record slice so edits
// write through.
func (d *Dataset) RecordByID(id string) (*Record, bool) {
	for i := range d.Records {
		if d.Records[i].ID == id {
			return &d.Records[i], true
		}
	}
	return nil, false
}

// RemoveRecords deletes the records with the given ids, returning how
// many were removed.
func (d *Dataset) RemoveRecords(ids []string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := d.Records[:0]
	removed := 0
	for _, r := range d.Records {
		if drop[r.ID] {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	d.Records = kept
	return removed
}

// GridColumn converts one spec, validating the field type and role.
func (s ColumnSpec) GridColumn() (grid.Column, error) {
	ft, err := parseFieldType(s.Type)
	if err != nil {
		return grid.Column{}, fmt.Errorf("column %s: %w", s.ID, err)
	}
	role, err := parseRole(s.Role)
	if err != nil {
		return grid.Column{}, fmt.Errorf("column %s: %w", s.ID, err)
	}
	label := s.Label
	if label == "" {
		label = s.ID
	}
	return grid.Column{
		ID:         s.ID,
		Key:        s.Key,
		Label:      label,
		Type:       ft,
		Role:       role,
		Options:    s.Options,
		Sortable:   s.Sortable,
		Filterable: s.Filterable,
		Resizable:  s.Resizable,
		Groupable:  s.Groupable,
		Editable:   s.Editable,
		MinWidth:   s.MinWidth,
		Width:      s.Width,
		MaxWidth:   s.MaxWidth,
	}, nil
}

func parseFieldType(name string) (grid.FieldType, error) {
	switch name {
	case "", "text":
		return grid.FieldText, nil
	case "email":
		return grid.FieldEmail, nil
	case "phone":
		return grid.FieldPhone, nil
	case "select":
		return grid.FieldSelect, nil
	case "multi-select":
		return grid.FieldMultiSelect, nil
	case "date":
		return grid.FieldDate, nil
	case "custom":
		return grid.FieldCustom, nil
	default:
		return grid.FieldText, fmt.Errorf("unknown field type %q", name)
	}
}

func parseRole(name string) (grid.ColumnRole, error) {
	switch name {
	case "":
		return grid.RoleNone, nil
	case "name":
		return grid.RoleName, nil
	case "email":
		return grid.RoleEmail, nil
	case "phone":
		return grid.RolePhone, nil
	case "role":
		return grid.RoleRole, nil
	case "status":
		return grid.RoleStatus, nil
	case "date":
		return grid.RoleDate, nil
	default:
		return grid.RoleNone, fmt.Errorf("unknown column role %q", name)
	}
}
