// Package export writes row sets to CSV, JSON or XLSX, or copies them to
// the system clipboard. Exports always operate on the full row objects
// handed in, so a bulk export of a selection includes hidden columns'
// siblings only if the caller passes those columns.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/xuri/excelize/v2"

	"github.com/tabledeck/tabledeck-cli/pkg/grid"
)

// Format identifies an export output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected csv, json or xlsx)", name)
	}
}

// Write renders rows in the given format. Column labels become the
// header; values are stringified the same way the grid displays them,
// except JSON which keeps raw field values.
func Write(w io.Writer, format Format, cols []grid.Column, rows []grid.Row) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, cols, rows)
	case FormatJSON:
		return writeJSON(w, cols, rows)
	case FormatXLSX:
		return writeXLSX(w, cols, rows)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// ToFile writes rows to a file, creating or truncating it.
func ToFile(path string, format Format, cols []grid.Column, rows []grid.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file %s: %w", path, err)
	}
	defer f.Close()
	if err := Write(f, format, cols, rows); err != nil {
		return err
	}
	return f.Close()
}

// ToClipboard copies rows as tab-separated text, header included.
func ToClipboard(cols []grid.Column, rows []grid.Row) error {
	var sb strings.Builder
	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Label
	}
	sb.WriteString(strings.Join(labels, "\t"))
	sb.WriteString("\n")
	for _, r := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = grid.FieldString(r, c.FieldKey())
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteString("\n")
	}
	if err := clipboard.WriteAll(sb.String()); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, cols []grid.Column, rows []grid.Row) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		record := make([]string, len(cols))
		for i, c := range cols {
			record[i] = grid.FieldString(r, c.FieldKey())
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", r.Key(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, cols []grid.Column, rows []grid.Row) error {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		obj := make(map[string]any, len(cols))
		for _, c := range cols {
			if v, ok := r.Get(c.FieldKey()); ok {
				obj[c.FieldKey()] = v
			}
		}
		out = append(out, obj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode JSON export: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, cols []grid.Column, rows []grid.Row) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, c.Label); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}
	for ri, r := range rows {
		for ci, c := range cols {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, grid.FieldString(r, c.FieldKey())); err != nil {
				return fmt.Errorf("failed to write cell for row %s: %w", r.Key(), err)
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
