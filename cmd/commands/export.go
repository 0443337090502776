package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabledeck/tabledeck-cli/pkg/export"
	"github.com/tabledeck/tabledeck-cli/pkg/files"
)

var (
	exportFormat string
	exportToFile string
	exportToClip bool
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <dataset>",
		Short: "Export a dataset to stdout, a file, or the clipboard",
		Long: `Export a dataset's records without opening the interactive grid.

By default the export is written to stdout. Use --file to write to a
file or --clipboard to copy tab-separated text to the system clipboard.

Examples:
  # Export as CSV to stdout
  tabledeck export users

  # Export as JSON to a file
  tabledeck export users -o json --file users.json

  # Export a workbook
  tabledeck export users -o xlsx --file users.xlsx

  # Copy to the clipboard
  tabledeck export users --clipboard`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TabledeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .tabledeck directory found. Run 'tabledeck init' first")
			}
			return nil
		},
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportFormat, "output", "o", "csv", "Export format: csv, json or xlsx")
	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Export to file instead of stdout")
	cmd.Flags().BoolVar(&exportToClip, "clipboard", false, "Copy tab-separated text to the clipboard")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ds, err := files.ReadDataset(args[0])
	if err != nil {
		return err
	}
	cols, err := ds.GridColumns()
	if err != nil {
		return err
	}
	rows := ds.Rows()

	if exportToClip {
		if err := export.ToClipboard(cols, rows); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Copied %d record(s) to clipboard\n", len(rows))
		return nil
	}

	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	if exportToFile != "" {
		if err := export.ToFile(exportToFile, format, cols, rows); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d record(s) to %s\n", len(rows), exportToFile)
		return nil
	}

	return export.Write(os.Stdout, format, cols, rows)
}
