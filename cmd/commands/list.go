package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabledeck/tabledeck-cli/pkg/files"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the datasets in this project",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(files.TabledeckDir); os.IsNotExist(err) {
				return fmt.Errorf("no .tabledeck directory found. Run 'tabledeck init' first")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := files.ListDatasets()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("No datasets found.")
				return nil
			}
			for _, name := range names {
				ds, err := files.ReadDataset(name)
				if err != nil {
					fmt.Printf("%s (unreadable: %v)\n", name, err)
					continue
				}
				fmt.Printf("%s  %d columns, %d records\n", name, len(ds.Columns), len(ds.Records))
			}
			return nil
		},
	}
}
