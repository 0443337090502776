package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabledeck/tabledeck-cli/pkg/files"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	var withSample bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new Tabledeck project",
		Long:  `Creates the .tabledeck folder structure in the current directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine current directory: %w", err)
			}

			fmt.Printf("Initializing Tabledeck project in %s...\n", cwd)

			if err := files.InitProjectStructure(); err != nil {
				return fmt.Errorf("failed to initialize project structure: %w", err)
			}
			fmt.Println("✓ Created .tabledeck folder structure")

			if withSample {
				if err := files.WriteSampleDataset(); err != nil {
					return fmt.Errorf("failed to write sample dataset: %w", err)
				}
				fmt.Println("✓ Created sample users dataset")
			}

			fmt.Println("✓ You can now run 'tabledeck' to open a dataset!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSample, "sample", true, "Scaffold a sample users dataset")

	return cmd
}
