package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabledeck/tabledeck-cli/cmd/commands"
	"github.com/tabledeck/tabledeck-cli/pkg/files"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "tabledeck [dataset]",
	Short: "Terminal console for browsing and editing record collections",
	Long: `Tabledeck is a terminal console for browsing and editing record
collections (users, roles, teams) through an interactive data grid with
filtering, sorting, grouping, inline editing and a card view for narrow
terminals. Datasets are plain YAML files under .tabledeck/data.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat(files.TabledeckDir); os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: No .tabledeck directory found in the current directory.\n")
			fmt.Fprintf(os.Stderr, "Please run 'tabledeck init' first to initialize a new project.\n")
			os.Exit(1)
		}

		dataset := "users"
		if len(args) == 1 {
			dataset = args[0]
		}

		if err := commands.RunView(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tabledeck %s\n", version)
	},
}

func main() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewExportCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
