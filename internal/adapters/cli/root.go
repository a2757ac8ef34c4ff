package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rakeplanner",
		Short: "Rake planner CLI - Manage rake formation planning",
		Long: `Rake planner CLI manages rake formation planning jobs and plans.
Commands operate directly on the planner database; generated jobs are
picked up by the rakeplanner daemon.

Examples:
  rakeplanner plan generate --scenario "Weekly dispatch" --mode hybrid
  rakeplanner plan status <job-id>
  rakeplanner plan show <plan-id>
  rakeplanner plan commit <plan-id>
  rakeplanner plan explain <plan-id>
  rakeplanner data seed`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml in search paths)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewDataCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
