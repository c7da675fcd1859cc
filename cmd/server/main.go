package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "task-manager",
	Short: "Task manager web service",
	Long: `task-manager serves the project, worker and task pages.

Examples:
  task-manager                      # Migrate and serve on HTTP_ADDR
  task-manager migrate              # Only run database migrations
  task-manager create-superuser -u admin -e admin@example.com -p secret123`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createSuperuserCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
