package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vpcprov/cmd/vpcprov/handlers"
)

// Tasks returns the command that shows recorded provisioning tasks.
func Tasks() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "tasks [task-id]",
		Short: "Show provisioning tasks",
		Long: `Show provisioning task records from the local inventory.

Without an argument the most recent tasks are listed, newest first.

Examples:
  vpcprov tasks
  vpcprov tasks --limit 5
  vpcprov tasks 5c1e2f0a-8f7e-4d52-9d51-2f7d1b0f6c11`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return handlers.Task(cmd.Context(), configPath, args[0])
			}
			return handlers.Tasks(cmd.Context(), configPath, limit)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: vpcprov.yaml)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of tasks to show")

	return cmd
}
