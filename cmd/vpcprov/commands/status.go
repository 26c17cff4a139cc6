package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vpcprov/cmd/vpcprov/handlers"
)

// Status returns the command that checks an instance once.
func Status() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status <instance-id>",
		Short: "Check the provisioning status of an instance",
		Long: `Check the provisioning status of an instance once.

Prints whether the instance has finished provisioning and the progress
message a task would record for it. Exits with an error when the instance
has failed or cannot be read.

Examples:
  vpcprov status 0717_1e09281b-f177-46fb-baf1-bc152b2e391a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Status(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: vpcprov.yaml)")

	return cmd
}
