package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vpcprov/cmd/vpcprov/handlers"
)

// Request returns the command that builds a request interactively.
func Request() *cobra.Command {
	var (
		configPath string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Build a provisioning request interactively",
		Long: `Build a provisioning request with an interactive form.

Each selection offers the values 'vpcprov options' would list. With --output
the request is written to a file for a later 'vpcprov provision'; without it
the request is provisioned right away.

Requires an interactive terminal.

Examples:
  # Build and provision
  vpcprov request

  # Save the request for review
  vpcprov request -o web-01.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Request(cmd.Context(), configPath, outputPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: vpcprov.yaml)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the request to this file instead of provisioning")

	return cmd
}
