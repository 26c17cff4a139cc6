package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vpcprov/cmd/vpcprov/handlers"
)

// Provision returns the command that runs a provisioning request to completion.
//
// Required flags:
//
//	--file, -f: Path to the request options YAML file
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: vpcprov.yaml)
//
// Environment variables:
//
//	IBMCLOUD_API_KEY: IBM Cloud IAM API key (required)
func Provision() *cobra.Command {
	var (
		configPath  string
		requestPath string
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision an instance from a request file",
		Long: `Provision a virtual server instance from a request file.

The request is recorded as a task, walked through the pre-provision steps,
submitted to the VPC API and polled until the instance is running or has
failed. The final task record is printed and, when enabled, archived to
Cloud Object Storage.

Examples:
  # Provision using vpcprov.yaml in the current directory
  vpcprov provision -f web-01.yaml

  # Provision against a specific configuration
  vpcprov provision -f web-01.yaml -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), configPath, requestPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: vpcprov.yaml)")
	cmd.Flags().StringVarP(&requestPath, "file", "f", "", "Path to request options file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
