// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the vpcprov CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vpcprov",
		Short: "Provision virtual server instances on IBM Cloud VPC",
	}

	// Provisioning
	cmd.AddCommand(Provision())
	cmd.AddCommand(Status())
	cmd.AddCommand(Request())
	cmd.AddCommand(Tasks())

	// Inventory and form data
	cmd.AddCommand(Options())
	cmd.AddCommand(Inventory())

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
