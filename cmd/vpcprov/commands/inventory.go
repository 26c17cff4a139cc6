package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vpcprov/cmd/vpcprov/handlers"
)

// Inventory returns the command group managing the local inventory.
func Inventory() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage the local resource inventory",
	}

	cmd.AddCommand(inventoryAddEMS())
	cmd.AddCommand(inventoryRefresh())

	return cmd
}

func inventoryAddEMS() *cobra.Command {
	var (
		configPath string
		uid        string
	)

	cmd := &cobra.Command{
		Use:   "add-ems",
		Short: "Register the configured management system",
		Long: `Register the management system named in the configuration.

The record ties the cached inventory to the configured region and account.
Run this once before the first 'vpcprov inventory refresh'.

Examples:
  vpcprov inventory add-ems -c production.yaml
  vpcprov inventory add-ems --uid 0a1b2c3d4e5f`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.InventoryAddEMS(cmd.Context(), configPath, uid)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: vpcprov.yaml)")
	cmd.Flags().StringVar(&uid, "uid", "", "Cloud instance id of the account (default: account_id from the configuration)")

	return cmd
}

func inventoryRefresh() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the cached inventory from the provider",
		Long: `Replace the cached zones, profiles, networks, subnets, volumes and images
of the configured management system with the provider's current lists.

Examples:
  vpcprov inventory refresh`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.InventoryRefresh(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: vpcprov.yaml)")

	return cmd
}
