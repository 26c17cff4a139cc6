package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imamik/vpcprov/cmd/vpcprov/handlers"
	"github.com/imamik/vpcprov/internal/workflow"
)

// Options returns the command that lists the choices of one form field.
func Options() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "options <category>",
		Short: "List the allowed values of a request field",
		Long: fmt.Sprintf(`List the allowed values of a request field.

Lists come from the local inventory or, for key pairs, volume profiles and
resource groups, directly from the provider. A failed lookup prints a single
error entry instead of failing the command.

Categories: %s

Examples:
  vpcprov options zones
  vpcprov options subnets -c production.yaml`, strings.Join(workflow.Categories(), ", ")),
		ValidArgs: workflow.Categories(),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Options(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: vpcprov.yaml)")

	return cmd
}
