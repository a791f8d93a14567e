package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-addresses/internal/cli/render"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List the chain names and explorers used in the output",
		Long: `List every chain id with a known display name, including networks added or
overridden through --networks-file. Other chains are labelled "Chain <id>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout())
			return renderer.Render(result)
		},
	}

	return cmd
}
