package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-addresses/internal/cli/render"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().String("broadcast-dir", "", "Broadcast directory (defaults to foundry.toml's broadcast setting)")
	cmd.Flags().StringP("output", "o", "", "Output path without extension (defaults to <broadcast>/deployed-addresses)")
	cmd.Flags().String("deployments-file", "", "Supplemental deployments.json (defaults to deployments/deployments.json)")
	cmd.Flags().StringSlice("contract-aliases", nil, "Rename contracts in the output, as From=To")
	cmd.Flags().IntP("concurrency", "j", 1, "Number of broadcast files parsed in parallel")
}

func runExtract(cmd *cobra.Command, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	params := usecase.ExtractAddressesParams{
		GeneratedAt: time.Now().UTC(),
	}
	result, err := app.ExtractAddresses.Run(cmd.Context(), params)
	if err != nil {
		return err
	}

	renderer := render.NewExtractRenderer(cmd.OutOrStdout())
	return renderer.Render(result)
}
