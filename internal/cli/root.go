package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-addresses/internal/app"
	"github.com/trebuchet-org/treb-addresses/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command. Running it without a subcommand
// extracts deployed addresses from the project's broadcast directory.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "treb-addresses",
		Short: "Extract deployed contract addresses from Foundry broadcasts",
		Long: `treb-addresses scans the Foundry broadcast directory for run-latest.json
files, collects every contract created by a deployment script and writes a
Markdown and a JSON registry of the latest addresses per chain.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for commands that do not need a project
			if skipsAppInit(cmd) {
				return nil
			}

			v := config.SetupViper(cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey, appInstance))
			return nil
		},
		RunE: runExtract,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("project-root", "", "Project root (defaults to the nearest directory with foundry.toml)")
	rootCmd.PersistentFlags().String("networks-file", "", "YAML file with extra or overriding networks")

	addExtractFlags(rootCmd)

	rootCmd.AddCommand(NewNetworksCmd())
	rootCmd.AddCommand(NewGuardCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func skipsAppInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", "guard":
		return true
	}
	return false
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
