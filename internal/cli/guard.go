package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treb-addresses/internal/guard"
	"github.com/trebuchet-org/treb-addresses/internal/logging"
)

// NewGuardCmd creates the guard command, a pre-tool-use hook that blocks
// agent access to environment secrets files.
func NewGuardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guard",
		Short: "Pre-tool-use hook that denies reads of .env files",
		Long: `Reads a hook request as JSON on stdin. When a Read, Grep, Glob or NotebookRead
request references a .env file, a deny decision is written to stdout.
Allowed requests produce no output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			level := logging.ParseLevel(os.Getenv("TREB_LOG_LEVEL"))
			if debug {
				level = slog.LevelDebug
			}
			log := logging.NewStderrLogger(level)

			req, err := guard.DecodeRequest(cmd.InOrStdin())
			if err != nil {
				// Malformed input must never block the tool
				log.Debug("ignoring malformed hook request", "error", err)
				return nil
			}

			decision := guard.NewPolicy().Evaluate(req)
			if !decision.Allow {
				log.Debug("denied tool request", "tool", req.ToolName, "reason", decision.Reason)
			}
			return guard.WriteDecision(cmd.OutOrStdout(), req, decision)
		},
	}

	return cmd
}
