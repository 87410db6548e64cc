package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/qresp/am"
	"github.com/teranos/qresp/cmd/qresp/commands"
	"github.com/teranos/qresp/errors"
	"github.com/teranos/qresp/logger"
)

var rootCmd = &cobra.Command{
	Use:   "qresp",
	Short: "qresp - Collect and order query responses",
	Long: `qresp - Collect, order and answer language-server query responses.

A query against a source position produces several candidate responses spread over
batches of upstream messages. qresp collects them, orders them by span length and
specificity, and answers hover, definition, references and completion requests from
the ordered list.

Available commands:
  replay  - Replay a recorded session fixture
  journal - Inspect journaled sessions
  am      - Manage qresp configuration ("I am")
  version - Show build information

Examples:
  qresp replay session.toml         # Replay and print the ordered responses
  qresp replay --reply session.yaml # Also print the LSP reply as JSON
  qresp journal ls                  # List recorded sessions
  qresp am show --format yaml       # Show merged configuration`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json-log")

		// Config verbosity is a floor that -v flags raise
		if cfg, err := am.Load(); err == nil {
			verbose += cfg.Log.Verbosity
			jsonOutput = jsonOutput || cfg.Log.JSON
		}

		if err := logger.Initialize(jsonOutput, verbose); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.Logger.Debugw("Logger initialized",
			"verbosity", logger.LevelName(verbose),
			"json", jsonOutput,
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Write logs as JSON")

	rootCmd.AddCommand(commands.ReplayCmd)
	rootCmd.AddCommand(commands.JournalCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hints := errors.FlattenHints(err); hints != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hints)
		}
		os.Exit(1)
	}
}
