package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qresp/am"
	"github.com/teranos/qresp/errors"
	"github.com/teranos/qresp/fixture"
	"github.com/teranos/qresp/logger"
	"github.com/teranos/qresp/replay"
)

// ReplayCmd replays recorded session fixtures
var ReplayCmd = &cobra.Command{
	Use:   "replay <fixture>...",
	Short: "Replay recorded query sessions",
	Long: `Replay one or more recorded sessions (.toml, .yaml or .json).

Each fixture's batches are delivered by concurrent producers to a single collector,
drained once, and printed most relevant first. When the fixture lists an expected
order, a differing drain fails the command.

Examples:
  qresp replay testdata/hover.toml
  qresp replay --reply --producers 1 session.yaml
  qresp replay --journal *.toml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

var (
	replayPrintReply bool
	replayJournal    bool
	replayProducers  int
	replayTrace      bool
	replaySync       bool
)

func init() {
	ReplayCmd.Flags().BoolVar(&replayPrintReply, "reply", false, "Print the LSP reply as JSON")
	ReplayCmd.Flags().BoolVar(&replayJournal, "journal", false, "Record sessions in the journal (overrides journal.enabled)")
	ReplayCmd.Flags().IntVar(&replayProducers, "producers", 0, "Concurrent producers (overrides pump.producers)")
	ReplayCmd.Flags().BoolVar(&replayTrace, "trace", false, "Log every ingested and skipped message (overrides trace.enabled)")
	ReplayCmd.Flags().BoolVar(&replaySync, "sync", false, "Use the mutex-guarded collector (overrides collector.synchronized)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	loaded, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	// Overrides apply to a copy; am.Load hands out the cached config
	c := *loaded
	cfg := &c

	flags := cmd.Flags()
	if flags.Changed("journal") {
		cfg.Journal.Enabled = replayJournal
	}
	if flags.Changed("producers") {
		cfg.Pump.Producers = replayProducers
	}
	if flags.Changed("trace") {
		cfg.Trace.Enabled = replayTrace
	} else if logger.ShouldTraceIngest(logger.Verbosity) {
		cfg.Trace.Enabled = true
	}
	if flags.Changed("sync") {
		cfg.Collector.Synchronized = replaySync
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var opts []replay.Option
	if cfg.Journal.Enabled {
		j, closeJournal, err := openJournal(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer closeJournal()
		opts = append(opts, replay.WithJournal(j))
	}

	runner := replay.New(cfg, logger.ComponentLogger("replay"), opts...)
	return replayFiles(logger.WithComponent(cmd.Context(), "replay"), cmd.OutOrStdout(), runner, args, replayPrintReply)
}

// replayFiles replays each path in turn and reports every mismatch before failing.
func replayFiles(ctx context.Context, w io.Writer, runner *replay.Runner, paths []string, printReply bool) error {
	mismatches := 0
	for _, path := range paths {
		fx, err := fixture.Load(path)
		if err != nil {
			return err
		}
		res, err := runner.Run(logger.WithRequestID(ctx, path), fx)
		if err != nil {
			return errors.Wrapf(err, "failed to replay %s", path)
		}

		fmt.Fprintf(w, "%s  %s (%d batches, %d responses)\n",
			pterm.LightCyan(path), string(res.File), res.Batches, len(res.Ordered))
		if err := renderOrdered(w, res.Ordered); err != nil {
			return err
		}
		if res.Session != nil {
			fmt.Fprintf(w, "%s %s\n", pterm.Gray("journaled as"), res.Session.ID)
		}
		if res.Mismatch != nil {
			mismatches++
			fmt.Fprintf(w, "%s %v\n", pterm.Red("✗"), res.Mismatch)
		}
		if printReply && res.Reply != nil {
			if err := writeJSON(w, res.Reply); err != nil {
				return errors.Wrap(err, "failed to encode reply")
			}
		}
	}
	if mismatches > 0 {
		return errors.Newf("%d of %d fixtures drained in an unexpected order", mismatches, len(paths))
	}
	return nil
}
