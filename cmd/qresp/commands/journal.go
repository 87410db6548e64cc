package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qresp/errors"
	"github.com/teranos/qresp/journal"
)

// JournalCmd inspects recorded sessions
var JournalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect journaled sessions",
	Long: `Inspect sessions recorded by 'qresp replay --journal'.

Examples:
  qresp journal ls --limit 5
  qresp journal show 3f1c2d0e-...`,
}

var journalLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded sessions, newest first",
	RunE:  runJournalLs,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the ordered responses of one session",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var (
	journalPath  string
	journalLimit int
	journalJSON  bool
)

func init() {
	JournalCmd.PersistentFlags().StringVar(&journalPath, "db", "", "Journal database path (default: journal.path)")
	JournalCmd.PersistentFlags().BoolVar(&journalJSON, "json", false, "Output as JSON")
	journalLsCmd.Flags().IntVar(&journalLimit, "limit", 20, "Maximum number of sessions to list")

	JournalCmd.AddCommand(journalLsCmd)
	JournalCmd.AddCommand(journalShowCmd)
}

func runJournalLs(cmd *cobra.Command, args []string) error {
	j, closeJournal, err := openJournal(journalPath)
	if err != nil {
		return err
	}
	defer closeJournal()

	sessions, err := j.Sessions(cmd.Context(), journalLimit)
	if err != nil {
		return errors.Wrap(err, "failed to list sessions")
	}
	if journalJSON {
		return writeJSON(cmd.OutOrStdout(), sessions)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), pterm.Gray("No sessions recorded"))
		return nil
	}
	return renderSessions(cmd.OutOrStdout(), sessions)
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, closeJournal, err := openJournal(journalPath)
	if err != nil {
		return err
	}
	defer closeJournal()

	session, err := j.Session(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	entries, err := j.Entries(cmd.Context(), session.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to load entries of %s", session.ID)
	}

	out := cmd.OutOrStdout()
	if journalJSON {
		return writeJSON(out, struct {
			Session any `json:"session"`
			Entries any `json:"entries"`
		}{session, entries})
	}
	if err := renderSessions(out, []journal.Session{*session}); err != nil {
		return err
	}
	return renderEntries(out, entries)
}
