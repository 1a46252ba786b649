package cli

import (
	"context"
	"fmt"
	"os"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/store"
	"github.com/roach88/tally/internal/table"
	"github.com/roach88/tally/internal/tui"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	SessionID string // optional - defaults to the latest session
	List      bool
}

// ReplayReport holds the replay result for a single session.
type ReplayReport struct {
	SessionID     string          `json:"session_id"`
	SortMode      table.SortMode  `json:"sort_mode"`
	Edits         int             `json:"edits"`
	Sorts         int             `json:"sorts"`
	Rows          []table.Row     `json:"rows"`
	Totals        table.Totals    `json:"totals"`
	Sort          table.SortState `json:"sort"`
	Deterministic bool            `json:"deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild a session's table from the journal",
		Long: `Replay a journaled session and verify determinism.

The session's initial rows are restored and every recorded edit and sort is
applied again in sequence order. The replay runs twice and both results must
be identical. Use --list to see the sessions in a journal.

Exit codes:
  0 - Replay succeeded and is deterministic
  1 - Determinism verification failed
  2 - Command error (journal not found, unknown session, etc.)

Examples:
  tally replay --journal ./tally.db
  tally replay --journal ./tally.db --session 0190c1d2-...
  tally replay --journal ./tally.db --list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.SessionID, "session", "", "session id (default: latest)")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list sessions instead of replaying")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Journal == "" {
		return NewExitError(ExitCommandError, "--journal is required for replay")
	}
	if _, err := os.Stat(opts.Journal); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("journal not found: %s", opts.Journal))
	}

	st, err := store.Open(opts.Journal)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer st.Close()

	if opts.List {
		return listSessions(ctx, st, opts, cmd)
	}

	report, err := replayAndVerify(ctx, st, opts.SessionID)
	if err != nil {
		return WrapExitError(ExitCommandError, "replay failed", err)
	}

	if opts.Format == "json" {
		return outputReplayJSON(newFormatter(opts.RootOptions, cmd), report)
	}
	return outputReplayText(cmd, report)
}

// replayAndVerify replays a session twice and compares the results.
func replayAndVerify(ctx context.Context, st *store.Store, sessionID string) (ReplayReport, error) {
	replay := func() (*store.ReplayResult, error) {
		if sessionID == "" {
			return st.ReplayLatest(ctx)
		}
		return st.Replay(ctx, sessionID)
	}

	first, err := replay()
	if err != nil {
		return ReplayReport{}, fmt.Errorf("first replay failed: %w", err)
	}
	second, err := replay()
	if err != nil {
		return ReplayReport{}, fmt.Errorf("second replay failed: %w", err)
	}

	report := ReplayReport{
		SessionID: first.Session.ID,
		SortMode:  first.Session.SortMode,
		Rows:      first.Table.Rows(),
		Totals:    first.Table.Totals(),
		Sort:      first.Table.State(),
		Deterministic: reflect.DeepEqual(first.Events, second.Events) &&
			reflect.DeepEqual(first.Table.Rows(), second.Table.Rows()) &&
			first.Table.State() == second.Table.State(),
	}
	for _, ev := range first.Events {
		switch ev.Kind {
		case store.EventEdit:
			report.Edits++
		case store.EventSort:
			report.Sorts++
		}
	}
	return report, nil
}

func listSessions(ctx context.Context, st *store.Store, opts *ReplayOptions, cmd *cobra.Command) error {
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	if opts.Format == "json" {
		if sessions == nil {
			sessions = []store.SessionSummary{}
		}
		return newFormatter(opts.RootOptions, cmd).Success(sessions)
	}

	w := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions found in journal.")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  %-6s  %d event(s), last seq %d\n", s.ID, s.SortMode, s.EventCount, s.LastSeq)
	}
	return nil
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(f *OutputFormatter, report ReplayReport) error {
	response := CLIResponse{
		Status: "ok",
		Data:   report,
	}

	if !report.Deterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_DETERMINISM",
			Message: "determinism verification failed",
		}
	}

	if err := f.Respond(response); err != nil {
		return err
	}

	if !report.Deterministic {
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, report ReplayReport) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Session: %s (%s sort)\n", report.SessionID, report.SortMode)
	fmt.Fprintf(w, "  Events: %d edit(s), %d sort(s)\n", report.Edits, report.Sorts)
	fmt.Fprintln(w, tui.Render(tui.View{
		Rows:   report.Rows,
		Totals: report.Totals,
		Sort:   report.Sort,
		Indicator: func(k table.SortKey) (table.Direction, bool) {
			return table.SharedControl{}.Indicator(k, report.Sort)
		},
		Cursor: -1,
		Focus:  -1,
	}))

	if report.Deterministic {
		fmt.Fprintln(w, "✓ Replay verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}
