package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/tui"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	AltScreen bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive table",
		Long: `Open the product table in the terminal.

Keys:
  ↑/↓ j/k   move between rows
  ←/→ h/l   move between columns
  s         sort by the focused column
  1-4       sort by name, price, quantity, subtotal
  enter     edit the selected row (tab switches field, esc cancels)
  q         quit

Every edit and sort is recorded in the journal. Pass --journal to keep it
for "tally replay".

Example:
  tally run
  tally run --journal ./tally.db --sort-mode column`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.AltScreen, "alt-screen", false, "use the terminal's alternate screen")

	return cmd
}

func runTUI(opts *RunOptions, cmd *cobra.Command) error {
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, st, err := openSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing journal")
		}
	}()

	progOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	log.Info().Str("session", sess.ID()).Msg("table opened")
	if _, err := tea.NewProgram(tui.New(ctx, sess), progOpts...).Run(); err != nil && ctx.Err() == nil {
		return WrapExitError(ExitFailure, "terminal UI error", err)
	}
	log.Info().Str("session", sess.ID()).Int64("events", sess.Seq()).Msg("table closed")
	return nil
}
