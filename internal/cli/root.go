package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/config"
	"github.com/roach88/tally/internal/table"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	SortMode string
	Dataset  string
	Journal  string

	// Config holds the environment settings the flags default from.
	Config config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tally CLI. Flag defaults
// come from cfg.
func NewRootCommand(cfg config.Config) *cobra.Command {
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "tally - sortable product table",
		Long:  "Edit prices and quantities, sort by any column and keep running totals.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, err := table.ParseSortMode(opts.SortMode); err != nil {
				return fmt.Errorf("invalid sort mode: %w", err)
			}
			config.SetupLogging(opts.Config, opts.Verbose, cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.SortMode, "sort-mode", string(cfg.SortMode), "header sort control (shared|column)")
	cmd.PersistentFlags().StringVar(&opts.Dataset, "dataset", cfg.DatasetPath, "CUE dataset file (default: built-in products)")
	cmd.PersistentFlags().StringVar(&opts.Journal, "journal", cfg.JournalPath, "SQLite journal path (default: in-memory)")

	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewUsersCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
