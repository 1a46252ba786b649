package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/session"
	"github.com/roach88/tally/internal/table"
	"github.com/roach88/tally/internal/tui"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Edits  []string // "ref=price,quantity"
	Clicks []string // header activations, in order
	Sort   string
	Dir    string
}

// ShowResult is the JSON payload of the show command.
type ShowResult struct {
	SessionID  string            `json:"session_id"`
	SortMode   table.SortMode    `json:"sort_mode"`
	Rows       []table.Row       `json:"rows"`
	Totals     table.Totals      `json:"totals"`
	Sort       table.SortState   `json:"sort"`
	Indicators map[string]string `json:"indicators"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Apply edits and sorts, then print the table",
		Long: `Print the product table after applying edits and sorts.

Operations apply in this order: every --edit, then every --click, then
--sort. Rows are referenced by id, 1-based position or exact name. Price
and quantity are free text; anything that is not a valid non-negative
number becomes 0.

Exit codes:
  0 - Table printed
  1 - An operation was rejected (unknown row, bad sort key)
  2 - Command error (bad flag syntax, dataset or journal errors)

Examples:
  tally show
  tally show --edit "Nintendo switch=250,2" --sort subtotal --dir desc
  tally show --click price --click price --format json
  tally show --dataset ./shop.cue --journal ./tally.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Edits, "edit", nil, `edit a row: "ref=price,quantity" (repeatable)`)
	cmd.Flags().StringArrayVar(&opts.Clicks, "click", nil, "activate a column header (repeatable)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort key (name|price|quantity|subtotal)")
	cmd.Flags().StringVar(&opts.Dir, "dir", "asc", "sort direction (asc|desc)")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	edits := make([]editArg, 0, len(opts.Edits))
	for _, raw := range opts.Edits {
		e, err := parseEditArg(raw)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --edit", err)
		}
		edits = append(edits, e)
	}

	sess, st, err := openSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := applyOperations(ctx, sess, edits, opts); err != nil {
		return err
	}

	if opts.Format == "json" {
		return outputShowJSON(opts.RootOptions, cmd, sess)
	}
	return outputShowText(cmd, sess)
}

func applyOperations(ctx context.Context, sess *session.Session, edits []editArg, opts *ShowOptions) error {
	for _, e := range edits {
		if _, err := sess.Edit(ctx, e.Ref, e.Price, e.Quantity); err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("edit %q rejected", e.Ref), err)
		}
	}

	for _, c := range opts.Clicks {
		key, err := table.ParseSortKey(c)
		if err != nil {
			return WrapExitError(ExitFailure, "click rejected", err)
		}
		if _, err := sess.Activate(ctx, key); err != nil {
			return WrapExitError(ExitFailure, "click rejected", err)
		}
	}

	if opts.Sort != "" {
		key, err := table.ParseSortKey(opts.Sort)
		if err != nil {
			return WrapExitError(ExitFailure, "sort rejected", err)
		}
		dir, err := table.ParseDirection(opts.Dir)
		if err != nil {
			return WrapExitError(ExitFailure, "sort rejected", err)
		}
		if _, err := sess.Sort(ctx, key, dir); err != nil {
			return WrapExitError(ExitFailure, "sort rejected", err)
		}
	}
	return nil
}

// editArg is a parsed --edit value.
type editArg struct {
	Ref      string
	Price    string
	Quantity string
}

// parseEditArg splits "ref=price,quantity". The last '=' separates the
// reference so that names may contain '='.
func parseEditArg(raw string) (editArg, error) {
	i := strings.LastIndex(raw, "=")
	if i <= 0 {
		return editArg{}, fmt.Errorf("%q: expected ref=price,quantity", raw)
	}
	price, quantity, ok := strings.Cut(raw[i+1:], ",")
	if !ok {
		return editArg{}, fmt.Errorf("%q: expected ref=price,quantity", raw)
	}
	return editArg{Ref: raw[:i], Price: price, Quantity: quantity}, nil
}

func indicators(sess *session.Session) map[string]string {
	out := make(map[string]string, len(table.SortKeys))
	for _, k := range table.SortKeys {
		if d, ok := sess.Indicator(k); ok {
			out[string(k)] = string(d)
		}
	}
	return out
}

func outputShowJSON(opts *RootOptions, cmd *cobra.Command, sess *session.Session) error {
	return newFormatter(opts, cmd).Success(ShowResult{
		SessionID:  sess.ID(),
		SortMode:   sess.SortMode(),
		Rows:       sess.Rows(),
		Totals:     sess.Totals(),
		Sort:       sess.State(),
		Indicators: indicators(sess),
	})
}

func outputShowText(cmd *cobra.Command, sess *session.Session) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, tui.Render(tui.View{
		Rows:      sess.Rows(),
		Totals:    sess.Totals(),
		Sort:      sess.State(),
		Indicator: sess.Indicator,
		Cursor:    -1,
		Focus:     -1,
	}))
	st := sess.State()
	fmt.Fprintf(w, "Sorted by %s %s (session %s)\n", st.Key, st.Direction, sess.ID())
	return nil
}
