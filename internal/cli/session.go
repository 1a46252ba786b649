package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/roach88/tally/internal/session"
	"github.com/roach88/tally/internal/store"
	"github.com/roach88/tally/internal/table"
)

// memoryJournal is the journal path used when none is configured.
const memoryJournal = ":memory:"

// openSession loads the dataset, opens the journal and starts a session.
// The caller closes the returned store.
func openSession(ctx context.Context, opts *RootOptions) (*session.Session, *store.Store, error) {
	rows, err := loadRows(opts.Dataset)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load dataset", err)
	}

	mode, err := table.ParseSortMode(opts.SortMode)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid sort mode", err)
	}

	path := opts.Journal
	if path == "" {
		path = memoryJournal
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open journal", err)
	}

	sess, err := session.New(ctx, rows, session.Options{SortMode: mode, Recorder: st})
	if err != nil {
		st.Close()
		return nil, nil, WrapExitError(ExitCommandError, "failed to start session", err)
	}

	log.Debug().Str("session", sess.ID()).Str("journal", path).Int("rows", len(rows)).Msg("session opened")
	return sess, st, nil
}

// loadRows returns the built-in rows, or the rows of a CUE dataset file.
func loadRows(path string) ([]table.Row, error) {
	if path == "" {
		return table.DefaultRows(table.UUIDGenerator{}), nil
	}
	products, err := table.LoadDataset(path)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return table.BuildRows(products, table.UUIDGenerator{}), nil
}
