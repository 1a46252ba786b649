// Package testutil provides deterministic fixtures for tests: rows with
// predictable ids, sessions with a silent logger and in-memory journals.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/session"
	"github.com/roach88/tally/internal/store"
	"github.com/roach88/tally/internal/table"
)

// RowIDs returns "row-1" through "row-n".
func RowIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("row-%d", i+1)
	}
	return ids
}

// Rows returns the built-in products with ids row-1, row-2 and row-3.
func Rows() []table.Row {
	return table.DefaultRows(table.NewFixedGenerator(RowIDs(len(table.DefaultProducts))...))
}

// NopLogger returns a logger that discards everything.
func NopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// NewJournal opens an in-memory journal that is closed when the test ends.
func NewJournal(t testing.TB) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// NewSession starts a session over Rows with the given id and sort mode.
// rec may be nil for an unjournaled session.
func NewSession(t testing.TB, id string, mode table.SortMode, rec session.Recorder) *session.Session {
	t.Helper()
	sess, err := session.New(context.Background(), Rows(), session.Options{
		ID:       id,
		SortMode: mode,
		Recorder: rec,
		Logger:   NopLogger(),
	})
	require.NoError(t, err)
	return sess
}
