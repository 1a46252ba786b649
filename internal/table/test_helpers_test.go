package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestStore creates a store over the default dataset with ids row-1..row-3.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(DefaultRows(NewFixedGenerator("row-1", "row-2", "row-3")))
	require.NoError(t, err)
	return s
}

// names returns row names in order.
func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}
