package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/tally/internal/table"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testRows returns the default dataset with ids row-1..row-3.
func testRows() []table.Row {
	return table.DefaultRows(table.NewFixedGenerator("row-1", "row-2", "row-3"))
}

// createTestSession records a shared-mode session over testRows.
func createTestSession(t *testing.T, s *Store, id string) Session {
	t.Helper()
	sess := Session{ID: id, SortMode: table.SortModeShared, Rows: testRows()}
	if err := s.CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	return sess
}
