package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/tally/internal/table"
)

// marshalRows converts a row snapshot to JSON TEXT for storage.
// HTML escaping is disabled so product names are stored as written.
func marshalRows(rows []table.Row) (string, error) {
	if rows == nil {
		rows = []table.Row{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rows); err != nil {
		return "", fmt.Errorf("marshal rows: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalRows parses a JSON TEXT row snapshot.
func unmarshalRows(data string) ([]table.Row, error) {
	if data == "" {
		return []table.Row{}, nil
	}
	var rows []table.Row
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, fmt.Errorf("unmarshal rows: %w", err)
	}
	if rows == nil {
		rows = []table.Row{}
	}
	return rows, nil
}
