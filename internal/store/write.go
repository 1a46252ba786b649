package store

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSession records a session and its initial row snapshot.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - recording the same
// session twice keeps the first snapshot.
func (s *Store) CreateSession(ctx context.Context, sess Session) error {
	if sess.ID == "" {
		return fmt.Errorf("create session: empty id")
	}
	rowsJSON, err := marshalRows(sess.Rows)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, sort_mode, rows)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, sess.ID, string(sess.SortMode), rowsJSON)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// AppendEvent inserts an event into the journal.
// Uses ON CONFLICT DO NOTHING for idempotency - an event with a seq that is
// already recorded for the session is silently ignored.
//
// Note: The session referenced by SessionID must exist (foreign key constraint).
func (s *Store) AppendEvent(ctx context.Context, ev Event) error {
	var (
		rowID, key, dir sql.NullString
		price           sql.NullFloat64
		quantity        sql.NullInt64
	)
	switch ev.Kind {
	case EventEdit:
		rowID = sql.NullString{String: ev.RowID, Valid: true}
		price = sql.NullFloat64{Float64: ev.Price, Valid: true}
		quantity = sql.NullInt64{Int64: int64(ev.Quantity), Valid: true}
	case EventSort:
		key = sql.NullString{String: string(ev.Key), Valid: true}
		dir = sql.NullString{String: string(ev.Direction), Valid: true}
	default:
		return fmt.Errorf("append event: unknown kind %q", ev.Kind)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events
		(session_id, seq, kind, row_id, price, quantity, sort_key, direction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		ev.SessionID,
		ev.Seq,
		string(ev.Kind),
		rowID,
		price,
		quantity,
		key,
		dir,
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}
