package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/tally/internal/table"
)

// ReadSession returns the session with the given id.
// Returns ErrSessionNotFound if it was never recorded.
func (s *Store) ReadSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sort_mode, rows FROM sessions WHERE id = ?
	`, id)
	sess, err := scanSession(row)
	if err != nil {
		return Session{}, fmt.Errorf("read session %s: %w", id, err)
	}
	return sess, nil
}

// LatestSession returns the most recently recorded session.
// Returns ErrSessionNotFound if the journal is empty.
func (s *Store) LatestSession(ctx context.Context) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sort_mode, rows FROM sessions ORDER BY rowid DESC LIMIT 1
	`)
	sess, err := scanSession(row)
	if err != nil {
		return Session{}, fmt.Errorf("read latest session: %w", err)
	}
	return sess, nil
}

func scanSession(row *sql.Row) (Session, error) {
	var (
		sess     Session
		mode     string
		rowsJSON string
	)
	if err := row.Scan(&sess.ID, &mode, &rowsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, err
	}
	rows, err := unmarshalRows(rowsJSON)
	if err != nil {
		return Session{}, err
	}
	sess.SortMode = table.SortMode(mode)
	sess.Rows = rows
	return sess, nil
}

// ListSessions summarizes every recorded session in recording order.
// Returns an empty slice (not nil) for an empty journal.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.sort_mode, COUNT(e.seq), COALESCE(MAX(e.seq), 0)
		FROM sessions s
		LEFT JOIN events e ON e.session_id = s.id
		GROUP BY s.id
		ORDER BY s.rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := []SessionSummary{}
	for rows.Next() {
		var (
			sum  SessionSummary
			mode string
		)
		if err := rows.Scan(&sum.ID, &mode, &sum.EventCount, &sum.LastSeq); err != nil {
			return nil, fmt.Errorf("list sessions: scan: %w", err)
		}
		sum.SortMode = table.SortMode(mode)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: iterate: %w", err)
	}
	return out, nil
}

// ReadEvents returns a session's events ordered by seq.
// Returns an empty slice (not nil) if the session has no events.
func (s *Store) ReadEvents(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, seq, kind, row_id, price, quantity, sort_key, direction
		FROM events
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: iterate: %w", err)
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (Event, error) {
	var (
		ev              Event
		kind            string
		rowID, key, dir sql.NullString
		price           sql.NullFloat64
		quantity        sql.NullInt64
	)
	if err := rows.Scan(&ev.SessionID, &ev.Seq, &kind, &rowID, &price, &quantity, &key, &dir); err != nil {
		return Event{}, fmt.Errorf("scan event: %w", err)
	}
	ev.Kind = EventKind(kind)
	ev.RowID = rowID.String
	ev.Price = price.Float64
	ev.Quantity = int(quantity.Int64)
	ev.Key = table.SortKey(key.String)
	ev.Direction = table.Direction(dir.String)
	return ev, nil
}
