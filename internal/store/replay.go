package store

import (
	"context"
	"fmt"

	"github.com/roach88/tally/internal/table"
)

// ReplayResult is a session rebuilt from the journal.
type ReplayResult struct {
	Session Session
	Table   *table.Store
	Events  []Event
}

// Replay rebuilds a session's table by applying its events, in seq order, to
// the recorded snapshot. Because only applied operations are journaled, any
// event that fails to apply means the journal and the table logic disagree;
// Replay reports it with the offending seq.
func (s *Store) Replay(ctx context.Context, sessionID string) (*ReplayResult, error) {
	sess, err := s.ReadSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return s.replaySession(ctx, sess)
}

// ReplayLatest replays the most recently recorded session.
func (s *Store) ReplayLatest(ctx context.Context) (*ReplayResult, error) {
	sess, err := s.LatestSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return s.replaySession(ctx, sess)
}

func (s *Store) replaySession(ctx context.Context, sess Session) (*ReplayResult, error) {
	events, err := s.ReadEvents(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	tbl, err := table.NewStore(sess.Rows)
	if err != nil {
		return nil, fmt.Errorf("replay: snapshot: %w", err)
	}

	for _, ev := range events {
		if err := ApplyEvent(tbl, ev); err != nil {
			return nil, fmt.Errorf("replay: seq %d: %w", ev.Seq, err)
		}
	}

	return &ReplayResult{Session: sess, Table: tbl, Events: events}, nil
}

// ApplyEvent applies a single journaled event to a table.
func ApplyEvent(tbl *table.Store, ev Event) error {
	switch ev.Kind {
	case EventEdit:
		return tbl.ApplyEdit(ev.RowID, ev.Price, ev.Quantity)
	case EventSort:
		_, err := tbl.ApplySort(ev.Key, ev.Direction)
		return err
	}
	return fmt.Errorf("unknown event kind %q", ev.Kind)
}
