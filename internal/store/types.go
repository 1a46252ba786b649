package store

import "github.com/roach88/tally/internal/table"

// Session is a recorded run: its id, the sort mode in effect, and the rows
// it started from.
type Session struct {
	ID       string
	SortMode table.SortMode
	Rows     []table.Row
}

// SessionSummary describes a session without its row snapshot.
type SessionSummary struct {
	ID         string         `json:"id"`
	SortMode   table.SortMode `json:"sort_mode"`
	EventCount int            `json:"event_count"`
	LastSeq    int64          `json:"last_seq"`
}

// EventKind distinguishes journaled operations.
type EventKind string

const (
	EventEdit EventKind = "edit"
	EventSort EventKind = "sort"
)

// Event is one applied table operation. Edit events carry RowID, Price and
// Quantity; sort events carry Key and Direction.
type Event struct {
	SessionID string
	Seq       int64
	Kind      EventKind

	RowID    string
	Price    float64
	Quantity int

	Key       table.SortKey
	Direction table.Direction
}

// EditEvent builds an edit event.
func EditEvent(sessionID string, seq int64, rowID string, price float64, quantity int) Event {
	return Event{
		SessionID: sessionID,
		Seq:       seq,
		Kind:      EventEdit,
		RowID:     rowID,
		Price:     price,
		Quantity:  quantity,
	}
}

// SortEvent builds a sort event.
func SortEvent(sessionID string, seq int64, key table.SortKey, dir table.Direction) Event {
	return Event{
		SessionID: sessionID,
		Seq:       seq,
		Kind:      EventSort,
		Key:       key,
		Direction: dir,
	}
}
