// Package session drives a product table the way a user interface does:
// free-text edits, column-header sort activations and direct sorts, each
// journaled once applied.
package session

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/roach88/tally/internal/store"
	"github.com/roach88/tally/internal/table"
)

// Recorder receives the operations a session applied. *store.Store
// implements it.
type Recorder interface {
	CreateSession(ctx context.Context, sess store.Session) error
	AppendEvent(ctx context.Context, ev store.Event) error
}

// Options configure a Session. The zero value is usable: a UUIDv7 session
// id, the shared sort control, no journal and the global logger.
type Options struct {
	ID       string
	SortMode table.SortMode
	Recorder Recorder
	Logger   *zerolog.Logger
}

// Session owns a table store and applies user operations to it.
//
// Not safe for concurrent use; callers serialize operations the way a UI
// event loop does.
type Session struct {
	id       string
	mode     table.SortMode
	table    *table.Store
	control  table.SortControl
	recorder Recorder
	clock    *Clock
	log      zerolog.Logger
}

// New creates a session over rows and, when a recorder is configured,
// records the initial snapshot.
func New(ctx context.Context, rows []table.Row, opts Options) (*Session, error) {
	tbl, err := table.NewStore(rows)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	id := opts.ID
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}
	mode := opts.SortMode
	if mode == "" {
		mode = table.SortModeShared
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	s := &Session{
		id:       id,
		mode:     mode,
		table:    tbl,
		control:  table.NewSortControl(mode),
		recorder: opts.Recorder,
		clock:    NewClock(),
		log:      logger.With().Str("session", id).Logger(),
	}

	if s.recorder != nil {
		snap := store.Session{ID: id, SortMode: mode, Rows: tbl.Rows()}
		if err := s.recorder.CreateSession(ctx, snap); err != nil {
			return nil, fmt.Errorf("new session: %w", err)
		}
	}

	s.log.Debug().Int("rows", tbl.Len()).Str("sort_mode", string(mode)).Msg("session started")
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// SortMode returns the sort control mode.
func (s *Session) SortMode() table.SortMode { return s.mode }

// Seq returns the seq of the last applied operation, 0 before any.
func (s *Session) Seq() int64 { return s.clock.Current() }

// Rows returns the rows in display order.
func (s *Session) Rows() []table.Row { return s.table.Rows() }

// Totals returns the footer totals.
func (s *Session) Totals() table.Totals { return s.table.Totals() }

// State returns the applied sort state.
func (s *Session) State() table.SortState { return s.table.State() }

// Indicator returns the header arrow for key.
func (s *Session) Indicator(key table.SortKey) (table.Direction, bool) {
	return s.control.Indicator(key, s.table.State())
}

// Resolve finds a row by id, 1-based display position or exact name, in
// that order.
func (s *Session) Resolve(ref string) (table.Row, error) {
	if r, ok := s.table.Row(ref); ok {
		return r, nil
	}
	rows := s.table.Rows()
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(rows) {
		return rows[n-1], nil
	}
	for _, r := range rows {
		if r.Name == ref {
			return r, nil
		}
	}
	return table.Row{}, &table.Error{Code: table.ErrCodeNotFound, Message: "no row matches reference", RowID: ref}
}

// Edit coerces free-text price and quantity and applies them to the row
// named by ref. Unparseable text becomes 0.
func (s *Session) Edit(ctx context.Context, ref, priceText, quantityText string) (table.Row, error) {
	r, err := s.Resolve(ref)
	if err != nil {
		s.log.Warn().Str("ref", ref).Msg("edit ignored: unknown row")
		return table.Row{}, err
	}
	return s.EditValues(ctx, r.ID, table.ParsePrice(priceText), table.ParseQuantity(quantityText))
}

// EditValues applies numeric values to the row with the given id.
//
// If the edit cannot be journaled the row is put back, so the table never
// holds a change the journal does not.
func (s *Session) EditValues(ctx context.Context, id string, price float64, quantity int) (table.Row, error) {
	prev, _ := s.table.Row(id)
	if err := s.table.ApplyEdit(id, price, quantity); err != nil {
		s.log.Warn().Err(err).Str("row", id).Msg("edit rejected")
		return table.Row{}, err
	}
	r, _ := s.table.Row(id)

	if err := s.record(ctx, store.EditEvent(s.id, s.clock.Next(), id, price, quantity)); err != nil {
		if uerr := s.table.ApplyEdit(id, prev.Price, prev.Quantity); uerr != nil {
			s.log.Error().Err(uerr).Str("row", id).Msg("undo edit failed")
		}
		return prev, err
	}

	s.log.Debug().
		Str("row", id).
		Float64("price", price).
		Int("quantity", quantity).
		Float64("subtotal", r.Subtotal).
		Msg("row edited")
	return r, nil
}

// Sort applies an explicit key and direction.
//
// A sort that cannot be journaled is undone like an edit.
func (s *Session) Sort(ctx context.Context, key table.SortKey, dir table.Direction) ([]table.Row, error) {
	prevRows, prevState := s.table.Rows(), s.table.State()
	rows, err := s.table.ApplySort(key, dir)
	if err != nil {
		s.log.Warn().Err(err).Msg("sort rejected")
		return nil, err
	}

	if err := s.record(ctx, store.SortEvent(s.id, s.clock.Next(), key, dir)); err != nil {
		if uerr := s.table.Restore(prevRows, prevState); uerr != nil {
			s.log.Error().Err(uerr).Msg("undo sort failed")
		}
		return prevRows, err
	}

	s.log.Debug().Str("key", string(key)).Str("direction", string(dir)).Msg("rows sorted")
	return rows, nil
}

// Activate handles a click on the header for key: the sort control picks
// the direction, then the rows are sorted.
func (s *Session) Activate(ctx context.Context, key table.SortKey) ([]table.Row, error) {
	if !key.Valid() {
		return nil, &table.Error{Code: table.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown sort key %q", key)}
	}
	dir := s.control.Activate(key, s.table.State())
	return s.Sort(ctx, key, dir)
}

func (s *Session) record(ctx context.Context, ev store.Event) error {
	if s.recorder == nil {
		return nil
	}
	if err := s.recorder.AppendEvent(ctx, ev); err != nil {
		s.log.Error().Err(err).Int64("seq", ev.Seq).Msg("journal append failed")
		return fmt.Errorf("record %s: %w", ev.Kind, err)
	}
	return nil
}
