package table

import (
	"math"
	"slices"
)

// Store owns the row list and the active sort state.
//
// Store is not safe for concurrent use. Edits and sorts are driven by
// discrete UI events and are applied one at a time.
type Store struct {
	rows  []Row
	index map[string]int
	state SortState
}

// NewStore creates a store holding rows in the given order. Subtotals are
// recomputed from price and quantity, so callers cannot seed an inconsistent
// row. Rows with duplicate IDs are rejected.
func NewStore(rows []Row) (*Store, error) {
	s := &Store{
		rows:  make([]Row, len(rows)),
		index: make(map[string]int, len(rows)),
		state: InitialSortState,
	}
	for i, r := range rows {
		if r.ID == "" {
			return nil, errInvalidArgument("row %d has an empty id", i)
		}
		if _, dup := s.index[r.ID]; dup {
			return nil, errInvalidArgument("duplicate row id %q", r.ID)
		}
		if err := checkValues(r.Price, r.Quantity); err != nil {
			return nil, err
		}
		s.rows[i] = NewRow(r.ID, r.Name, r.Price, r.Quantity)
		s.index[r.ID] = i
	}
	return s, nil
}

// Rows returns a copy of the rows in their current order.
func (s *Store) Rows() []Row {
	return slices.Clone(s.rows)
}

// Row returns the row with the given id.
func (s *Store) Row(id string) (Row, bool) {
	i, ok := s.index[id]
	if !ok {
		return Row{}, false
	}
	return s.rows[i], true
}

// Len returns the number of rows.
func (s *Store) Len() int {
	return len(s.rows)
}

// State returns the active sort state.
func (s *Store) State() SortState {
	return s.state
}

// Totals aggregates the current rows.
func (s *Store) Totals() Totals {
	return Aggregate(s.rows)
}

// ApplyEdit replaces the price and quantity of the row with the given id and
// recomputes its subtotal. Row order is unchanged.
//
// A missing id leaves the table untouched and returns a NOT_FOUND error.
func (s *Store) ApplyEdit(id string, price float64, quantity int) error {
	i, ok := s.index[id]
	if !ok {
		return errNotFound(id)
	}
	if err := checkValues(price, quantity); err != nil {
		err.RowID = id
		return err
	}
	r := s.rows[i]
	s.rows[i] = NewRow(r.ID, r.Name, price, quantity)
	return nil
}

// ApplySort reorders the rows by key and direction and makes them the active
// sort state. It returns a copy of the new ordering.
func (s *Store) ApplySort(key SortKey, dir Direction) ([]Row, error) {
	if !key.Valid() {
		return nil, errInvalidArgument("unknown sort key %q", key)
	}
	if !dir.Valid() {
		return nil, errInvalidArgument("unknown sort direction %q", dir)
	}
	s.rows = Sorted(s.rows, key, dir)
	for i, r := range s.rows {
		s.index[r.ID] = i
	}
	s.state = SortState{Key: key, Direction: dir}
	return s.Rows(), nil
}

// Restore replaces the rows and sort state wholesale, as if the store had
// been created from rows and then sorted to state. Rows are validated the
// same way NewStore validates them; on error the store is unchanged.
func (s *Store) Restore(rows []Row, state SortState) error {
	if !state.Key.Valid() || !state.Direction.Valid() {
		return errInvalidArgument("invalid sort state %s/%s", state.Key, state.Direction)
	}
	n, err := NewStore(rows)
	if err != nil {
		return err
	}
	n.state = state
	*s = *n
	return nil
}

func checkValues(price float64, quantity int) *Error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return errInvalidArgument("price must be finite, got %v", price)
	}
	if price < 0 {
		return errInvalidArgument("price must be non-negative, got %v", price)
	}
	if quantity < 0 {
		return errInvalidArgument("quantity must be non-negative, got %d", quantity)
	}
	if st := subtotal(price, quantity); math.IsInf(st, 0) {
		return errInvalidArgument("subtotal of %v x %d overflows", price, quantity)
	}
	return nil
}
