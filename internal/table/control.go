package table

import (
	"fmt"
	"strings"
)

// SortControl decides which direction a column header applies when it is
// activated, and which arrow the header shows.
type SortControl interface {
	// Activate returns the direction to apply for key and advances any
	// control-local state.
	Activate(key SortKey, current SortState) Direction

	// Indicator returns the arrow shown on the header for key. The boolean is
	// false when the header should not emphasise an arrow.
	Indicator(key SortKey, current SortState) (Direction, bool)
}

// SortMode selects a SortControl implementation.
type SortMode string

const (
	// SortModeShared derives everything from the store's sort state.
	SortModeShared SortMode = "shared"

	// SortModeColumn keeps an independent toggle per column.
	SortModeColumn SortMode = "column"
)

// ParseSortMode validates a textual sort mode. Empty text selects
// SortModeShared.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortModeShared:
		return SortModeShared, nil
	case SortModeColumn:
		return SortModeColumn, nil
	}
	return "", fmt.Errorf("invalid sort mode %q: must be %q or %q", s, SortModeShared, SortModeColumn)
}

// NewSortControl returns the control for mode.
func NewSortControl(mode SortMode) SortControl {
	if mode == SortModeColumn {
		return NewColumnControl()
	}
	return SharedControl{}
}

// SharedControl reads the store's sort state only. Activating the active
// column flips its direction; activating any other column sorts it
// ascending. Only the active column shows an arrow, and it always matches
// the applied ordering.
type SharedControl struct{}

// Activate implements SortControl.
func (SharedControl) Activate(key SortKey, current SortState) Direction {
	if key == current.Key {
		return current.Direction.Toggle()
	}
	return Ascending
}

// Indicator implements SortControl.
func (SharedControl) Indicator(key SortKey, current SortState) (Direction, bool) {
	if key == current.Key {
		return current.Direction, true
	}
	return Ascending, false
}

// ColumnControl gives each column its own direction flag, starting at
// Ascending and flipping on every activation regardless of which column was
// sorted last. The arrow shows the direction the column will apply next, so
// after switching columns it can disagree with the visible ordering.
type ColumnControl struct {
	next map[SortKey]Direction
}

// NewColumnControl creates a ColumnControl with every column at Ascending.
func NewColumnControl() *ColumnControl {
	return &ColumnControl{next: make(map[SortKey]Direction, len(SortKeys))}
}

// Activate implements SortControl.
func (c *ColumnControl) Activate(key SortKey, _ SortState) Direction {
	d := c.direction(key)
	c.next[key] = d.Toggle()
	return d
}

// Indicator implements SortControl.
func (c *ColumnControl) Indicator(key SortKey, _ SortState) (Direction, bool) {
	return c.direction(key), true
}

func (c *ColumnControl) direction(key SortKey) Direction {
	if d, ok := c.next[key]; ok {
		return d
	}
	return Ascending
}
