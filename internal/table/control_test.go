package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedControl_TogglesActiveColumn(t *testing.T) {
	c := SharedControl{}
	state := SortState{Key: SortByPrice, Direction: Ascending}

	assert.Equal(t, Descending, c.Activate(SortByPrice, state))
	assert.Equal(t, Ascending, c.Activate(SortByPrice, SortState{Key: SortByPrice, Direction: Descending}))
}

func TestSharedControl_NewColumnStartsAscending(t *testing.T) {
	c := SharedControl{}
	state := SortState{Key: SortByPrice, Direction: Descending}

	assert.Equal(t, Ascending, c.Activate(SortByName, state))
}

func TestSharedControl_IndicatorFollowsState(t *testing.T) {
	c := SharedControl{}
	state := SortState{Key: SortByQuantity, Direction: Descending}

	d, shown := c.Indicator(SortByQuantity, state)
	assert.True(t, shown)
	assert.Equal(t, Descending, d)

	_, shown = c.Indicator(SortByName, state)
	assert.False(t, shown)
}

func TestSharedControl_DrivesStore(t *testing.T) {
	s := newTestStore(t)
	c := SharedControl{}

	for _, want := range []Direction{Ascending, Descending, Ascending} {
		dir := c.Activate(SortByPrice, s.State())
		_, err := s.ApplySort(SortByPrice, dir)
		require.NoError(t, err)
		assert.Equal(t, want, s.State().Direction)

		shownDir, shown := c.Indicator(SortByPrice, s.State())
		assert.True(t, shown)
		assert.Equal(t, s.State().Direction, shownDir)
	}
}

func TestColumnControl_IndependentToggles(t *testing.T) {
	c := NewColumnControl()
	var state SortState

	assert.Equal(t, Ascending, c.Activate(SortByName, state))
	assert.Equal(t, Descending, c.Activate(SortByName, state))
	// Price has its own flag and starts fresh.
	assert.Equal(t, Ascending, c.Activate(SortByPrice, state))
	// Name resumes where it left off, not at a default.
	assert.Equal(t, Ascending, c.Activate(SortByName, state))
}

func TestColumnControl_IndicatorShowsNextDirection(t *testing.T) {
	s := newTestStore(t)
	c := NewColumnControl()

	dir := c.Activate(SortByPrice, s.State())
	_, err := s.ApplySort(SortByPrice, dir)
	require.NoError(t, err)

	// The rows are ascending by price but the arrow already points down.
	shownDir, shown := c.Indicator(SortByPrice, s.State())
	assert.True(t, shown)
	assert.Equal(t, Ascending, s.State().Direction)
	assert.Equal(t, Descending, shownDir)

	untouched, _ := c.Indicator(SortBySubtotal, s.State())
	assert.Equal(t, Ascending, untouched)
}

func TestParseSortMode(t *testing.T) {
	m, err := ParseSortMode("")
	require.NoError(t, err)
	assert.Equal(t, SortModeShared, m)

	m, err = ParseSortMode("COLUMN")
	require.NoError(t, err)
	assert.Equal(t, SortModeColumn, m)

	_, err = ParseSortMode("global")
	assert.Error(t, err)
}

func TestNewSortControl(t *testing.T) {
	assert.IsType(t, SharedControl{}, NewSortControl(SortModeShared))
	assert.IsType(t, &ColumnControl{}, NewSortControl(SortModeColumn))
}
