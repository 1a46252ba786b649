package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tbl "github.com/roach88/tally/internal/table"
	"github.com/roach88/tally/internal/testutil"
)

func newTestModel(t *testing.T, mode tbl.SortMode) Model {
	t.Helper()
	return New(context.Background(), testutil.NewSession(t, "tui", mode, nil))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, runes(string(r)))
	}
	return msgs
}

func TestModel_CursorMovement(t *testing.T) {
	m := newTestModel(t, tbl.SortModeShared)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.Cursor(), "cursor stops at the last row")

	m = send(t, m, runes("k"), runes("k"), runes("k"))
	assert.Equal(t, 0, m.Cursor(), "cursor stops at the first row")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, runes("l"))
	assert.Equal(t, tbl.SortByQuantity, m.Focus())
	m = send(t, m, runes("h"), runes("h"), runes("h"))
	assert.Equal(t, tbl.SortByName, m.Focus())
}

func TestModel_SortKeepsCursorOnRow(t *testing.T) {
	m := newTestModel(t, tbl.SortModeShared)
	require.Equal(t, "Nintendo switch", m.sess.Rows()[m.Cursor()].Name)

	m = send(t, m, runes("2"))
	assert.Equal(t, tbl.SortState{Key: tbl.SortByPrice, Direction: tbl.Ascending}, m.sess.State())
	assert.Equal(t, tbl.SortByPrice, m.Focus())
	assert.Equal(t, 1, m.Cursor())
	assert.Equal(t, "Nintendo switch", m.sess.Rows()[m.Cursor()].Name)

	m = send(t, m, runes("s"))
	assert.Equal(t, tbl.SortState{Key: tbl.SortByPrice, Direction: tbl.Descending}, m.sess.State())
	assert.Equal(t, "Nintendo switch", m.sess.Rows()[m.Cursor()].Name)
}

func TestModel_EditRow(t *testing.T) {
	m := newTestModel(t, tbl.SortModeShared)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ModeEdit, m.Mode())
	assert.Contains(t, m.View(), "Price: 250")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m = send(t, m, typeText("10")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyCtrlU})
	m = send(t, m, typeText("3")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ModeBrowse, m.Mode())
	require.NoError(t, m.Err())
	r := m.sess.Rows()[0]
	assert.Equal(t, 10.0, r.Price)
	assert.Equal(t, 3, r.Quantity)
	assert.Equal(t, 30.0, r.Subtotal)
	assert.Equal(t, tbl.Totals{Price: 10 + 199 + 300, Quantity: 3, Subtotal: 30}, m.sess.Totals())
}

func TestModel_EditCoercesBadInput(t *testing.T) {
	m := newTestModel(t, tbl.SortModeShared)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyCtrlU})
	m = send(t, m, typeText("abc")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NoError(t, m.Err())
	assert.Equal(t, 0.0, m.sess.Rows()[0].Price)
}

func TestModel_EditCancel(t *testing.T) {
	m := newTestModel(t, tbl.SortModeShared)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyCtrlU})
	m = send(t, m, typeText("1")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ModeBrowse, m.Mode())
	assert.Equal(t, 250.0, m.sess.Rows()[0].Price)
}

func TestModel_QuitOnlyWhileBrowsing(t *testing.T) {
	m := newTestModel(t, tbl.SortModeShared)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyCtrlU}, runes("q"))
	assert.Equal(t, ModeEdit, m.Mode())
}

func TestModel_ColumnModeIndicators(t *testing.T) {
	m := newTestModel(t, tbl.SortModeColumn)

	m = send(t, m, runes("2"), runes("1"))
	view := m.View()
	assert.Contains(t, view, "Price "+ArrowDown)
	assert.Contains(t, view, "Name "+ArrowDown)
	assert.Contains(t, view, "Quantity "+ArrowUp)
}

func TestModel_ViewShowsTotals(t *testing.T) {
	m := newTestModel(t, tbl.SortModeShared)
	view := m.View()

	assert.Contains(t, view, "Nintendo 3DS")
	assert.Contains(t, view, "Total")
	assert.Contains(t, view, "749")
	assert.Contains(t, view, "Name "+ArrowUp)
	assert.NotContains(t, view, "Price "+ArrowUp)
}
