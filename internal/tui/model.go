package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/tally/internal/session"
	tbl "github.com/roach88/tally/internal/table"
)

// Mode identifies what keystrokes currently drive.
type Mode int

const (
	// ModeBrowse moves the row cursor and column focus.
	ModeBrowse Mode = iota
	// ModeEdit routes keystrokes to the price and quantity inputs.
	ModeEdit
)

const (
	fieldPrice = iota
	fieldQuantity
)

// Model is the bubbletea model for a table session.
type Model struct {
	ctx  context.Context
	sess *session.Session
	keys KeyMap

	mode   Mode
	cursor int
	focus  int

	editID   string
	field    int
	price    textinput.Model
	quantity textinput.Model

	status string
	err    error
}

// New creates a model over sess. ctx is passed to every session call.
func New(ctx context.Context, sess *session.Session) Model {
	price := textinput.New()
	price.Prompt = "Price: "
	price.CharLimit = 32

	quantity := textinput.New()
	quantity.Prompt = "Quantity: "
	quantity.CharLimit = 16

	return Model{
		ctx:      ctx,
		sess:     sess,
		keys:     DefaultKeyMap(),
		price:    price,
		quantity: quantity,
		status:   "enter: edit  s/1-4: sort  q: quit",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Mode returns the current input mode.
func (m Model) Mode() Mode { return m.mode }

// Cursor returns the highlighted row index.
func (m Model) Cursor() int { return m.cursor }

// Focus returns the focused column.
func (m Model) Focus() tbl.SortKey { return tbl.SortKeys[m.focus] }

// Err returns the error from the last operation, if any.
func (m Model) Err() error { return m.err }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.mode == ModeEdit {
		return m.updateEdit(keyMsg)
	}
	return m.updateBrowse(keyMsg)
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.sess.Rows())

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Left):
		if m.focus > 0 {
			m.focus--
		}
	case key.Matches(msg, m.keys.Right):
		if m.focus < len(tbl.SortKeys)-1 {
			m.focus++
		}
	case key.Matches(msg, m.keys.Sort):
		m.activate(tbl.SortKeys[m.focus])
	case key.Matches(msg, m.keys.SortKey):
		idx := int(msg.String()[0] - '1')
		m.focus = idx
		m.activate(tbl.SortKeys[idx])
	case key.Matches(msg, m.keys.Edit):
		if n == 0 {
			return m, nil
		}
		return m.startEdit()
	}
	return m, nil
}

// activate clicks a column header and keeps the cursor on the same row.
func (m *Model) activate(col tbl.SortKey) {
	rows := m.sess.Rows()
	var selected string
	if m.cursor < len(rows) {
		selected = rows[m.cursor].ID
	}

	sorted, err := m.sess.Activate(m.ctx, col)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil

	if i := slices.IndexFunc(sorted, func(r tbl.Row) bool { return r.ID == selected }); i >= 0 {
		m.cursor = i
	}
	st := m.sess.State()
	m.status = fmt.Sprintf("sorted by %s %s", st.Key, st.Direction)
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	r := m.sess.Rows()[m.cursor]
	m.mode = ModeEdit
	m.editID = r.ID
	m.field = fieldPrice
	m.price.SetValue(FormatNumber(r.Price))
	m.quantity.SetValue(fmt.Sprint(r.Quantity))
	m.quantity.Blur()
	m.status = "editing " + r.Name
	return m, m.price.Focus()
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModeBrowse
		m.status = "edit cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		r, err := m.sess.EditValues(m.ctx, m.editID,
			tbl.ParsePrice(m.price.Value()), tbl.ParseQuantity(m.quantity.Value()))
		m.mode = ModeBrowse
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("%s: subtotal %s", r.Name, FormatNumber(r.Subtotal))
		return m, nil
	case key.Matches(msg, m.keys.NextItem):
		if m.field == fieldPrice {
			m.field = fieldQuantity
			m.price.Blur()
			return m, m.quantity.Focus()
		}
		m.field = fieldPrice
		m.quantity.Blur()
		return m, m.price.Focus()
	}

	var cmd tea.Cmd
	if m.field == fieldPrice {
		m.price, cmd = m.price.Update(msg)
	} else {
		m.quantity, cmd = m.quantity.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(Render(View{
		Rows:      m.sess.Rows(),
		Totals:    m.sess.Totals(),
		Sort:      m.sess.State(),
		Indicator: m.sess.Indicator,
		Cursor:    m.cursor,
		Focus:     m.focus,
	}))
	b.WriteString("\n")

	if m.mode == ModeEdit {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.price.View(), "  ", m.quantity.View()))
		b.WriteString("\n")
	}
	b.WriteString(renderStatus(m.status, m.err))
	b.WriteString("\n")
	return b.String()
}
