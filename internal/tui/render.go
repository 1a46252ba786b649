package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	tbl "github.com/roach88/tally/internal/table"
)

// Arrow glyphs for the sort indicator.
const (
	ArrowUp   = "▲"
	ArrowDown = "▼"
)

var (
	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	activeStyle = headerStyle.Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255"))
	totalsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	focusStyle  = lipgloss.NewStyle().Underline(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// View is everything needed to draw the table once.
type View struct {
	Rows   []tbl.Row
	Totals tbl.Totals
	Sort   tbl.SortState

	// Indicator reports the arrow a column header shows, if any.
	Indicator func(tbl.SortKey) (tbl.Direction, bool)

	// Cursor is the highlighted row, or -1 for none.
	Cursor int

	// Focus is the highlighted header column, or -1 for none.
	Focus int
}

// Arrow returns the glyph for a direction.
func Arrow(d tbl.Direction) string {
	if d == tbl.Descending {
		return ArrowDown
	}
	return ArrowUp
}

// HeaderLabel returns a column header: its capitalised label followed by
// the indicator arrow when the control shows one.
func HeaderLabel(key tbl.SortKey, indicator func(tbl.SortKey) (tbl.Direction, bool)) string {
	label := key.Label()
	if indicator == nil {
		return label
	}
	if d, ok := indicator(key); ok {
		label += " " + Arrow(d)
	}
	return label
}

// FormatNumber renders a float without a trailing ".0" for whole values.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Render draws the table with a header, one line per row and a totals
// footer. The active sort column is bold.
func Render(v View) string {
	headers := make([]string, len(tbl.SortKeys))
	for i, k := range tbl.SortKeys {
		headers[i] = HeaderLabel(k, v.Indicator)
	}

	data := make([][]string, 0, len(v.Rows)+1)
	for _, r := range v.Rows {
		data = append(data, []string{
			r.Name,
			FormatNumber(r.Price),
			strconv.Itoa(r.Quantity),
			FormatNumber(r.Subtotal),
		})
	}
	data = append(data, []string{
		"Total",
		FormatNumber(v.Totals.Price),
		strconv.Itoa(v.Totals.Quantity),
		FormatNumber(v.Totals.Subtotal),
	})
	footer := len(data) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				s := headerStyle
				if tbl.SortKeys[col] == v.Sort.Key {
					s = activeStyle
				}
				if col == v.Focus {
					s = s.Inherit(focusStyle)
				}
				return s
			}
			s := cellStyle
			if col > 0 {
				s = numberStyle
			}
			switch {
			case row == footer:
				s = s.Inherit(totalsStyle)
			case row == v.Cursor:
				s = s.Inherit(cursorStyle)
			}
			return s
		})

	return t.String()
}

// renderStatus formats the status line under the table.
func renderStatus(status string, err error) string {
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("error: %v", err))
	}
	return statusStyle.Render(status)
}
