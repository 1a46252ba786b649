package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/tally/internal/session"
	"github.com/roach88/tally/internal/store"
	"github.com/roach88/tally/internal/table"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %v -> %s\n", event.Step, event.Op, event.Args, event.Outcome)
	}

	return buf.String()
}

// AssertionContext provides what assertions need beyond the result.
type AssertionContext struct {
	Store     *store.Store
	Session   *session.Session
	SessionID string
	Ctx       context.Context
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertOrder:
		return assertOrder(result, a)
	case AssertTotals:
		return assertTotals(result, a)
	case AssertRow:
		return assertRow(result, a, actx)
	case AssertSortState:
		return assertSortState(result, a)
	case AssertJournalCount:
		return assertJournalCount(result, a, actx)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

// assertOrder checks that row names appear in exactly the given order.
func assertOrder(result *Result, a Assertion) error {
	got := make([]string, len(result.Final.Rows))
	for i, r := range result.Final.Rows {
		got[i] = r.Name
	}
	if strings.Join(got, "\x00") != strings.Join(a.Names, "\x00") {
		return &AssertionError{
			Type:     AssertOrder,
			Expected: fmt.Sprintf("%q", a.Names),
			Actual:   fmt.Sprintf("%q", got),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertTotals checks the footer totals. Unset fields are not checked.
func assertTotals(result *Result, a Assertion) error {
	t := result.Final.Totals
	if mismatch := compareValues(a, t.Price, t.Quantity, t.Subtotal); mismatch != "" {
		return &AssertionError{
			Type:     AssertTotals,
			Expected: mismatch,
			Actual:   fmt.Sprintf("price=%v quantity=%d subtotal=%v", t.Price, t.Quantity, t.Subtotal),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertRow checks one row's values. Unset fields are not checked.
func assertRow(result *Result, a Assertion, actx *AssertionContext) error {
	r, err := actx.Session.Resolve(a.Row)
	if err != nil {
		return &AssertionError{
			Type:     AssertRow,
			Expected: fmt.Sprintf("row %q", a.Row),
			Actual:   "no such row",
			Trace:    result.Trace,
		}
	}
	if mismatch := compareValues(a, r.Price, r.Quantity, r.Subtotal); mismatch != "" {
		return &AssertionError{
			Type:     AssertRow,
			Expected: fmt.Sprintf("row %q %s", a.Row, mismatch),
			Actual:   fmt.Sprintf("price=%v quantity=%d subtotal=%v", r.Price, r.Quantity, r.Subtotal),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertSortState checks the applied sort key and direction.
func assertSortState(result *Result, a Assertion) error {
	key, err := table.ParseSortKey(a.Key)
	if err != nil {
		return err
	}
	dir, err := table.ParseDirection(a.Direction)
	if err != nil {
		return err
	}
	want := table.SortState{Key: key, Direction: dir}
	if got := result.Final.Sort; got != want {
		return &AssertionError{
			Type:     AssertSortState,
			Expected: fmt.Sprintf("%s %s", want.Key, want.Direction),
			Actual:   fmt.Sprintf("%s %s", got.Key, got.Direction),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertJournalCount reads the journal back and counts events of a kind.
func assertJournalCount(result *Result, a Assertion, actx *AssertionContext) error {
	events, err := actx.Store.ReadEvents(actx.Ctx, actx.SessionID)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	count := 0
	for _, ev := range events {
		if string(ev.Kind) == a.Kind {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertJournalCount,
			Expected: fmt.Sprintf("%d %s events", a.Count, a.Kind),
			Actual:   fmt.Sprintf("%d %s events", count, a.Kind),
			Trace:    result.Trace,
		}
	}
	return nil
}

// compareValues returns a description of the expected values when any set
// field differs, or "" when all set fields match.
func compareValues(a Assertion, price float64, quantity int, subtotal float64) string {
	ok := true
	var parts []string
	if a.Price != nil {
		parts = append(parts, fmt.Sprintf("price=%v", *a.Price))
		ok = ok && *a.Price == price
	}
	if a.Quantity != nil {
		parts = append(parts, fmt.Sprintf("quantity=%d", *a.Quantity))
		ok = ok && *a.Quantity == quantity
	}
	if a.Subtotal != nil {
		parts = append(parts, fmt.Sprintf("subtotal=%v", *a.Subtotal))
		ok = ok && *a.Subtotal == subtotal
	}
	if ok {
		return ""
	}
	return strings.Join(parts, " ")
}
