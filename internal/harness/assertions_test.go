package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tally/internal/table"
	"github.com/roach88/tally/internal/testutil"
)

// newAssertionContext builds a session over the default dataset with a
// journal, edits row-3, and returns the result snapshot.
func newAssertionContext(t *testing.T) (*Result, *AssertionContext) {
	t.Helper()

	st := testutil.NewJournal(t)
	sess := testutil.NewSession(t, "s1", table.SortModeShared, st)
	ctx := context.Background()

	_, err := sess.Edit(ctx, "row-3", "300", "2")
	require.NoError(t, err)

	result := NewResult()
	result.AddTrace(TraceEvent{Step: 1, Op: OpEdit, Args: map[string]string{"row": "row-3"}, Outcome: OutcomeApplied, Seq: 1})
	result.Final = FinalState{Rows: sess.Rows(), Totals: sess.Totals(), Sort: sess.State()}

	return result, &AssertionContext{Store: st, Session: sess, SessionID: "s1", Ctx: ctx}
}

func TestEvaluateAssertions(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		wantErr   string
	}{
		{
			name:      "order matches",
			assertion: Assertion{Type: AssertOrder, Names: []string{"Nintendo switch", "Nintendo 3DS", "playstation 4"}},
		},
		{
			name:      "order differs",
			assertion: Assertion{Type: AssertOrder, Names: []string{"Nintendo 3DS", "Nintendo switch", "playstation 4"}},
			wantErr:   "Assertion failed: order",
		},
		{
			name:      "order too short",
			assertion: Assertion{Type: AssertOrder, Names: []string{"Nintendo switch"}},
			wantErr:   "Assertion failed: order",
		},
		{
			name:      "totals match",
			assertion: Assertion{Type: AssertTotals, Price: ptrFloat(749), Quantity: ptrInt(2), Subtotal: ptrFloat(600)},
		},
		{
			name:      "totals subtotal differs",
			assertion: Assertion{Type: AssertTotals, Subtotal: ptrFloat(1)},
			wantErr:   "subtotal=1",
		},
		{
			name:      "row by name",
			assertion: Assertion{Type: AssertRow, Row: "playstation 4", Quantity: ptrInt(2), Subtotal: ptrFloat(600)},
		},
		{
			name:      "row by position",
			assertion: Assertion{Type: AssertRow, Row: "1", Price: ptrFloat(250)},
		},
		{
			name:      "row missing",
			assertion: Assertion{Type: AssertRow, Row: "ghost", Price: ptrFloat(0)},
			wantErr:   "no such row",
		},
		{
			name:      "row value differs",
			assertion: Assertion{Type: AssertRow, Row: "row-3", Price: ptrFloat(1)},
			wantErr:   "Assertion failed: row",
		},
		{
			name:      "sort state matches",
			assertion: Assertion{Type: AssertSortState, Key: "name", Direction: "ascending"},
		},
		{
			name:      "sort state differs",
			assertion: Assertion{Type: AssertSortState, Key: "price", Direction: "asc"},
			wantErr:   "Assertion failed: sort_state",
		},
		{
			name:      "journal count matches",
			assertion: Assertion{Type: AssertJournalCount, Kind: "edit", Count: 1},
		},
		{
			name:      "journal count differs",
			assertion: Assertion{Type: AssertJournalCount, Kind: "sort", Count: 1},
			wantErr:   "0 sort events",
		},
		{
			name:      "unknown type",
			assertion: Assertion{Type: "vibes"},
			wantErr:   "unknown assertion type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, actx := newAssertionContext(t)
			errs := EvaluateAssertions(result, []Assertion{tt.assertion}, actx)
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.wantErr)
			assert.Contains(t, errs[0], "assertions[0]")
		})
	}
}

func TestAssertionError_IncludesTrace(t *testing.T) {
	err := &AssertionError{
		Type:     AssertOrder,
		Expected: `["a"]`,
		Actual:   `["b"]`,
		Trace: []TraceEvent{
			{Step: 1, Op: OpClick, Args: map[string]string{"key": "price"}, Outcome: OutcomeApplied},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: order")
	assert.Contains(t, msg, `Expected: ["a"]`)
	assert.Contains(t, msg, "Full trace:")
	assert.Contains(t, msg, "[1] click map[key:price] -> applied")
}
