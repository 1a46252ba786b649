package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/roach88/tally/internal/session"
	"github.com/roach88/tally/internal/store"
	"github.com/roach88/tally/internal/table"
)

// DefaultSessionID is the journal session id used when a scenario names none.
const DefaultSessionID = "test-session"

// Harness executes a scenario against a session and its journal.
type Harness struct {
	store   *store.Store
	session *session.Session
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory journal for isolation. Row ids
// come from a fixed generator so traces are reproducible.
//
// Execution flow:
// 1. Create fresh in-memory journal
// 2. Load the dataset and start a session
// 3. Execute steps, checking expect_error
// 4. Evaluate assertions
// 5. Return result with pass/fail, trace, final state and errors
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	rows, err := scenarioRows(scenario)
	if err != nil {
		return nil, err
	}

	mode, err := table.ParseSortMode(scenario.SortMode)
	if err != nil {
		return nil, err
	}

	sessionID := scenario.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	ctx := context.Background()
	nop := zerolog.Nop()
	sess, err := session.New(ctx, rows, session.Options{
		ID:       sessionID,
		SortMode: mode,
		Recorder: st,
		Logger:   &nop,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	h := &Harness{store: st, session: sess}

	result := NewResult()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	result.Final = FinalState{
		Rows:   sess.Rows(),
		Totals: sess.Totals(),
		Sort:   sess.State(),
	}

	actx := &AssertionContext{
		Store:     st,
		Session:   sess,
		SessionID: sessionID,
		Ctx:       ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// scenarioRows loads the scenario's dataset and assigns row-N ids to rows
// that have none.
func scenarioRows(scenario *Scenario) ([]table.Row, error) {
	products := table.DefaultProducts
	if scenario.Dataset != "" {
		loaded, err := table.LoadDataset(scenario.Dataset)
		if err != nil {
			return nil, err
		}
		products = loaded
	}

	ids := make([]string, len(products))
	for i := range ids {
		ids[i] = fmt.Sprintf("row-%d", i+1)
	}
	return table.BuildRows(products, table.NewFixedGenerator(ids...)), nil
}

// executeSteps applies each step and records it in the trace. A step whose
// outcome differs from its expect_error is a scenario failure, not a Run
// error. Journal failures abort the run.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		ev := TraceEvent{Step: i + 1, Op: step.Op(), Args: stepArgs(step)}

		err := h.apply(ctx, step)
		var te *table.Error
		switch {
		case err == nil:
			ev.Outcome = OutcomeApplied
			ev.Seq = h.session.Seq()
		case errors.As(err, &te):
			ev.Outcome = string(te.Code)
		default:
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		result.AddTrace(ev)

		if ev.Outcome != expectedOutcome(step) {
			result.AddError(fmt.Sprintf("step %d (%s): expected %s, got %s",
				i+1, ev.Op, expectedOutcome(step), ev.Outcome))
		}
	}
	return nil
}

func (h *Harness) apply(ctx context.Context, step Step) error {
	switch {
	case step.Edit != nil:
		_, err := h.session.Edit(ctx, step.Edit.Row, step.Edit.Price, step.Edit.Quantity)
		return err
	case step.Sort != nil:
		key, err := table.ParseSortKey(step.Sort.Key)
		if err != nil {
			return err
		}
		dir, err := table.ParseDirection(step.Sort.Direction)
		if err != nil {
			return err
		}
		_, err = h.session.Sort(ctx, key, dir)
		return err
	default:
		key, err := table.ParseSortKey(step.Click)
		if err != nil {
			return err
		}
		_, err = h.session.Activate(ctx, key)
		return err
	}
}

func expectedOutcome(step Step) string {
	if step.ExpectError != "" {
		return step.ExpectError
	}
	return OutcomeApplied
}

func stepArgs(step Step) map[string]string {
	switch {
	case step.Edit != nil:
		return map[string]string{
			"row":      step.Edit.Row,
			"price":    step.Edit.Price,
			"quantity": step.Edit.Quantity,
		}
	case step.Sort != nil:
		return map[string]string{
			"key":       step.Sort.Key,
			"direction": step.Sort.Direction,
		}
	default:
		return map[string]string{"key": step.Click}
	}
}
