package harness

import "github.com/roach88/tally/internal/table"

// TraceEvent records one executed step.
type TraceEvent struct {
	Step    int               `json:"step"`
	Op      string            `json:"op"`
	Args    map[string]string `json:"args"`
	Outcome string            `json:"outcome"` // "applied" or a table error code
	Seq     int64             `json:"seq,omitempty"`
}

// Outcome of a step that changed the table.
const OutcomeApplied = "applied"

// FinalState is the table as the scenario left it.
type FinalState struct {
	Rows   []table.Row     `json:"rows"`
	Totals table.Totals    `json:"totals"`
	Sort   table.SortState `json:"sort"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every step behaved as expected and
	// every assertion held.
	Pass bool `json:"pass"`

	// Trace contains the executed steps in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the table after the last step.
	Final FinalState `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
