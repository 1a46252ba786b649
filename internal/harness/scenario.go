package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tally/internal/table"
)

// Scenario defines a scripted table session and its expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Dataset is an optional CUE dataset path. Relative paths are resolved
	// against the scenario file's directory. Empty selects the built-in
	// dataset.
	Dataset string `yaml:"dataset,omitempty"`

	// SortMode selects the header sort control: shared (default) or column.
	SortMode string `yaml:"sort_mode,omitempty"`

	// SessionID is the journal session id. Defaults to "test-session".
	SessionID string `yaml:"session_id,omitempty"`

	// Steps are applied in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final table and the journal.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is a single user operation. Exactly one of Edit, Sort and Click is set.
type Step struct {
	Edit  *EditStep `yaml:"edit,omitempty"`
	Sort  *SortStep `yaml:"sort,omitempty"`
	Click string    `yaml:"click,omitempty"`

	// ExpectError is the table error code the step must fail with. Empty
	// means the step must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// EditStep changes a row's price and quantity. Values are free text and are
// coerced the same way form input is.
type EditStep struct {
	Row      string `yaml:"row"`
	Price    string `yaml:"price"`
	Quantity string `yaml:"quantity"`
}

// SortStep applies an explicit sort.
type SortStep struct {
	Key       string `yaml:"key"`
	Direction string `yaml:"direction"`
}

// Op returns the step's operation name.
func (s Step) Op() string {
	switch {
	case s.Edit != nil:
		return OpEdit
	case s.Sort != nil:
		return OpSort
	case s.Click != "":
		return OpClick
	}
	return ""
}

// Step operation names, as they appear in traces.
const (
	OpEdit  = "edit"
	OpSort  = "sort"
	OpClick = "click"
)

// Assertion validates the final state or the journal.
type Assertion struct {
	// Type specifies the assertion type:
	// - "order": row names appear in exactly this order
	// - "totals": footer totals (only the fields given are checked)
	// - "row": one row's values (only the fields given are checked)
	// - "sort_state": applied sort key and direction
	// - "journal_count": number of journaled events of a kind
	Type string `yaml:"type"`

	// Names is the expected row order (order).
	Names []string `yaml:"names,omitempty"`

	// Row references a row by id, position or name (row).
	Row string `yaml:"row,omitempty"`

	// Price, Quantity and Subtotal are expected values (totals, row).
	Price    *float64 `yaml:"price,omitempty"`
	Quantity *int     `yaml:"quantity,omitempty"`
	Subtotal *float64 `yaml:"subtotal,omitempty"`

	// Key and Direction are the expected sort state (sort_state).
	Key       string `yaml:"key,omitempty"`
	Direction string `yaml:"direction,omitempty"`

	// Kind and Count check the journal (journal_count). Kind is edit or sort.
	Kind  string `yaml:"kind,omitempty"`
	Count int    `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertOrder        = "order"
	AssertTotals       = "totals"
	AssertRow          = "row"
	AssertSortState    = "sort_state"
	AssertJournalCount = "journal_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative dataset path is resolved against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data, filepath.Dir(path))
}

// ParseScenario parses scenario YAML, resolving a relative dataset path
// against basePath.
func ParseScenario(data []byte, basePath string) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Dataset != "" && !filepath.IsAbs(scenario.Dataset) && basePath != "" {
		scenario.Dataset = filepath.Join(basePath, scenario.Dataset)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := table.ParseSortMode(s.SortMode); err != nil {
		return fmt.Errorf("sort_mode: %w", err)
	}

	if s.Dataset != "" {
		if _, err := os.Stat(s.Dataset); os.IsNotExist(err) {
			return fmt.Errorf("dataset file not found: %s", s.Dataset)
		}
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step Step) error {
	set := 0
	if step.Edit != nil {
		set++
		if step.Edit.Row == "" {
			return fmt.Errorf("steps[%d].edit: row is required", index)
		}
	}
	if step.Sort != nil {
		set++
		if step.Sort.Key == "" || step.Sort.Direction == "" {
			return fmt.Errorf("steps[%d].sort: key and direction are required", index)
		}
	}
	if step.Click != "" {
		set++
	}
	if set != 1 {
		return fmt.Errorf("steps[%d]: exactly one of edit, sort or click is required", index)
	}

	switch table.ErrorCode(step.ExpectError) {
	case "", table.ErrCodeNotFound, table.ErrCodeInvalidArgument:
	default:
		return fmt.Errorf("steps[%d]: unknown expect_error %q", index, step.ExpectError)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOrder:
		if len(a.Names) == 0 {
			return fmt.Errorf("assertions[%d]: names list is required for order", index)
		}
	case AssertTotals:
		if a.Price == nil && a.Quantity == nil && a.Subtotal == nil {
			return fmt.Errorf("assertions[%d]: at least one of price, quantity, subtotal is required for totals", index)
		}
	case AssertRow:
		if a.Row == "" {
			return fmt.Errorf("assertions[%d]: row is required for row", index)
		}
		if a.Price == nil && a.Quantity == nil && a.Subtotal == nil {
			return fmt.Errorf("assertions[%d]: at least one of price, quantity, subtotal is required for row", index)
		}
	case AssertSortState:
		if a.Key == "" || a.Direction == "" {
			return fmt.Errorf("assertions[%d]: key and direction are required for sort_state", index)
		}
	case AssertJournalCount:
		if a.Kind != "edit" && a.Kind != "sort" {
			return fmt.Errorf("assertions[%d]: kind must be edit or sort for journal_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for journal_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
