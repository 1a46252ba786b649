package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Fixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)
			assert.NotEmpty(t, s.Name)
			assert.NotEmpty(t, s.Steps)
		})
	}
}

func TestLoadScenario_ResolvesDatasetRelativeToFile(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/custom_dataset.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "datasets", "shop.cue"), s.Dataset)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_StepKinds(t *testing.T) {
	yaml := `
name: kinds
description: one of each
steps:
  - edit: {row: "1", price: "2", quantity: "3"}
  - sort: {key: price, direction: desc}
  - click: name
assertions:
  - type: sort_state
    key: name
    direction: asc
`
	s, err := ParseScenario([]byte(yaml), "")
	require.NoError(t, err)
	require.Len(t, s.Steps, 3)
	assert.Equal(t, OpEdit, s.Steps[0].Op())
	assert.Equal(t, OpSort, s.Steps[1].Op())
	assert.Equal(t, OpClick, s.Steps[2].Op())
	assert.Equal(t, "3", s.Steps[0].Edit.Quantity)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "unknown field",
			yaml: `
name: x
description: x
steps: [{click: name}]
assertion: []
`,
			wantErr: "failed to parse YAML",
		},
		{
			name: "missing name",
			yaml: `
description: x
steps: [{click: name}]
assertions: [{type: sort_state, key: name, direction: asc}]
`,
			wantErr: "name is required",
		},
		{
			name: "no steps",
			yaml: `
name: x
description: x
assertions: [{type: sort_state, key: name, direction: asc}]
`,
			wantErr: "steps list is required",
		},
		{
			name: "two ops in one step",
			yaml: `
name: x
description: x
steps: [{click: name, sort: {key: price, direction: asc}}]
assertions: [{type: sort_state, key: name, direction: asc}]
`,
			wantErr: "exactly one of edit, sort or click",
		},
		{
			name: "edit without row",
			yaml: `
name: x
description: x
steps: [{edit: {price: "1"}}]
assertions: [{type: sort_state, key: name, direction: asc}]
`,
			wantErr: "row is required",
		},
		{
			name: "unknown expect_error",
			yaml: `
name: x
description: x
steps: [{click: name, expect_error: BOOM}]
assertions: [{type: sort_state, key: name, direction: asc}]
`,
			wantErr: "unknown expect_error",
		},
		{
			name: "bad sort mode",
			yaml: `
name: x
description: x
sort_mode: sideways
steps: [{click: name}]
assertions: [{type: sort_state, key: name, direction: asc}]
`,
			wantErr: "sort_mode",
		},
		{
			name: "totals without fields",
			yaml: `
name: x
description: x
steps: [{click: name}]
assertions: [{type: totals}]
`,
			wantErr: "at least one of price, quantity, subtotal",
		},
		{
			name: "unknown assertion",
			yaml: `
name: x
description: x
steps: [{click: name}]
assertions: [{type: vibes}]
`,
			wantErr: "unknown assertion type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_MissingDataset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	content := `
name: x
description: x
dataset: absent.cue
steps: [{click: name}]
assertions: [{type: sort_state, key: name, direction: asc}]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset file not found")
}
