package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_EditThenSortDesc(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/edit_then_sort_desc.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/edit_then_sort_desc.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := MarshalSnapshot(TraceSnapshot{ScenarioName: scenario.Name, Trace: first.Trace, Final: first.Final})
	require.NoError(t, err)
	b, err := MarshalSnapshot(TraceSnapshot{ScenarioName: scenario.Name, Trace: second.Trace, Final: second.Final})
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestMarshalSnapshot_OmitsSeqForRejectedSteps(t *testing.T) {
	data, err := MarshalSnapshot(TraceSnapshot{
		ScenarioName: "x",
		Trace:        []TraceEvent{{Step: 1, Op: OpEdit, Args: map[string]string{}, Outcome: "NOT_FOUND"}},
	})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"seq"`)
	assert.True(t, data[len(data)-1] == '\n')
}
