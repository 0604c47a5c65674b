package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/afsync/internal/refdata"
)

func intPtr(n int) *int { return &n }

func TestGoldenScenarios(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		scenario, err := LoadScenario(file)
		require.NoError(t, err, file)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_ReportsFailedExpectations(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong_expectations",
		Description: "expects more than it gets",
		Cities:      []refdata.CityRecord{{City: "Paris", Country: "France"}},
		Airports: []refdata.AirportRecord{
			{ID: "a1", Code: "CDG", Name: "Charles de Gaulle", City: "Paris", Country: "France"},
		},
		Expect: Expect{Cities: intPtr(2), Skipped: intPtr(1)},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.ElementsMatch(t, []string{"cities = 1, want 2", "skipped = 0, want 1"}, result.Errors)
}

func TestRun_UncheckedExpectations(t *testing.T) {
	scenario := &Scenario{
		Name:        "no_expectations",
		Description: "only invariants",
		Airports: []refdata.AirportRecord{
			{ID: "a1", Code: "SYD", Name: "Kingsford Smith", City: "Sydney", Country: "Australia"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Equal(t, 1, result.Snapshot.Synthesized)
	assert.Len(t, result.Snapshot.Cities, 1)
}

func TestCheckInvariants(t *testing.T) {
	r := &Result{Pass: true, Snapshot: Snapshot{
		Cities: []refdata.City{
			refdata.NewCity("Paris", "France"),
			refdata.NewCity("PARIS", "France"),
		},
	}}

	checkInvariants(r, 2)

	assert.False(t, r.Pass)
	require.Len(t, r.Errors, 2)
	assert.Equal(t, "2 airports reference a missing city", r.Errors[0])
	assert.Contains(t, r.Errors[1], `share key "paris_france"`)
}
