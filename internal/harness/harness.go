package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/afsync/internal/reconcile"
	"github.com/roach88/afsync/internal/refdata"
	"github.com/roach88/afsync/internal/store"
)

// Snapshot is the final state of a scenario run.
type Snapshot struct {
	Scenario    string            `json:"scenario"`
	Inserted    int               `json:"inserted"`
	Skipped     int               `json:"skipped"`
	Synthesized int               `json:"synthesized"`
	Cities      []refdata.City    `json:"cities"`
	Airports    []refdata.Airport `json:"airports"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expectation and invariant held.
	Pass bool `json:"pass"`

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	Snapshot Snapshot `json:"snapshot"`
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run syncs the scenario into a fresh scratch database and checks the outcome.
// The returned error covers infrastructure failures only; failed expectations
// are reported in Result.
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "afsync-harness-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(filepath.Join(dir, "scenario.db"))
	if err != nil {
		return nil, err
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	opts := reconcile.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	var airportRes reconcile.Result
	err = st.ReplaceAll(ctx, func(tx *store.Tx) error {
		m := reconcile.BuildCityMap(scenario.Cities)
		if _, err := reconcile.WriteCities(ctx, tx, m, opts); err != nil {
			return err
		}
		res, err := reconcile.ReconcileAirports(ctx, tx, scenario.Airports, m, opts)
		airportRes = res
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	snap := Snapshot{
		Scenario:    scenario.Name,
		Inserted:    airportRes.Inserted,
		Skipped:     airportRes.Skipped,
		Synthesized: airportRes.SynthesizedCities,
		Cities:      []refdata.City{},
		Airports:    []refdata.Airport{},
	}
	cities, err := st.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	snap.Cities = append(snap.Cities, cities...)
	airports, err := st.ListAirports(ctx)
	if err != nil {
		return nil, err
	}
	snap.Airports = append(snap.Airports, airports...)

	result := &Result{Pass: true, Snapshot: snap}
	dangling, err := st.DanglingAirports(ctx)
	if err != nil {
		return nil, err
	}
	checkInvariants(result, dangling)
	checkExpect(result, scenario.Expect)
	return result, nil
}

func checkInvariants(r *Result, dangling int) {
	if dangling != 0 {
		r.AddError("%d airports reference a missing city", dangling)
	}

	seen := make(map[string]string, len(r.Snapshot.Cities))
	for _, c := range r.Snapshot.Cities {
		key := refdata.NormalizeKey(c.Name, c.Country)
		if other, ok := seen[key]; ok {
			r.AddError("cities %s and %s share key %q", other, c.ID, key)
		}
		seen[key] = c.ID
	}
}

func checkExpect(r *Result, e Expect) {
	checkCount(r, "cities", e.Cities, len(r.Snapshot.Cities))
	checkCount(r, "airports", e.Airports, len(r.Snapshot.Airports))
	checkCount(r, "skipped", e.Skipped, r.Snapshot.Skipped)
	checkCount(r, "synthesized", e.Synthesized, r.Snapshot.Synthesized)
}

func checkCount(r *Result, name string, want *int, got int) {
	if want != nil && *want != got {
		r.AddError("%s = %d, want %d", name, got, *want)
	}
}
