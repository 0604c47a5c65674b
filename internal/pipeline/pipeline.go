// Package pipeline runs one full synchronization pass:
// fetch cities, fetch airports, open the store, replace both tables, close.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/afsync/internal/reconcile"
	"github.com/roach88/afsync/internal/refdata"
	"github.com/roach88/afsync/internal/store"
)

// Source provides the two reference lists. source.Client implements it.
type Source interface {
	Cities(ctx context.Context) ([]refdata.CityRecord, error)
	Airports(ctx context.Context) ([]refdata.AirportRecord, error)
}

// Opener acquires the store for the write phase.
type Opener func() (*store.Store, error)

// Stage names the step a run failed in.
type Stage string

const (
	StageFetch Stage = "fetch"
	StageOpen  Stage = "open"
	StageWrite Stage = "write"
)

// Error is a failed run. No rows were changed unless Stage is StageWrite, and
// even then the transaction was rolled back.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Report summarizes a run.
type Report struct {
	RunID             string        `json:"run_id"`
	FetchedCities     int           `json:"fetched_cities"`
	FetchedAirports   int           `json:"fetched_airports"`
	Cities            int           `json:"cities"`
	CitiesSkipped     int           `json:"cities_skipped"`
	SynthesizedCities int           `json:"synthesized_cities"`
	AirportsInserted  int           `json:"airports_inserted"`
	AirportsSkipped   int           `json:"airports_skipped"`
	Duration          time.Duration `json:"duration_ns"`
}

// String renders the report for text output.
func (r Report) String() string {
	return fmt.Sprintf(
		"Synced %d cities (%d synthesized, %d skipped) and %d airports (%d skipped) in %s",
		r.Cities+r.SynthesizedCities, r.SynthesizedCities, r.CitiesSkipped,
		r.AirportsInserted, r.AirportsSkipped, r.Duration.Round(time.Millisecond),
	)
}

// Run executes one sync pass. Both lists are fetched before the store is
// opened; the store is closed before Run returns whatever the outcome.
func Run(ctx context.Context, src Source, open Opener, logger *slog.Logger) (Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	report := Report{RunID: uuid.Must(uuid.NewV7()).String()}
	log := logger.With("run_id", report.RunID)

	log.Info("fetching cities")
	cities, err := src.Cities(ctx)
	if err != nil {
		return report, &Error{Stage: StageFetch, Err: err}
	}
	report.FetchedCities = len(cities)

	log.Info("fetching airports")
	airports, err := src.Airports(ctx)
	if err != nil {
		return report, &Error{Stage: StageFetch, Err: err}
	}
	report.FetchedAirports = len(airports)
	log.Info("fetched reference data", "cities", len(cities), "airports", len(airports))

	st, err := open()
	if err != nil {
		return report, &Error{Stage: StageOpen, Err: err}
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	if err := st.EnsureSchema(ctx); err != nil {
		return report, &Error{Stage: StageWrite, Err: err}
	}

	opts := reconcile.Options{Logger: log}
	err = st.ReplaceAll(ctx, func(tx *store.Tx) error {
		m := reconcile.BuildCityMap(cities)
		cityRes, err := reconcile.WriteCities(ctx, tx, m, opts)
		if err != nil {
			return err
		}
		report.Cities = cityRes.Inserted
		report.CitiesSkipped = cityRes.Skipped
		log.Info("cities written", "count", cityRes.Inserted, "skipped", cityRes.Skipped)

		airportRes, err := reconcile.ReconcileAirports(ctx, tx, airports, m, opts)
		if err != nil {
			return err
		}
		report.SynthesizedCities = airportRes.SynthesizedCities
		report.AirportsInserted = airportRes.Inserted
		report.AirportsSkipped = airportRes.Skipped
		log.Info("airports written",
			"count", airportRes.Inserted,
			"skipped", airportRes.Skipped,
			"synthesized_cities", airportRes.SynthesizedCities,
		)
		return nil
	})
	report.Duration = time.Since(start)
	if err != nil {
		return report, &Error{Stage: StageWrite, Err: err}
	}

	log.Info("sync complete", "duration", report.Duration)
	return report, nil
}
