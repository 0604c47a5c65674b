package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/afsync/internal/refdata"
)

// Writer persists rows. store.Tx implements it.
//
// Implementations report rejected rows with an error matching refdata.ErrConstraint.
type Writer interface {
	InsertCity(ctx context.Context, c refdata.City) error
	InsertAirport(ctx context.Context, a refdata.Airport) error
}

// Result counts the outcome of a batch.
type Result struct {
	Inserted          int `json:"inserted"`
	Skipped           int `json:"skipped"`
	SynthesizedCities int `json:"synthesized_cities,omitempty"`
}

// Options tune a reconciliation pass.
type Options struct {
	// Logger receives a debug line per skipped row. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// WriteCities inserts every City of m.
func WriteCities(ctx context.Context, w Writer, m *CityMap, opts Options) (Result, error) {
	log := opts.logger()
	var res Result

	for _, c := range m.Cities() {
		err := w.InsertCity(ctx, c)
		switch {
		case err == nil:
			res.Inserted++
		case errors.Is(err, refdata.ErrConstraint):
			res.Skipped++
			log.Debug("city skipped", "id", c.ID, "name", c.Name, "country", c.Country, "error", err)
		default:
			return res, fmt.Errorf("write cities: %w", err)
		}
	}

	return res, nil
}

// ReconcileAirports resolves each airport's city against m and inserts it.
//
// Airports whose city is not in m get a synthesized City, written once and added
// to m so later airports of the same city reuse it. Rows rejected with a
// constraint violation are skipped; the first other error is returned with the
// counts accumulated so far.
func ReconcileAirports(ctx context.Context, w Writer, airports []refdata.AirportRecord, m *CityMap, opts Options) (Result, error) {
	log := opts.logger()
	var res Result

	for _, rec := range airports {
		cityID, err := resolveCity(ctx, w, rec, m, &res)
		if err != nil {
			if errors.Is(err, refdata.ErrConstraint) {
				res.Skipped++
				log.Debug("airport skipped", "id", rec.ID, "code", rec.Code, "error", err)
				continue
			}
			return res, fmt.Errorf("reconcile airport %s: %w", rec.ID, err)
		}

		err = w.InsertAirport(ctx, refdata.Airport{
			ID:     rec.ID,
			Code:   rec.Code,
			Name:   rec.Name,
			CityID: cityID,
		})
		switch {
		case err == nil:
			res.Inserted++
		case errors.Is(err, refdata.ErrConstraint):
			res.Skipped++
			log.Debug("airport skipped", "id", rec.ID, "code", rec.Code, "error", err)
		default:
			return res, fmt.Errorf("reconcile airport %s: %w", rec.ID, err)
		}
	}

	return res, nil
}

// resolveCity returns the City id for an airport, synthesizing and writing the
// City when its key is unknown.
func resolveCity(ctx context.Context, w Writer, rec refdata.AirportRecord, m *CityMap, res *Result) (string, error) {
	key := refdata.NormalizeKey(rec.City, rec.Country)
	if c, ok := m.Lookup(key); ok {
		return c.ID, nil
	}

	c := refdata.NewCity(rec.City, rec.Country)
	if err := w.InsertCity(ctx, c); err != nil {
		return "", err
	}
	m.Put(key, c)
	res.SynthesizedCities++
	return c.ID, nil
}
