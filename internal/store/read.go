package store

import (
	"context"
	"fmt"

	"github.com/roach88/afsync/internal/refdata"
)

// Counts summarizes table contents.
type Counts struct {
	Cities   int `json:"cities"`
	Airports int `json:"airports"`
	Dangling int `json:"dangling"`
}

// Counts returns row counts for both tables and the number of airports whose
// cityId has no City row.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM City`).Scan(&c.Cities); err != nil {
		return Counts{}, fmt.Errorf("count cities: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Airport`).Scan(&c.Airports); err != nil {
		return Counts{}, fmt.Errorf("count airports: %w", err)
	}
	dangling, err := s.DanglingAirports(ctx)
	if err != nil {
		return Counts{}, err
	}
	c.Dangling = dangling
	return c, nil
}

// DanglingAirports counts Airport rows referencing a missing City.
func (s *Store) DanglingAirports(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM Airport a
		LEFT JOIN City c ON c.id = a.cityId
		WHERE c.id IS NULL
	`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count dangling airports: %w", err)
	}
	return n, nil
}

// ListCities returns all City rows ordered by id.
func (s *Store) ListCities(ctx context.Context) ([]refdata.City, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, country FROM City
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	var cities []refdata.City
	for rows.Next() {
		var c refdata.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Country); err != nil {
			return nil, fmt.Errorf("list cities: scan: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

// ListAirports returns all Airport rows ordered by id.
func (s *Store) ListAirports(ctx context.Context) ([]refdata.Airport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, name, cityId FROM Airport
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list airports: %w", err)
	}
	defer rows.Close()

	var airports []refdata.Airport
	for rows.Next() {
		var a refdata.Airport
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.CityID); err != nil {
			return nil, fmt.Errorf("list airports: scan: %w", err)
		}
		airports = append(airports, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list airports: %w", err)
	}
	return airports, nil
}
