package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/afsync/internal/refdata"
)

// createTestStore creates a new store with the schema applied in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() failed: %v", err)
	}
	return s
}

// seed replaces the tables with the given rows and fails the test on any error.
func seed(t *testing.T, s *Store, cities []refdata.City, airports []refdata.Airport) {
	t.Helper()
	err := s.ReplaceAll(context.Background(), func(tx *Tx) error {
		for _, c := range cities {
			if err := tx.InsertCity(context.Background(), c); err != nil {
				return err
			}
		}
		for _, a := range airports {
			if err := tx.InsertAirport(context.Background(), a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func testCities() []refdata.City {
	return []refdata.City{
		refdata.NewCity("Paris", "France"),
		refdata.NewCity("Tokyo", "Japan"),
	}
}

func testAirports() []refdata.Airport {
	return []refdata.Airport{
		{ID: "a1", Code: "CDG", Name: "Charles de Gaulle", CityID: refdata.CityID("Paris", "France")},
		{ID: "a2", Code: "ORY", Name: "Orly", CityID: refdata.CityID("Paris", "France")},
		{ID: "a3", Code: "HND", Name: "Haneda", CityID: refdata.CityID("Tokyo", "Japan")},
	}
}

// verifyPragma checks that a pragma is set to the expected value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
