package reconcile_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/afsync/internal/reconcile"
	"github.com/roach88/afsync/internal/refdata"
	"github.com/roach88/afsync/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "dev.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func syncInto(t *testing.T, s *store.Store, cities []refdata.CityRecord, airports []refdata.AirportRecord) reconcile.Result {
	t.Helper()
	var res reconcile.Result
	err := s.ReplaceAll(context.Background(), func(tx *store.Tx) error {
		m := reconcile.BuildCityMap(cities)
		if _, err := reconcile.WriteCities(context.Background(), tx, m, reconcile.Options{}); err != nil {
			return err
		}
		var err error
		res, err = reconcile.ReconcileAirports(context.Background(), tx, airports, m, reconcile.Options{})
		return err
	})
	require.NoError(t, err)
	return res
}

func TestSQLite_PartialFailureContainment(t *testing.T) {
	s := openStore(t)

	res := syncInto(t, s,
		[]refdata.CityRecord{{City: "Paris", Country: "France"}},
		[]refdata.AirportRecord{
			{ID: "a1", Code: "CDG", Name: "Charles de Gaulle", City: "Paris", Country: "France"},
			{ID: "a2", Code: "ORY", Name: "Orly", City: "Paris", Country: "France"},
			{ID: "a3", Code: "CDG", Name: "Roissy duplicate", City: "Paris", Country: "France"},
			{ID: "a4", Code: "BVA", Name: "Beauvais", City: "Paris", Country: "France"},
		},
	)
	assert.Equal(t, reconcile.Result{Inserted: 3, Skipped: 1}, res)

	airports, err := s.ListAirports(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(airports))
	for _, a := range airports {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"a1", "a2", "a4"}, ids)
}

func TestSQLite_EndToEndCaseMismatch(t *testing.T) {
	s := openStore(t)

	res := syncInto(t, s,
		[]refdata.CityRecord{{City: "Paris", Country: "France"}},
		[]refdata.AirportRecord{{ID: "a1", Code: "CDG", Name: "Charles de Gaulle", City: "paris", Country: "france"}},
	)
	assert.Equal(t, reconcile.Result{Inserted: 1}, res)

	cities, err := s.ListCities(context.Background())
	require.NoError(t, err)
	require.Equal(t, []refdata.City{refdata.NewCity("Paris", "France")}, cities)

	airports, err := s.ListAirports(context.Background())
	require.NoError(t, err)
	require.Equal(t, []refdata.Airport{
		{ID: "a1", Code: "CDG", Name: "Charles de Gaulle", CityID: cities[0].ID},
	}, airports)
}

func TestSQLite_RerunIsIdempotent(t *testing.T) {
	s := openStore(t)
	cities := []refdata.CityRecord{
		{City: "Paris", Country: "France"},
		{City: "Tokyo", Country: "Japan"},
	}
	airports := []refdata.AirportRecord{
		{ID: "a1", Code: "CDG", Name: "Charles de Gaulle", City: "Paris", Country: "France"},
		{ID: "a2", Code: "HND", Name: "Haneda", City: "Tokyo", Country: "Japan"},
		{ID: "a3", Code: "SYD", Name: "Kingsford Smith", City: "Sydney", Country: "Australia"},
	}

	syncInto(t, s, cities, airports)
	firstCities, err := s.ListCities(context.Background())
	require.NoError(t, err)
	firstAirports, err := s.ListAirports(context.Background())
	require.NoError(t, err)

	syncInto(t, s, cities, airports)
	secondCities, err := s.ListCities(context.Background())
	require.NoError(t, err)
	secondAirports, err := s.ListAirports(context.Background())
	require.NoError(t, err)

	assert.Equal(t, firstCities, secondCities)
	assert.Equal(t, firstAirports, secondAirports)

	dangling, err := s.DanglingAirports(context.Background())
	require.NoError(t, err)
	assert.Zero(t, dangling)
}
