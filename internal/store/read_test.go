package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounts_Empty(t *testing.T) {
	s := createTestStore(t)

	counts, err := s.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)
}

func TestListCities_OrderedByID(t *testing.T) {
	s := createTestStore(t)
	seed(t, s, testCities(), nil)

	cities, err := s.ListCities(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, 2)
	// Tokyo's id (166a...) sorts before Paris's (8115...)
	assert.Equal(t, "Tokyo", cities[0].Name)
	assert.Equal(t, "Paris", cities[1].Name)
}

func TestListAirports_Empty(t *testing.T) {
	s := createTestStore(t)

	airports, err := s.ListAirports(context.Background())
	require.NoError(t, err)
	assert.Empty(t, airports)
}

func TestDanglingAirports(t *testing.T) {
	s := createTestStore(t)
	seed(t, s, testCities(), testAirports())

	n, err := s.DanglingAirports(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	// Bypass the foreign key to plant an orphan row
	_, err = s.db.Exec(`PRAGMA foreign_keys = OFF`)
	require.NoError(t, err)
	_, err = s.db.Exec(`INSERT INTO Airport (id, code, name, cityId) VALUES ('x', 'XXX', 'Ghost', 'gone')`)
	require.NoError(t, err)

	n, err = s.DanglingAirports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
