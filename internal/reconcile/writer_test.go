package reconcile

import (
	"context"
	"errors"

	"github.com/roach88/afsync/internal/refdata"
)

// memWriter is an in-memory Writer enforcing the same constraints as the schema.
type memWriter struct {
	cities   map[string]refdata.City
	airports []refdata.Airport
	ids      map[string]bool
	codes    map[string]bool

	// failAirport, when set, is returned for the airport with this id.
	failAirport string
	failErr     error

	// failCity, when set, is returned for the city with this id.
	failCity    string
	failCityErr error
}

func newMemWriter() *memWriter {
	return &memWriter{
		cities: make(map[string]refdata.City),
		ids:    make(map[string]bool),
		codes:  make(map[string]bool),
	}
}

func (w *memWriter) InsertCity(_ context.Context, c refdata.City) error {
	if c.ID == w.failCity && w.failCityErr != nil {
		return w.failCityErr
	}
	if _, ok := w.cities[c.ID]; ok {
		return &refdata.ConstraintError{Table: "City", RowID: c.ID, Err: errors.New("UNIQUE constraint failed: City.id")}
	}
	w.cities[c.ID] = c
	return nil
}

func (w *memWriter) InsertAirport(_ context.Context, a refdata.Airport) error {
	if a.ID == w.failAirport && w.failErr != nil {
		return w.failErr
	}
	if w.ids[a.ID] {
		return &refdata.ConstraintError{Table: "Airport", RowID: a.ID, Err: errors.New("UNIQUE constraint failed: Airport.id")}
	}
	if w.codes[a.Code] {
		return &refdata.ConstraintError{Table: "Airport", RowID: a.ID, Err: errors.New("UNIQUE constraint failed: Airport.code")}
	}
	if _, ok := w.cities[a.CityID]; !ok {
		return &refdata.ConstraintError{Table: "Airport", RowID: a.ID, Err: errors.New("FOREIGN KEY constraint failed")}
	}
	w.ids[a.ID] = true
	w.codes[a.Code] = true
	w.airports = append(w.airports, a)
	return nil
}

// hasCityID reports whether m holds a City with the given id.
func hasCityID(m *CityMap, id string) bool {
	for _, c := range m.Cities() {
		if c.ID == id {
			return true
		}
	}
	return false
}
