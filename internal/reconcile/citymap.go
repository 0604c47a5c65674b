package reconcile

import "github.com/roach88/afsync/internal/refdata"

// CityMap is the transient identity map from normalized city key to City.
//
// Keys keep the position of their first insertion; values are last-write-wins.
// The zero value is not usable; use BuildCityMap.
type CityMap struct {
	index  map[string]int
	cities []refdata.City
}

func newCityMap(capacity int) *CityMap {
	return &CityMap{
		index:  make(map[string]int, capacity),
		cities: make([]refdata.City, 0, capacity),
	}
}

// BuildCityMap computes the City for every record and indexes it by normalized key.
// A later record with the same key replaces the earlier one.
func BuildCityMap(records []refdata.CityRecord) *CityMap {
	m := newCityMap(len(records))
	for _, r := range records {
		m.Put(refdata.NormalizeKey(r.City, r.Country), refdata.NewCity(r.City, r.Country))
	}
	return m
}

// Put stores c under key, replacing any previous value.
func (m *CityMap) Put(key string, c refdata.City) {
	if i, ok := m.index[key]; ok {
		m.cities[i] = c
		return
	}
	m.index[key] = len(m.cities)
	m.cities = append(m.cities, c)
}

// Lookup returns the City stored under key.
func (m *CityMap) Lookup(key string) (refdata.City, bool) {
	i, ok := m.index[key]
	if !ok {
		return refdata.City{}, false
	}
	return m.cities[i], true
}

// Cities returns one City per key in first-insertion order.
func (m *CityMap) Cities() []refdata.City {
	out := make([]refdata.City, len(m.cities))
	copy(out, m.cities)
	return out
}
