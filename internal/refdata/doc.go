// Package refdata defines the reference data model shared by every afsync package.
//
// It holds the wire records returned by the AFS API (CityRecord, AirportRecord),
// the persisted rows (City, Airport), and the two pure functions that give cities
// their identity:
//   - NormalizeKey: case- and whitespace-insensitive dedup key, never stored
//   - CityID: deterministic content hash, stored as City.id
//
// refdata imports nothing internal.
package refdata
