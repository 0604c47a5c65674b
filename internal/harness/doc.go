// Package harness runs reconciliation scenarios offline, against a scratch
// SQLite database, and checks the resulting tables.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	cities:
//	  - { city: Paris, country: France }
//	airports:
//	  - { id: a1, code: CDG, name: Charles de Gaulle, city: paris, country: france }
//	expect:
//	  cities: 1       # City rows after the sync
//	  airports: 1     # Airport rows after the sync
//	  skipped: 0      # airports rejected by a constraint
//	  synthesized: 0  # cities created from airport records
//
// Every expect field is optional. Two invariants are always checked:
// no Airport row references a missing City, and no two City rows share a
// normalized key.
//
// # Golden Snapshots
//
// RunWithGolden compares the final tables with testdata/golden/{name}.golden.
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
