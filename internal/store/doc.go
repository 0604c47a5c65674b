// Package store provides SQLite-backed persistence for the City and Airport tables.
//
// The tables are owned by the surrounding web application; afsync only creates them
// when absent and replaces their contents. Column names (including the camel-case
// Airport.cityId) are part of that contract.
//
// # Write Model
//
// Every sync is a full replace inside a single transaction (ReplaceAll):
//   - DELETE all Airport rows, then all City rows (foreign key order)
//   - insert City rows, then the Airport rows that reference them
//   - commit once
//
// A row rejected by a UNIQUE, PRIMARY KEY or FOREIGN KEY constraint only fails its
// own statement. The error is returned as *refdata.ConstraintError so callers can
// count it and continue; the transaction stays usable.
//
// # Database Configuration
//
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The journal mode is left untouched because the file is shared with Prisma.
package store
