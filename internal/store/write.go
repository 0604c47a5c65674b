package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/afsync/internal/refdata"
)

// Tx is a transaction-scoped writer handed to the ReplaceAll callback.
// It satisfies reconcile.Writer.
type Tx struct {
	tx *sql.Tx
}

// ReplaceAll deletes every Airport and City row, then calls fn to insert the new
// rows, all inside one transaction. The transaction commits only if fn returns nil;
// otherwise nothing changes.
func (s *Store) ReplaceAll(ctx context.Context, fn func(*Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace all: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// Airport first: its rows reference City.
	if _, err := tx.ExecContext(ctx, `DELETE FROM Airport`); err != nil {
		return fmt.Errorf("replace all: clear Airport: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM City`); err != nil {
		return fmt.Errorf("replace all: clear City: %w", err)
	}

	if err := fn(&Tx{tx: tx}); err != nil {
		return fmt.Errorf("replace all: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace all: commit: %w", err)
	}
	return nil
}

// InsertCity inserts one City row.
// A duplicate id comes back as *refdata.ConstraintError.
func (t *Tx) InsertCity(ctx context.Context, c refdata.City) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO City (id, name, country)
		VALUES (?, ?, ?)
	`, c.ID, c.Name, c.Country)
	if err != nil {
		return fmt.Errorf("insert city: %w", classify("City", c.ID, err))
	}
	return nil
}

// InsertAirport inserts one Airport row.
// A duplicate id or code, or a cityId with no City row, comes back as
// *refdata.ConstraintError.
func (t *Tx) InsertAirport(ctx context.Context, a refdata.Airport) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO Airport (id, code, name, cityId)
		VALUES (?, ?, ?, ?)
	`, a.ID, a.Code, a.Name, a.CityID)
	if err != nil {
		return fmt.Errorf("insert airport: %w", classify("Airport", a.ID, err))
	}
	return nil
}

// classify wraps SQLite constraint failures in refdata.ConstraintError and passes
// every other error through.
func classify(table, rowID string, err error) error {
	if IsConstraintViolation(err) {
		return &refdata.ConstraintError{Table: table, RowID: rowID, Err: err}
	}
	return err
}

// IsConstraintViolation reports whether err is a SQLite SQLITE_CONSTRAINT failure.
func IsConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
