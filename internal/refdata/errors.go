package refdata

import (
	"errors"
	"fmt"
)

// ErrConstraint marks a write that violated a uniqueness or foreign key constraint.
// Reconciliation treats it as a per-row failure and keeps going.
var ErrConstraint = errors.New("constraint violation")

// ConstraintError describes a rejected row.
type ConstraintError struct {
	Table string // "City" or "Airport"
	RowID string
	Err   error // driver error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Table, e.RowID, ErrConstraint, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConstraint.
func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraint
}
