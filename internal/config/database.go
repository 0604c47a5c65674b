package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// relativeDatabasePath locates the Prisma dev database from the install directory.
var relativeDatabasePath = filepath.Join("..", "prisma", "dev.db")

// executable is swapped in tests.
var executable = os.Executable

// DatabasePath returns the configured database path, or the default location
// "<install dir>/../prisma/dev.db" where install dir holds the running binary.
// It does not check that the file exists.
func (c Config) DatabasePath() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}
	return DefaultDatabasePath()
}

// DefaultDatabasePath resolves the database path relative to the executable.
func DefaultDatabasePath() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), relativeDatabasePath), nil
}
