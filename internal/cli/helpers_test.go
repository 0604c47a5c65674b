package cli

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/afsync/internal/config"
	"github.com/roach88/afsync/internal/store"
)

// executeCommand runs the root command with args and returns stdout, stderr
// and the returned error.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// isolateEnv clears AFS_* variables and moves into an empty directory so no
// stray .env file is picked up.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvBaseURL, config.EnvAPIKey, config.EnvDatabase, config.EnvTimeout} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

// createDatabase creates an empty SQLite file, optionally with the schema.
func createDatabase(t *testing.T, withSchema bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dev.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	if withSchema {
		require.NoError(t, st.EnsureSchema(context.Background()))
	}
	require.NoError(t, st.Close())
	return path
}

// execSQL runs statements on dbPath over a plain connection, without the
// store's pragmas.
func execSQL(t *testing.T, dbPath string, stmts ...string) {
	t.Helper()
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}
