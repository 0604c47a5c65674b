package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/afsync/internal/store"
)

func TestSchema_CreatesTables(t *testing.T) {
	isolateEnv(t)
	dbPath := createDatabase(t, false)

	stdout, _, err := executeCommand(t, "schema", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Schema ready")

	st, err := store.OpenExisting(dbPath)
	require.NoError(t, err)
	defer st.Close()

	counts, err := st.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.Counts{}, counts)
}

func TestSchema_Idempotent(t *testing.T) {
	isolateEnv(t)
	dbPath := createDatabase(t, true)

	_, _, err := executeCommand(t, "schema", "--db", dbPath)
	require.NoError(t, err)
	_, _, err = executeCommand(t, "schema", "--db", dbPath)
	require.NoError(t, err)
}

func TestSchema_MissingDatabase(t *testing.T) {
	isolateEnv(t)

	_, _, err := executeCommand(t, "schema", "--db", filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSchema_MissingDatabaseJSON(t *testing.T) {
	isolateEnv(t)
	dbPath := filepath.Join(t.TempDir(), "nope.db")

	stdout, _, err := executeCommand(t, "schema", "--db", dbPath, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp errorEnvelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, CodeDatabaseNotFound, resp.Error.Code)
	assert.Equal(t, dbPath, resp.Error.Details["database"])
}

func TestSchema_BadConfigFile(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := executeCommand(t, "schema", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp errorEnvelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, CodeConfig, resp.Error.Code)
}
