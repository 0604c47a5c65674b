package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/afsync/internal/pipeline"
	"github.com/roach88/afsync/internal/source"
	"github.com/roach88/afsync/internal/store"
)

// SyncOptions holds flags for the sync command.
type SyncOptions struct {
	*RootOptions
	ConnectionFlags
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SyncOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Replace cities and airports with the AFS API contents",
		Long: `Fetch the cities and airports lists from the AFS API and replace the
City and Airport tables in a single transaction.

Both lists must be fetched successfully before the database is touched.
Airports whose city is missing from the cities list get a city created for
them. Airports rejected by a constraint (duplicate id or code) are skipped
and counted.

Exit codes:
  0 - Sync completed
  1 - Fetch or write failed (database unchanged)
  2 - Command error (database file missing, bad config)

Examples:
  afsync sync
  afsync sync --db ./prisma/dev.db
  AFS_API_KEY=... afsync sync --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(opts, cmd)
		},
	}

	addDatabaseFlag(cmd, &opts.ConnectionFlags)
	addSourceFlags(cmd, &opts.ConnectionFlags)

	return cmd
}

func runSync(opts *SyncOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, formatter.GetErrWriter())

	cfg, dbPath, err := resolveSettings(opts.RootOptions, &opts.ConnectionFlags, cmd, formatter)
	if err != nil {
		return err
	}
	formatter.VerboseLog("AFS API: %s", cfg.BaseURL)

	srcCfg := cfg.SourceConfig()
	srcCfg.Logger = logger
	src := source.New(srcCfg)

	report, err := pipeline.Run(cmd.Context(), src, func() (*store.Store, error) {
		return store.OpenExisting(dbPath)
	}, logger)
	formatter.TraceID = report.RunID
	if err != nil {
		code, exitErr := syncExitError(err)
		return formatter.Fail(code, exitErr, syncErrorDetails(err, dbPath))
	}

	return formatter.Success(report)
}

// syncExitError maps a pipeline failure to an error code and exit code.
func syncExitError(err error) (string, *ExitError) {
	if errors.Is(err, store.ErrDatabaseNotFound) {
		return CodeDatabaseNotFound, WrapExitError(ExitCommandError, "database not found", err)
	}

	var runErr *pipeline.Error
	if !errors.As(err, &runErr) {
		return CodeWrite, WrapExitError(ExitFailure, "sync failed", err)
	}

	msg := fmt.Sprintf("sync failed during %s", runErr.Stage)
	switch runErr.Stage {
	case pipeline.StageFetch:
		return CodeFetch, WrapExitError(ExitFailure, msg, runErr.Err)
	case pipeline.StageOpen:
		return CodeOpen, WrapExitError(ExitFailure, msg, runErr.Err)
	default:
		return CodeWrite, WrapExitError(ExitFailure, msg, runErr.Err)
	}
}

// syncErrorDetails returns the endpoint and status of a failed API call, or
// the database path for store failures.
func syncErrorDetails(err error, dbPath string) interface{} {
	var apiErr *source.APIError
	if errors.As(err, &apiErr) {
		details := map[string]interface{}{"endpoint": apiErr.Endpoint}
		if apiErr.StatusCode != 0 {
			details["status"] = apiErr.StatusCode
		}
		return details
	}

	var runErr *pipeline.Error
	if errors.As(err, &runErr) && runErr.Stage == pipeline.StageFetch {
		return nil
	}
	return map[string]interface{}{"database": dbPath}
}
