package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/afsync/internal/store"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	ConnectionFlags
}

// StatsResult is the stats command output.
type StatsResult struct {
	Database string `json:"database"`
	store.Counts
}

func (r StatsResult) String() string {
	return fmt.Sprintf("%s: %d cities, %d airports, %d dangling", r.Database, r.Cities, r.Airports, r.Dangling)
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show City and Airport row counts",
		Long: `Show how many City and Airport rows the database holds, and how many
airports reference a city that does not exist (always 0 after a sync).

Exit codes:
  0 - No dangling airports
  1 - Dangling airports found
  2 - Command error

Example:
  afsync stats --db ./prisma/dev.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, cmd)
		},
	}

	addDatabaseFlag(cmd, &opts.ConnectionFlags)

	return cmd
}

func runStats(opts *StatsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	_, dbPath, err := resolveSettings(opts.RootOptions, &opts.ConnectionFlags, cmd, formatter)
	if err != nil {
		return err
	}

	st, err := openExisting(dbPath, formatter)
	if err != nil {
		return err
	}
	defer st.Close()

	counts, err := st.Counts(cmd.Context())
	if err != nil {
		return formatter.Fail(CodeRead, WrapExitError(ExitFailure, "failed to read counts", err), nil)
	}

	// Dangling rows still print the counts; only the exit code changes.
	if err := formatter.Success(StatsResult{Database: dbPath, Counts: counts}); err != nil {
		return err
	}
	if counts.Dangling > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d airports reference a missing city", counts.Dangling))
	}
	return nil
}
