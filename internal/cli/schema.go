package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SchemaOptions holds flags for the schema command.
type SchemaOptions struct {
	*RootOptions
	ConnectionFlags
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SchemaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create the City and Airport tables if absent",
		Long: `Create the City and Airport tables in an existing database without
fetching or changing any rows.

Example:
  afsync schema --db ./prisma/dev.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(opts, cmd)
		},
	}

	addDatabaseFlag(cmd, &opts.ConnectionFlags)

	return cmd
}

func runSchema(opts *SchemaOptions, cmd *cobra.Command) error {
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

	if err := st.EnsureSchema(cmd.Context()); err != nil {
		return formatter.Fail(CodeWrite, WrapExitError(ExitFailure, "failed to create schema", err), nil)
	}

	return formatter.Success(fmt.Sprintf("Schema ready: %s", dbPath))
}
