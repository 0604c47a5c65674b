package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/afsync/internal/config"
	"github.com/roach88/afsync/internal/store"
)

// ConnectionFlags are the config overrides shared by commands.
type ConnectionFlags struct {
	Database string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

func addDatabaseFlag(cmd *cobra.Command, f *ConnectionFlags) {
	cmd.Flags().StringVar(&f.Database, "db", "", "path to SQLite database (default <install dir>/../prisma/dev.db)")
}

func addSourceFlags(cmd *cobra.Command, f *ConnectionFlags) {
	cmd.Flags().StringVar(&f.BaseURL, "base-url", "", "AFS API base URL")
	cmd.Flags().StringVar(&f.APIKey, "api-key", "", "AFS API key (prefer "+config.EnvAPIKey+")")
	cmd.Flags().DurationVar(&f.Timeout, "timeout", 0, "HTTP request timeout")
}

// loadConfig resolves the configuration and applies flags set on cmd.
func loadConfig(root *RootOptions, f *ConnectionFlags, cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(config.Options{File: root.ConfigFile})
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database = f.Database
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = f.BaseURL
	}
	if flags.Changed("api-key") {
		cfg.APIKey = f.APIKey
	}
	if flags.Changed("timeout") {
		cfg.Timeout = f.Timeout
	}
	return cfg, nil
}

// databasePath resolves the database location for cfg.
func databasePath(cfg config.Config) (string, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to locate database", err)
	}
	return path, nil
}

// resolveSettings loads the configuration and the database path, reporting
// failures through f as CodeConfig.
func resolveSettings(root *RootOptions, fl *ConnectionFlags, cmd *cobra.Command, f *OutputFormatter) (config.Config, string, error) {
	cfg, err := loadConfig(root, fl, cmd)
	if err != nil {
		return config.Config{}, "", f.Fail(CodeConfig, err, nil)
	}
	dbPath, err := databasePath(cfg)
	if err != nil {
		return config.Config{}, "", f.Fail(CodeConfig, err, nil)
	}
	f.VerboseLog("Database: %s", dbPath)
	return cfg, dbPath, nil
}

// openExisting opens dbPath, mapping a missing file to ExitCommandError.
func openExisting(dbPath string, f *OutputFormatter) (*store.Store, error) {
	st, err := store.OpenExisting(dbPath)
	if errors.Is(err, store.ErrDatabaseNotFound) {
		return nil, f.Fail(CodeDatabaseNotFound, WrapExitError(ExitCommandError, "database not found", err), map[string]string{"database": dbPath})
	}
	if err != nil {
		return nil, f.Fail(CodeOpen, WrapExitError(ExitCommandError, "failed to open database", err), map[string]string{"database": dbPath})
	}
	return st, nil
}
