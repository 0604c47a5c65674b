// Package config resolves afsync settings from defaults, an optional YAML file,
// a .env file and the process environment.
//
// Precedence, lowest first: defaults, YAML file, environment (.env values never
// override variables already set in the process). Command flags are applied on
// top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/roach88/afsync/internal/source"
)

// Environment variables read by Load.
const (
	EnvBaseURL  = "AFS_BASE_URL"
	EnvAPIKey   = "AFS_API_KEY"
	EnvDatabase = "AFS_DATABASE"
	EnvTimeout  = "AFS_TIMEOUT"
)

// Config holds everything a sync run needs.
type Config struct {
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key"`
	Database string        `yaml:"database"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration. Database is left empty and
// resolved by DatabasePath.
func Default() Config {
	return Config{
		BaseURL: source.DefaultBaseURL,
		Timeout: source.DefaultTimeout,
	}
}

// Options control where Load looks.
type Options struct {
	// File is an explicit YAML config path. Missing file is an error.
	File string
	// EnvFile is the dotenv file to load. Missing file is ignored.
	// Empty means ".env" in the working directory.
	EnvFile string
}

// Load builds the configuration.
func Load(opts Options) (Config, error) {
	cfg := Default()

	if opts.File != "" {
		if err := cfg.mergeFile(opts.File); err != nil {
			return Config{}, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}

	if fileCfg.BaseURL != "" {
		c.BaseURL = fileCfg.BaseURL
	}
	if fileCfg.APIKey != "" {
		c.APIKey = fileCfg.APIKey
	}
	if fileCfg.Database != "" {
		// Relative database paths are relative to the config file.
		if !filepath.IsAbs(fileCfg.Database) {
			fileCfg.Database = filepath.Join(filepath.Dir(path), fileCfg.Database)
		}
		c.Database = fileCfg.Database
	}
	if fileCfg.Timeout > 0 {
		c.Timeout = fileCfg.Timeout
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// SourceConfig returns the HTTP client settings.
func (c Config) SourceConfig() source.Config {
	return source.Config{
		BaseURL: c.BaseURL,
		APIKey:  c.APIKey,
		Timeout: c.Timeout,
	}
}
