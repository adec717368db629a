package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

const (
	configDirName  = ".demonlist"
	configFileName = "config.json"
)

// Config represents the demonlist configuration.
// Values come from .demonlist/config.json and are overridden by DEMONLIST_* variables.
type Config struct {
	Version          string `json:"version"`
	DBDriver         string `json:"db_driver" env:"DEMONLIST_DB_DRIVER"`
	DBDSN            string `json:"db_dsn,omitempty" env:"DEMONLIST_DB_DSN"` // empty means ~/.demonlist/demonlist.db
	ListSize         int    `json:"list_size" env:"DEMONLIST_LIST_SIZE"`
	ExtendedListSize int    `json:"extended_list_size" env:"DEMONLIST_EXTENDED_LIST_SIZE"`
	HTTPAddr         string `json:"http_addr" env:"DEMONLIST_HTTP_ADDR"`
	LogLevel         string `json:"log_level" env:"DEMONLIST_LOG_LEVEL"`
	LogFormat        string `json:"log_format" env:"DEMONLIST_LOG_FORMAT"` // "console" or "json"
	Actor            string `json:"actor,omitempty" env:"DEMONLIST_ACTOR"`
}

// Default returns the configuration used when no file or variable says otherwise.
func Default() *Config {
	return &Config{
		Version:          "1",
		DBDriver:         DriverSQLite,
		ListSize:         75,
		ExtendedListSize: 150,
		HTTPAddr:         ":8088",
		LogLevel:         "info",
		LogFormat:        "console",
	}
}

// LoadConfig reads .demonlist/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDirName, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Load resolves the effective configuration for dir: defaults, then the config
// file if present, then environment variables.
func Load(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("db_dsn is required for driver %s", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported db_driver %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}

	if c.ListSize < 1 {
		return fmt.Errorf("list_size must be positive (got %d)", c.ListSize)
	}
	if c.ExtendedListSize < c.ListSize {
		return fmt.Errorf("extended_list_size (%d) must not be smaller than list_size (%d)", c.ExtendedListSize, c.ListSize)
	}
	return nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, configDirName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", configDirName, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, configFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultSQLitePath returns ~/.demonlist/demonlist.db.
func DefaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDirName, "demonlist.db"), nil
}
