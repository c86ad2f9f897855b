// Package config reads and writes the tracker's configuration file:
// which storage backend to use and where its data lives. The file is
// YAML at ~/.config/shelves/config.yml by default; every value can be
// overridden through SHELVES_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Backend names the storage engine behind the data model.
type Backend string

const (
	BackendCSV    Backend = "csv"
	BackendSQLite Backend = "sqlite"
)

type Config struct {
	Storage

	// path the config was loaded from, kept for Save.
	path string
}

type Storage struct {
	Backend      Backend
	DataDir      string // CSV backend: directory holding backend/*.csv
	DatabasePath string // SQLite backend: path to the .db file
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yml"
	}
	return filepath.Join(home, ".config", "shelves", "config.yml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shelves-data"
	}
	return filepath.Join(home, ".local", "share", "shelves")
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("shelves")
	v.AutomaticEnv()
	v.SetDefault("backend", string(BackendCSV))
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("database_path", filepath.Join(defaultDataDir(), "shelves.db"))
	return v
}

// Load reads the config at path, falling back to defaults for anything
// unset. A missing file is not an error; `shelves init` writes one.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		Storage: Storage{
			Backend:      Backend(v.GetString("backend")),
			DataDir:      v.GetString("data_dir"),
			DatabasePath: v.GetString("database_path"),
		},
		path: path,
	}
	if cfg.Backend != BackendCSV && cfg.Backend != BackendSQLite {
		return nil, fmt.Errorf("invalid backend %q: must be %q or %q", cfg.Backend, BackendCSV, BackendSQLite)
	}
	return cfg, nil
}

// Path returns where this config was loaded from.
func (c *Config) Path() string { return c.path }

// Set updates one configuration key in memory. Save persists it.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		b := Backend(value)
		if b != BackendCSV && b != BackendSQLite {
			return fmt.Errorf("invalid backend %q: must be %q or %q", value, BackendCSV, BackendSQLite)
		}
		c.Backend = b
	case "data_dir":
		c.DataDir = value
	case "database_path":
		c.DatabasePath = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// Save writes the config file, creating its directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	v := newViper(c.path)
	v.Set("backend", string(c.Backend))
	v.Set("data_dir", c.DataDir)
	v.Set("database_path", c.DatabasePath)
	if err := v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("write config %s: %w", c.path, err)
	}
	return nil
}
