package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/japaniel/latindict/pkg/db"
	"github.com/japaniel/latindict/pkg/legacy"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file read when no --config flag is given.
const DefaultFile = "latindict.yaml"

// Config holds all latindict configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Legacy  LegacyConfig  `yaml:"legacy"`
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig configures the word database.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite3 (cgo) or sqlite (pure Go)
	Path   string `yaml:"path"`
}

// LegacyConfig locates the flat store migrated on startup.
type LegacyConfig struct {
	Path string `yaml:"path"`
	Key  string `yaml:"key"`
}

// ImportConfig tunes imports.
type ImportConfig struct {
	BatchSize int `yaml:"batch_size"`
	Workers   int `yaml:"workers"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: db.DriverCGO,
			Path:   db.DefaultPath,
		},
		Legacy: LegacyConfig{
			Path: legacy.DefaultPath,
			Key:  db.LegacyKey,
		},
		Import: ImportConfig{
			BatchSize: 1,
			Workers:   4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks values that have a fixed set of options.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case db.DriverCGO, db.DriverPureGo:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Import.BatchSize < 1 {
		return fmt.Errorf("import.batch_size must be at least 1, got %d", c.Import.BatchSize)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides. A value that
// cannot be parsed is an error rather than being skipped.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("LATINDICT_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("LATINDICT_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("LATINDICT_LEGACY"); v != "" {
		c.Legacy.Path = v
	}
	if v := os.Getenv("LATINDICT_LEGACY_KEY"); v != "" {
		c.Legacy.Key = v
	}
	if v := os.Getenv("LATINDICT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LATINDICT_BATCH_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LATINDICT_BATCH_SIZE: %w", err)
		}
		c.Import.BatchSize = n
	}
	return nil
}
