package common

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// EnvPrefix is prepended to every environment override, e.g. APPLYTRACK_LOG_LEVEL
const EnvPrefix = "APPLYTRACK_"

// Config represents the application configuration
type Config struct {
	Environment   string              `toml:"environment" env:"ENV"`
	Storage       StorageConfig       `toml:"storage" envPrefix:"STORAGE_"`
	Logging       LoggingConfig       `toml:"logging" envPrefix:"LOG_"`
	Notifications NotificationsConfig `toml:"notifications" envPrefix:"NOTIFY_"`
	Seed          SeedConfig          `toml:"seed" envPrefix:"SEED_"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger" envPrefix:"BADGER_"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" env:"PATH"`                         // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup" env:"RESET_ON_STARTUP"` // Delete database on startup for clean test runs
	InMemory       bool   `toml:"in_memory" env:"IN_MEMORY"`               // Keep everything in memory (tests, dry runs)
}

type LoggingConfig struct {
	Level  string   `toml:"level" env:"LEVEL"`   // "debug", "info", "warn", "error"
	Output []string `toml:"output" env:"OUTPUT"` // "stdout", "file"
}

// NotificationsConfig controls follow-up reminders
type NotificationsConfig struct {
	Enabled          bool   `toml:"enabled" env:"ENABLED"`
	Hour             int    `toml:"hour" env:"HOUR"`                           // Local hour of day reminders fire at
	Minute           int    `toml:"minute" env:"MINUTE"`                       // Local minute of hour reminders fire at
	DispatchSchedule string `toml:"dispatch_schedule" env:"DISPATCH_SCHEDULE"` // Cron expression for the due-reminder scan
}

// SeedConfig points at a directory of record files imported on startup
type SeedConfig struct {
	Dir string `toml:"dir" env:"DIR"`
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Notifications: NotificationsConfig{
			Enabled:          true,
			Hour:             9,
			Minute:           0,
			DispatchSchedule: "@every 1m",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> .env -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// A missing .env is normal
	_ = godotenv.Load()

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies APPLYTRACK_* environment variables over the loaded config
func applyEnvOverrides(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	return nil
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, dataPath string, logLevel string) {
	if dataPath != "" {
		config.Storage.Badger.Path = dataPath
	}
	if logLevel != "" {
		config.Logging.Level = logLevel
	}
}

// Validate checks values that would otherwise fail late at runtime
func (c *Config) Validate() error {
	if !c.Storage.Badger.InMemory && c.Storage.Badger.Path == "" {
		return fmt.Errorf("storage.badger.path is required unless in_memory is set")
	}
	if c.Notifications.Hour < 0 || c.Notifications.Hour > 23 {
		return fmt.Errorf("notifications.hour must be between 0 and 23, got %d", c.Notifications.Hour)
	}
	if c.Notifications.Minute < 0 || c.Notifications.Minute > 59 {
		return fmt.Errorf("notifications.minute must be between 0 and 59, got %d", c.Notifications.Minute)
	}
	if err := ValidateSchedule(c.Notifications.DispatchSchedule); err != nil {
		return fmt.Errorf("notifications.dispatch_schedule: %w", err)
	}
	return nil
}

// ValidateSchedule checks a cron expression (standard 5 field or @descriptor)
func ValidateSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("schedule cannot be empty")
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}
	return nil
}
