package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "applytrack.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFilesDefaults(t *testing.T) {
	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "./data", config.Storage.Badger.Path)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, []string{"stdout"}, config.Logging.Output)
	assert.True(t, config.Notifications.Enabled)
	assert.Equal(t, 9, config.Notifications.Hour)
	assert.Equal(t, 0, config.Notifications.Minute)
	assert.Equal(t, "development", config.Environment)
}

func TestLoadFromFilesLaterFileWins(t *testing.T) {
	base := writeConfig(t, `
environment = "production"

[storage.badger]
path = "/var/lib/applytrack"

[notifications]
hour = 8
minute = 15
`)
	override := writeConfig(t, `
[notifications]
minute = 45

[seed]
dir = "./seed"
`)

	config, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, "/var/lib/applytrack", config.Storage.Badger.Path)
	assert.Equal(t, 8, config.Notifications.Hour)
	assert.Equal(t, 45, config.Notifications.Minute)
	assert.Equal(t, "./seed", config.Seed.Dir)
}

func TestLoadFromFilesEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "warn"
`)
	t.Setenv("APPLYTRACK_LOG_LEVEL", "debug")
	t.Setenv("APPLYTRACK_NOTIFY_HOUR", "18")
	t.Setenv("APPLYTRACK_STORAGE_BADGER_IN_MEMORY", "true")

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, 18, config.Notifications.Hour)
	assert.True(t, config.Storage.Badger.InMemory)
}

func TestLoadFromFilesErrors(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadFromFiles(writeConfig(t, "not = [valid"))
	assert.Error(t, err)

	_, err = LoadFromFiles(writeConfig(t, "[notifications]\nhour = 24\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "negative minute", mutate: func(c *Config) { c.Notifications.Minute = -1 }, wantErr: true},
		{name: "minute 60", mutate: func(c *Config) { c.Notifications.Minute = 60 }, wantErr: true},
		{name: "empty path", mutate: func(c *Config) { c.Storage.Badger.Path = "" }, wantErr: true},
		{name: "empty path in memory", mutate: func(c *Config) {
			c.Storage.Badger.Path = ""
			c.Storage.Badger.InMemory = true
		}},
		{name: "cron expression", mutate: func(c *Config) { c.Notifications.DispatchSchedule = "*/5 * * * *" }},
		{name: "bad schedule", mutate: func(c *Config) { c.Notifications.DispatchSchedule = "every minute" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewDefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, "", "")
	assert.Equal(t, "./data", config.Storage.Badger.Path)

	ApplyFlagOverrides(config, "/tmp/applytrack", "error")
	assert.Equal(t, "/tmp/applytrack", config.Storage.Badger.Path)
	assert.Equal(t, "error", config.Logging.Level)
}
