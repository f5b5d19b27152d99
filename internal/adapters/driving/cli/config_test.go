package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
}

func TestConfigCmd_Short(t *testing.T) {
	assert.Equal(t, "Show the effective configuration", configCmd.Short)
}

func TestConfigCmd_HasSetSubcommand(t *testing.T) {
	commands := configCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "set")
}

func TestConfigCmd_ErrorsWithoutServices(t *testing.T) {
	oldSettings := settingsService
	settingsService = nil
	defer func() { settingsService = oldSettings }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestConfigCmd_ShowsDefaults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "[cache]")
	assert.Contains(t, out, "expiry_hours     = 1")
	assert.Contains(t, out, "units            = celsius")
	assert.Contains(t, out, "[sync]")
	assert.Contains(t, out, "default_location = 52.52,13.41")
	assert.Contains(t, out, "refresh_interval = 1h0m0s")
	assert.Contains(t, out, "retention        = 72h0m0s")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestConfigCmd_ShowsStoredOverrides(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	require.NoError(t, settingsService.SetCacheExpiry(30*time.Minute))
	require.NoError(t, settingsService.SetUnits("fahrenheit"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "expiry_hours     = 0.5")
	assert.Contains(t, buf.String(), "units            = fahrenheit")
}

func TestConfigSetCmd_Use(t *testing.T) {
	assert.Equal(t, "set <key> <value>", configSetCmd.Use)
}

func TestConfigSetCmd_RequiresTwoArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "set", "cache.units"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestConfigSetCmd_UpdatesEachKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	cases := []struct {
		key   string
		value string
	}{
		{"cache.expiry_hours", "2.5"},
		{"cache.units", "fahrenheit"},
		{"sync.default_location", "40.71,-74.01"},
		{"sync.refresh_interval", "30m"},
		{"sync.retention", "24h"},
	}

	for _, tc := range cases {
		buf := new(bytes.Buffer)
		rootCmd.SetOut(buf)
		rootCmd.SetArgs([]string{"config", "set", tc.key, tc.value})

		err := rootCmd.Execute()

		assert.NoError(t, err, tc.key)
		assert.Contains(t, buf.String(), "Updated "+tc.key+".")
	}
	rootCmd.SetArgs(nil)

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, 150*time.Minute, settings.Cache.ExpiryDuration)
	assert.Equal(t, "fahrenheit", settings.Cache.Units.String())
	assert.Equal(t, "40.71,-74.01", settings.Sync.DefaultLocation)
	assert.Equal(t, 30*time.Minute, settings.Sync.RefreshInterval)
	assert.Equal(t, 24*time.Hour, settings.Sync.Retention)
}

func TestConfigSetCmd_RejectsUnknownKey(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "set", "cache.size", "10"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestConfigSetCmd_RejectsMalformedValues(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	cases := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"non numeric hours", "cache.expiry_hours", "soon", "invalid hours"},
		{"negative hours", "cache.expiry_hours", "-1", "must be positive"},
		{"unknown unit", "cache.units", "kelvin", "unknown temperature unit"},
		{"empty location", "sync.default_location", "", "must not be empty"},
		{"bad interval", "sync.refresh_interval", "hourly", "invalid duration"},
		{"negative retention", "sync.retention", "-24h", "must not be negative"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			rootCmd.SetOut(buf)
			rootCmd.SetErr(buf)
			rootCmd.SetArgs([]string{"config", "set", tc.key, tc.value})
			defer func() {
				rootCmd.SetArgs(nil)
			}()

			err := rootCmd.Execute()

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
