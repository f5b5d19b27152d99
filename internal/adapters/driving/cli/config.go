package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration after defaults are applied. Values come
from the TOML config file; unset keys fall back to built-in defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a configuration value",
	Long: `Writes one configuration value to the config file. Keys:

  cache.expiry_hours     hours a cached record stays trusted (e.g. 1, 0.5)
  cache.units            temperature unit: celsius or fahrenheit
  sync.default_location  location used when none is given ("lat,lon")
  sync.refresh_interval  daemon refresh cadence (e.g. 30m, 1h)
  sync.retention         cache retention window (e.g. 72h, 0 to disable)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	cmd.Printf("Configuration file: %s\n", settingsService.Path())
	cmd.Println()
	cmd.Println("[cache]")
	cmd.Printf("  expiry_hours     = %g\n", settings.Cache.ExpiryDuration.Hours())
	cmd.Printf("  units            = %s\n", settings.Cache.Units)
	cmd.Println()
	cmd.Println("[sync]")
	cmd.Printf("  default_location = %s\n", settings.Sync.DefaultLocation)
	cmd.Printf("  refresh_interval = %s\n", settings.Sync.RefreshInterval)
	cmd.Printf("  retention        = %s\n", settings.Sync.Retention)

	cmd.Println()
	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]

	var err error
	switch key {
	case "cache.expiry_hours":
		hours, parseErr := strconv.ParseFloat(value, 64)
		if parseErr != nil {
			return fmt.Errorf("invalid hours value %q", value)
		}
		err = settingsService.SetCacheExpiry(time.Duration(hours * float64(time.Hour)))
	case "cache.units":
		err = settingsService.SetUnits(domain.TemperatureUnit(value))
	case "sync.default_location":
		err = settingsService.SetDefaultLocation(value)
	case "sync.refresh_interval":
		interval, parseErr := time.ParseDuration(value)
		if parseErr != nil {
			return fmt.Errorf("invalid duration %q (try 30m or 1h)", value)
		}
		err = settingsService.SetRefreshInterval(interval)
	case "sync.retention":
		retention, parseErr := time.ParseDuration(value)
		if parseErr != nil {
			return fmt.Errorf("invalid duration %q (try 72h or 0s)", value)
		}
		err = settingsService.SetRetention(retention)
	default:
		return fmt.Errorf("unknown key %q (run skycast config set --help for the list)", key)
	}
	if err != nil {
		return err
	}

	cmd.Printf("Updated %s.\n", key)
	return nil
}
