package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync [location]",
	Short: "Sync the forecast cache for a location",
	Long: `Runs one offline-first sync cycle. Cached forecasts are shown
immediately when present, then the remote service is queried and the
cache refreshed. An updated snapshot is shown only when the fresh data
differs from the cache or the cache had expired.

The location is given as "lat,lon". When omitted, SKYCAST_LOCATION or
the configured default location is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}
	ctx := cmd.Context()
	if err := ensureSchema(ctx); err != nil {
		return err
	}

	location := resolveLocation(args)
	units := currentUnits()

	snapshots := 0
	for result := range syncService.Observe(ctx, location) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		records, _ := result.Value()

		snapshots++
		if snapshots == 1 {
			cmd.Printf("Forecast for %s:\n", location)
		} else {
			cmd.Println()
			cmd.Println("Updated from remote:")
		}
		outputForecastTable(cmd, records, units)
	}

	if status, err := syncService.Status(ctx, location); err == nil && status != nil {
		cmd.Printf("\nSync complete: %d snapshot(s).\n", status.Emissions)
	}
	return nil
}
