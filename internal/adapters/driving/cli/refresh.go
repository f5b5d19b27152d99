package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [location]",
	Short: "Force a network refresh of the forecast cache",
	Long: `Fetches fresh forecasts from the remote service and replaces the
cached copy, without showing the stale snapshot first. Fails when the
network is unavailable; the cache is left untouched in that case.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}
	ctx := cmd.Context()
	if err := ensureSchema(ctx); err != nil {
		return err
	}

	location := resolveLocation(args)

	result := syncService.ForceRefresh(ctx, location)
	if err := result.Err(); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	records, _ := result.Value()
	cmd.Printf("Refreshed %s: %d record(s).\n", location, len(records))
	outputForecastTable(cmd, records, currentUnits())
	return nil
}
