package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var evictOlderThan time.Duration

var evictCmd = &cobra.Command{
	Use:   "evict",
	Short: "Evict forecasts cached longer ago than a duration",
	Long: `Removes records whose cache timestamp is older than the given age.
Eviction is by fetch time, not forecast date: a record for tomorrow
fetched last week is still evicted.`,
	Args: cobra.NoArgs,
	RunE: runEvict,
}

func init() {
	evictCmd.Flags().DurationVar(&evictOlderThan, "older-than", 72*time.Hour, "age beyond which records are evicted")
	rootCmd.AddCommand(evictCmd)
}

func runEvict(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}
	if evictOlderThan <= 0 {
		return fmt.Errorf("--older-than must be positive, got %s", evictOlderThan)
	}
	ctx := cmd.Context()
	if err := ensureSchema(ctx); err != nil {
		return err
	}

	count, err := syncService.EvictOlderThan(ctx, evictOlderThan)
	if err != nil {
		return fmt.Errorf("evicting records: %w", err)
	}

	cmd.Printf("Evicted %d record(s).\n", count)
	return nil
}
