package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skycast-labs/skycast-cli/internal/logger"
)

var daemonEphemeral bool

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Refresh the forecast cache periodically until interrupted",
	Long: `Runs the refresh scheduler in the foreground: one refresh
immediately, then one every configured interval, plus a periodic
eviction sweep when retention is enabled. Configuration file changes
are picked up while running and apply to the next cycle. Stops cleanly
on SIGINT or SIGTERM.

With --ephemeral the cache lives in memory only and is discarded on
exit; the on-disk cache is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	daemonCmd.Flags().BoolVar(&daemonEphemeral, "ephemeral", false, "keep the cache in memory only")
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if syncService == nil || newScheduler == nil {
		return errors.New("sync service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := syncService
	if daemonEphemeral {
		if newEphemeralSync == nil {
			return errors.New("ephemeral cache not configured")
		}
		svc = newEphemeralSync()
		cmd.Println("Using an in-memory cache; records are discarded on exit.")
	} else if err := ensureSchema(ctx); err != nil {
		return err
	}

	if configWatcher != nil {
		if err := configWatcher.Watch(ctx); err != nil {
			logger.Warn("Config watching disabled: %v", err)
		}
	}

	// An empty location keeps the scheduler on the configured default,
	// re-read before every run.
	location := os.Getenv("SKYCAST_LOCATION")

	cmd.Println("Daemon started. Press Ctrl+C to stop.")
	if err := newScheduler(svc, location).Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	cmd.Println("Daemon stopped.")
	return nil
}
