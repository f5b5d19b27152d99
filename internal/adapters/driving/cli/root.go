package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/skycast-labs/skycast-cli/internal/adapters/driven/config/file"
	"github.com/skycast-labs/skycast-cli/internal/adapters/driven/remote/openmeteo"
	"github.com/skycast-labs/skycast-cli/internal/adapters/driven/storage/memory"
	"github.com/skycast-labs/skycast-cli/internal/adapters/driven/storage/sqlite"
	"github.com/skycast-labs/skycast-cli/internal/adapters/driving/schedule"
	"github.com/skycast-labs/skycast-cli/internal/core/domain"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driven"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driving"
	"github.com/skycast-labs/skycast-cli/internal/core/services"
	"github.com/skycast-labs/skycast-cli/internal/logger"
)

// version is overridden at build time via ldflags.
var version = "dev"

// Services are wired once in Execute. Tests swap them for fakes.
var (
	syncService      driving.SyncService
	migrationService driving.MigrationService
	settingsService  driving.SettingsService

	// newScheduler builds the daemon scheduler over a sync service.
	// Package-level so daemon tests can substitute a fake.
	newScheduler func(syncSvc driving.SyncService, location string) driving.Scheduler

	// newEphemeralSync builds a sync service over an in-memory store
	// for the daemon's --ephemeral mode.
	newEphemeralSync func() driving.SyncService

	// configWatcher reloads the config file on change while the daemon
	// runs. Nil outside Execute and in tests that do not set it.
	configWatcher interface {
		Watch(ctx context.Context) error
	}
)

// store is the open database handle shared by every command in one
// invocation. Closed when Execute returns.
var store *sqlite.Store

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "skycast",
	Short: "Offline-first weather forecast cache",
	Long: `Skycast keeps a local forecast cache that answers instantly and
refreshes from the network behind the scenes. Cached data is shown
first, then updated only when the remote copy actually differs or the
cache has expired.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute wires the production adapters and runs the root command.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeStore()

	return rootCmd.Execute()
}

// initServices builds the real adapter stack. The database is opened
// without migrating so the migrate command keeps full control over the
// schema version; data commands upgrade on demand via ensureSchema.
func initServices() error {
	configStore, err := file.NewConfigStore(os.Getenv("SKYCAST_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("initialising config store: %w", err)
	}
	configWatcher = configStore

	settings := services.NewSettingsService(configStore)
	settingsService = settings

	clock := driven.SystemClock{}

	st, err := sqlite.Open(os.Getenv("SKYCAST_DATA_DIR"), clock)
	if err != nil {
		return fmt.Errorf("opening forecast store: %w", err)
	}
	store = st
	migrationService = st.Migrator()

	source := openmeteo.NewClient(settings, http.DefaultClient)
	syncService = services.NewSyncEngine(st.ForecastStore(), source, settings, clock)

	newScheduler = func(syncSvc driving.SyncService, location string) driving.Scheduler {
		return schedule.NewScheduler(syncSvc, settings, location)
	}
	newEphemeralSync = func() driving.SyncService {
		return services.NewSyncEngine(memory.NewForecastStore(clock), source, settings, clock)
	}

	return nil
}

func closeStore() {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("Closing forecast store: %v", err)
	}
	store = nil
}

// ensureSchema upgrades the database to the current schema version
// before a data command touches it. Already-current databases pass
// through untouched.
func ensureSchema(ctx context.Context) error {
	if migrationService == nil {
		return nil
	}
	if err := migrationService.MigrateTo(ctx, domain.CurrentSchemaVersion); err != nil {
		return fmt.Errorf("preparing database schema: %w", err)
	}
	return nil
}

// resolveLocation picks the location key for a cycle: the explicit
// argument wins, then SKYCAST_LOCATION, then the configured default.
func resolveLocation(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if env := os.Getenv("SKYCAST_LOCATION"); env != "" {
		return env
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			return settings.Sync.DefaultLocation
		}
	}
	return domain.DefaultSyncSettings().DefaultLocation
}

// currentUnits reads the configured temperature unit for display.
func currentUnits() domain.TemperatureUnit {
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			return settings.Cache.Units
		}
	}
	return domain.DefaultCacheConfig().Units
}
