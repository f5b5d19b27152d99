package cli

import (
	"context"
	"time"

	"github.com/skycast-labs/skycast-cli/internal/adapters/driven/storage/memory"
	"github.com/skycast-labs/skycast-cli/internal/core/domain"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driving"
	"github.com/skycast-labs/skycast-cli/internal/core/services"
)

// Fakes installed by setupTestServices. Tests mutate them before
// executing a command.
var (
	testSync      *fakeSyncService
	testMigration *fakeMigrationService
)

// setupTestServices swaps the package-level services for fakes and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldSync := syncService
	oldMigration := migrationService
	oldSettings := settingsService
	oldScheduler := newScheduler
	oldEphemeral := newEphemeralSync
	oldWatcher := configWatcher

	records := testRecords()
	testSync = &fakeSyncService{
		observeResults: []domain.ForecastResult{domain.ForecastSuccess(records)},
		refreshResult:  domain.ForecastSuccess(records),
		cached:         records,
		status: &driving.SyncStatus{
			CycleID:     "test-cycle",
			Emissions:   1,
			LastOutcome: domain.PhaseSuccess,
		},
	}
	testMigration = &fakeMigrationService{
		current: domain.CurrentSchemaVersion,
		steps: []domain.MigrationStep{
			{From: 0, To: 1, Description: "create forecasts table"},
			{From: 1, To: 2, Description: "add optional readings"},
			{From: 2, To: 3, Description: "index cached_at"},
		},
	}

	syncService = testSync
	migrationService = testMigration
	settingsService = services.NewSettingsService(memory.NewConfigStore())
	newScheduler = nil
	newEphemeralSync = nil
	configWatcher = nil

	return func() {
		syncService = oldSync
		migrationService = oldMigration
		settingsService = oldSettings
		newScheduler = oldScheduler
		newEphemeralSync = oldEphemeral
		configWatcher = oldWatcher
	}
}

// testRecords returns a small cached snapshot with fixed dates.
func testRecords() []domain.ForecastRecord {
	day := func(d int) domain.ForecastDate {
		return domain.DateOf(time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC))
	}
	cachedAt := domain.UnixMillis(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	pressure := 1016.2
	wind := 11.2
	precip := 4.2

	return []domain.ForecastRecord{
		{
			Date:          day(1),
			ConditionCode: 3,
			HighTemp:      21.4,
			LowTemp:       12.9,
			CurrentTemp:   17.3,
			Humidity:      64,
			Icon:          "04d",
			Description:   "Overcast",
			Pressure:      &pressure,
			WindSpeed:     &wind,
			CachedAt:      cachedAt,
		},
		{
			Date:          day(2),
			ConditionCode: 61,
			HighTemp:      18.0,
			LowTemp:       11.5,
			CurrentTemp:   14.2,
			Humidity:      72,
			Icon:          "10d",
			Description:   "Slight rain",
			Precipitation: &precip,
			CachedAt:      cachedAt,
		},
	}
}

type fakeSyncService struct {
	observeResults []domain.ForecastResult
	observedKeys   []string
	refreshResult  domain.ForecastResult
	refreshedKeys  []string
	cached         []domain.ForecastRecord
	cachedErr      error
	rangeFrom      domain.ForecastDate
	rangeTo        domain.ForecastDate
	rangeCalls     int
	status         *driving.SyncStatus
	evictedAge     time.Duration
	evictCount     int64
	evictErr       error
	clearCalls     int
	clearErr       error
}

func (f *fakeSyncService) Observe(ctx context.Context, locationKey string) <-chan domain.ForecastResult {
	f.observedKeys = append(f.observedKeys, locationKey)
	ch := make(chan domain.ForecastResult, len(f.observeResults))
	for _, r := range f.observeResults {
		ch <- r
	}
	close(ch)
	return ch
}

func (f *fakeSyncService) ForceRefresh(ctx context.Context, locationKey string) domain.ForecastResult {
	f.refreshedKeys = append(f.refreshedKeys, locationKey)
	return f.refreshResult
}

func (f *fakeSyncService) Cached(ctx context.Context) ([]domain.ForecastRecord, error) {
	if f.cachedErr != nil {
		return nil, f.cachedErr
	}
	return f.cached, nil
}

func (f *fakeSyncService) CachedRange(ctx context.Context, from, to domain.ForecastDate) ([]domain.ForecastRecord, error) {
	f.rangeCalls++
	f.rangeFrom, f.rangeTo = from, to
	if f.cachedErr != nil {
		return nil, f.cachedErr
	}
	var out []domain.ForecastRecord
	for _, r := range f.cached {
		if r.Date >= from && r.Date <= to {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSyncService) Status(ctx context.Context, locationKey string) (*driving.SyncStatus, error) {
	return f.status, nil
}

func (f *fakeSyncService) EvictOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	f.evictedAge = age
	if f.evictErr != nil {
		return 0, f.evictErr
	}
	return f.evictCount, nil
}

func (f *fakeSyncService) Clear(ctx context.Context) error {
	f.clearCalls++
	return f.clearErr
}

type fakeMigrationService struct {
	current    int
	currentErr error
	migrated   []int
	migrateErr error
	steps      []domain.MigrationStep
}

func (f *fakeMigrationService) CurrentVersion(ctx context.Context) (int, error) {
	return f.current, f.currentErr
}

func (f *fakeMigrationService) MigrateTo(ctx context.Context, target int) error {
	if f.migrateErr != nil {
		return f.migrateErr
	}
	f.migrated = append(f.migrated, target)
	f.current = target
	return nil
}

func (f *fakeMigrationService) Steps() []domain.MigrationStep {
	return f.steps
}

type fakeScheduler struct {
	syncSvc  driving.SyncService
	location string
	starts   int
	startErr error
}

func (f *fakeScheduler) Start(ctx context.Context) error {
	f.starts++
	if f.startErr != nil {
		return f.startErr
	}
	return context.Canceled
}

func (f *fakeScheduler) Stop() error {
	return nil
}
