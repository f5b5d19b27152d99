package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driven"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driving"
	"github.com/skycast-labs/skycast-cli/internal/logger"
)

// Ensure SyncEngine implements the interface.
var _ driving.SyncService = (*SyncEngine)(nil)

// SyncEngine orchestrates the offline-first read-through cycle: read
// cache, emit, check validity, fetch, reconcile, emit. Every collaborator
// arrives through a constructor parameter; the engine holds no globals.
type SyncEngine struct {
	store  driven.ForecastStore
	source driven.ForecastSource
	config driven.ConfigProvider
	clock  driven.Clock

	// Status tracking. The most recent cycle per location is retained
	// with Running=false after it finishes.
	mu     sync.RWMutex
	cycles map[string]*driving.SyncStatus
}

// NewSyncEngine creates a new sync engine. All collaborators are
// required; the config provider is re-read once per cycle so
// configuration changes apply to the next cycle.
func NewSyncEngine(
	store driven.ForecastStore,
	source driven.ForecastSource,
	config driven.ConfigProvider,
	clock driven.Clock,
) *SyncEngine {
	return &SyncEngine{
		store:  store,
		source: source,
		config: config,
		clock:  clock,
		cycles: make(map[string]*driving.SyncStatus),
	}
}

// Observe runs one read-through cycle for a location. The returned
// channel carries at most two ordered emissions - the cached snapshot
// first (when one exists), then the refreshed snapshot or an error -
// and then closes. The buffer covers both emissions, so the producing
// goroutine finishes even when the receiver walks away early.
func (e *SyncEngine) Observe(ctx context.Context, locationKey string) <-chan domain.ForecastResult {
	out := make(chan domain.ForecastResult, 2)

	go func() {
		defer close(out)
		e.runCycle(ctx, locationKey, out)
	}()

	return out
}

// runCycle is the observe algorithm. Emission rules:
// a non-empty cache is always emitted before the network is touched;
// a fetch failure surfaces only when there was nothing to show;
// a successful fetch re-emits only when the cache was stale or the
// data actually changed.
func (e *SyncEngine) runCycle(ctx context.Context, locationKey string, out chan<- domain.ForecastResult) {
	status := &driving.SyncStatus{
		LocationKey: locationKey,
		CycleID:     uuid.NewString(),
		Running:     true,
	}
	e.setStatus(locationKey, status)
	defer e.finishStatus(locationKey)

	emitted := 0
	emit := func(r domain.ForecastResult) {
		out <- r
		emitted++
		e.recordEmission(locationKey, r.Phase())
	}

	logger.Debug("Sync cycle %s starting for %s", status.CycleID, locationKey)

	// 1. Read the cached snapshot.
	cached, err := e.store.SelectAll(ctx)
	if err != nil {
		emit(domain.ForecastFailure(domain.NewSyncError(domain.ErrorKindStorage, "read cache", err)))
		return
	}

	// 2. Emit it immediately when non-empty, so a caller never waits
	// on the network to see something.
	if len(cached) > 0 {
		emit(domain.ForecastSuccess(cached))
	}

	// 3. Check cache validity against the configured TTL.
	cfg := e.config.CacheConfig()
	isCacheValid, err := e.store.IsValid(ctx, cfg.ExpiryThreshold(e.clock.Now()))
	if err != nil {
		// The flag only suppresses a redundant re-emission; an
		// unreadable flag degrades to "stale".
		logger.Debug("Validity check failed for %s: %v", locationKey, err)
		isCacheValid = false
	}

	// 4. Fetch fresh records.
	fresh, err := e.source.Fetch(ctx, locationKey)
	if err != nil {
		if emitted == 0 {
			emit(domain.ForecastFailure(domain.NewSyncError(domain.ErrorKindNetwork, "fetch "+locationKey, err)))
		} else {
			// The stale snapshot already delivered remains the
			// last-known state.
			logger.Debug("Fetch failed for %s, keeping cached snapshot: %v", locationKey, err)
		}
		return
	}

	// 5. Write through and re-read, so the emission reflects exactly
	// what the cache now holds. An empty remote result is valid data;
	// the upsert never deletes existing dates.
	if err := e.store.UpsertAll(ctx, fresh); err != nil {
		if emitted == 0 {
			emit(domain.ForecastFailure(domain.NewSyncError(domain.ErrorKindStorage, "write cache", err)))
		} else {
			logger.Debug("Upsert failed for %s after cached emission: %v", locationKey, err)
		}
		return
	}
	updated, err := e.store.SelectAll(ctx)
	if err != nil {
		if emitted == 0 {
			emit(domain.ForecastFailure(domain.NewSyncError(domain.ErrorKindStorage, "re-read cache", err)))
		} else {
			logger.Debug("Re-read failed for %s after cached emission: %v", locationKey, err)
		}
		return
	}

	if !isCacheValid || !domain.RecordsEqual(updated, cached) {
		emit(domain.ForecastSuccess(updated))
	} else {
		logger.Debug("Fetch for %s returned identical data, suppressing duplicate emission", locationKey)
	}

	logger.Info("Sync cycle complete for %s: %d records, %d emissions", locationKey, len(updated), emitted)
}

// ForceRefresh fetches, upserts and re-reads, bypassing the
// emit-stale-first behaviour. Used by explicit user-triggered refreshes.
func (e *SyncEngine) ForceRefresh(ctx context.Context, locationKey string) domain.ForecastResult {
	status := &driving.SyncStatus{
		LocationKey: locationKey,
		CycleID:     uuid.NewString(),
		Running:     true,
	}
	e.setStatus(locationKey, status)
	defer e.finishStatus(locationKey)

	result := e.refresh(ctx, locationKey)
	e.recordEmission(locationKey, result.Phase())
	return result
}

func (e *SyncEngine) refresh(ctx context.Context, locationKey string) domain.ForecastResult {
	fresh, err := e.source.Fetch(ctx, locationKey)
	if err != nil {
		return domain.ForecastFailure(domain.NewSyncError(domain.ErrorKindNetwork, "fetch "+locationKey, err))
	}

	if err := e.store.UpsertAll(ctx, fresh); err != nil {
		return domain.ForecastFailure(domain.NewSyncError(domain.ErrorKindStorage, "write cache", err))
	}

	updated, err := e.store.SelectAll(ctx)
	if err != nil {
		return domain.ForecastFailure(domain.NewSyncError(domain.ErrorKindStorage, "re-read cache", err))
	}

	logger.Info("Refreshed %s: %d records cached", locationKey, len(updated))
	return domain.ForecastSuccess(updated)
}

// Cached returns the cached records without touching the network.
func (e *SyncEngine) Cached(ctx context.Context) ([]domain.ForecastRecord, error) {
	records, err := e.store.SelectAll(ctx)
	if err != nil {
		return nil, domain.NewSyncError(domain.ErrorKindStorage, "read cache", err)
	}
	return records, nil
}

// CachedRange returns the cached records between two dates inclusive,
// without touching the network.
func (e *SyncEngine) CachedRange(ctx context.Context, from, to domain.ForecastDate) ([]domain.ForecastRecord, error) {
	records, err := e.store.SelectRange(ctx, from, to)
	if err != nil {
		return nil, domain.NewSyncError(domain.ErrorKindStorage, "read cache range", err)
	}
	return records, nil
}

// Status returns the cycle status for a location.
func (e *SyncEngine) Status(_ context.Context, locationKey string) (*driving.SyncStatus, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if status, ok := e.cycles[locationKey]; ok {
		// Return a copy to avoid race conditions
		return &driving.SyncStatus{
			LocationKey: status.LocationKey,
			CycleID:     status.CycleID,
			Running:     status.Running,
			Emissions:   status.Emissions,
			LastOutcome: status.LastOutcome,
		}, nil
	}

	// No cycle has run - return idle status
	return &driving.SyncStatus{
		LocationKey: locationKey,
		Running:     false,
	}, nil
}

// EvictOlderThan removes records cached more than age ago.
func (e *SyncEngine) EvictOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	threshold := domain.UnixMillis(e.clock.Now().Add(-age))

	count, err := e.store.DeleteOlderThan(ctx, threshold)
	if err != nil {
		return 0, domain.NewSyncError(domain.ErrorKindStorage, "evict stale records", err)
	}

	logger.Info("Evicted %d records older than %s", count, age)
	return count, nil
}

// Clear wipes the forecast cache.
func (e *SyncEngine) Clear(ctx context.Context) error {
	if err := e.store.ClearAll(ctx); err != nil {
		return domain.NewSyncError(domain.ErrorKindStorage, "clear cache", err)
	}

	logger.Info("Forecast cache cleared")
	return nil
}

// setStatus records the status for a location.
func (e *SyncEngine) setStatus(locationKey string, status *driving.SyncStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cycles[locationKey] = status
}

// recordEmission bumps the emission count and last outcome for a location.
func (e *SyncEngine) recordEmission(locationKey string, phase domain.SyncPhase) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if status, ok := e.cycles[locationKey]; ok {
		status.Emissions++
		status.LastOutcome = phase
	}
}

// finishStatus marks the location's cycle as no longer running.
func (e *SyncEngine) finishStatus(locationKey string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if status, ok := e.cycles[locationKey]; ok {
		status.Running = false
	}
}
