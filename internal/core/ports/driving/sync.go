package driving

import (
	"context"
	"time"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
)

// SyncService runs offline-first read-through cycles against the
// forecast cache.
type SyncService interface {
	// Observe runs one read-cache / check-validity / fetch / reconcile
	// cycle for a location. It returns a channel carrying at most two
	// ordered emissions - the cached snapshot first (when one exists),
	// then the refreshed snapshot or an error - and then closes. The
	// channel is buffered, so an abandoned receiver never blocks the
	// cycle.
	Observe(ctx context.Context, locationKey string) <-chan domain.ForecastResult

	// ForceRefresh fetches, upserts and re-reads without emitting the
	// stale snapshot first. Used by explicit user-triggered refreshes.
	ForceRefresh(ctx context.Context, locationKey string) domain.ForecastResult

	// Cached returns the cached records without touching the network.
	Cached(ctx context.Context) ([]domain.ForecastRecord, error)

	// CachedRange returns the cached records between two dates
	// inclusive, without touching the network.
	CachedRange(ctx context.Context, from, to domain.ForecastDate) ([]domain.ForecastRecord, error)

	// Status returns the cycle status for a location.
	Status(ctx context.Context, locationKey string) (*SyncStatus, error)

	// EvictOlderThan removes records cached more than age ago and
	// returns how many were evicted.
	EvictOlderThan(ctx context.Context, age time.Duration) (int64, error)

	// Clear wipes the forecast cache.
	Clear(ctx context.Context) error
}

// SyncStatus represents the current state of a sync cycle.
type SyncStatus struct {
	// LocationKey identifies the observed location.
	LocationKey string

	// CycleID is the unique ID of the running or last-finished cycle.
	CycleID string

	// Running indicates if a cycle is currently in progress.
	Running bool

	// Emissions is the count of results emitted by the cycle.
	Emissions int

	// LastOutcome is the phase of the cycle's final emission.
	LastOutcome domain.SyncPhase
}
