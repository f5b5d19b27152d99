package driven

import (
	"context"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
)

// ForecastStore persists forecast records keyed by date.
// Backed by SQLite; an in-memory implementation exists for tests and
// ephemeral runs. All mutating operations are durable before returning.
// Absence is an empty slice, never an error; only the point query
// reports a miss, via domain.ErrNotFound.
type ForecastStore interface {
	// UpsertAll replaces-or-inserts every record by date key as a
	// single atomic batch. Partial writes are never observable. The
	// store stamps CachedAt on every written record.
	UpsertAll(ctx context.Context, records []domain.ForecastRecord) error

	// SelectAll returns all records ordered by date ascending.
	SelectAll(ctx context.Context) ([]domain.ForecastRecord, error)

	// SelectByDate returns the record for one date, or domain.ErrNotFound.
	SelectByDate(ctx context.Context, date domain.ForecastDate) (*domain.ForecastRecord, error)

	// SelectRange returns records with from <= date <= to, ordered by
	// date ascending.
	SelectRange(ctx context.Context, from, to domain.ForecastDate) ([]domain.ForecastRecord, error)

	// IsValid reports whether at least one record has CachedAt greater
	// than the threshold (epoch millis) - some data is fresh enough to
	// trust without a network round trip.
	IsValid(ctx context.Context, thresholdMillis int64) (bool, error)

	// DeleteOlderThan evicts records with CachedAt at or below the
	// threshold (epoch millis) and returns how many were removed.
	DeleteOlderThan(ctx context.Context, thresholdMillis int64) (int64, error)

	// ClearAll wipes the cache. Used on cache-invalidating events such
	// as a location change or an explicit user reset.
	ClearAll(ctx context.Context) error
}
