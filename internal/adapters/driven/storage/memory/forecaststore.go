package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driven"
)

// Ensure ForecastStore implements the interface.
var _ driven.ForecastStore = (*ForecastStore)(nil)

// ForecastStore is an in-memory implementation of driven.ForecastStore.
// Used by unit tests and the daemon's ephemeral mode. The map mutation
// under one lock gives the same all-or-nothing upsert the SQLite
// adapter gets from a transaction.
type ForecastStore struct {
	clock   driven.Clock
	mu      sync.RWMutex
	records map[domain.ForecastDate]domain.ForecastRecord
}

// NewForecastStore creates a new in-memory forecast store. The clock
// stamps CachedAt on every upsert.
func NewForecastStore(clock driven.Clock) *ForecastStore {
	return &ForecastStore{
		clock:   clock,
		records: make(map[domain.ForecastDate]domain.ForecastRecord),
	}
}

// UpsertAll replaces-or-inserts every record by date key.
func (s *ForecastStore) UpsertAll(_ context.Context, records []domain.ForecastRecord) error {
	if len(records) == 0 {
		return nil
	}

	stamp := domain.UnixMillis(s.clock.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		record.CachedAt = stamp
		s.records[record.Date] = record
	}
	return nil
}

// SelectAll returns all records ordered by date ascending.
func (s *ForecastStore) SelectAll(_ context.Context) ([]domain.ForecastRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(domain.ForecastRecord) bool { return true }), nil
}

// SelectByDate returns the record for one date, or domain.ErrNotFound.
func (s *ForecastStore) SelectByDate(_ context.Context, date domain.ForecastDate) (*domain.ForecastRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[date]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// SelectRange returns records with from <= date <= to, ordered by date
// ascending.
func (s *ForecastStore) SelectRange(_ context.Context, from, to domain.ForecastDate) ([]domain.ForecastRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(r domain.ForecastRecord) bool {
		return r.Date >= from && r.Date <= to
	}), nil
}

// IsValid reports whether at least one record is fresher than the
// threshold.
func (s *ForecastStore) IsValid(_ context.Context, thresholdMillis int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.records {
		if record.CachedAt > thresholdMillis {
			return true, nil
		}
	}
	return false, nil
}

// DeleteOlderThan evicts records with CachedAt at or below the threshold.
func (s *ForecastStore) DeleteOlderThan(_ context.Context, thresholdMillis int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for date, record := range s.records {
		if record.CachedAt <= thresholdMillis {
			delete(s.records, date)
			count++
		}
	}
	return count, nil
}

// ClearAll wipes the cache.
func (s *ForecastStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[domain.ForecastDate]domain.ForecastRecord)
	return nil
}

// sortedLocked collects matching records in date order. Callers hold
// at least a read lock.
func (s *ForecastStore) sortedLocked(match func(domain.ForecastRecord) bool) []domain.ForecastRecord {
	//nolint:prealloc // size depends on the filter
	var result []domain.ForecastRecord
	for _, record := range s.records {
		if match(record) {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}
