package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
)

// fakeClock returns a controllable instant.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestStore() (*ForecastStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewForecastStore(clock), clock
}

func record(date domain.ForecastDate, high float64) domain.ForecastRecord {
	return domain.ForecastRecord{
		Date:          date,
		ConditionCode: 3,
		HighTemp:      high,
		LowTemp:       high - 8,
		CurrentTemp:   high - 3,
		Humidity:      55,
		Icon:          "cloud",
		Description:   "Overcast",
	}
}

func TestNewForecastStore(t *testing.T) {
	store, _ := newTestStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.records)
}

func TestForecastStore_UpsertAll_StampsCachedAt(t *testing.T) {
	store, clock := newTestStore()
	ctx := context.Background()

	err := store.UpsertAll(ctx, []domain.ForecastRecord{record(100, 20)})
	require.NoError(t, err)

	all, err := store.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.UnixMillis(clock.Now()), all[0].CachedAt)
}

func TestForecastStore_UpsertAll_ReplacesByDate(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertAll(ctx, []domain.ForecastRecord{record(100, 20)}))
	require.NoError(t, store.UpsertAll(ctx, []domain.ForecastRecord{record(100, 25)}))

	all, err := store.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 25.0, all[0].HighTemp)
}

func TestForecastStore_UpsertAll_Idempotent(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	records := []domain.ForecastRecord{record(100, 20), record(101, 22)}
	require.NoError(t, store.UpsertAll(ctx, records))
	first, err := store.SelectAll(ctx)
	require.NoError(t, err)

	require.NoError(t, store.UpsertAll(ctx, records))
	second, err := store.SelectAll(ctx)
	require.NoError(t, err)

	// Identical bar CachedAt re-stamping.
	assert.True(t, domain.RecordsEqual(first, second))
	assert.Len(t, second, 2)
}

func TestForecastStore_UpsertAll_NeverDeletes(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertAll(ctx, []domain.ForecastRecord{record(100, 20), record(101, 22)}))

	// A later fetch covering fewer dates must not erase day 101.
	require.NoError(t, store.UpsertAll(ctx, []domain.ForecastRecord{record(100, 21)}))

	all, err := store.SelectAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestForecastStore_UpsertAll_Empty(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertAll(ctx, nil))

	all, err := store.SelectAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestForecastStore_SelectAll_OrderedByDate(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertAll(ctx, []domain.ForecastRecord{
		record(103, 21),
		record(100, 18),
		record(101, 19),
	}))

	all, err := store.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.ForecastDate(100), all[0].Date)
	assert.Equal(t, domain.ForecastDate(101), all[1].Date)
	assert.Equal(t, domain.ForecastDate(103), all[2].Date)
}

func TestForecastStore_SelectByDate(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertAll(ctx, []domain.ForecastRecord{record(100, 20)}))

	found, err := store.SelectByDate(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, domain.ForecastDate(100), found.Date)

	_, err = store.SelectByDate(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestForecastStore_SelectRange(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertAll(ctx, []domain.ForecastRecord{
		record(100, 18),
		record(101, 19),
		record(102, 20),
		record(105, 23),
	}))

	ranged, err := store.SelectRange(ctx, 101, 103)
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, domain.ForecastDate(101), ranged[0].Date)
	assert.Equal(t, domain.ForecastDate(102), ranged[1].Date)

	empty, err := store.SelectRange(ctx, 200, 300)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestForecastStore_IsValid(t *testing.T) {
	store, clock := newTestStore()
	ctx := context.Background()

	// Empty cache is never valid.
	valid, err := store.IsValid(ctx, domain.UnixMillis(clock.Now().Add(-time.Hour)))
	require.NoError(t, err)
	assert.False(t, valid)

	require.NoError(t, store.UpsertAll(ctx, []domain.ForecastRecord{record(100, 20)}))

	// Fresh write beats a one-hour-ago threshold.
	valid, err = store.IsValid(ctx, domain.UnixMillis(clock.Now().Add(-time.Hour)))
	require.NoError(t, err)
	assert.True(t, valid)

	// Two hours later the same threshold rejects it.
	clock.advance(2 * time.Hour)
	valid, err = store.IsValid(ctx, domain.UnixMillis(clock.Now().Add(-time.Hour)))
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestForecastStore_DeleteOlderThan(t *testing.T) {
	store, clock := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertAll(ctx, []domain.ForecastRecord{record(100, 18), record(101, 19)}))
	oldStamp := domain.UnixMillis(clock.Now())

	clock.advance(3 * time.Hour)
	require.NoError(t, store.UpsertAll(ctx, []domain.ForecastRecord{record(102, 20)}))

	count, err := store.DeleteOlderThan(ctx, oldStamp)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	all, err := store.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.ForecastDate(102), all[0].Date)
}

func TestForecastStore_ClearAll(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertAll(ctx, []domain.ForecastRecord{record(100, 18), record(101, 19)}))
	require.NoError(t, store.ClearAll(ctx))

	all, err := store.SelectAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
