package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

// testRecord returns a fully populated record for equality tests.
func testRecord(date ForecastDate) ForecastRecord {
	return ForecastRecord{
		Date:          date,
		ConditionCode: 61,
		HighTemp:      21.5,
		LowTemp:       12.0,
		CurrentTemp:   18.3,
		Humidity:      64,
		Icon:          "rain",
		Description:   "Slight rain",
		Pressure:      floatPtr(1013.2),
		WindSpeed:     floatPtr(14.8),
		UVIndex:       floatPtr(3.0),
		Precipitation: floatPtr(2.4),
		CachedAt:      1700000000000,
	}
}

// TestDateOf tests converting instants to epoch-day dates
func TestDateOf(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected ForecastDate
	}{
		{
			name:     "unix epoch is day zero",
			instant:  time.Unix(0, 0).UTC(),
			expected: 0,
		},
		{
			name:     "end of day zero is still day zero",
			instant:  time.Date(1970, 1, 1, 23, 59, 59, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "start of day one",
			instant:  time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "known modern date",
			instant:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			expected: 19723,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DateOf(tt.instant))
		})
	}
}

// TestForecastDate_RoundTrip tests Date -> Time -> Date stability
func TestForecastDate_RoundTrip(t *testing.T) {
	for _, day := range []ForecastDate{0, 1, 100, 19723} {
		assert.Equal(t, day, DateOf(day.Time()), "day %d should round-trip", day)
	}
}

// TestForecastDate_String tests the YYYY-MM-DD formatting
func TestForecastDate_String(t *testing.T) {
	assert.Equal(t, "1970-01-01", ForecastDate(0).String())
	assert.Equal(t, "2024-01-01", ForecastDate(19723).String())
}

// TestForecastDate_Millis tests conversion to epoch milliseconds
func TestForecastDate_Millis(t *testing.T) {
	assert.Equal(t, int64(0), ForecastDate(0).Millis())
	assert.Equal(t, int64(86400000), ForecastDate(1).Millis())
}

// TestDataEquals_IgnoresCachedAt tests that write timestamps never break equality
func TestDataEquals_IgnoresCachedAt(t *testing.T) {
	a := testRecord(100)
	b := testRecord(100)
	b.CachedAt = a.CachedAt + 999999

	assert.True(t, a.DataEquals(b))
	assert.True(t, b.DataEquals(a))
}

// TestDataEquals_FieldDifferences tests that any data field difference is detected
func TestDataEquals_FieldDifferences(t *testing.T) {
	base := testRecord(100)

	tests := []struct {
		name   string
		mutate func(*ForecastRecord)
	}{
		{"different date", func(r *ForecastRecord) { r.Date = 101 }},
		{"different condition code", func(r *ForecastRecord) { r.ConditionCode = 0 }},
		{"different high", func(r *ForecastRecord) { r.HighTemp = 30.0 }},
		{"different low", func(r *ForecastRecord) { r.LowTemp = -5.0 }},
		{"different current", func(r *ForecastRecord) { r.CurrentTemp = 0.0 }},
		{"different humidity", func(r *ForecastRecord) { r.Humidity = 10 }},
		{"different icon", func(r *ForecastRecord) { r.Icon = "sun" }},
		{"different description", func(r *ForecastRecord) { r.Description = "Clear" }},
		{"different pressure", func(r *ForecastRecord) { r.Pressure = floatPtr(990.0) }},
		{"missing pressure", func(r *ForecastRecord) { r.Pressure = nil }},
		{"different wind", func(r *ForecastRecord) { r.WindSpeed = floatPtr(40.0) }},
		{"missing uv", func(r *ForecastRecord) { r.UVIndex = nil }},
		{"different precipitation", func(r *ForecastRecord) { r.Precipitation = floatPtr(0.0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := testRecord(100)
			tt.mutate(&other)
			assert.False(t, base.DataEquals(other))
		})
	}
}

// TestDataEquals_NilOptionalFields tests nil-vs-nil and nil-vs-value handling
func TestDataEquals_NilOptionalFields(t *testing.T) {
	a := testRecord(100)
	a.Pressure, a.WindSpeed, a.UVIndex, a.Precipitation = nil, nil, nil, nil
	b := testRecord(100)
	b.Pressure, b.WindSpeed, b.UVIndex, b.Precipitation = nil, nil, nil, nil

	assert.True(t, a.DataEquals(b))

	// Same value behind distinct pointers still compares equal.
	b.Pressure = floatPtr(1000)
	a.Pressure = floatPtr(1000)
	assert.True(t, a.DataEquals(b))
	require.NotSame(t, a.Pressure, b.Pressure)
}

// TestRecordsEqual tests list-level structural equality
func TestRecordsEqual(t *testing.T) {
	recA := testRecord(100)
	recB := testRecord(101)

	tests := []struct {
		name     string
		a        []ForecastRecord
		b        []ForecastRecord
		expected bool
	}{
		{
			name:     "both empty",
			a:        nil,
			b:        []ForecastRecord{},
			expected: true,
		},
		{
			name:     "same records",
			a:        []ForecastRecord{recA, recB},
			b:        []ForecastRecord{recA, recB},
			expected: true,
		},
		{
			name:     "different lengths",
			a:        []ForecastRecord{recA},
			b:        []ForecastRecord{recA, recB},
			expected: false,
		},
		{
			name:     "different order",
			a:        []ForecastRecord{recA, recB},
			b:        []ForecastRecord{recB, recA},
			expected: false,
		},
		{
			name: "single field change in one record",
			a:    []ForecastRecord{recA, recB},
			b: func() []ForecastRecord {
				changed := testRecord(101)
				changed.HighTemp += 1
				return []ForecastRecord{recA, changed}
			}(),
			expected: false,
		},
		{
			name: "only cachedAt differs",
			a:    []ForecastRecord{recA, recB},
			b: func() []ForecastRecord {
				x, y := testRecord(100), testRecord(101)
				x.CachedAt, y.CachedAt = 1, 2
				return []ForecastRecord{x, y}
			}(),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RecordsEqual(tt.a, tt.b))
		})
	}
}

// TestUnixMillis tests epoch millisecond conversion
func TestUnixMillis(t *testing.T) {
	instant := time.Date(2024, 1, 1, 0, 0, 0, 500*int(time.Millisecond), time.UTC)
	assert.Equal(t, instant.UnixMilli(), UnixMillis(instant))
	assert.Equal(t, int64(0), UnixMillis(time.Unix(0, 0)))
}
