package domain

import "time"

// millisPerDay converts between epoch-day keys and epoch-millisecond
// timestamps.
const millisPerDay = 24 * 60 * 60 * 1000

// ForecastDate identifies a forecast by calendar date. It is stored as
// the number of whole days since the Unix epoch (UTC), which is also
// the primary key of the persisted forecast table.
type ForecastDate int64

// DateOf returns the ForecastDate containing the instant t (UTC).
func DateOf(t time.Time) ForecastDate {
	return ForecastDate(t.UTC().Unix() / (24 * 60 * 60))
}

// Time returns the midnight UTC instant at the start of the date.
func (d ForecastDate) Time() time.Time {
	return time.Unix(int64(d)*24*60*60, 0).UTC()
}

// Millis returns the date's midnight UTC instant in epoch milliseconds.
func (d ForecastDate) Millis() int64 {
	return int64(d) * millisPerDay
}

// String formats the date as YYYY-MM-DD.
func (d ForecastDate) String() string {
	return d.Time().Format("2006-01-02")
}

// ForecastRecord is one day's forecast for the active location.
// At most one record exists per date; writes are idempotent upserts
// keyed by Date.
type ForecastRecord struct {
	// Date is the unique key for the record.
	Date ForecastDate

	// ConditionCode is the numeric weather condition (WMO weather code).
	ConditionCode int

	// HighTemp is the forecast daily maximum, in the configured unit.
	HighTemp float64

	// LowTemp is the forecast daily minimum, in the configured unit.
	LowTemp float64

	// CurrentTemp is the temperature at fetch time, in the configured unit.
	CurrentTemp float64

	// Humidity is relative humidity in percent (0-100).
	Humidity int

	// Icon is the short icon code for the condition.
	Icon string

	// Description is the human-readable condition text.
	Description string

	// Pressure is surface pressure in hPa. Nil when the source does
	// not report it.
	Pressure *float64

	// WindSpeed is wind speed in km/h. Nil when the source does not
	// report it.
	WindSpeed *float64

	// UVIndex is the daily maximum UV index. Nil when the source does
	// not report it.
	UVIndex *float64

	// Precipitation is the daily precipitation sum in mm. Nil when the
	// source does not report it.
	Precipitation *float64

	// CachedAt is when the record was written to the cache, in epoch
	// milliseconds. Stamped by the store on every upsert.
	CachedAt int64
}

// DataEquals reports whether two records carry the same forecast data.
// CachedAt is excluded: upserts re-stamp it, and data equality decides
// whether a refreshed snapshot is worth re-emitting.
func (r ForecastRecord) DataEquals(other ForecastRecord) bool {
	return r.Date == other.Date &&
		r.ConditionCode == other.ConditionCode &&
		r.HighTemp == other.HighTemp &&
		r.LowTemp == other.LowTemp &&
		r.CurrentTemp == other.CurrentTemp &&
		r.Humidity == other.Humidity &&
		r.Icon == other.Icon &&
		r.Description == other.Description &&
		floatPtrEqual(r.Pressure, other.Pressure) &&
		floatPtrEqual(r.WindSpeed, other.WindSpeed) &&
		floatPtrEqual(r.UVIndex, other.UVIndex) &&
		floatPtrEqual(r.Precipitation, other.Precipitation)
}

// RecordsEqual reports whether two record lists carry the same forecast
// data, ignoring CachedAt. Lists compare positionally; callers pass
// date-ordered slices as returned by the store.
func RecordsEqual(a, b []ForecastRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].DataEquals(b[i]) {
			return false
		}
	}
	return true
}

// floatPtrEqual treats two nils as equal and a nil as unequal to any value.
func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// UnixMillis converts t to epoch milliseconds, the timestamp unit used
// for CachedAt stamps and expiry thresholds.
func UnixMillis(t time.Time) int64 {
	return t.UnixMilli()
}
