package driven

import "time"

// Clock supplies the current time. Injected so TTL checks and CachedAt
// stamps are deterministic in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock is the production Clock reading the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
