package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// TemperatureUnit is the unit preference for temperature fields.
type TemperatureUnit string

// Available temperature units.
const (
	// UnitCelsius reports temperatures in degrees Celsius.
	UnitCelsius TemperatureUnit = "celsius"

	// UnitFahrenheit reports temperatures in degrees Fahrenheit.
	UnitFahrenheit TemperatureUnit = "fahrenheit"
)

// IsValid returns true if the unit is recognised.
func (u TemperatureUnit) IsValid() bool {
	switch u {
	case UnitCelsius, UnitFahrenheit:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (u TemperatureUnit) String() string {
	return string(u)
}

// Symbol returns the display symbol for the unit.
func (u TemperatureUnit) Symbol() string {
	switch u {
	case UnitCelsius:
		return "°C"
	case UnitFahrenheit:
		return "°F"
	default:
		return "°"
	}
}

// Description returns a human-readable description of the unit.
func (u TemperatureUnit) Description() string {
	switch u {
	case UnitCelsius:
		return "Celsius (°C)"
	case UnitFahrenheit:
		return "Fahrenheit (°F)"
	default:
		return unknownDescription
	}
}

// AllTemperatureUnits returns all available temperature units.
func AllTemperatureUnits() []TemperatureUnit {
	return []TemperatureUnit{
		UnitCelsius,
		UnitFahrenheit,
	}
}

// CacheConfig is the cache tuning snapshot read once per sync cycle.
// The sync engine never mutates it; configuration changes apply to the
// next cycle only.
type CacheConfig struct {
	// ExpiryDuration is how long a cached record stays trusted without
	// a network refresh. Sub-hour durations are supported.
	ExpiryDuration time.Duration

	// Units is the temperature unit preference.
	Units TemperatureUnit
}

// Validate checks the config holds usable values.
func (c CacheConfig) Validate() error {
	if c.ExpiryDuration <= 0 {
		return fmt.Errorf("%w: cache expiry must be positive, got %s", ErrInvalidConfig, c.ExpiryDuration)
	}
	if !c.Units.IsValid() {
		return fmt.Errorf("%w: unknown temperature unit %q", ErrInvalidConfig, c.Units)
	}
	return nil
}

// ExpiryThreshold returns the epoch-millisecond cutoff below which a
// CachedAt stamp counts as stale, relative to now.
func (c CacheConfig) ExpiryThreshold(now time.Time) int64 {
	return UnixMillis(now.Add(-c.ExpiryDuration))
}

// DefaultCacheConfig returns a config with sensible defaults.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		ExpiryDuration: time.Hour,
		Units:          UnitCelsius,
	}
}

// SyncSettings holds the shell-facing sync preferences: which location
// to sync when none is given, and how the background daemon behaves.
type SyncSettings struct {
	// DefaultLocation is the location key used when a command is run
	// without an explicit location argument ("lat,lon").
	DefaultLocation string

	// RefreshInterval is how often the background daemon forces a
	// refresh.
	RefreshInterval time.Duration

	// Retention is how long cached records are kept before the daemon
	// evicts them. Zero disables periodic eviction.
	Retention time.Duration
}

// Validate checks the settings hold usable values.
func (s SyncSettings) Validate() error {
	if s.DefaultLocation == "" {
		return fmt.Errorf("%w: default location must not be empty", ErrInvalidConfig)
	}
	if s.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive, got %s", ErrInvalidConfig, s.RefreshInterval)
	}
	if s.Retention < 0 {
		return fmt.Errorf("%w: retention must not be negative, got %s", ErrInvalidConfig, s.Retention)
	}
	return nil
}

// DefaultSyncSettings returns settings with sensible defaults.
func DefaultSyncSettings() SyncSettings {
	return SyncSettings{
		DefaultLocation: "52.52,13.41",
		RefreshInterval: time.Hour,
		Retention:       72 * time.Hour,
	}
}
