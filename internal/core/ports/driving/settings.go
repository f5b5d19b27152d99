package driving

import (
	"time"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// SetCacheExpiry updates how long cached forecasts stay trusted.
	SetCacheExpiry(expiry time.Duration) error

	// SetUnits updates the temperature unit preference.
	SetUnits(unit domain.TemperatureUnit) error

	// SetDefaultLocation updates the location synced when a command
	// omits one.
	SetDefaultLocation(location string) error

	// SetRefreshInterval updates how often the daemon refreshes.
	SetRefreshInterval(interval time.Duration) error

	// SetRetention updates how long cached records are kept before the
	// daemon evicts them. Zero disables periodic eviction.
	SetRetention(retention time.Duration) error

	// Path returns the location of the backing config file.
	Path() string
}
