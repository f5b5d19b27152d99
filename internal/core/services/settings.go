package services

import (
	"fmt"
	"time"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driven"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driving"
	"github.com/skycast-labs/skycast-cli/internal/logger"
)

// Ensure SettingsService implements the driving interface and the
// provider port the sync engine reads its per-cycle snapshots from.
var (
	_ driving.SettingsService = (*SettingsService)(nil)
	_ driven.ConfigProvider   = (*SettingsService)(nil)
)

// Config keys for settings storage.
const (
	keyCacheExpiryHours = "cache.expiry_hours"
	keyCacheUnits       = "cache.units"
	keyDefaultLocation  = "sync.default_location"
	keyRefreshInterval  = "sync.refresh_interval"
	keyRetention        = "sync.retention"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or unreadable
// keys fall back to defaults, so the returned settings are complete
// even over an empty config file.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Cache: domain.CacheConfig{
			ExpiryDuration: s.getExpiry(defaults.Cache.ExpiryDuration),
			Units:          s.getUnits(defaults.Cache.Units),
		},
		Sync: domain.SyncSettings{
			DefaultLocation: s.getString(keyDefaultLocation, defaults.Sync.DefaultLocation),
			RefreshInterval: s.getDuration(keyRefreshInterval, defaults.Sync.RefreshInterval),
			Retention:       s.getDuration(keyRetention, defaults.Sync.Retention),
		},
	}

	return settings, nil
}

// SetCacheExpiry updates how long cached forecasts stay trusted.
func (s *SettingsService) SetCacheExpiry(expiry time.Duration) error {
	if expiry <= 0 {
		return fmt.Errorf("%w: cache expiry must be positive, got %s", domain.ErrInvalidConfig, expiry)
	}
	return s.configStore.Set(keyCacheExpiryHours, expiry.Hours())
}

// SetUnits updates the temperature unit preference.
func (s *SettingsService) SetUnits(unit domain.TemperatureUnit) error {
	if !unit.IsValid() {
		return fmt.Errorf("%w: unknown temperature unit %q", domain.ErrInvalidConfig, unit)
	}
	return s.configStore.Set(keyCacheUnits, unit.String())
}

// SetDefaultLocation updates the location synced when a command omits one.
func (s *SettingsService) SetDefaultLocation(location string) error {
	if location == "" {
		return fmt.Errorf("%w: default location must not be empty", domain.ErrInvalidConfig)
	}
	return s.configStore.Set(keyDefaultLocation, location)
}

// SetRefreshInterval updates how often the daemon refreshes.
func (s *SettingsService) SetRefreshInterval(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive, got %s", domain.ErrInvalidConfig, interval)
	}
	return s.configStore.Set(keyRefreshInterval, interval.String())
}

// SetRetention updates how long cached records are kept before the
// daemon evicts them. Zero disables periodic eviction.
func (s *SettingsService) SetRetention(retention time.Duration) error {
	if retention < 0 {
		return fmt.Errorf("%w: retention must not be negative, got %s", domain.ErrInvalidConfig, retention)
	}
	return s.configStore.Set(keyRetention, retention.String())
}

// Path returns the location of the backing config file.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// CacheConfig returns the cache tuning snapshot read once per sync
// cycle. Invalid stored values fall back to defaults so a bad config
// file never stalls a sync.
func (s *SettingsService) CacheConfig() domain.CacheConfig {
	settings, err := s.Get()
	if err != nil {
		return domain.DefaultCacheConfig()
	}
	if err := settings.Cache.Validate(); err != nil {
		logger.Warn("Ignoring invalid cache config: %v", err)
		return domain.DefaultCacheConfig()
	}
	return settings.Cache
}

// SyncSettings returns the current sync preferences. Invalid stored
// values fall back to defaults.
func (s *SettingsService) SyncSettings() domain.SyncSettings {
	settings, err := s.Get()
	if err != nil {
		return domain.DefaultSyncSettings()
	}
	if err := settings.Sync.Validate(); err != nil {
		logger.Warn("Ignoring invalid sync settings: %v", err)
		return domain.DefaultSyncSettings()
	}
	return settings.Sync
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getExpiry(defaultVal time.Duration) time.Duration {
	hours := s.configStore.GetFloat(keyCacheExpiryHours)
	if hours == 0 {
		return defaultVal
	}
	return time.Duration(hours * float64(time.Hour))
}

func (s *SettingsService) getUnits(defaultVal domain.TemperatureUnit) domain.TemperatureUnit {
	val := s.configStore.GetString(keyCacheUnits)
	if val == "" {
		return defaultVal
	}
	unit := domain.TemperatureUnit(val)
	if !unit.IsValid() {
		return defaultVal
	}
	return unit
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
