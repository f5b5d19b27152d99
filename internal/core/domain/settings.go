package domain

// AppSettings holds all application settings.
type AppSettings struct {
	// Cache holds cache tuning settings.
	Cache CacheConfig

	// Sync holds sync and daemon preferences.
	Sync SyncSettings
}

// Validate checks every section holds usable values.
func (s AppSettings) Validate() error {
	if err := s.Cache.Validate(); err != nil {
		return err
	}
	return s.Sync.Validate()
}

// DefaultAppSettings returns settings with sensible defaults. Every
// command works out of the box; the config file only records overrides.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Cache: DefaultCacheConfig(),
		Sync:  DefaultSyncSettings(),
	}
}
