package driven

import "github.com/skycast-labs/skycast-cli/internal/core/domain"

// ConfigProvider supplies read-only configuration snapshots.
// The sync engine reads one CacheConfig per cycle; a change made while
// a cycle runs applies to the next cycle only.
type ConfigProvider interface {
	// CacheConfig returns the current cache tuning snapshot.
	CacheConfig() domain.CacheConfig

	// SyncSettings returns the current sync preferences.
	SyncSettings() domain.SyncSettings
}
