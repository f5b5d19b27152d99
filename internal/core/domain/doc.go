// Package domain defines the core business entities for Skycast.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ForecastRecord: One day's forecast, keyed by calendar date
//   - SyncResult: Tagged union of sync outcomes (Loading/Success/Error)
//   - SyncError: A failure classified by ErrorKind
//   - CacheConfig: The per-cycle cache tuning snapshot
//   - MigrationStep: Metadata for one schema transformation
//
// It also holds the pure migration-chain logic (sequence validation and
// path planning) so those invariants are testable without a database.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
