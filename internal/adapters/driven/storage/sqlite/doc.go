// Package sqlite provides the SQLite-based implementation of the
// forecast cache and its schema migration engine.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. A single
// database connection backs two surfaces:
//
//   - ForecastStore: one forecast row per calendar date
//   - Migrator: versioned schema transformations over the same file
//
// # Schema
//
// The schema is managed by the programmatic migration chain in the
// migrations/ package. The applied version lives in a singleton row
// (schema_version, id = 0) that is only ever updated inside the same
// transaction as the migration body, so a failed step never advances
// the counter.
//
// # Data Location
//
// By default, the database is stored at ~/.skycast/data/forecast.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
