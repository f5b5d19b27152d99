// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the sync engine to function:
//
//   - ForecastStore: Forecast cache persistence (SQLite, or in-memory for tests)
//   - ForecastSource: Fetches fresh records from the remote weather service
//   - ConfigProvider: Read-only cache configuration snapshots
//   - Clock: Current time, injected for TTL and timestamp testability
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
