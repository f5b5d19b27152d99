// Package driving defines interfaces that external actors (CLI, daemon)
// use to interact with core services. These are the "driving" ports in
// hexagonal architecture terminology - they drive the application.
//
// SyncService is implemented in internal/core/services; MigrationService
// is implemented by the storage adapter, since schema transformations are
// inseparable from the storage technology.
package driving
