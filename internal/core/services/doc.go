// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The sync engine here owns the offline-first protocol: emit the
// cached snapshot first, fetch fresh data, reconcile, and emit again
// only when the refresh is worth showing.
package services
