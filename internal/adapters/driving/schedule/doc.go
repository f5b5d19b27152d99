// Package schedule runs the daemon's background jobs on a gocron
// scheduler: a periodic forced refresh of the forecast cache at the
// configured interval, and an hourly eviction sweep of records older
// than the configured retention.
package schedule
