package driving

import "context"

// Scheduler runs background jobs: periodic forecast refresh and
// stale-record eviction.
type Scheduler interface {
	// Start schedules the jobs and blocks until the context is
	// cancelled.
	Start(ctx context.Context) error

	// Stop gracefully stops all scheduled jobs.
	Stop() error
}
