package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/skycast-labs/skycast-cli/internal/core/ports/driven"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driving"
	"github.com/skycast-labs/skycast-cli/internal/logger"
)

// Ensure Scheduler implements the driving port.
var _ driving.Scheduler = (*Scheduler)(nil)

const (
	// jobTimeout bounds one refresh or eviction run.
	jobTimeout = 2 * time.Minute

	// evictionSweep is how often stale records are swept out. The
	// retention setting controls what counts as stale.
	evictionSweep = time.Hour
)

// Scheduler periodically refreshes the forecast cache and evicts
// records past their retention. Job intervals come from the sync
// settings read at Start; the refresh location is re-resolved on every
// run so config edits apply without a restart.
type Scheduler struct {
	syncService driving.SyncService
	config      driven.ConfigProvider
	location    string

	mu        sync.Mutex
	scheduler *gocron.Scheduler
	running   bool
}

// NewScheduler creates a scheduler refreshing one location. An empty
// location follows the configured default.
func NewScheduler(syncService driving.SyncService, config driven.ConfigProvider, location string) *Scheduler {
	return &Scheduler{
		syncService: syncService,
		config:      config,
		location:    location,
	}
}

// Start schedules the refresh and eviction jobs, runs each once
// immediately, and blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.scheduler = gocron.NewScheduler(time.UTC)
	s.running = true
	s.mu.Unlock()

	settings := s.config.SyncSettings()

	if _, err := s.scheduler.Every(settings.RefreshInterval).StartImmediately().Do(s.refresh); err != nil {
		_ = s.Stop()
		return fmt.Errorf("scheduling refresh job: %w", err)
	}
	logger.Info("Scheduled refresh every %s", settings.RefreshInterval)

	if settings.Retention > 0 {
		if _, err := s.scheduler.Every(evictionSweep).StartImmediately().Do(s.evict); err != nil {
			_ = s.Stop()
			return fmt.Errorf("scheduling eviction job: %w", err)
		}
		logger.Info("Scheduled eviction sweep every %s, retention %s", evictionSweep, settings.Retention)
	}

	s.scheduler.StartAsync()

	<-ctx.Done()
	if err := s.Stop(); err != nil {
		return err
	}
	return ctx.Err()
}

// Stop stops the underlying scheduler. Safe to call more than once.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	s.scheduler.Stop()
	return nil
}

// refresh runs one forced refresh against the active location.
func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	location := s.location
	if location == "" {
		location = s.config.SyncSettings().DefaultLocation
	}

	result := s.syncService.ForceRefresh(ctx, location)
	if err := result.Err(); err != nil {
		logger.Warn("Scheduled refresh for %s failed: %v", location, err)
		return
	}

	records, _ := result.Value()
	logger.Info("Scheduled refresh for %s: %d record(s)", location, len(records))
}

// evict removes records older than the configured retention.
func (s *Scheduler) evict() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	retention := s.config.SyncSettings().Retention
	if retention <= 0 {
		return
	}

	count, err := s.syncService.EvictOlderThan(ctx, retention)
	if err != nil {
		logger.Warn("Scheduled eviction failed: %v", err)
		return
	}
	if count > 0 {
		logger.Info("Scheduled eviction removed %d record(s)", count)
	}
}
