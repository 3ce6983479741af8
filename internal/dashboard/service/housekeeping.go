package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
)

// HousekeepingService prunes old activity-log entries on a timer so the
// event table cannot grow without bound.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates the pruning worker. A non-positive
// interval defaults to 1 hour, a non-positive retention to 30 days.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start launches the background worker. Non-blocking; call Stop to shut
// down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval, "retention", s.Retention)
}

// Stop shuts the worker down and waits for any in-progress prune.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.prune()

	for {
		select {
		case <-ticker.C:
			s.prune()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-s.Retention)
	deleted, err := s.Store.Events().DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to prune events", "error", err)
		return
	}
	if deleted > 0 {
		s.Logger.Info("pruned old events", "deleted", deleted, "cutoff", cutoff)
	}
}
