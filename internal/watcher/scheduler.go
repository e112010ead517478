package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/arttttt/Bealin/internal/projects/domain"
)

const syncTimeout = 10 * time.Second

// ActiveProjectSource reports the currently active project.
type ActiveProjectSource interface {
	GetActiveProject(ctx context.Context) (*domain.Project, error)
}

// Scheduler periodically points the watcher at the active project so it
// follows config changes made outside the API and recovers lost watches.
type Scheduler struct {
	cron    *cron.Cron
	watcher *BeadsWatcher
	source  ActiveProjectSource
	log     *zap.Logger
}

func NewScheduler(w *BeadsWatcher, source ActiveProjectSource, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		watcher: w,
		source:  source,
		log:     logger.Named("watch-scheduler"),
	}
}

// Start registers the resync job on spec (standard cron syntax or
// descriptors like "@every 1m") and starts the cron runner.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		if err := s.Sync(ctx); err != nil {
			s.log.Warn("watcher resync failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid resync schedule %q: %w", spec, err)
	}

	s.cron.Start()
	s.log.Info("watcher resync scheduled", zap.String("spec", spec))
	return nil
}

// Stop halts the runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Sync aligns the watcher with the active project once.
func (s *Scheduler) Sync(ctx context.Context) error {
	active, err := s.source.GetActiveProject(ctx)
	if err != nil {
		return fmt.Errorf("get active project: %w", err)
	}
	if active == nil {
		s.watcher.Unwatch()
		return nil
	}
	if err := s.watcher.WatchProject(ctx, active.Path); err != nil {
		return err
	}
	return s.watcher.Resync(ctx)
}
