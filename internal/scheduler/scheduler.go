package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher reloads the dataset within the given timeout.
type Refresher interface {
	LoadOnce(ctx context.Context, timeout time.Duration) error
}

// Scheduler periodically reloads the temperature dataset.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	logger    *slog.Logger
	interval  time.Duration
	timeout   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Scheduler. An interval of zero loads the dataset once.
func New(service Refresher, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		logger:    logger,
		interval:  interval,
		timeout:   timeout,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start runs the first load right away and schedules the rest.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("scheduler: periodic refresh disabled; loading once")
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.run()
		}()
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.logger.Info("scheduler: started", "interval", s.interval)
	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	s.logger.Debug("scheduler: running dataset refresh job")
	if err := s.service.LoadOnce(s.ctx, s.timeout); err != nil {
		s.logger.Warn("scheduler: refresh failed", "error", err)
		return
	}
	s.logger.Debug("scheduler: completed dataset refresh job")
}

// Stop cancels in-flight loads and any future jobs.
func (s *Scheduler) Stop() {
	s.cancel()
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.wg.Wait()
}
