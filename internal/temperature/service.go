package temperature

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/temperature-heatmap/internal/observability"
)

// Service owns the load stage: it pulls the dataset from its source, keeps
// snapshots in the store and reports progress to pollers and waiters.
type Service struct {
	store   Store
	source  Source
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock

	mu     sync.RWMutex
	status Status

	firstOnce sync.Once
	firstDone chan struct{}
	firstErr  error
}

// NewService creates a new Service.
func NewService(store Store, source Source, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		store:     store,
		source:    source,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
		status:    Status{State: StatePending, Source: source.Name()},
		firstDone: make(chan struct{}),
	}
}

// SetClock swaps the time source used for status timestamps.
func (s *Service) SetClock(c clockwork.Clock) {
	s.clock = c
}

// Refresh loads the dataset once and stores it. A failed refresh keeps the
// last good snapshot available.
func (s *Service) Refresh(ctx context.Context) error {
	start := s.clock.Now()
	s.logger.Debug("loading dataset", "source", s.source.Name())

	ds, err := s.source.Load(ctx)
	s.metrics.LoadDuration.Observe(s.clock.Since(start).Seconds())

	attempt := start.UTC()
	if err != nil {
		s.metrics.DatasetLoads.WithLabelValues("error").Inc()
		s.logger.Error("dataset load failed", "source", s.source.Name(), "error", err)

		s.mu.Lock()
		s.status.State = StateFailed
		s.status.LastAttempt = &attempt
		s.status.Error = err.Error()
		s.mu.Unlock()

		s.finishFirst(err)
		return err
	}

	snapshot := NewSnapshot(s.source.Name(), s.clock.Now(), ds)
	s.store.SaveSnapshot(snapshot)

	s.metrics.DatasetLoads.WithLabelValues("success").Inc()
	s.metrics.DatasetPoints.Set(float64(len(ds.MonthlyVariance)))
	s.logger.Info("dataset loaded",
		"source", s.source.Name(),
		"snapshot", snapshot.ID,
		"points", len(ds.MonthlyVariance),
		"base_temperature", ds.BaseTemperature,
	)

	id := snapshot.ID
	success := snapshot.LoadedAt
	s.mu.Lock()
	s.status = Status{
		State:       StateReady,
		Source:      s.source.Name(),
		SnapshotID:  &id,
		Points:      len(ds.MonthlyVariance),
		LastAttempt: &attempt,
		LastSuccess: &success,
	}
	s.mu.Unlock()

	s.finishFirst(nil)
	return nil
}

func (s *Service) finishFirst(err error) {
	s.firstOnce.Do(func() {
		s.firstErr = err
		close(s.firstDone)
	})
}

// Status returns the current state of the load stage.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Wait blocks until the first refresh attempt has finished and returns its error.
func (s *Service) Wait(ctx context.Context) error {
	select {
	case <-s.firstDone:
		return s.firstErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Latest returns the newest snapshot, or an error wrapping ErrNotLoaded.
func (s *Service) Latest() (Snapshot, error) {
	snap, err := s.store.GetLatest(s.source.Name())
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrNotLoaded, err)
	}
	return snap, nil
}

// History returns every retained snapshot, oldest first.
func (s *Service) History() ([]Snapshot, error) {
	snaps, err := s.store.List(s.source.Name())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotLoaded, err)
	}
	return snaps, nil
}

// LoadOnce runs a single refresh bounded by timeout.
func (s *Service) LoadOnce(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Refresh(ctx)
}
