package store

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/temperature-heatmap/internal/temperature"
)

var (
	// ErrNotFound is returned when no snapshot is available for a given source.
	ErrNotFound = errors.New("no dataset snapshot for source")
)

// SnapshotHistory holds the load-ordered snapshots of one source.
type SnapshotHistory struct {
	Snapshots []temperature.Snapshot
}

// MemoryStore is a concurrency-safe in-memory store of loaded datasets.
type MemoryStore struct {
	mu sync.RWMutex

	// key: source name, value: history
	data map[string]*SnapshotHistory

	clock clockwork.Clock

	// retention configuration
	maxHistory int           // max number of snapshots per source
	maxAge     time.Duration // optional max age for snapshots
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return NewMemoryStoreWithClock(maxHistory, maxAge, clockwork.NewRealClock())
}

// NewMemoryStoreWithClock is NewMemoryStore with an injectable time source.
func NewMemoryStoreWithClock(maxHistory int, maxAge time.Duration, clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*SnapshotHistory),
		clock:      clock,
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveSnapshot appends a snapshot for its source and enforces retention.
// The newest snapshot is always kept.
func (s *MemoryStore) SaveSnapshot(snapshot temperature.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[snapshot.Source]
	if !ok {
		history = &SnapshotHistory{}
		s.data[snapshot.Source] = history
	}

	history.Snapshots = append(history.Snapshots, snapshot)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Snapshots) > s.maxHistory {
		over := len(history.Snapshots) - s.maxHistory
		history.Snapshots = history.Snapshots[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.clock.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Snapshots)-1; i++ {
			if !history.Snapshots[i].LoadedAt.Before(cutoff) {
				break
			}
		}
		history.Snapshots = history.Snapshots[i:]
	}
}

// GetLatest returns the most recently loaded snapshot of a source.
func (s *MemoryStore) GetLatest(source string) (temperature.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[source]
	if !ok || len(history.Snapshots) == 0 {
		return temperature.Snapshot{}, ErrNotFound
	}
	return history.Snapshots[len(history.Snapshots)-1], nil
}

// List returns a copy of every retained snapshot of a source, oldest first.
func (s *MemoryStore) List(source string) ([]temperature.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[source]
	if !ok || len(history.Snapshots) == 0 {
		return nil, ErrNotFound
	}

	result := make([]temperature.Snapshot, len(history.Snapshots))
	copy(result, history.Snapshots)
	return result, nil
}
