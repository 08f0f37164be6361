package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-logger/internal/weather"
)

var (
	// ErrNoSnapshot is returned before the first successful collection.
	ErrNoSnapshot = errors.New("no weather snapshot collected yet")
)

// LatestStore is a concurrency-safe single-slot cache holding the most
// recent snapshot. It is written only by the scheduled collection job and
// read concurrently by request handlers.
type LatestStore struct {
	mu sync.RWMutex

	bundle    weather.CurrentBundle
	fetchedAt time.Time
	populated bool
}

// NewLatestStore creates an empty LatestStore.
func NewLatestStore() *LatestStore {
	return &LatestStore{}
}

// SaveLatest replaces the cached snapshot and records the fetch time.
func (s *LatestStore) SaveLatest(bundle weather.CurrentBundle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bundle = bundle
	s.fetchedAt = time.Now()
	s.populated = true
}

// Latest returns the cached snapshot and the time it was fetched.
func (s *LatestStore) Latest() (weather.CurrentBundle, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.populated {
		return weather.CurrentBundle{}, time.Time{}, ErrNoSnapshot
	}
	return s.bundle, s.fetchedAt, nil
}
