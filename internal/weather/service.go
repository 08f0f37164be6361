package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/i474232898/weather-logger/internal/logger"
)

// Service ties the provider to the latest-snapshot cache and the CSV sink.
// Request handlers call the fetch methods directly; the scheduler drives
// CollectAndPersist.
type Service struct {
	provider Provider
	store    Store
	appender Appender
	log      *logger.Logger
}

// NewService creates a new Service.
func NewService(provider Provider, store Store, appender Appender, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		store:    store,
		appender: appender,
		log:      log,
	}
}

// Current fetches a fresh current-conditions snapshot from the provider.
func (s *Service) Current(ctx context.Context) (CurrentBundle, error) {
	return s.provider.Current(ctx)
}

// Hourly fetches the current-day series from the provider.
func (s *Service) Hourly(ctx context.Context) (HourlyBundle, error) {
	return s.provider.Hourly(ctx)
}

// Historic fetches the raw archive payload from the provider.
func (s *Service) Historic(ctx context.Context) (json.RawMessage, error) {
	return s.provider.Historic(ctx)
}

// Latest returns the snapshot cached by the most recent successful
// collection cycle.
func (s *Service) Latest() (CurrentBundle, time.Time, error) {
	return s.store.Latest()
}

// CollectAndPersist runs one collection cycle: fetch the current snapshot,
// cache it, and append one row to the sink. A failed fetch is logged and
// demoted to a zero-valued snapshot, so a row of defaults is still persisted
// and the last good cached snapshot is kept. The returned error reports a
// persistence failure.
func (s *Service) CollectAndPersist(ctx context.Context) error {
	bundle, err := s.provider.Current(ctx)
	if err != nil {
		s.log.Errorw("weather fetch failed, persisting defaults row",
			"provider", s.provider.Name(), "error", err)
		bundle = CurrentBundle{}
	} else {
		s.store.SaveLatest(bundle)
	}

	if err := s.appender.Append(bundle.CurrentData); err != nil {
		return fmt.Errorf("append weather row: %w", err)
	}
	return nil
}
