package weather

import (
	"context"
	"encoding/json"
	"time"
)

// Provider abstracts the upstream weather data source (Open-Meteo). All
// calls honor the context and report failures as errors; they never panic
// and never retry.
type Provider interface {
	Name() string

	// Current returns the current-conditions snapshot.
	Current(ctx context.Context) (CurrentBundle, error)

	// Hourly returns the hour-by-hour series for the current day.
	Hourly(ctx context.Context) (HourlyBundle, error)

	// Historic returns the provider's raw JSON for the full archive range.
	Historic(ctx context.Context) (json.RawMessage, error)
}

// Store is the contract for the single-slot latest-snapshot cache written by
// the scheduled collection job and read by request handlers.
type Store interface {
	SaveLatest(bundle CurrentBundle)
	Latest() (CurrentBundle, time.Time, error)
}

// Appender is the contract for the append-only persistence sink. Append
// converts one observation into one persisted row.
type Appender interface {
	Append(obs CurrentObservation) error
}
