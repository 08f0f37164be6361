package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-logger/internal/logger"
	"github.com/i474232898/weather-logger/internal/weather"
)

// cycleTimeout bounds one fetch-and-persist cycle.
const cycleTimeout = 30 * time.Second

// Scheduler runs the periodic weather collection job. The first run is
// aligned to the next wall-clock hour boundary; after that the job recurs at
// the configured interval, which can be changed at runtime through
// UpdateInterval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	log       *logger.Logger

	mu       sync.Mutex
	interval time.Duration
	job      *gocron.Job
}

// New creates a Scheduler that collects via service every interval.
func New(interval time.Duration, service *weather.Service, log *logger.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		service:   service,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the collection job and starts the underlying scheduler.
// The first run happens at the next hour boundary strictly in the future;
// a start exactly on a boundary waits a full hour.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.interval < time.Second {
		return fmt.Errorf("invalid collection interval %v", s.interval)
	}

	now := time.Now()
	first := nextHourMark(now)
	s.log.Infow("waiting until next hour mark before first collection",
		"delay", first.Sub(now).Round(time.Second),
		"first_run", first.Format(time.RFC3339))

	job, err := s.scheduler.Every(int(s.interval.Seconds())).Seconds().
		StartAt(first).
		SingletonMode().
		Do(s.runCycle)
	if err != nil {
		return err
	}
	s.job = job

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()

	if err := s.service.CollectAndPersist(ctx); err != nil {
		s.log.Warnw("weather data not persisted, waiting for next cycle", "error", err)
		return
	}
	s.log.Infow("weather data updated", "next_in", s.Interval())
}

// UpdateInterval changes the collection cadence. The new interval takes
// effect immediately and the next run is rescheduled relative to now, so the
// startup hour alignment no longer applies. seconds must be positive.
func (s *Scheduler) UpdateInterval(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("interval must be a positive number of seconds, got %d", seconds)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job != nil {
		job, err := s.scheduler.Job(s.job).Every(seconds).Seconds().Update()
		if err != nil {
			return fmt.Errorf("reschedule collection job: %w", err)
		}
		s.job = job
	}
	s.interval = time.Duration(seconds) * time.Second

	s.log.Infow("collection interval updated", "interval", s.interval)
	return nil
}

// Interval returns the currently configured collection interval.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Stop stops the scheduler and cancels any future runs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// nextHourMark returns the first wall-clock hour boundary strictly after
// now. A time already exactly on a boundary advances a full hour.
func nextHourMark(now time.Time) time.Time {
	mark := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	if !mark.After(now) {
		mark = mark.Add(time.Hour)
	}
	return mark
}
