// Package scheduler runs the periodic upstream reachability probe that feeds
// the health endpoint.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/giygas/lactancia-api/health"
	"github.com/giygas/lactancia-api/interfaces"
	"github.com/giygas/lactancia-api/logging"
)

const probeTimeout = 30 * time.Second

var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler probes the upstream every interval and records the outcome
type Scheduler struct {
	prober    interfaces.Prober
	status    *health.UpstreamStatus
	interval  time.Duration
	scheduler *gocron.Scheduler
}

func NewScheduler(prober interfaces.Prober, status *health.UpstreamStatus, interval time.Duration) *Scheduler {
	return &Scheduler{
		prober:    prober,
		status:    status,
		interval:  interval,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start schedules the probe. The first run happens immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("probe interval must be positive, got %s", s.interval)
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.probe)
	if err != nil {
		logging.Error("Failed to schedule upstream probe", "error", err)
		return fmt.Errorf("failed to schedule upstream probe: %w", err)
	}

	s.scheduler.StartAsync()
	logging.Info("Upstream probe scheduled", "interval", s.interval.String())
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	start := time.Now()
	err := s.prober.Probe(ctx)
	s.status.Record(time.Now(), err)

	if err != nil {
		logging.Warn("Upstream probe failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	logging.Debug("Upstream probe succeeded", "duration_ms", time.Since(start).Milliseconds())
}
