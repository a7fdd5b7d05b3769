// Package health reports service health for the /health endpoint
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/lactancia-api/interfaces"
)

// HealthCheckerImpl implements interfaces.HealthChecker
type HealthCheckerImpl struct {
	cache     interfaces.RecordCache
	upstream  *UpstreamStatus
	interval  time.Duration
	startedAt time.Time
	now       func() time.Time
}

// NewHealthChecker reports on cache and upstream. probeInterval is how often
// the upstream is expected to be probed.
func NewHealthChecker(cache interfaces.RecordCache, upstream *UpstreamStatus, probeInterval time.Duration) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		cache:     cache,
		upstream:  upstream,
		interval:  probeInterval,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheck is degraded when the last probe failed or probes stopped
// arriving; a never-probed upstream counts as healthy.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	now := h.now()
	probe := h.upstream.Snapshot()

	upstream := "unknown"
	status, httpStatus = "healthy", http.StatusOK

	data = map[string]any{
		"uptime_seconds": math.Round(now.Sub(h.startedAt).Seconds()),
		"cache_entries":  h.cache.Size(),
	}

	if probe.Probed() {
		upstream = "reachable"
		data["last_probe"] = probe.CheckedAt.Format(time.RFC3339)
		data["probe_age_minutes"] = math.Round(now.Sub(probe.CheckedAt).Minutes()*10) / 10

		switch {
		case probe.Err != nil:
			upstream = "unreachable"
			data["probe_error"] = probe.Err.Error()
			data["consecutive_failures"] = probe.ConsecutiveFailures
			status, httpStatus = "degraded", http.StatusServiceUnavailable
		case h.interval > 0 && now.Sub(probe.CheckedAt) > 3*h.interval:
			upstream = "stale"
			status, httpStatus = "degraded", http.StatusServiceUnavailable
		}
	}
	data["upstream"] = upstream

	return status, data, httpStatus
}
