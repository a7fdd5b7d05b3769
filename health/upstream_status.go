package health

import (
	"sync"
	"time"
)

// UpstreamStatus remembers the outcome of the latest upstream probe
type UpstreamStatus struct {
	mu        sync.RWMutex
	checkedAt time.Time
	lastErr   error
	failures  int
}

// ProbeResult is a snapshot of UpstreamStatus
type ProbeResult struct {
	CheckedAt           time.Time
	Err                 error
	ConsecutiveFailures int
}

func (p ProbeResult) Probed() bool {
	return !p.CheckedAt.IsZero()
}

func NewUpstreamStatus() *UpstreamStatus {
	return &UpstreamStatus{}
}

// Record stores the result of a probe
func (u *UpstreamStatus) Record(at time.Time, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.checkedAt = at
	u.lastErr = err
	if err != nil {
		u.failures++
	} else {
		u.failures = 0
	}
}

func (u *UpstreamStatus) Snapshot() ProbeResult {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return ProbeResult{CheckedAt: u.checkedAt, Err: u.lastErr, ConsecutiveFailures: u.failures}
}
