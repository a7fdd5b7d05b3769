package translation

import (
	"context"
	"time"

	"github.com/giygas/lactancia-api/interfaces"
)

// DelayPacer waits a fixed delay between calls
type DelayPacer struct {
	Delay time.Duration
}

func (p DelayPacer) Pause(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoPacer never waits. It still honours cancellation.
type NoPacer struct{}

func (NoPacer) Pause(ctx context.Context) error {
	return ctx.Err()
}

var (
	_ interfaces.Pacer = DelayPacer{}
	_ interfaces.Pacer = NoPacer{}
)
