package entities

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultPaceInterval is the minimum spacing between two search calls.
	DefaultPaceInterval = time.Second
	// DefaultCooldown is the pause applied after a rate-limit signal.
	DefaultCooldown = 60 * time.Second
)

// Pacer throttles calls against a shared external rate limit.
type Pacer interface {
	// Pace blocks until the next call is allowed to go out.
	Pace(ctx context.Context) error

	// Cooldown blocks for the configured cooldown period after the remote
	// side has signalled rate limiting.
	Cooldown(ctx context.Context) error
}

// IntervalPacer paces calls with a token bucket of burst one, so the
// effective spacing between calls is the configured interval. The cooldown
// is a fixed pause, interruptible through the context.
type IntervalPacer struct {
	limiter  *rate.Limiter
	cooldown time.Duration
}

var _ Pacer = (*IntervalPacer)(nil)

// NewIntervalPacer creates a pacer with the given call spacing and cooldown.
// A non-positive interval disables spacing entirely.
func NewIntervalPacer(interval, cooldown time.Duration) *IntervalPacer {
	return &IntervalPacer{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		cooldown: cooldown,
	}
}

func (p *IntervalPacer) Pace(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

func (p *IntervalPacer) Cooldown(ctx context.Context) error {
	if p.cooldown <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.cooldown)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
