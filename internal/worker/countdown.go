package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTickInterval is one wall-clock second.
const DefaultTickInterval = time.Second

// Countdown ticks once per interval and signals expiry when the count
// reaches zero. Callbacks run on the countdown goroutine.
type Countdown struct {
	interval time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewCountdown creates a disarmed Countdown. A non-positive interval falls
// back to DefaultTickInterval.
func NewCountdown(interval time.Duration, log zerolog.Logger) *Countdown {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Countdown{
		interval: interval,
		log:      log.With().Str("component", "countdown").Logger(),
	}
}

// Arm starts a countdown of durationSeconds ticks. Any countdown already
// running is cancelled first.
func (c *Countdown) Arm(durationSeconds int, onTick func(remaining int), onExpire func()) {
	ctx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	c.cancel = cancel
	c.mu.Unlock()

	c.log.Debug().Int("duration_seconds", durationSeconds).Msg("Countdown armed")

	go c.run(ctx, gen, durationSeconds, onTick, onExpire)
}

// Cancel stops the running countdown, if any. It never blocks on a callback
// in flight and is a no-op after expiry or a previous Cancel.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	c.log.Debug().Msg("Countdown cancelled")
}

// Armed reports whether a countdown is currently running.
func (c *Countdown) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

func (c *Countdown) run(ctx context.Context, gen uint64, remaining int, onTick func(int), onExpire func()) {
	if remaining <= 0 {
		c.expire(ctx, gen, onExpire)
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			// Both channels may be ready; cancellation wins.
			if ctx.Err() != nil {
				return
			}
			remaining--
			if onTick != nil {
				onTick(remaining)
			}
			if remaining <= 0 {
				c.expire(ctx, gen, onExpire)
				return
			}
		}
	}
}

// expire disarms the countdown if it is still the current one and then
// fires onExpire outside the lock.
func (c *Countdown) expire(ctx context.Context, gen uint64, onExpire func()) {
	c.mu.Lock()
	if ctx.Err() != nil || c.gen != gen {
		c.mu.Unlock()
		return
	}
	c.cancel()
	c.cancel = nil
	c.mu.Unlock()

	c.log.Debug().Msg("Countdown expired")
	if onExpire != nil {
		onExpire()
	}
}
