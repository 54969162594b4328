// Package resource throttles the background work the persistence layer
// performs: concurrent snapshot jobs and snapshot I/O throughput.
package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentSnapshots is the maximum number of snapshot saves or
	// loads running at once. If 0, defaults to 1.
	MaxConcurrentSnapshots int64

	// IOLimitBytesPerSec is the maximum snapshot I/O throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller enforces the configured limits. The zero-value pointer is not
// usable; construct with NewController. A nil *Controller is a no-op and
// imposes no limits.
type Controller struct {
	jobSem    *semaphore.Weighted
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentSnapshots <= 0 {
		cfg.MaxConcurrentSnapshots = 1
	}

	c := &Controller{
		jobSem: semaphore.NewWeighted(cfg.MaxConcurrentSnapshots),
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// AcquireJob blocks until a snapshot job slot is available or ctx is done.
func (c *Controller) AcquireJob(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.jobSem.Acquire(ctx, 1)
}

// ReleaseJob returns a snapshot job slot.
func (c *Controller) ReleaseJob() {
	if c == nil {
		return
	}
	c.jobSem.Release(1)
}

// WaitIO blocks until n bytes of I/O budget are available or ctx is done.
func (c *Controller) WaitIO(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil || n <= 0 {
		return nil
	}
	// The limiter burst equals the per-second budget; larger requests are
	// split so they still make progress.
	burst := c.ioLimiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := c.ioLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
