package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a reservation would exceed the memory budget.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Config holds resource limits. Zero values mean unlimited.
type Config struct {
	// MemoryLimitBytes caps the bytes held by caches sharing this controller.
	MemoryLimitBytes int64
	// MaxConcurrentReads caps the number of in-flight backend reads.
	MaxConcurrentReads int64
	// ReadBytesPerSec caps backend read throughput.
	ReadBytesPerSec int64
}

// Controller enforces Config across every store and cache it is handed to.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted
	memUsed atomic.Int64

	readSem *semaphore.Weighted
	limiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.MaxConcurrentReads > 0 {
		c.readSem = semaphore.NewWeighted(cfg.MaxConcurrentReads)
	}
	if cfg.ReadBytesPerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.ReadBytesPerSec), int(cfg.ReadBytesPerSec))
	}
	return c
}

// TryReserveMemory reserves n bytes without blocking.
func (c *Controller) TryReserveMemory(n int64) bool {
	if c == nil || n <= 0 {
		return true
	}
	if c.memSem != nil && !c.memSem.TryAcquire(n) {
		return false
	}
	c.memUsed.Add(n)
	return true
}

// ReserveMemory is TryReserveMemory returning ErrMemoryLimitExceeded on failure.
func (c *Controller) ReserveMemory(n int64) error {
	if !c.TryReserveMemory(n) {
		return ErrMemoryLimitExceeded
	}
	return nil
}

// ReleaseMemory returns n bytes to the budget.
func (c *Controller) ReleaseMemory(n int64) {
	if c == nil || n <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(n)
	}
	c.memUsed.Add(-n)
}

// MemoryUsage returns the reserved bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// BeginRead blocks until a read slot is free and the throughput limit admits
// n bytes. The returned func releases the slot.
func (c *Controller) BeginRead(ctx context.Context, n int) (func(), error) {
	if c == nil {
		return func() {}, nil
	}
	if c.readSem != nil {
		if err := c.readSem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
	}
	release := func() {
		if c.readSem != nil {
			c.readSem.Release(1)
		}
	}
	if err := c.waitBytes(ctx, n); err != nil {
		release()
		return nil, err
	}
	return release, nil
}

// WaitBytes blocks until the throughput limit admits n bytes.
func (c *Controller) WaitBytes(ctx context.Context, n int) error {
	if c == nil {
		return nil
	}
	return c.waitBytes(ctx, n)
}

func (c *Controller) waitBytes(ctx context.Context, n int) error {
	if c.limiter == nil || n <= 0 {
		return nil
	}
	burst := c.limiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := c.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
