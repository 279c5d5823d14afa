package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.ReserveMemory(60))
	assert.Equal(t, int64(60), c.MemoryUsage())

	assert.ErrorIs(t, c.ReserveMemory(50), ErrMemoryLimitExceeded)
	assert.True(t, c.TryReserveMemory(40))

	c.ReleaseMemory(100)
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_NilIsUnlimited(t *testing.T) {
	var c *Controller

	assert.True(t, c.TryReserveMemory(1<<40))
	c.ReleaseMemory(1 << 40)
	assert.Equal(t, int64(0), c.MemoryUsage())

	release, err := c.BeginRead(context.Background(), 1<<20)
	require.NoError(t, err)
	release()
	require.NoError(t, c.WaitBytes(context.Background(), 1<<20))
}

func TestController_ReadSlots(t *testing.T) {
	c := NewController(Config{MaxConcurrentReads: 1})

	release, err := c.BeginRead(context.Background(), 0)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.BeginRead(ctx, 0)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release2, err := c.BeginRead(context.Background(), 0)
	require.NoError(t, err)
	release2()
}

func TestController_WaitBytesLargerThanBurst(t *testing.T) {
	c := NewController(Config{ReadBytesPerSec: 1 << 20})

	start := time.Now()
	require.NoError(t, c.WaitBytes(context.Background(), 1<<19))
	assert.Less(t, time.Since(start), time.Second)
}

func TestController_WaitBytesCanceled(t *testing.T) {
	c := NewController(Config{ReadBytesPerSec: 10})
	require.NoError(t, c.WaitBytes(context.Background(), 10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, c.WaitBytes(ctx, 10))
}
