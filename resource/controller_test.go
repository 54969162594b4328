package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobSlots(t *testing.T) {
	ctx := context.Background()
	c := NewController(Config{MaxConcurrentSnapshots: 1})

	require.NoError(t, c.AcquireJob(ctx))

	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.Error(t, c.AcquireJob(blocked))

	c.ReleaseJob()
	require.NoError(t, c.AcquireJob(ctx))
	c.ReleaseJob()
}

func TestWaitIOSplitsLargeRequests(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	// Larger than the burst; must not error, just wait.
	require.NoError(t, c.WaitIO(context.Background(), 1<<20+1))
}

func TestWaitIOCancellation(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, c.WaitIO(ctx, 100))
}

func TestNilControllerIsNoop(t *testing.T) {
	var c *Controller
	require.NoError(t, c.AcquireJob(context.Background()))
	c.ReleaseJob()
	require.NoError(t, c.WaitIO(context.Background(), 1<<30))
}
