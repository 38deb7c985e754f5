package manage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockPool returns a one-worker pool whose single worker is parked on a task
// until release is closed, so queue behavior can be tested deterministically.
func blockPool(t *testing.T, queueSize int) (*Pool, chan struct{}, *Future) {
	t.Helper()
	pool := NewPool(1, queueSize)
	release := make(chan struct{})
	running := make(chan struct{})
	blocker, err := pool.Submit(context.Background(), func(ctx context.Context) (interface{}, error) {
		close(running)
		<-release
		return nil, nil
	})
	require.NoError(t, err)
	<-running
	return pool, release, blocker
}

func TestPoolSubmitAndWait(t *testing.T) {
	pool := NewPool(2, 4)
	defer pool.Shutdown(context.Background())

	fut, err := pool.Submit(context.Background(), func(ctx context.Context) (interface{}, error) {
		return "done", nil
	})
	require.NoError(t, err)

	result, err := fut.Wait(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "done", result)
}

func TestPoolTaskError(t *testing.T) {
	pool := NewPool(1, 1)
	defer pool.Shutdown(context.Background())

	wantErr := errors.New("mocked-error")
	fut, err := pool.Submit(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, wantErr
	})
	require.NoError(t, err)

	result, err := fut.Wait(context.Background())
	assert.Nil(t, result)
	assert.Equal(t, wantErr, err)
}

func TestPoolSaturation(t *testing.T) {
	pool, release, blocker := blockPool(t, 1)
	defer pool.Shutdown(context.Background())

	// the worker is busy, so exactly one task fits in the queue
	queued, err := pool.Submit(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	require.NoError(t, err)

	_, err = pool.Submit(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrPoolSaturated)

	close(release)
	_, err = blocker.Wait(context.Background())
	assert.NoError(t, err)
	_, err = queued.Wait(context.Background())
	assert.NoError(t, err)
}

func TestFutureCancelBeforeStart(t *testing.T) {
	pool, release, blocker := blockPool(t, 2)
	defer pool.Shutdown(context.Background())

	ran := false
	queued, err := pool.Submit(context.Background(), func(ctx context.Context) (interface{}, error) {
		ran = true
		return nil, nil
	})
	require.NoError(t, err)

	assert.True(t, queued.Cancel())
	assert.False(t, queued.Cancel(), "second cancel is a no-op")

	_, err = queued.Wait(context.Background())
	assert.ErrorIs(t, err, ErrCanceled)

	close(release)
	_, err = blocker.Wait(context.Background())
	require.NoError(t, err)
	// the blocker started before Cancel could reach it
	assert.False(t, blocker.Cancel())

	require.NoError(t, pool.Shutdown(context.Background()))
	assert.False(t, ran, "canceled task must never run")
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := NewPool(1, 1)
	require.NoError(t, pool.Shutdown(context.Background()))

	_, err := pool.Submit(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestExpiredContextSkipsTask(t *testing.T) {
	pool := NewPool(1, 1)
	defer pool.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fut, err := pool.Submit(ctx, func(ctx context.Context) (interface{}, error) {
		t.Error("task with expired context must not run")
		return nil, nil
	})
	require.NoError(t, err)

	_, err = fut.Wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitRespectsContext(t *testing.T) {
	pool, release, _ := blockPool(t, 1)
	defer pool.Shutdown(context.Background())
	defer close(release)

	queued, err := pool.Submit(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = queued.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
