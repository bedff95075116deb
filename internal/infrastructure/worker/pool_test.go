package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPool_RunsEnqueuedJobs(t *testing.T) {
	pool := NewPool(Config{Workers: 2, QueueSize: 10}, zap.NewNop())
	require.NoError(t, pool.Start(context.Background()))

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := pool.Enqueue("test", "job", func(ctx context.Context) error {
			defer wg.Done()
			ran.Add(1)
			return nil
		})
		require.NoError(t, err)
	}
	wg.Wait()

	assert.Equal(t, int32(5), ran.Load())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, pool.Stop(ctx))
}

func TestPool_EnqueueBeforeStart(t *testing.T) {
	pool := NewPool(DefaultConfig(), zap.NewNop())

	err := pool.Enqueue("test", "job", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrPoolNotRunning)
}

func TestPool_QueueFull(t *testing.T) {
	pool := NewPool(Config{Workers: 1, QueueSize: 1}, zap.NewNop())
	require.NoError(t, pool.Start(context.Background()))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = pool.Stop(ctx)
	}()

	release := make(chan struct{})
	blocker := func(ctx context.Context) error {
		<-release
		return nil
	}
	// first job occupies the worker, second fills the queue
	require.NoError(t, pool.Enqueue("test", "busy", blocker))
	for {
		if err := pool.Enqueue("test", "fill", blocker); err != nil {
			assert.ErrorIs(t, err, ErrQueueFull)
			break
		}
	}
	close(release)
}

func TestPool_StopDrainsInFlightJobs(t *testing.T) {
	pool := NewPool(Config{Workers: 1, QueueSize: 10}, zap.NewNop())
	require.NoError(t, pool.Start(context.Background()))

	started := make(chan struct{})
	var sawCancel atomic.Bool
	require.NoError(t, pool.Enqueue("test", "inflight", func(ctx context.Context) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		sawCancel.Store(ctx.Err() != nil)
		return nil
	}))

	<-started
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, pool.Stop(ctx))

	// The job outlives the Stop call but must finish with a live context,
	// so its ledger write can still go through.
	assert.False(t, sawCancel.Load())
}

func TestPool_StopTimeoutCancelsWorkers(t *testing.T) {
	pool := NewPool(Config{Workers: 1, QueueSize: 10}, zap.NewNop())
	require.NoError(t, pool.Start(context.Background()))

	canceled := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Enqueue("test", "stuck", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(canceled)
		return ctx.Err()
	}))

	<-started
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Stop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("stuck job was not canceled after the stop deadline")
	}
}

func TestPool_StopAfterJobsFinish(t *testing.T) {
	pool := NewPool(Config{Workers: 1, QueueSize: 10}, zap.NewNop())
	require.NoError(t, pool.Start(context.Background()))

	done := make(chan struct{})
	require.NoError(t, pool.Enqueue("test", "slow", func(ctx context.Context) error {
		defer close(done)
		time.Sleep(20 * time.Millisecond)
		return errors.New("recorded, not propagated")
	}))

	<-done
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, pool.Stop(ctx))
}
