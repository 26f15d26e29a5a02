// internal/common/pool/pool_test.go
package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookup-relay/internal/common/logger"
)

func TestPool_RunsSubmittedTasks(t *testing.T) {
	p := New("test", 3, 16, logger.NewTestLogger(t))

	var count int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		require.NoError(t, p.Submit(func(ctx context.Context) {
			defer wg.Done()
			atomic.AddInt32(&count, 1)
		}))
	}
	wg.Wait()

	assert.EqualValues(t, 10, atomic.LoadInt32(&count))
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestPool_SubmitDoesNotBlockWhenFull(t *testing.T) {
	p := New("test", 1, 1, logger.NewTestLogger(t))

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(func(ctx context.Context) {
		close(started)
		<-block
	}))
	<-started

	require.NoError(t, p.Submit(func(ctx context.Context) {}))

	done := make(chan error, 1)
	go func() { done <- p.Submit(func(ctx context.Context) {}) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrQueueFull)
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}

	close(block)
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestPool_ShutdownDrainsQueue(t *testing.T) {
	p := New("test", 1, 8, logger.NewTestLogger(t))

	var count int32
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(func(ctx context.Context) {
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&count, 1)
		}))
	}

	require.NoError(t, p.Shutdown(context.Background()))
	assert.EqualValues(t, 5, atomic.LoadInt32(&count))
	assert.ErrorIs(t, p.Submit(func(ctx context.Context) {}), ErrClosed)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestPool_ShutdownDeadlineCancelsTasks(t *testing.T) {
	p := New("test", 1, 1, logger.NewTestLogger(t))

	cancelled := make(chan struct{})
	require.NoError(t, p.Submit(func(ctx context.Context) {
		<-ctx.Done()
		close(cancelled)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, p.Shutdown(ctx), context.DeadlineExceeded)
	<-cancelled
}

func TestPool_RecoversFromPanics(t *testing.T) {
	p := New("test", 1, 4, logger.NewTestLogger(t))

	ran := make(chan struct{})
	require.NoError(t, p.Submit(func(ctx context.Context) { panic("boom") }))
	require.NoError(t, p.Submit(func(ctx context.Context) { close(ran) }))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("worker died after panic")
	}
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNew_Defaults(t *testing.T) {
	p := New("test", 0, 0, logger.NewNoOpLogger())
	assert.Equal(t, DefaultQueueSize, cap(p.tasks))
	require.NoError(t, p.Shutdown(context.Background()))
}
