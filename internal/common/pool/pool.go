// internal/common/pool/pool.go
package pool

import (
	"context"
	"errors"
	"sync"

	"lookup-relay/internal/common/logger"
)

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 64
)

var (
	ErrQueueFull = errors.New("POOL_QUEUE_FULL")
	ErrClosed    = errors.New("POOL_CLOSED")
)

// Task is a unit of fire-and-forget work. The context is the pool's own, cancelled on
// Shutdown deadline, never the submitter's.
type Task func(ctx context.Context)

// Pool runs submitted tasks on a fixed number of goroutines.
type Pool struct {
	name   string
	tasks  chan Task
	logger logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func New(name string, workers, queueSize int, log logger.Logger) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		name:   name,
		tasks:  make(chan Task, queueSize),
		logger: log.With(map[string]interface{}{"pool": name}),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}

	p.logger.Info("worker pool started", map[string]interface{}{
		"workers":   workers,
		"queueSize": queueSize,
	})
	return p
}

func (p *Pool) run(id int) {
	defer p.wg.Done()
	for task := range p.tasks {
		p.execute(id, task)
	}
}

func (p *Pool) execute(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", map[string]interface{}{
				"worker": id,
				"panic":  r,
			})
		}
	}()
	task(p.ctx)
}

// Submit enqueues task without blocking. A full queue or a shut down pool drops the task.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		p.logger.Warn("task dropped, queue full", map[string]interface{}{
			"queueSize": cap(p.tasks),
		})
		return ErrQueueFull
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish. When ctx expires first
// the running tasks' context is cancelled and ctx.Err() is returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.logger.Info("worker pool stopped", nil)
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return ctx.Err()
	}
}
