package manage

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrPoolSaturated is returned by Submit when the task queue is full.
	ErrPoolSaturated = errors.New("worker pool queue is full")

	// ErrPoolClosed is returned by Submit after Shutdown.
	ErrPoolClosed = errors.New("worker pool is shut down")

	// ErrCanceled completes a future whose task was canceled before it
	// started running.
	ErrCanceled = errors.New("task canceled before start")
)

// Task is one unit of asynchronous work.
type Task func(ctx context.Context) (interface{}, error)

// Future is the completion handle for a submitted task. Cancel only prevents
// a task that has not started yet; once a task is running it finishes,
// including any store I/O already issued.
type Future struct {
	mu       sync.Mutex
	started  bool
	canceled bool
	done     chan struct{}
	result   interface{}
	err      error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Wait blocks until the task completes or ctx is done.
func (f *Future) Wait(ctx context.Context) (interface{}, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel marks the future canceled. It reports whether the cancellation took
// effect, i.e. the task had not started running.
func (f *Future) Cancel() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.started || f.canceled {
		return false
	}
	f.canceled = true
	f.err = ErrCanceled
	close(f.done)
	return true
}

// begin transitions the future to running unless it was canceled first.
func (f *Future) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.canceled {
		return false
	}
	f.started = true
	return true
}

func (f *Future) complete(result interface{}, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result = result
	f.err = err
	close(f.done)
}

type poolTask struct {
	ctx context.Context
	fn  Task
	fut *Future
}

// Pool is a bounded worker pool: a fixed number of workers draining a
// bounded queue. Submissions that would overflow the queue are rejected
// rather than queued without limit.
type Pool struct {
	tasks  chan poolTask
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// DefaultWorkers and DefaultQueueSize mirror the async executor sizing this
// service has always run with.
const (
	DefaultWorkers   = 5
	DefaultQueueSize = 25
)

// NewPool starts workers goroutines draining a queue of queueSize pending
// tasks.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	p := &Pool{tasks: make(chan poolTask, queueSize)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		if !t.fut.begin() {
			continue
		}
		if err := t.ctx.Err(); err != nil {
			t.fut.complete(nil, err)
			continue
		}
		result, err := t.fn(t.ctx)
		t.fut.complete(result, err)
	}
}

// Submit enqueues fn and returns its future. The call never blocks: a full
// queue returns ErrPoolSaturated so the caller can surface the rejection.
func (p *Pool) Submit(ctx context.Context, fn Task) (*Future, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPoolClosed
	}
	fut := newFuture()
	select {
	case p.tasks <- poolTask{ctx: ctx, fn: fn, fut: fut}:
		return fut, nil
	default:
		zap.S().Warnw("worker pool rejected submission", "queued", len(p.tasks))
		return nil, ErrPoolSaturated
	}
}

// Shutdown stops accepting work and waits for queued tasks to drain or ctx
// to expire.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
