// Package parallel provides a small fixed-size worker pool used to drive
// independent wfc.World instances concurrently. A batch of independent
// tile-grid generations is a bounded, short-lived fan-out, not a
// long-running stream, so this keeps only the core mechanism — a task
// channel drained by a fixed number of goroutines, tracked with a
// WaitGroup — and none of the machinery a longer-lived worker pool would
// need (dynamic scaling, deadlock detection, stream merging, rate
// limiting).
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolClosed is returned by Submit after Close has been called.
var ErrPoolClosed = errors.New("parallel: pool is closed")

// Pool runs a fixed number of worker goroutines draining a shared task
// queue. A wfc.World is never safe to share across goroutines, but
// independent Worlds can run concurrently — Pool is the thing that runs
// them.
type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	once   sync.Once
	closed chan struct{}
}

// New starts a Pool with workers goroutines. workers <= 0 defaults to
// runtime.NumCPU().
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{
		tasks:  make(chan func()),
		closed: make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit enqueues task to run on a worker goroutine. It blocks until a
// worker picks it up, ctx is done, or the pool is closed.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	// Check closed first: once Close has run, p.tasks is closed too, and a
	// select that picked the send case would panic.
	select {
	case <-p.closed:
		return ErrPoolClosed
	default:
	}
	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.closed:
		return ErrPoolClosed
	}
}

// Close stops accepting new tasks and blocks until every in-flight task
// finishes. Close is idempotent.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.closed)
		close(p.tasks)
	})
	p.wg.Wait()
}
