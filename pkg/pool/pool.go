// Package pool provides a fixed-size pool of long-lived worker goroutines
// fed from a single FIFO queue.
//
// Queue, counters and the stop flag are guarded by one mutex. Workers sleep
// on the ready condition and waiters on the idle condition, both bound to
// that mutex, so a completion can never slip between a waiter's check and
// its sleep.
package pool

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
)

// Stats is a snapshot of the pool counters
type Stats struct {
	Workers   int
	Queued    int
	Submitted uint64
	Completed uint64
	Panicked  uint64
	Stopped   bool
}

// Option configures a Pool
type Option func(*Pool)

// WithLogger sets the logger used to report panicking tasks and lifecycle events
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pool runs submitted tasks on a fixed set of workers.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	logger  *slog.Logger

	mu        sync.Mutex
	ready     *sync.Cond // queue non-empty or stopped
	idle      *sync.Cond // completed caught up with submitted
	queue     []func()
	submitted uint64
	completed uint64
	panicked  uint64
	stopped   bool

	wg sync.WaitGroup
}

// New starts a pool with the given number of workers.
// If workers is 0 or negative, runtime.NumCPU() is used.
func New(workers int, opts ...Option) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &Pool{
		workers: workers,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.ready = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	p.logger.Debug("pool started", "workers", workers)
	return p
}

// Workers returns the number of worker goroutines
func (p *Pool) Workers() int {
	return p.workers
}

// Submit enqueues a task. It returns false, dropping the task, once the
// pool has been stopped.
func (p *Pool) Submit(task func()) bool {
	if task == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return false
	}
	p.queue = append(p.queue, task)
	p.submitted++
	p.ready.Signal()
	return true
}

// Wait blocks until every submitted task has completed. After Stop it
// returns as soon as the running tasks have finished.
func (p *Pool) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.completed < p.submitted || len(p.queue) > 0 {
		p.idle.Wait()
	}
}

// WaitContext is Wait with cancellation. The pool keeps running the
// outstanding tasks when ctx is done, and the goroutine blocked in Wait on
// the caller's behalf stays blocked until the pool becomes idle or is
// stopped.
func (p *Pool) WaitContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop discards queued tasks, lets running tasks finish and joins all
// workers. It is safe to call more than once.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.stopped = true
	dropped := len(p.queue)
	p.queue = nil
	p.submitted -= uint64(dropped)
	p.ready.Broadcast()
	p.idle.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Debug("pool stopped", "dropped", dropped)
}

// Stats returns a snapshot of the counters
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		Workers:   p.workers,
		Queued:    len(p.queue),
		Submitted: p.submitted,
		Completed: p.completed,
		Panicked:  p.panicked,
		Stopped:   p.stopped,
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.ready.Wait()
		}
		if p.stopped {
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		ok := p.run(id, task)

		p.mu.Lock()
		p.completed++
		if !ok {
			p.panicked++
		}
		if p.completed >= p.submitted && len(p.queue) == 0 {
			p.idle.Broadcast()
		}
		p.mu.Unlock()
	}
}

// run executes one task, converting a panic into a log record
func (p *Pool) run(id int, task func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pool task panicked", "worker", id, "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	task()
	return true
}
