// Package task runs work on a bounded goroutine pool and hands back
// future-like handles for the results.
package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// ErrWorker marks a fault in scheduling or running a task, as opposed to
// a failure carried inside the task's own result.
var ErrWorker = errors.New("worker fault")

// Runner owns the worker pool backing async calls.
type Runner struct {
	pool   *ants.Pool
	wg     sync.WaitGroup
	logger *slog.Logger

	// mu orders admissions in Go against Close.
	mu     sync.RWMutex
	closed bool
}

// NewRunner creates a Runner with at most size concurrent workers.
// size <= 0 means effectively unbounded. Submission never blocks: when
// every worker is busy the task faults with ErrWorker instead.
func NewRunner(size int, logger *slog.Logger) (*Runner, error) {
	if size <= 0 {
		size = ants.DefaultAntsPoolSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	pool, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}

	return &Runner{pool: pool, logger: logger}, nil
}

// Close waits for in-flight tasks, then releases the pool. Tasks
// submitted afterwards fault with ErrWorker.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.wg.Wait()
	r.pool.Release()
}

// Go schedules fn on r and returns immediately.
func Go[T any](r *Runner, fn func() T) *Handle[T] {
	h := &Handle[T]{done: make(chan struct{})}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		h.err = fmt.Errorf("%w: runner closed", ErrWorker)
		close(h.done)
		return h
	}

	r.wg.Add(1)
	err := r.pool.Submit(func() {
		defer r.wg.Done()
		defer close(h.done)
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("task panicked", "panic", rec)
				h.err = fmt.Errorf("%w: panic: %v", ErrWorker, rec)
			}
		}()

		h.val = fn()
	})
	if err != nil {
		r.wg.Done()
		h.err = fmt.Errorf("%w: submit: %w", ErrWorker, err)
		close(h.done)
	}

	return h
}
