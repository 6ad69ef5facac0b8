package service

import (
	"context"
	"errors"
	"sync"
)

// ErrRunQueueClosed is returned for tasks submitted after Close.
var ErrRunQueueClosed = errors.New("run queue is closed")

// RunQueue executes submitted tasks on a single background worker so an
// interactive caller is never blocked by a detection run and runs never
// execute concurrently. Detection itself stays synchronous; the queue
// only moves the call off the caller's goroutine.
type RunQueue struct {
	tasks  chan func()
	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewRunQueue starts a run queue with the given backlog capacity
func NewRunQueue(capacity int) *RunQueue {
	if capacity < 1 {
		capacity = 1
	}

	q := &RunQueue{
		tasks: make(chan func(), capacity),
		done:  make(chan struct{}),
	}
	go q.worker()
	return q
}

func (q *RunQueue) worker() {
	defer close(q.done)
	for task := range q.tasks {
		task()
	}
}

// Submit enqueues a task and returns a channel that yields its error once
// the worker has run it. Submit blocks only when the backlog is full.
// After Close the channel yields ErrRunQueueClosed instead.
func (q *RunQueue) Submit(ctx context.Context, task func(ctx context.Context) error) <-chan error {
	result := make(chan error, 1)

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		result <- ErrRunQueueClosed
		return result
	}

	q.tasks <- func() {
		// The submitter may have given up while the task was queued
		select {
		case <-ctx.Done():
			result <- ctx.Err()
			return
		default:
		}
		result <- task(ctx)
	}

	return result
}

// Wait blocks until the queued task completes or the context is cancelled
func (q *RunQueue) Wait(ctx context.Context, result <-chan error) error {
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks and waits for the worker to drain
func (q *RunQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	q.mu.Unlock()
	<-q.done
}
