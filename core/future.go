package core

import (
	"context"
	"runtime/debug"
)

// Future is the caller-held handle to a submitted task's outcome.
//
// The slot is written exactly once, by the worker that executed the task.
// Reads are multi-shot: after the first successful Get, every later Get
// returns the same (value, err) pair without blocking. Failure comes back in
// err - the task's own error unchanged, or a *PanicError when the task
// panicked.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// complete records the outcome and releases all waiters. Called exactly once.
// The happens-before edge from close(done) makes value/err visible to every
// Get without further locking.
func (f *Future[T]) complete(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Get blocks until the task has executed, then returns its outcome.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// GetContext is Get with a deadline: it returns ctx.Err() if ctx is done
// before the outcome is recorded. The task itself is not cancelled - it will
// still run to completion, and a later Get observes its outcome.
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the outcome is available. Useful in
// select loops.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the outcome is available without blocking.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// bindTask splits a typed task into the runnable the queue stores and the
// handle the submitter keeps. Both sides share the one future; it stays alive
// until the queue entry has executed and the handle has been observed.
//
// The runnable writes a panic into the future before re-panicking so the
// worker's own recovery (panic handler, metrics, history) still sees it.
func bindTask[T any](task TaskWithResult[T]) (Task, *Future[T]) {
	future := newFuture[T]()

	runnable := func(ctx context.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				var zero T
				future.complete(zero, &PanicError{Value: rec, Stack: debug.Stack()})
				panic(rec)
			}
		}()

		value, err := task(ctx)
		future.complete(value, err)
	}

	return runnable, future
}
