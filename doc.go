// Package workpool provides a fixed-size worker pool with future-based
// result handles for Go.
//
// A Pool owns a bounded set of long-lived worker goroutines pulling tasks
// from a shared unbounded FIFO queue. Submitting a task returns a Future
// immediately; the caller retrieves the outcome - the task's value, its
// error, or a captured panic - whenever it wants, blocking until the task
// has run.
//
// # Quick Start
//
//	pool, err := workpool.NewPool(4)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Shutdown()
//
//	future, err := workpool.Submit(pool, func(ctx context.Context) (int, error) {
//		return 10 + 32, nil
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	sum, err := future.Get() // 42, nil
//
// # Key Concepts
//
// Task: the type-erased unit of work the queue stores. Typed tasks and
// their captured arguments exist only at the Submit call site.
//
// Future: the caller-held handle to a task's outcome. Written exactly once
// by the worker that ran the task; readable any number of times afterwards.
//
// Shutdown: stops intake, wakes every worker, and drains the queue - queued
// work is always completed, never discarded. Shutdown is idempotent and
// blocks until all workers have exited. A pool dropped without Shutdown is
// shut down by a GC cleanup, so worker goroutines are never abandoned.
//
// # Failure Isolation
//
// A task that returns an error or panics affects only its own Future. The
// worker recovers panics, reports them to the configured PanicHandler and
// Metrics, and keeps serving the queue.
package workpool
