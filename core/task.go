package core

import "context"

// Task is the type-erased unit of work stored in the pool's queue (a
// runnable): a zero-argument closure invoked exactly once, by exactly one
// worker. Concrete callable types and their captured arguments exist only at
// the submission site; the queue and the workers never see them.
type Task func(ctx context.Context)

// TaskWithResult is a caller-facing task producing a typed result or an
// error. Submit turns it into a (Task, *Future[T]) pair.
type TaskWithResult[T any] func(ctx context.Context) (T, error)
