package workpool

import (
	"context"

	"github.com/go-workpool/workpool/core"
)

// Re-export commonly used types from core package for convenience.
// This allows users to import only the workpool package for most use cases.

// Task is the type-erased unit of work (a runnable)
type Task = core.Task

// TaskWithResult is a task producing a typed result or an error
type TaskWithResult[T any] = core.TaskWithResult[T]

// Future is the caller-held handle to a submitted task's outcome
type Future[T any] = core.Future[T]

// Pool is a fixed-size set of workers pulling from a shared FIFO queue
type Pool = core.Pool

// PoolConfig holds optional pool configuration
type PoolConfig = core.PoolConfig

// PoolStats is a point-in-time snapshot of a pool's state
type PoolStats = core.PoolStats

// TaskExecutionRecord captures one completed task execution
type TaskExecutionRecord = core.TaskExecutionRecord

// PanicError is the failure a Future reports when its task panicked
type PanicError = core.PanicError

// Observability interfaces
type (
	Logger       = core.Logger
	Field        = core.Field
	Metrics      = core.Metrics
	PanicHandler = core.PanicHandler
)

// Sentinel errors
var (
	ErrPoolStopped        = core.ErrPoolStopped
	ErrInvalidWorkerCount = core.ErrInvalidWorkerCount
	ErrNilTask            = core.ErrNilTask
)

// Constructors and helpers
var (
	NewPool           = core.NewPool
	NewPoolWithConfig = core.NewPoolWithConfig
	DefaultPoolConfig = core.DefaultPoolConfig
	F                 = core.F
)

// Submit submits a typed task to the pool and returns its Future.
// Generic functions cannot be re-exported through a var, so this is a thin
// wrapper over core.Submit.
func Submit[T any](p *Pool, task TaskWithResult[T]) (*Future[T], error) {
	return core.Submit(p, task)
}

// SubmitAll submits a batch of tasks and waits for all of them, returning
// results in submission order.
func SubmitAll[T any](ctx context.Context, p *Pool, tasks []TaskWithResult[T]) ([]T, error) {
	return core.SubmitAll(ctx, p, tasks)
}
