package core

import (
	"errors"
	"fmt"
)

// ErrPoolStopped is returned by Post and Submit once Shutdown has begun.
// Already-queued and already-running tasks are unaffected.
var ErrPoolStopped = errors.New("workpool: pool stopped")

// ErrInvalidWorkerCount is returned by NewPool when the requested worker
// count is less than one.
var ErrInvalidWorkerCount = errors.New("workpool: worker count must be at least 1")

// ErrNilTask is returned when a nil task is submitted.
var ErrNilTask = errors.New("workpool: nil task submitted")

// PanicError is the failure a Future reports when its task panicked.
// The recovered value and the worker's stack trace at the time of the panic
// are preserved; the panic itself never escapes the worker.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workpool: task panicked: %v", e.Value)
}
