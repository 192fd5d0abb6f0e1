package core

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// PanicHandler: Interface for handling task panics
// =============================================================================

// PanicHandler is called when a task panics during execution.
// The panic never terminates the worker: it is recovered, routed into the
// task's Future (when one exists), and reported here.
//
// Implementations must be safe for concurrent use, as workers may panic
// simultaneously.
type PanicHandler interface {
	// HandlePanic is called when a task panics.
	//
	// Parameters:
	// - ctx: The context the task ran with
	// - poolName: The name of the pool whose worker recovered the panic
	// - workerID: The index of the worker, in [0, ThreadCount)
	// - panicInfo: The panic value recovered from the task
	// - stackTrace: The stack trace at the time of panic
	HandlePanic(ctx context.Context, poolName string, workerID int, panicInfo any, stackTrace []byte)
}

// DefaultPanicHandler provides a basic panic handler that logs to stdout.
type DefaultPanicHandler struct{}

// HandlePanic prints panic information to stdout.
func (h *DefaultPanicHandler) HandlePanic(ctx context.Context, poolName string, workerID int, panicInfo any, stackTrace []byte) {
	fmt.Printf("[Worker %d @ %s] Panic: %v\nStack trace:\n%s",
		workerID, poolName, panicInfo, stackTrace)
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting pool execution metrics.
// Implementations can send metrics to monitoring systems (Prometheus,
// StatsD, etc.).
//
// Methods should be non-blocking and fast; workers call them on the hot path.
type Metrics interface {
	// RecordTaskDuration records how long a task took to execute.
	RecordTaskDuration(poolName string, duration time.Duration)

	// RecordTaskPanic records that a task panicked during execution.
	RecordTaskPanic(poolName string, panicInfo any)

	// RecordQueueDepth records the queue depth observed after a push or pop.
	RecordQueueDepth(poolName string, depth int)

	// RecordTaskRejected records that a submission was rejected
	// (currently only during shutdown).
	RecordTaskRejected(poolName string, reason string)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordTaskDuration is a no-op.
func (m *NilMetrics) RecordTaskDuration(poolName string, duration time.Duration) {
}

// RecordTaskPanic is a no-op.
func (m *NilMetrics) RecordTaskPanic(poolName string, panicInfo any) {
}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(poolName string, depth int) {
}

// RecordTaskRejected is a no-op.
func (m *NilMetrics) RecordTaskRejected(poolName string, reason string) {
}

// =============================================================================
// PoolConfig: Configuration for Pool
// =============================================================================

// PoolConfig holds configuration options for a Pool.
// All fields are optional; zero values fall back to defaults.
type PoolConfig struct {
	// Name identifies the pool in logs and metric labels.
	// Defaults to "pool-<workers>".
	Name string

	// PanicHandler is called when a task panics. Defaults to DefaultPanicHandler.
	PanicHandler PanicHandler

	// Metrics is called to record execution metrics. Defaults to NilMetrics.
	Metrics Metrics

	// Logger receives lifecycle events. Defaults to NewDefaultLogger().
	Logger Logger

	// HistoryCapacity bounds the completed-task ring buffer returned by
	// RecentTasks. Defaults to 100.
	HistoryCapacity int
}

// DefaultPoolConfig returns a config with default handlers.
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		PanicHandler: &DefaultPanicHandler{},
		Metrics:      &NilMetrics{},
		Logger:       NewDefaultLogger(),
	}
}
