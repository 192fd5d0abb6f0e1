package core

import "time"

// TaskExecutionRecord captures a completed task execution event.
type TaskExecutionRecord struct {
	Name       string
	PoolName   string
	WorkerID   int
	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration
	Panicked   bool
}

// PoolStats represents a point-in-time snapshot of a pool's state, taken
// under the pool lock.
type PoolStats struct {
	Name    string
	Workers int
	Pending int
	Active  int
	Stopped bool
}
