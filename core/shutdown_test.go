package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// recordingMetrics counts metric callbacks for assertions.
type recordingMetrics struct {
	mu        sync.Mutex
	durations int
	panics    int
	rejected  map[string]int
	depths    []int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{rejected: make(map[string]int)}
}

func (m *recordingMetrics) RecordTaskDuration(poolName string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations++
}

func (m *recordingMetrics) RecordTaskPanic(poolName string, panicValue any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics++
}

func (m *recordingMetrics) RecordTaskRejected(poolName string, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[reason]++
}

func (m *recordingMetrics) RecordQueueDepth(poolName string, depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.depths = append(m.depths, depth)
}

// TestShutdown_DrainsQueuedTasks verifies drain-before-exit semantics
// Given: a pool with more queued tasks than workers
// When: Shutdown is called immediately
// Then: every queued task still runs before Shutdown returns
func TestShutdown_DrainsQueuedTasks(t *testing.T) {
	// Arrange
	cfg := DefaultPoolConfig()
	cfg.Logger = NewNoOpLogger()
	pool, err := NewPoolWithConfig(2, cfg)
	if err != nil {
		t.Fatalf("NewPoolWithConfig error = %v, want nil", err)
	}

	var completed atomic.Int32
	const tasks = 20
	for range tasks {
		if err := pool.Post(func(ctx context.Context) {
			time.Sleep(time.Millisecond)
			completed.Add(1)
		}); err != nil {
			t.Fatalf("Post error = %v, want nil", err)
		}
	}

	// Act
	pool.Shutdown()

	// Assert - no task was discarded
	if got := completed.Load(); got != tasks {
		t.Errorf("completed = %d, want %d", got, tasks)
	}
	if pending := pool.PendingCount(); pending != 0 {
		t.Errorf("PendingCount() = %d after Shutdown, want 0", pending)
	}
}

// TestShutdown_RejectsLaterSubmissions verifies the stopped state is permanent
// Given: a pool that has been shut down
// When: Post and Submit are called repeatedly afterwards
// Then: every call fails with ErrPoolStopped
func TestShutdown_RejectsLaterSubmissions(t *testing.T) {
	// Arrange
	metrics := newRecordingMetrics()
	cfg := DefaultPoolConfig()
	cfg.Logger = NewNoOpLogger()
	cfg.Metrics = metrics
	pool, err := NewPoolWithConfig(2, cfg)
	if err != nil {
		t.Fatalf("NewPoolWithConfig error = %v, want nil", err)
	}
	pool.Shutdown()

	// Act / Assert
	for i := range 3 {
		if err := pool.Post(func(ctx context.Context) {}); !errors.Is(err, ErrPoolStopped) {
			t.Errorf("Post #%d error = %v, want ErrPoolStopped", i, err)
		}

		future, err := Submit(pool, func(ctx context.Context) (int, error) { return 0, nil })
		if !errors.Is(err, ErrPoolStopped) {
			t.Errorf("Submit #%d error = %v, want ErrPoolStopped", i, err)
		}
		if future != nil {
			t.Errorf("Submit #%d future != nil, want nil", i)
		}
	}

	metrics.mu.Lock()
	rejected := metrics.rejected["stopped"]
	metrics.mu.Unlock()
	if rejected != 6 {
		t.Errorf(`rejected["stopped"] = %d, want 6`, rejected)
	}
}

// TestShutdown_Idempotent verifies repeated Shutdown calls are harmless
// Given: a pool
// When: Shutdown is called twice in sequence
// Then: the second call returns immediately without panicking
func TestShutdown_Idempotent(t *testing.T) {
	// Arrange
	cfg := DefaultPoolConfig()
	cfg.Logger = NewNoOpLogger()
	pool, err := NewPoolWithConfig(2, cfg)
	if err != nil {
		t.Fatalf("NewPoolWithConfig error = %v, want nil", err)
	}

	// Act
	pool.Shutdown()
	pool.Shutdown()

	// Assert
	if !pool.IsStopped() {
		t.Error("IsStopped() = false after Shutdown, want true")
	}
}

// TestShutdown_Concurrent verifies concurrent Shutdown callers all block
// Given: a pool with slow tasks queued
// When: ten goroutines call Shutdown at once
// Then: every call returns only after all tasks have completed
func TestShutdown_Concurrent(t *testing.T) {
	// Arrange
	cfg := DefaultPoolConfig()
	cfg.Logger = NewNoOpLogger()
	pool, err := NewPoolWithConfig(2, cfg)
	if err != nil {
		t.Fatalf("NewPoolWithConfig error = %v, want nil", err)
	}

	var completed atomic.Int32
	const tasks = 10
	for range tasks {
		if err := pool.Post(func(ctx context.Context) {
			time.Sleep(5 * time.Millisecond)
			completed.Add(1)
		}); err != nil {
			t.Fatalf("Post error = %v, want nil", err)
		}
	}

	// Act
	var observed [10]int32
	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Shutdown()
			observed[i] = completed.Load()
		}()
	}
	wg.Wait()

	// Assert - each caller saw the fully drained pool
	for i, got := range observed {
		if got != tasks {
			t.Errorf("caller %d observed completed = %d, want %d", i, got, tasks)
		}
	}
}

// TestShutdown_WaitsForActiveTask verifies in-flight work is joined
// Given: a worker in the middle of a task
// When: Shutdown is called
// Then: it returns only after the task finishes
func TestShutdown_WaitsForActiveTask(t *testing.T) {
	// Arrange
	cfg := DefaultPoolConfig()
	cfg.Logger = NewNoOpLogger()
	pool, err := NewPoolWithConfig(1, cfg)
	if err != nil {
		t.Fatalf("NewPoolWithConfig error = %v, want nil", err)
	}

	started := make(chan struct{})
	var finished atomic.Bool
	if err := pool.Post(func(ctx context.Context) {
		close(started)
		time.Sleep(30 * time.Millisecond)
		finished.Store(true)
	}); err != nil {
		t.Fatalf("Post error = %v, want nil", err)
	}
	<-started

	// Act
	pool.Shutdown()

	// Assert
	if !finished.Load() {
		t.Error("finished = false after Shutdown returned, want true")
	}
}
