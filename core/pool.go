package core

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"
)

// Pool is a fixed-size set of worker goroutines executing tasks pulled from
// a shared unbounded FIFO queue. The worker count is set at construction and
// never changes.
//
// Pool is a thin handle over the pool's internal state. Workers reference
// only that internal state, so dropping the last Pool reference makes the
// handle collectable even while workers are parked; a GC cleanup then runs
// the same shutdown sequence an explicit Shutdown would. Relying on the
// cleanup is a safety net, not a substitute: call Shutdown when done.
type Pool struct {
	state   *poolState
	cleanup runtime.Cleanup
}

// poolState carries everything the workers touch. One mutex guards the
// queue, the stop flag, and the active counter together: the worker
// predicate (stopped OR queue non-empty) must be evaluated atomically with
// respect to both submit and shutdown, or wakeups are missed.
type poolState struct {
	name    string
	workers int

	mu     sync.Mutex
	cond   *sync.Cond // wakes workers: Signal per push, Broadcast on stop
	idle   *sync.Cond // wakes WaitIdle callers
	queue  *taskFIFO
	stop   bool
	active int

	wg sync.WaitGroup

	panicHandler PanicHandler
	metrics      Metrics
	logger       Logger
	history      executionHistory
}

// NewPool creates a pool with the given number of workers and default
// configuration. It returns ErrInvalidWorkerCount when workers < 1.
func NewPool(workers int) (*Pool, error) {
	return NewPoolWithConfig(workers, DefaultPoolConfig())
}

// NewPoolWithConfig creates a pool with the given number of workers and
// configuration. All workers are spawned before the call returns; none are
// silently dropped. A nil config or nil config fields fall back to defaults.
func NewPoolWithConfig(workers int, cfg *PoolConfig) (*Pool, error) {
	if workers < 1 {
		return nil, ErrInvalidWorkerCount
	}
	if cfg == nil {
		cfg = DefaultPoolConfig()
	}

	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("pool-%d", workers)
	}
	panicHandler := cfg.PanicHandler
	if panicHandler == nil {
		panicHandler = &DefaultPanicHandler{}
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = &NilMetrics{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NewDefaultLogger()
	}

	s := &poolState{
		name:         name,
		workers:      workers,
		queue:        newTaskFIFO(),
		panicHandler: panicHandler,
		metrics:      metrics,
		logger:       logger,
		history:      newExecutionHistory(cfg.HistoryCapacity),
	}
	s.cond = sync.NewCond(&s.mu)
	s.idle = sync.NewCond(&s.mu)

	s.wg.Add(workers)
	for i := range workers {
		go s.workerLoop(i)
	}

	s.logger.Debug("pool started", F("pool", name), F("workers", workers))

	p := &Pool{state: s}
	// The cleanup must not capture p, or p would never become unreachable.
	p.cleanup = runtime.AddCleanup(p, func(s *poolState) {
		s.logger.Warn("pool dropped without Shutdown; shutting down from GC cleanup",
			F("pool", s.name))
		s.shutdown()
	}, s)

	return p, nil
}

// Post submits a type-erased task for execution (fire and forget). Use
// Submit to keep a handle to the outcome. Returns ErrPoolStopped once
// Shutdown has begun and ErrNilTask for a nil task.
func (p *Pool) Post(task Task) error {
	return p.state.post(task)
}

// Submit submits a typed task and returns the Future holding its eventual
// outcome. The returned handle is multi-read: every Get after completion
// yields the same (value, err) pair.
//
// Submit is a free function because Go methods cannot introduce type
// parameters; it is the only place concrete task types exist. It never
// blocks: the queue is unbounded, so submission fails only after Shutdown.
func Submit[T any](p *Pool, task TaskWithResult[T]) (*Future[T], error) {
	if task == nil {
		return nil, ErrNilTask
	}

	runnable, future := bindTask(task)
	if err := p.Post(runnable); err != nil {
		return nil, err
	}
	return future, nil
}

func (s *poolState) post(task Task) error {
	if task == nil {
		return ErrNilTask
	}

	s.mu.Lock()
	if s.stop {
		s.mu.Unlock()
		s.metrics.RecordTaskRejected(s.name, "stopped")
		return ErrPoolStopped
	}
	s.queue.push(task)
	depth := s.queue.len()
	// At-least-one-of semantics: one push wakes one waiting worker, while
	// the lock is still held.
	s.cond.Signal()
	s.mu.Unlock()

	s.metrics.RecordQueueDepth(s.name, depth)
	return nil
}

// Shutdown stops the pool: no further submissions are accepted, every
// parked worker is woken, and the call blocks until the queue has drained
// and all workers have exited. Queued tasks are never discarded.
//
// Shutdown is idempotent and safe to call concurrently, including
// concurrently with Post/Submit; every caller blocks until the workers are
// joined.
func (p *Pool) Shutdown() {
	p.cleanup.Stop()
	p.state.shutdown()
}

func (s *poolState) shutdown() {
	s.mu.Lock()
	if !s.stop {
		s.stop = true
		s.logger.Info("pool shutting down",
			F("pool", s.name), F("pending", s.queue.len()), F("active", s.active))
		// Every worker must observe the stop flag to terminate.
		s.cond.Broadcast()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// ThreadCount returns the fixed worker count set at construction.
func (p *Pool) ThreadCount() int {
	return p.state.workers
}

// PendingCount returns the number of queued-but-not-yet-dequeued tasks.
// It is a point-in-time snapshot under the pool lock and is safe to call
// from any goroutine at any point in the pool's lifecycle.
func (p *Pool) PendingCount() int {
	s := p.state
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.len()
}

// ActiveCount returns the number of tasks currently executing.
func (p *Pool) ActiveCount() int {
	s := p.state
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// IsStopped reports whether Shutdown has begun.
func (p *Pool) IsStopped() bool {
	s := p.state
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop
}

// Stats returns a consistent snapshot of the pool's state.
func (p *Pool) Stats() PoolStats {
	s := p.state
	s.mu.Lock()
	defer s.mu.Unlock()
	return PoolStats{
		Name:    s.name,
		Workers: s.workers,
		Pending: s.queue.len(),
		Active:  s.active,
		Stopped: s.stop,
	}
}

// RecentTasks returns completed task execution records in newest-first
// order. limit <= 0 returns everything retained.
func (p *Pool) RecentTasks(limit int) []TaskExecutionRecord {
	return p.state.history.Recent(limit)
}

// WaitIdle blocks until the queue is empty and no task is executing.
// Tasks submitted after WaitIdle returns are not waited for. Returns
// ctx.Err() if ctx is done first.
func (p *Pool) WaitIdle(ctx context.Context) error {
	s := p.state

	// A Cond cannot select on a context, so a watcher converts cancellation
	// into a broadcast the wait loop can observe.
	stopWatch := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.idle.Broadcast()
		s.mu.Unlock()
	})
	defer stopWatch()

	s.mu.Lock()
	defer s.mu.Unlock()
	for !(s.queue.empty() && s.active == 0) {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.idle.Wait()
	}
	return nil
}

// workerLoop is the main loop of one worker. It parks until work exists or
// stop is signaled, drains the queue before exiting, and never lets a task
// failure escape.
func (s *poolState) workerLoop(id int) {
	defer s.wg.Done()

	ctx := context.Background()

	for {
		s.mu.Lock()
		for !s.stop && s.queue.empty() {
			s.cond.Wait()
		}
		task, ok := s.queue.pop()
		if !ok {
			// stop signaled and queue drained
			s.mu.Unlock()
			return
		}
		s.active++
		depth := s.queue.len()
		s.mu.Unlock()

		s.metrics.RecordQueueDepth(s.name, depth)

		// The lock is never held across task invocation: a long-running or
		// blocking task must not stall queue access for other workers.
		s.invoke(ctx, id, task)

		s.mu.Lock()
		s.active--
		if s.active == 0 && s.queue.empty() {
			s.idle.Broadcast()
		}
		s.mu.Unlock()
	}
}

// invoke executes one task with panic recovery, then records metrics and
// history. A task that already carries a Future has written its outcome
// (including a captured panic) before the recovery here observes it.
func (s *poolState) invoke(ctx context.Context, workerID int, task Task) {
	startedAt := time.Now()
	panicked := false

	defer func() {
		if rec := recover(); rec != nil {
			panicked = true
			s.panicHandler.HandlePanic(ctx, s.name, workerID, rec, debug.Stack())
			s.metrics.RecordTaskPanic(s.name, rec)
		}

		finishedAt := time.Now()
		s.metrics.RecordTaskDuration(s.name, finishedAt.Sub(startedAt))
		s.history.Add(TaskExecutionRecord{
			Name:       resolveTaskName(task),
			PoolName:   s.name,
			WorkerID:   workerID,
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
			Duration:   finishedAt.Sub(startedAt),
			Panicked:   panicked,
		})
	}()

	task(ctx)
}
