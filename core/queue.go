package core

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// taskFIFO is an unbounded FIFO of runnables.
//
// It is deliberately unsynchronized: the pool guards the queue, the stop
// flag, and the wake condition with a single mutex so that the worker
// predicate (stopped OR queue non-empty) is evaluated atomically. Every
// method here must be called with that mutex held.
type taskFIFO struct {
	tasks []Task
}

func newTaskFIFO() *taskFIFO {
	return &taskFIFO{tasks: make([]Task, 0, defaultQueueCap)}
}

func (q *taskFIFO) push(t Task) {
	q.tasks = append(q.tasks, t)
}

func (q *taskFIFO) pop() (Task, bool) {
	if len(q.tasks) == 0 {
		return nil, false
	}

	t := q.tasks[0]
	// Zero out the element in the underlying array to prevent memory leak
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	q.maybeCompact()

	return t, true
}

func (q *taskFIFO) len() int {
	return len(q.tasks)
}

func (q *taskFIFO) empty() bool {
	return len(q.tasks) == 0
}

// maybeCompact reallocates the backing array once the live window has shrunk
// well below capacity. Popping by reslicing would otherwise pin the whole
// array for the lifetime of the pool.
func (q *taskFIFO) maybeCompact() {
	n := len(q.tasks)
	c := cap(q.tasks)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.tasks = make([]Task, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)

	newSlice := make([]Task, n, newCap)
	copy(newSlice, q.tasks)
	q.tasks = newSlice
}
