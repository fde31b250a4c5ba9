package engine

import "sync"

// TaskKind distinguishes queued work.
type TaskKind int

const (
	// TaskRender re-renders a dirty instance.
	TaskRender TaskKind = iota + 1
	// TaskEffect runs an effect body.
	TaskEffect
	// TaskCallback runs a function handed to Root.Defer.
	TaskCallback
)

// String returns the kind name used in logs.
func (k TaskKind) String() string {
	switch k {
	case TaskRender:
		return "render"
	case TaskEffect:
		return "effect"
	case TaskCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// Task is a unit of deferred work.
type Task struct {
	Kind TaskKind

	// Instance owns the task; nil for callbacks.
	Instance *Instance

	run func() error
}

// Scheduler queues tasks for Root.Flush and Root.Run.
//
// Implementations must be safe for concurrent Schedule calls. Next is only
// called from the goroutine driving the root.
type Scheduler interface {
	// Schedule queues a task. Returns false if the scheduler is closed.
	Schedule(t Task) bool

	// Next removes and returns the next task without blocking.
	Next() (Task, bool)

	// Len returns the number of queued tasks.
	Len() int

	// Wait returns a channel that signals when tasks may be available.
	Wait() <-chan struct{}
}

// taskQueue is the default Scheduler: an unbounded, thread-safe FIFO.
//
// The queue uses a channel for signaling to enable context-aware waiting
// in Root.Run.
type taskQueue struct {
	mu     sync.Mutex
	tasks  []Task
	closed bool
	signal chan struct{} // buffered, size 1
}

// NewTaskQueue creates the default FIFO scheduler.
func NewTaskQueue() Scheduler {
	return newTaskQueue()
}

func newTaskQueue() *taskQueue {
	return &taskQueue{
		tasks:  make([]Task, 0, 64),
		signal: make(chan struct{}, 1),
	}
}

// Schedule adds a task to the back of the queue.
// Thread-safe: may be called from any goroutine.
func (q *taskQueue) Schedule(t Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.tasks = append(q.tasks, t)

	// Buffer of 1 coalesces multiple signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// Next removes and returns the front task.
// Returns (Task{}, false) if the queue is empty.
func (q *taskQueue) Next() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return Task{}, false
	}

	t := q.tasks[0]

	// Release the slot so the instance and closure can be collected.
	q.tasks[0] = Task{}

	if len(q.tasks) == 1 {
		q.tasks = q.tasks[:0]
	} else {
		q.tasks = q.tasks[1:]
	}

	return t, true
}

// Wait returns a channel that signals when tasks may be available.
func (q *taskQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the current queue length.
func (q *taskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Close rejects further tasks and wakes waiters. Queued tasks remain
// available to Next.
func (q *taskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.signal)
}
