package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/roach88/hookrt/internal/ir"
)

// DefaultMaxSteps is the default maximum number of tasks per drain of the
// queue. It stops components that schedule themselves forever.
const DefaultMaxSteps = 1000

// Recorder receives the root's lifecycle trace.
// Implemented by store.Store (SQLite) and by in-memory recorders in tests.
type Recorder interface {
	Record(ctx context.Context, ev ir.TraceEvent) error
}

// Root owns one mounted component tree: its hook store, its task queue and
// the host container the tree is rendered into.
//
// Thread-safety model:
//   - Defer(): safe from any goroutine
//   - Render(), Flush(), Run(), Unmount(): must be called from one goroutine,
//     and never concurrently with each other
type Root struct {
	adapter   HostAdapter
	container HostNode
	store     *HookStore
	sched     Scheduler
	logger    *slog.Logger
	recorder  Recorder
	ids       IdentityGenerator
	clock     *Clock
	session   string
	maxSteps  int

	top       *Instance
	providers []providerFrame
	unmounted bool
}

// RootOption configures a Root.
type RootOption func(*Root)

// WithScheduler replaces the default FIFO task queue.
func WithScheduler(s Scheduler) RootOption {
	return func(r *Root) { r.sched = s }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) RootOption {
	return func(r *Root) { r.logger = l }
}

// WithRecorder sets the trace recorder. Default: none.
func WithRecorder(rec Recorder) RootOption {
	return func(r *Root) { r.recorder = rec }
}

// WithIdentityGenerator sets the source of instance and session identities.
// Default: UUIDv7Generator.
func WithIdentityGenerator(g IdentityGenerator) RootOption {
	return func(r *Root) { r.ids = g }
}

// WithClock sets the logical clock stamping trace events.
func WithClock(c *Clock) RootOption {
	return func(r *Root) { r.clock = c }
}

// WithMaxSteps sets the task quota per drain of the queue.
// Default: 1000 (DefaultMaxSteps). A value <= 0 disables the quota.
func WithMaxSteps(n int) RootOption {
	return func(r *Root) { r.maxSteps = n }
}

// WithSession fixes the session identifier recorded in traces.
// Default: a fresh identity from the root's generator.
func WithSession(id string) RootOption {
	return func(r *Root) { r.session = id }
}

// NewRoot creates a root that renders into container.
func NewRoot(adapter HostAdapter, container HostNode, opts ...RootOption) *Root {
	r := &Root{
		adapter:   adapter,
		container: container,
		store:     NewHookStore(),
		logger:    slog.Default(),
		ids:       UUIDv7Generator{},
		clock:     NewClock(),
		maxSteps:  DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sched == nil {
		r.sched = newTaskQueue()
	}
	if r.session == "" {
		r.session = r.ids.Generate()
	}
	return r
}

// Mount creates a root for container and renders el into it.
// Effects are queued; call Flush or Run to execute them.
func Mount(el Element, adapter HostAdapter, container HostNode, opts ...RootOption) (*Root, error) {
	root := NewRoot(adapter, container, opts...)
	if err := root.Render(el); err != nil {
		return root, err
	}
	return root, nil
}

// rootComponent renders the element handed to Root.Render.
var rootComponent = Define("Root", func(r *Render, props Props) Element {
	el, _ := props["element"].(Element)
	return el
})

// Render mounts el on the first call and updates the tree on later calls,
// preserving the state of every instance the reconciler can pair.
func (root *Root) Render(el Element) (err error) {
	if root.unmounted {
		return ErrRootUnmounted
	}
	defer root.recoverTo(&err, nil)
	root.providers = root.providers[:0]

	desc := &ComponentElement{Component: rootComponent, Props: Props{"element": el}}
	if root.top == nil {
		top := root.newInstance(desc, nil)
		mounted := false
		defer func() {
			if !mounted {
				root.unmount(top)
			}
		}()
		nodes, err := root.renderInstance(top)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			root.adapter.AppendChild(root.container, n)
		}
		root.top = top
		mounted = true
		return nil
	}

	root.top.element = desc
	root.top.dirty = true
	return root.rerender(root.top)
}

// Session returns the identifier recorded in this root's trace.
func (root *Root) Session() string {
	return root.session
}

// Store returns the root's hook store.
func (root *Root) Store() *HookStore {
	return root.store
}

// Top returns the instance rendering the element passed to Render.
// Nil before the first Render and after Unmount.
func (root *Root) Top() *Instance {
	return root.top
}

// Container returns the host container.
func (root *Root) Container() HostNode {
	return root.container
}

// Pending returns the number of queued tasks.
func (root *Root) Pending() int {
	return root.sched.Len()
}

// Defer queues fn to run on the goroutine driving the root. It is the
// entry point for work that originates outside a render or task, such as
// a timer or a network callback. Safe from any goroutine.
func (root *Root) Defer(fn func()) bool {
	return root.sched.Schedule(Task{
		Kind: TaskCallback,
		run: func() error {
			fn()
			return nil
		},
	})
}

// Flush runs queued tasks until the queue is empty, including tasks
// queued by the tasks themselves. It stops at the first failing task and
// returns its error; remaining tasks stay queued.
func (root *Root) Flush() error {
	if root.unmounted {
		return ErrRootUnmounted
	}
	quota := NewQuotaEnforcer(root.maxSteps)
	for root.sched.Len() > 0 {
		if err := quota.Check(root.session); err != nil {
			return err
		}
		task, ok := root.sched.Next()
		if !ok {
			return nil
		}
		if err := root.runTask(task); err != nil {
			return err
		}
	}
	return nil
}

// Run drains the queue continuously until ctx is cancelled.
//
// Task errors are logged and processing continues. The step quota resets
// each time the queue drains; when it is exceeded the remaining queued
// tasks are discarded.
func (root *Root) Run(ctx context.Context) error {
	root.logger.Info("root starting", "session", root.session)
	quota := NewQuotaEnforcer(root.maxSteps)

	for {
		if root.unmounted {
			return ErrRootUnmounted
		}
		task, ok := root.sched.Next()
		if ok {
			if err := quota.Check(root.session); err != nil {
				root.logger.Error("task quota exceeded",
					"session", root.session,
					"steps", quota.Current(),
					"max_steps", quota.MaxSteps(),
					"discarded", root.discard())
				quota.Reset()
				continue
			}
			if err := root.runTask(task); err != nil {
				logTaskError(root.logger, task, err)
			}
			continue
		}
		quota.Reset()

		select {
		case <-ctx.Done():
			root.logger.Info("root stopping: context cancelled", "session", root.session)
			return ctx.Err()
		case <-root.sched.Wait():
		}
	}
}

// discard empties the queue and returns how many tasks were dropped.
func (root *Root) discard() int {
	n := 0
	for {
		if _, ok := root.sched.Next(); !ok {
			return n
		}
		n++
	}
}

// Unmount tears down the whole tree, running every pending effect
// cleanup, and destroys the hook store. Queued tasks are discarded.
func (root *Root) Unmount() (err error) {
	if root.unmounted {
		return ErrRootUnmounted
	}
	defer root.recoverTo(&err, nil)
	root.unmounted = true
	if q, ok := root.sched.(*taskQueue); ok {
		q.Close()
	}
	root.discard()

	if top := root.top; top != nil {
		for _, n := range top.output {
			if root.adapter.Parent(n) == root.container {
				root.adapter.RemoveChild(root.container, n)
			}
		}
		root.top = nil
		root.unmount(top)
	}
	root.store.clear()
	return nil
}

// runTask executes one task behind the error boundary.
func (root *Root) runTask(task Task) (err error) {
	inst := task.Instance
	if inst != nil && !inst.alive {
		root.logger.Debug("dropping task for unmounted instance",
			"kind", task.Kind.String(),
			"instance", inst.id,
			"component", inst.component.Name())
		root.trace(ir.TraceDropped, inst, 0)
		return nil
	}
	defer root.recoverTo(&err, inst)
	root.providers = root.providers[:0]
	return task.run()
}

// recoverTo converts a panic into *err. Runtime errors keep their code;
// anything else becomes TASK_PANIC with the value and stack attached.
func (root *Root) recoverTo(err *error, inst *Instance) {
	p := recover()
	if p == nil {
		return
	}
	var re *RuntimeError
	if e, ok := p.(error); ok && errors.As(e, &re) {
		*err = re
		return
	}
	te := &RuntimeError{
		Code:    ErrCodeTaskPanic,
		Message: fmt.Sprintf("panic: %v", p),
		Value:   p,
		Stack:   debug.Stack(),
	}
	if inst != nil {
		te.InstanceID = inst.id
		te.Component = inst.component.Name()
	}
	*err = te
}

// schedule queues a task, logging if the scheduler rejected it.
func (root *Root) schedule(t Task) {
	if !root.sched.Schedule(t) {
		root.logger.Debug("scheduler closed, task rejected", "kind", t.Kind.String())
	}
}

// invalidate marks inst dirty and schedules its re-render.
func (root *Root) invalidate(inst *Instance) {
	inst.dirty = true
	root.schedule(Task{
		Kind:     TaskRender,
		Instance: inst,
		run:      func() error { return root.rerender(inst) },
	})
}

// rerender re-renders a dirty instance and patches its host run in place:
// the new nodes are inserted where the old run was, the old nodes are
// detached, and every ancestor whose output included the run is updated.
func (root *Root) rerender(inst *Instance) error {
	if !inst.dirty {
		return nil
	}
	old := inst.output

	var parent, ref HostNode
	if len(old) > 0 {
		parent = root.adapter.Parent(old[0])
		ref = root.adapter.NextSibling(old[len(old)-1])
	}

	if inst != root.top {
		root.seedProviders(inst)
	}
	nodes, err := root.renderInstance(inst)
	if err != nil {
		return err
	}

	if parent != nil {
		for _, n := range old {
			if root.adapter.Parent(n) == parent {
				root.adapter.RemoveChild(parent, n)
			}
		}
		for _, n := range nodes {
			root.adapter.InsertBefore(parent, n, ref)
		}
	}

	root.spliceAncestors(inst, old, nodes)
	return nil
}

// spliceAncestors replaces inst's old run with nodes in every ancestor
// output that contains it.
func (root *Root) spliceAncestors(inst *Instance, old, nodes []HostNode) {
	for a := inst.parent; a != nil && len(old) > 0; a = a.parent {
		i := indexOf(a.output, old[0])
		if i < 0 {
			break
		}
		a.output = splice(a.output, i, len(old), nodes)
	}
}

func indexOf(nodes []HostNode, n HostNode) int {
	for i, x := range nodes {
		if x == n {
			return i
		}
	}
	return -1
}

func splice(nodes []HostNode, at, n int, with []HostNode) []HostNode {
	end := at + n
	if end > len(nodes) {
		end = len(nodes)
	}
	out := make([]HostNode, 0, len(nodes)-(end-at)+len(with))
	out = append(out, nodes[:at]...)
	out = append(out, with...)
	out = append(out, nodes[end:]...)
	return out
}

func logTaskError(logger *slog.Logger, task Task, err error) {
	attrs := []any{"kind", task.Kind.String(), "error", err}
	if task.Instance != nil {
		attrs = append(attrs, "instance", task.Instance.id, "component", task.Instance.component.Name())
	}
	logger.Error("task failed", attrs...)
}
