package engine_test

import (
	"sync"
	"testing"

	"github.com/roach88/hookrt/internal/engine"
	"github.com/roach88/hookrt/internal/host"
	"github.com/roach88/hookrt/internal/testutil"
)

// recordingScheduler wraps the default queue and remembers every task
// offered to it.
type recordingScheduler struct {
	engine.Scheduler
	mu        sync.Mutex
	scheduled []engine.Task
}

func newRecordingScheduler() *recordingScheduler {
	return &recordingScheduler{Scheduler: engine.NewTaskQueue()}
}

func (s *recordingScheduler) Schedule(t engine.Task) bool {
	s.mu.Lock()
	s.scheduled = append(s.scheduled, t)
	s.mu.Unlock()
	return s.Scheduler.Schedule(t)
}

func (s *recordingScheduler) count(kind engine.TaskKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.scheduled {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

type fixture struct {
	root  *engine.Root
	doc   *host.Document
	rec   *testutil.Recorder
	sched *recordingScheduler
}

func newFixture(t *testing.T, opts ...engine.RootOption) *fixture {
	t.Helper()
	f := &fixture{
		doc:   host.New(),
		rec:   testutil.NewRecorder(),
		sched: newRecordingScheduler(),
	}
	base := []engine.RootOption{
		engine.WithIdentityGenerator(engine.NewSequentialGenerator("i")),
		engine.WithSession("s-1"),
		engine.WithRecorder(f.rec),
		engine.WithScheduler(f.sched),
		engine.WithLogger(testutil.Logger(t)),
	}
	f.root = engine.NewRoot(f.doc, f.doc.Container(), append(base, opts...)...)
	return f
}

// mount renders el and drains the queue.
func (f *fixture) mount(t *testing.T, el engine.Element) {
	t.Helper()
	if err := f.root.Render(el); err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := f.root.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func (f *fixture) flush(t *testing.T) {
	t.Helper()
	if err := f.root.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

// find returns the first live instance of c.
func (f *fixture) find(c *engine.Component) *engine.Instance {
	var found *engine.Instance
	if top := f.root.Top(); top != nil {
		top.Walk(func(i *engine.Instance) bool {
			if found == nil && i.Component() == c {
				found = i
			}
			return found == nil
		})
	}
	return found
}

func (f *fixture) findKey(key string) *engine.Instance {
	var found *engine.Instance
	if top := f.root.Top(); top != nil {
		top.Walk(func(i *engine.Instance) bool {
			if k, ok := i.Key(); ok && k == key && found == nil {
				found = i
			}
			return found == nil
		})
	}
	return found
}

func h(typ any, props engine.Props, children ...any) engine.Element {
	return engine.CreateElement(typ, props, children...)
}
