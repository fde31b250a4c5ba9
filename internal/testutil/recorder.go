package testutil

import (
	"context"
	"sync"

	"github.com/roach88/hookrt/internal/ir"
)

// Recorder keeps trace events in memory. It satisfies engine.Recorder.
//
// Thread-safety: all methods are safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []ir.TraceEvent
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends ev.
func (r *Recorder) Record(_ context.Context, ev ir.TraceEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of the recorded events in arrival order.
func (r *Recorder) Events() []ir.TraceEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ir.TraceEvent(nil), r.events...)
}

// Kinds returns the kinds recorded for component, or for every component
// when component is empty.
func (r *Recorder) Kinds(component string) []ir.TraceKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ir.TraceKind
	for _, ev := range r.events {
		if component == "" || ev.Component == component {
			out = append(out, ev.Kind)
		}
	}
	return out
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind ir.TraceKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
