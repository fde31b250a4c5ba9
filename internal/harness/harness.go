package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/hookrt/internal/demo"
	"github.com/roach88/hookrt/internal/engine"
	"github.com/roach88/hookrt/internal/host"
	"github.com/roach88/hookrt/internal/store"
)

// Harness executes one scenario against a fresh document and root.
type Harness struct {
	scenario *Scenario
	store    *store.Store
	doc      *host.Document
	root     *engine.Root
	logger   *slog.Logger
	result   *Result
}

// Option configures a run.
type Option func(*options)

type options struct {
	store  *store.Store
	logger *slog.Logger
}

// WithStore records the run into st instead of a throwaway in-memory
// store. The caller keeps ownership of st.
func WithStore(st *store.Store) Option {
	return func(o *options) { o.store = st }
}

// WithLogger sets the root's logger. Runs are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Open a trace store (in-memory unless WithStore is given)
// 2. Mount the scenario's app and flush
// 3. Execute steps, flushing and snapshotting after each
// 4. Evaluate document assertions, unmount, evaluate trace assertions
//
// A returned error means the run could not be carried out; a failing
// scenario is reported through Result.Pass and Result.Errors.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	st := o.store
	if st == nil {
		mem, err := store.OpenMemory()
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		defer mem.Close()
		st = mem
	}
	// A rerun into the same database replaces the previous trace.
	if err := st.DeleteSession(ctx, scenario.Name); err != nil {
		return nil, err
	}
	if err := st.WriteSession(ctx, scenario.Name, scenario.App); err != nil {
		return nil, err
	}

	app, err := demo.Lookup(scenario.App)
	if err != nil {
		return nil, err
	}

	h := &Harness{
		scenario: scenario,
		store:    st,
		doc:      host.New(),
		logger:   o.logger,
		result:   NewResult(),
	}

	rootOpts := []engine.RootOption{
		engine.WithIdentityGenerator(engine.NewSequentialGenerator("i")),
		engine.WithSession(scenario.Name),
		engine.WithRecorder(st),
		engine.WithLogger(o.logger),
	}
	if scenario.MaxSteps > 0 {
		rootOpts = append(rootOpts, engine.WithMaxSteps(scenario.MaxSteps))
	}

	h.root, err = engine.Mount(app.Root(), h.doc, h.doc.Container(), rootOpts...)
	if err != nil {
		h.result.AddError(fmt.Sprintf("mount: %v", err))
		return h.result, nil
	}
	ok, err := h.settle(ctx, 0, "mount")
	if err != nil {
		return nil, err
	}
	if ok {
		if err := h.executeSteps(ctx); err != nil {
			return nil, err
		}
	}

	var before, after []Assertion
	for _, a := range scenario.Assertions {
		if a.afterTeardown() {
			after = append(after, a)
		} else {
			before = append(before, a)
		}
	}

	h.result.StoreSize = h.root.Store().Len()
	for _, msg := range EvaluateAssertions(before, h.assertionContext(ctx, h.result.StoreSize)) {
		h.result.AddError(msg)
	}

	if err := h.root.Unmount(); err != nil {
		h.result.AddError(fmt.Sprintf("unmount: %v", err))
	}

	trace, err := st.ReadEvents(ctx, scenario.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	h.result.Trace = trace

	for _, msg := range EvaluateAssertions(after, h.assertionContext(ctx, h.result.StoreSize)) {
		h.result.AddError(msg)
	}
	return h.result, nil
}

// executeSteps runs the steps in order and stops at the first failing
// step. Failing expectations are recorded but do not stop the run.
func (h *Harness) executeSteps(ctx context.Context) error {
	for i, step := range h.scenario.Steps {
		if err := h.dispatch(step); err != nil {
			h.result.AddError(fmt.Sprintf("steps[%d] (%s): %v", i, step.Label(), err))
			return nil
		}
		ok, err := h.settle(ctx, i+1, step.Label())
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		for _, msg := range EvaluateAssertions(step.Expect, h.assertionContext(ctx, h.root.Store().Len())) {
			h.result.AddError(fmt.Sprintf("steps[%d] (%s): %s", i, step.Label(), msg))
		}
	}
	return nil
}

func (h *Harness) dispatch(step Step) error {
	switch {
	case step.Click != "":
		return h.doc.Click(step.Click)
	case step.Input != "":
		return h.doc.Input(step.Input, step.Value)
	case step.Submit != "":
		return h.doc.Submit(step.Submit)
	default:
		return nil
	}
}

// settle flushes the root and snapshots the document. It reports false
// when the flush failed; the failure is recorded in the result. Only store
// failures are returned as errors.
func (h *Harness) settle(ctx context.Context, step int, label string) (bool, error) {
	ok := true
	if err := h.root.Flush(); err != nil {
		h.result.AddError(fmt.Sprintf("flush after step %d (%s): %s", step, label, describe(err)))
		ok = false
	}
	html := h.doc.Body()
	h.result.Snapshots = append(h.result.Snapshots, Snapshot{Step: step, Label: label, HTML: html})
	if err := h.store.WriteSnapshot(ctx, h.scenario.Name, step, label, html); err != nil {
		return false, fmt.Errorf("failed to write snapshot: %w", err)
	}
	return ok, nil
}

func (h *Harness) assertionContext(ctx context.Context, storeSize int) *AssertionContext {
	return &AssertionContext{
		Ctx:       ctx,
		Doc:       h.doc,
		Root:      h.root,
		Store:     h.store,
		Session:   h.scenario.Name,
		StoreSize: storeSize,
		Trace:     h.result.Trace,
	}
}

// describe renders runtime errors by code so messages stay stable.
func describe(err error) string {
	var rerr *engine.RuntimeError
	if errors.As(err, &rerr) {
		return fmt.Sprintf("%s: %s", rerr.Code, rerr.Message)
	}
	return err.Error()
}
