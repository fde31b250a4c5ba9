package engine

import "github.com/roach88/hookrt/internal/ir"

// UseEffect schedules effect to run after the current render is committed.
//
// The effect runs on the first render and again whenever deps change (nil
// deps: every render; Deps(): once). Before a changed effect is scheduled,
// the cleanup returned by its previous run is invoked synchronously. The
// cleanup of the last run is invoked when the instance unmounts.
//
// If the slot changes again before a scheduled body runs, the superseded
// body is skipped.
func UseEffect(r *Render, effect func() func(), deps []any) {
	rec, created := r.next(HookEffect)
	if !depsChanged(rec.deps, deps, created) {
		return
	}
	rec.deps = cloneDeps(deps)
	rec.fn = effect

	root, inst := r.root, r.inst
	slot := r.cursor - 1
	if cleanup := rec.cleanup; cleanup != nil {
		rec.cleanup = nil
		cleanup()
		root.trace(ir.TraceCleanup, inst, slot)
	}

	rec.gen++
	gen := rec.gen
	root.schedule(Task{
		Kind:     TaskEffect,
		Instance: inst,
		run: func() error {
			if rec.gen != gen {
				return nil
			}
			body, _ := rec.fn.(func() func())
			if body == nil {
				return nil
			}
			rec.cleanup = body()
			root.trace(ir.TraceEffect, inst, slot)
			return nil
		},
	})
}

// runCleanups invokes the pending effect cleanups of an unmounted
// instance's records, in slot order.
func (root *Root) runCleanups(inst *Instance, recs []*hookRecord) {
	for i, rec := range recs {
		if rec.kind != HookEffect {
			continue
		}
		rec.gen++ // cancel a body that has not run yet
		if rec.cleanup != nil {
			cleanup := rec.cleanup
			rec.cleanup = nil
			cleanup()
			root.trace(ir.TraceCleanup, inst, i)
		}
	}
}
