package engine

// Render is the context of one component render. Hooks take it as their
// first argument to find the rendering instance and its next slot.
//
// A *Render is valid only while the component function runs.
type Render struct {
	root   *Root
	inst   *Instance
	cursor int
	first  bool
	active bool
}

// Instance returns the rendering instance.
func (r *Render) Instance() *Instance {
	if r == nil {
		return nil
	}
	return r.inst
}

// FirstRender reports whether this is the instance's first render.
func (r *Render) FirstRender() bool {
	return r != nil && r.first
}

// Root returns the root being rendered.
func (r *Render) Root() *Root {
	if r == nil {
		return nil
	}
	return r.root
}

func (r *Render) check(hook string) {
	if r == nil || !r.active {
		panic(newHookContextError(hook))
	}
}

// next returns the record at the cursor, creating it on first render.
// created reports whether init must run.
func (r *Render) next(kind HookKind) (rec *hookRecord, created bool) {
	r.check(kind.String())

	i := r.cursor
	r.cursor++
	store := r.root.store

	if r.first {
		rec = &hookRecord{kind: kind, created: true}
		store.append(r.inst.id, rec)
		return rec, true
	}

	rec, ok := store.slot(r.inst.id, i)
	if !ok {
		panic(newHookOrderError(r.inst, i, "more hook calls than during the first render"))
	}
	if rec.kind != kind {
		panic(newHookOrderError(r.inst, i,
			"hook "+kind.String()+" called where "+rec.kind.String()+" was called during the first render"))
	}
	rec.created = false
	return rec, false
}

// finish verifies the call count of a re-render.
func (r *Render) finish() {
	if r.first {
		return
	}
	if n := r.root.store.Slots(r.inst.id); r.cursor != n {
		panic(newHookOrderError(r.inst, r.cursor, "fewer hook calls than during the first render"))
	}
}

func valueAs[T any](r *Render, rec *hookRecord, v any) T {
	if v == nil {
		var zero T
		return zero
	}
	t, ok := v.(T)
	if !ok {
		panic(newHookOrderError(r.inst, r.cursor-1, "hook type changed between renders"))
	}
	return t
}
