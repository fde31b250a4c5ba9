package engine

// Setter updates a UseState slot. The update function receives the current
// state and returns the next one.
//
// A setter is stable for the instance's lifetime and may be called from
// event handlers and effects. Calling it on an unmounted instance does
// nothing.
type Setter[T any] func(update func(prev T) T)

// Set stores v.
func (s Setter[T]) Set(v T) {
	s(func(T) T { return v })
}

// Dispatch sends an action to a UseReducer slot.
type Dispatch[A any] func(action A)

// Ref is a mutable box that survives re-renders. Writing Current does not
// trigger a render.
type Ref[T any] struct {
	Current T
}

// UseState returns the slot's state and its setter. initial is stored on
// the first render and ignored afterwards.
//
// The setter writes only when the next value differs from the stored one
// (see SameValue); otherwise no render is scheduled.
func UseState[T any](r *Render, initial T) (T, Setter[T]) {
	rec, created := r.next(HookState)
	if created {
		rec.value = initial
		root, inst := r.root, r.inst
		rec.aux = Setter[T](func(update func(T) T) {
			if !inst.alive {
				return
			}
			prev, _ := rec.value.(T)
			next := update(prev)
			if SameValue(prev, next) {
				return
			}
			rec.value = next
			root.invalidate(inst)
		})
	}
	return valueAs[T](r, rec, rec.value), valueAs[Setter[T]](r, rec, rec.aux)
}

// UseReducer returns the slot's state and a stable dispatch function.
// dispatch applies the reducer passed on the most recent render and
// schedules a render when the result differs from the current state.
func UseReducer[S, A any](r *Render, reducer func(S, A) S, initial S) (S, Dispatch[A]) {
	rec, created := r.next(HookReducer)
	rec.fn = reducer
	if created {
		rec.value = initial
		root, inst := r.root, r.inst
		rec.aux = Dispatch[A](func(action A) {
			if !inst.alive {
				return
			}
			prev, _ := rec.value.(S)
			next := rec.fn.(func(S, A) S)(prev, action)
			if SameValue(prev, next) {
				return
			}
			rec.value = next
			root.invalidate(inst)
		})
	}
	return valueAs[S](r, rec, rec.value), valueAs[Dispatch[A]](r, rec, rec.aux)
}

// UseRef returns the slot's box, allocated once.
func UseRef[T any](r *Render, initial T) *Ref[T] {
	rec, created := r.next(HookRef)
	if created {
		rec.value = &Ref[T]{Current: initial}
	}
	return valueAs[*Ref[T]](r, rec, rec.value)
}

// UseCallback returns the fn stored while deps were last changed.
func UseCallback[F any](r *Render, fn F, deps []any) F {
	rec, created := r.next(HookCallback)
	if depsChanged(rec.deps, deps, created) {
		rec.value = fn
		rec.deps = cloneDeps(deps)
	}
	return valueAs[F](r, rec, rec.value)
}

// UseMemo returns fn's result, recomputed only when deps change.
func UseMemo[T any](r *Render, fn func() T, deps []any) T {
	rec, created := r.next(HookMemo)
	if depsChanged(rec.deps, deps, created) {
		rec.value = fn()
		rec.deps = cloneDeps(deps)
	}
	return valueAs[T](r, rec, rec.value)
}

// Deps builds a dependency list. Deps() with no values is an empty,
// non-nil list: the hook runs once. A nil list means "every render".
func Deps(vals ...any) []any {
	if vals == nil {
		return []any{}
	}
	return vals
}

func cloneDeps(deps []any) []any {
	if deps == nil {
		return nil
	}
	out := make([]any, len(deps))
	copy(out, deps)
	return out
}
