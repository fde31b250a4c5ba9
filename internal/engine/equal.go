package engine

import (
	"reflect"
	"unsafe"
)

// SameValue reports whether two hook values are the same for bail-out and
// dependency purposes.
//
// Comparable values (numbers, strings, structs of comparable fields, ...)
// compare with ==. Slices, maps, pointers, channels and funcs compare by
// identity: a mutated slice stored back unchanged is the same value, a
// freshly built one is not.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && (va.Len() == 0 || va.Pointer() == vb.Pointer()) && va.IsNil() == vb.IsNil()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return funcIdentity(a) == funcIdentity(b)
	}
	if va.Comparable() {
		return va.Equal(vb)
	}
	return false
}

// funcIdentity returns the data word of an interface holding a func value:
// the closure pointer. Two func values are identical when it matches.
func funcIdentity(f any) uintptr {
	type iface struct {
		typ  unsafe.Pointer
		data unsafe.Pointer
	}
	return uintptr((*iface)(unsafe.Pointer(&f)).data)
}

// depsChanged implements the dependency rule shared by UseEffect,
// UseCallback and UseMemo: nil deps, a first render, a length change, or
// any element that is not SameValue.
func depsChanged(prev, next []any, created bool) bool {
	if created || next == nil || prev == nil {
		return true
	}
	if len(prev) != len(next) {
		return true
	}
	for i := range next {
		if !SameValue(prev[i], next[i]) {
			return true
		}
	}
	return false
}

// ShallowEqual is the default Memo comparison: same key set and SameValue
// per key. Children compare by element identity.
func ShallowEqual(prev, next Props) bool {
	if len(prev) != len(next) {
		return false
	}
	for k, pv := range prev {
		nv, ok := next[k]
		if !ok || !SameValue(pv, nv) {
			return false
		}
	}
	return true
}
