package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pair struct {
	A int
	B string
}

func TestSameValue(t *testing.T) {
	s := []int{1, 2}
	m := map[string]int{"a": 1}
	p := &pair{A: 1}
	fn := func() {}
	ch := make(chan int)

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"equal ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"int vs int64", 1, int64(1), false},
		{"strings", "x", "x", true},
		{"structs by value", pair{1, "a"}, pair{1, "a"}, true},
		{"structs differ", pair{1, "a"}, pair{1, "b"}, false},
		{"same slice", s, s, true},
		{"equal content new slice", s, []int{1, 2}, false},
		{"same map", m, m, true},
		{"new map", m, map[string]int{"a": 1}, false},
		{"same pointer", p, p, true},
		{"equal pointee", p, &pair{A: 1}, false},
		{"same func", fn, fn, true},
		{"same chan", ch, ch, true},
		{"both nil", nil, nil, true},
		{"nil vs value", nil, 0, false},
		{"empty slices", []int{}, []int{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameValue(tt.a, tt.b))
		})
	}
}

func TestDepsChanged(t *testing.T) {
	assert.True(t, depsChanged(nil, nil, false), "nil deps run every render")
	assert.True(t, depsChanged([]any{1}, []any{1}, true), "first render")
	assert.False(t, depsChanged([]any{}, []any{}, false))
	assert.False(t, depsChanged([]any{1, "a"}, []any{1, "a"}, false))
	assert.True(t, depsChanged([]any{1}, []any{1, 2}, false))
	assert.True(t, depsChanged([]any{1}, []any{2}, false))
}

func TestShallowEqual(t *testing.T) {
	fn := func() {}
	assert.True(t, ShallowEqual(Props{"a": 1, "f": fn}, Props{"a": 1, "f": fn}))
	assert.False(t, ShallowEqual(Props{"a": 1}, Props{"a": 1, "b": 2}))
	assert.False(t, ShallowEqual(Props{"a": 1}, Props{"b": 1}))
	assert.False(t, ShallowEqual(Props{"a": []int{1}}, Props{"a": []int{1}}))
	assert.True(t, ShallowEqual(nil, Props{}))
}

func TestHookStore_Lifecycle(t *testing.T) {
	s := NewHookStore()
	s.ensure("i-1")
	assert.True(t, s.Has("i-1"))
	assert.Equal(t, 0, s.Slots("i-1"))

	s.append("i-1", &hookRecord{kind: HookState})
	s.append("i-1", &hookRecord{kind: HookEffect})
	assert.Equal(t, []HookKind{HookState, HookEffect}, s.Kinds("i-1"))

	rec, ok := s.slot("i-1", 1)
	assert.True(t, ok)
	assert.Equal(t, HookEffect, rec.kind)
	_, ok = s.slot("i-1", 2)
	assert.False(t, ok)

	recs := s.delete("i-1")
	assert.Len(t, recs, 2)
	assert.False(t, s.Has("i-1"))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "UseEffect", HookEffect.String())
}
