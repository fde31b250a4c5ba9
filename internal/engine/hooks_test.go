package engine_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hookrt/internal/engine"
)

type bucket struct{ n int }

func TestHooks_OrderStability_RandomizedRerenders(t *testing.T) {
	f := newFixture(t)

	var (
		gotState int
		setState engine.Setter[int]
		gotRef   *engine.Ref[int]
		gotMemo  *bucket
		gotTag   string
		memoRuns int
	)
	stable := engine.Define("Stable", func(r *engine.Render, props engine.Props) engine.Element {
		n, set := engine.UseState(r, 0)
		ref := engine.UseRef(r, 0)
		ref.Current++
		b := engine.UseMemo(r, func() *bucket {
			memoRuns++
			return &bucket{n: n / 10}
		}, engine.Deps(n/10))
		tag, _ := engine.UseReducer(r, func(s string, a string) string { return s + a }, "t")

		gotState, setState, gotRef, gotMemo, gotTag = n, set, ref, b, tag
		return h("span", nil, n, "/", engine.Prop[int](props, "round"))
	})

	f.mount(t, h(stable, engine.Props{"round": 0}))
	inst := f.find(stable)
	require.NotNil(t, inst)
	firstRef := gotRef

	rng := rand.New(rand.NewPCG(42, 7))
	expected := 0
	lastBucket := gotMemo
	for i := 1; i <= 150; i++ {
		round := 0
		switch rng.IntN(3) {
		case 0:
			setState(func(p int) int { return p + 1 })
			expected++
		case 1:
			setState.Set(expected)
		case 2:
			round = i
			require.NoError(t, f.root.Render(h(stable, engine.Props{"round": i})))
		}
		f.flush(t)

		require.Equal(t, expected, gotState, "iteration %d", i)
		require.Same(t, firstRef, gotRef, "ref must never be reallocated")
		require.Equal(t, inst.Renders(), gotRef.Current, "ref counts committed renders")
		require.Equal(t, expected/10, gotMemo.n)
		if lastBucket.n == gotMemo.n {
			require.Same(t, lastBucket, gotMemo, "memo recomputed with unchanged deps")
		}
		lastBucket = gotMemo
		require.Equal(t, "t", gotTag)
		if round > 0 {
			require.Equal(t, fmt.Sprintf("%d/%d", expected, round), f.doc.Text(f.doc.Container()))
		}
	}

	assert.Equal(t, expected/10+1, memoRuns)
	assert.Equal(t, 4, f.root.Store().Slots(inst.ID()))
	assert.Same(t, inst, f.find(stable), "identity preserved")
}

func TestUseEffect_DependencyGating(t *testing.T) {
	f := newFixture(t)

	var log []string
	watcher := engine.Define("Watcher", func(r *engine.Render, props engine.Props) engine.Element {
		x := engine.Prop[int](props, "x")
		engine.UseEffect(r, func() func() {
			log = append(log, fmt.Sprintf("run %d", x))
			return func() { log = append(log, fmt.Sprintf("cleanup %d", x)) }
		}, engine.Deps(x))
		return h("i", nil, x)
	})

	f.mount(t, h(watcher, engine.Props{"x": 1}))
	assert.Equal(t, []string{"run 1"}, log)

	// Same dependency, new descriptor: re-renders without re-running.
	f.mount(t, h(watcher, engine.Props{"x": 1}))
	assert.Equal(t, []string{"run 1"}, log)
	assert.Equal(t, 2, f.find(watcher).Renders())

	f.mount(t, h(watcher, engine.Props{"x": 2}))
	assert.Equal(t, []string{"run 1", "cleanup 1", "run 2"}, log)
}

func TestUseEffect_NilDepsRunEveryRenderAndEmptyDepsOnce(t *testing.T) {
	f := newFixture(t)

	var every, once int
	comp := engine.Define("Effects", func(r *engine.Render, props engine.Props) engine.Element {
		engine.UseEffect(r, func() func() { every++; return nil }, nil)
		engine.UseEffect(r, func() func() { once++; return nil }, engine.Deps())
		return nil
	})

	for i := 0; i < 3; i++ {
		f.mount(t, h(comp, engine.Props{"i": i}))
	}
	assert.Equal(t, 3, every)
	assert.Equal(t, 1, once)
}

func TestUseEffect_SupersededBodyIsSkipped(t *testing.T) {
	f := newFixture(t)

	var ran []int
	comp := engine.Define("Effect", func(r *engine.Render, props engine.Props) engine.Element {
		x := engine.Prop[int](props, "x")
		engine.UseEffect(r, func() func() { ran = append(ran, x); return nil }, engine.Deps(x))
		return nil
	})

	require.NoError(t, f.root.Render(h(comp, engine.Props{"x": 1})))
	require.NoError(t, f.root.Render(h(comp, engine.Props{"x": 2})))
	f.flush(t)

	assert.Equal(t, []int{2}, ran)
}

func TestUseState_EqualValueSchedulesNothing(t *testing.T) {
	f := newFixture(t)

	var set engine.Setter[string]
	var slice engine.Setter[[]int]
	items := []int{1, 2}
	comp := engine.Define("Bail", func(r *engine.Render, props engine.Props) engine.Element {
		var s string
		s, set = engine.UseState(r, "same")
		_, slice = engine.UseState(r, items)
		return h("p", nil, s)
	})
	f.mount(t, h(comp, nil))

	before := f.sched.count(engine.TaskRender)
	set.Set("same")
	set(func(prev string) string { return prev })
	slice.Set(items)

	assert.Equal(t, before, f.sched.count(engine.TaskRender), "no render may be scheduled")
	assert.Equal(t, 0, f.root.Pending())

	slice.Set([]int{1, 2})
	assert.Equal(t, before+1, f.sched.count(engine.TaskRender), "a new slice is a new value")
}

func TestUseReducer_DispatchUsesLatestReducer(t *testing.T) {
	f := newFixture(t)

	var dispatch engine.Dispatch[int]
	comp := engine.Define("Reducer", func(r *engine.Render, props engine.Props) engine.Element {
		step := engine.Prop[int](props, "step")
		n, d := engine.UseReducer(r, func(s, a int) int { return s + a*step }, 0)
		dispatch = d
		return h("b", nil, n)
	})

	f.mount(t, h(comp, engine.Props{"step": 1}))
	first := dispatch
	dispatch(2)
	f.flush(t)
	assert.Equal(t, "<b>2</b>", f.doc.Body())

	f.mount(t, h(comp, engine.Props{"step": 10}))
	dispatch(1)
	f.flush(t)
	assert.Equal(t, "<b>12</b>", f.doc.Body())
	assert.True(t, engine.SameValue(first, dispatch), "dispatch is stable")

	before := f.sched.count(engine.TaskRender)
	dispatch(0)
	assert.Equal(t, before, f.sched.count(engine.TaskRender))
}

func TestUseMemo_IdentityFollowsDeps(t *testing.T) {
	f := newFixture(t)

	var got []*bucket
	comp := engine.Define("Memo", func(r *engine.Render, props engine.Props) engine.Element {
		k := engine.Prop[string](props, "k")
		got = append(got, engine.UseMemo(r, func() *bucket { return &bucket{n: len(k)} }, engine.Deps(k)))
		return nil
	})

	f.mount(t, h(comp, engine.Props{"k": "a"}))
	f.mount(t, h(comp, engine.Props{"k": "a"}))
	f.mount(t, h(comp, engine.Props{"k": "bb"}))
	f.mount(t, h(comp, engine.Props{"k": "bb"}))

	require.Len(t, got, 4)
	assert.Same(t, got[0], got[1])
	assert.NotSame(t, got[1], got[2])
	assert.Same(t, got[2], got[3])
	assert.Equal(t, 2, got[3].n)
}

func TestUseCallback_StableWhileDepsUnchanged(t *testing.T) {
	f := newFixture(t)

	var got []func() int
	comp := engine.Define("Callback", func(r *engine.Render, props engine.Props) engine.Element {
		v := engine.Prop[int](props, "v")
		got = append(got, engine.UseCallback(r, func() int { return v }, engine.Deps(v)))
		return nil
	})

	f.mount(t, h(comp, engine.Props{"v": 1}))
	f.mount(t, h(comp, engine.Props{"v": 1}))
	f.mount(t, h(comp, engine.Props{"v": 2}))

	assert.True(t, engine.SameValue(got[0], got[1]))
	assert.False(t, engine.SameValue(got[1], got[2]))
	assert.Equal(t, 1, got[1]())
	assert.Equal(t, 2, got[2]())
}

func TestHooks_OrderViolationDetected(t *testing.T) {
	tests := []struct {
		name string
		body func(r *engine.Render, cond bool)
	}{
		{
			name: "kind changes",
			body: func(r *engine.Render, cond bool) {
				if cond {
					engine.UseState(r, 0)
				}
				engine.UseRef(r, 0)
			},
		},
		{
			name: "fewer hooks",
			body: func(r *engine.Render, cond bool) {
				engine.UseRef(r, 0)
				if cond {
					engine.UseRef(r, 0)
				}
			},
		},
		{
			name: "more hooks",
			body: func(r *engine.Render, cond bool) {
				engine.UseRef(r, 0)
				if !cond {
					engine.UseRef(r, 0)
				}
			},
		},
		{
			name: "type changes",
			body: func(r *engine.Render, cond bool) {
				if cond {
					engine.UseState(r, 0)
				} else {
					engine.UseState(r, "zero")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			comp := engine.Define("Conditional", func(r *engine.Render, props engine.Props) engine.Element {
				tt.body(r, engine.Prop[bool](props, "cond"))
				return nil
			})

			f.mount(t, h(comp, engine.Props{"cond": true}))
			err := f.root.Render(h(comp, engine.Props{"cond": false}))

			require.Error(t, err)
			assert.True(t, engine.IsHookOrderError(err), "got %v", err)
			var re *engine.RuntimeError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, "Conditional", re.Component)
		})
	}
}

func TestHooks_ContextErrorOutsideRender(t *testing.T) {
	f := newFixture(t)

	var saved *engine.Render
	comp := engine.Define("Leaky", func(r *engine.Render, props engine.Props) engine.Element {
		saved = r
		return nil
	})
	f.mount(t, h(comp, nil))

	t.Run("direct call panics", func(t *testing.T) {
		defer func() {
			p := recover()
			require.NotNil(t, p)
			err, ok := p.(error)
			require.True(t, ok)
			assert.True(t, engine.IsHookContextError(err))
		}()
		engine.UseState(saved, 0)
	})

	t.Run("nil render panics", func(t *testing.T) {
		assert.Panics(t, func() { engine.UseRef[int](nil, 0) })
	})

	t.Run("inside a task becomes an error", func(t *testing.T) {
		f.root.Defer(func() { engine.UseEffect(saved, func() func() { return nil }, nil) })
		err := f.root.Flush()
		assert.True(t, engine.IsHookContextError(err), "got %v", err)
	})
}

func TestContext_Scoping(t *testing.T) {
	f := newFixture(t)

	theme := engine.CreateContext("default")
	var setLocal engine.Setter[int]
	reader := engine.Define("Reader", func(r *engine.Render, props engine.Props) engine.Element {
		n, set := engine.UseState(r, 0)
		if engine.Prop[bool](props, "track") {
			setLocal = set
		}
		return h("span", nil, engine.UseContext(r, theme), n)
	})

	f.mount(t, h("div", nil,
		h(theme.Provider, engine.Props{"value": "A"},
			h("p", nil, h(reader, engine.Props{"track": true})),
			h(theme.Provider, engine.Props{"value": "B"}, h(reader, nil)),
		),
		h(reader, nil),
	))
	assert.Equal(t, "<div><p><span>A0</span></p><span>B0</span><span>default0</span></div>", f.doc.Body())

	// A re-render started by the reader itself still sees its provider.
	setLocal.Set(1)
	f.flush(t)
	assert.Equal(t, "<div><p><span>A1</span></p><span>B0</span><span>default0</span></div>", f.doc.Body())
	assert.Equal(t, "default", theme.Default())
}
