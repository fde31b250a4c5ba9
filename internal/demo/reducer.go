package demo

import "github.com/roach88/hookrt/internal/engine"

func countReducer(state int, action string) int {
	switch action {
	case "increment":
		return state + 1
	case "decrement":
		return state - 1
	default:
		return state
	}
}

// ReducerCounter starts at 10 and dispatches increment/decrement actions.
var ReducerCounter = engine.Define("ReducerCounter", func(r *engine.Render, props engine.Props) engine.Element {
	state, dispatch := engine.UseReducer(r, countReducer, 10)
	return h("div", nil,
		h("h1", nil, state),
		h("button", engine.Props{"id": "inc", "onClick": func() { dispatch("increment") }}, "increment"),
		h("button", engine.Props{"id": "dec", "onClick": func() { dispatch("decrement") }}, "decrement"),
	)
})

// RenderCounter is a controlled input next to the number of times the
// component has rendered, counted in a ref.
var RenderCounter = engine.Define("RenderCounter", func(r *engine.Render, props engine.Props) engine.Element {
	value, setValue := engine.UseState(r, "")
	renders := engine.UseRef(r, 0)
	renders.Current++

	return h("div", nil,
		h("input", engine.Props{
			"type":     "text",
			"value":    value,
			"onChange": func(v string) { setValue.Set(v) },
		}),
		h("h1", nil, renders.Current),
	)
})
