package demo

import (
	"fmt"
	"time"

	"github.com/roach88/hookrt/internal/engine"
)

// Counter shows a count, a status line updated by an effect after every
// change, and an increment button. With an "interval" prop
// (time.Duration) it also ticks on its own.
var Counter = engine.Define("Counter", func(r *engine.Render, props engine.Props) engine.Element {
	count, setCount := engine.UseState(r, 0)
	text, setText := engine.UseState(r, "hello")

	engine.UseEffect(r, func() func() {
		if count > 0 {
			setText.Set(fmt.Sprintf("counter= %d", count))
		}
		return nil
	}, engine.Deps(count))

	interval := engine.Prop[time.Duration](props, "interval")
	root := r.Root()
	engine.UseEffect(r, func() func() {
		if interval <= 0 {
			return nil
		}
		return every(interval, func() {
			root.Defer(func() { setCount(func(c int) int { return c + 1 }) })
		})
	}, engine.Deps(interval))

	return h("div", engine.Props{"className": "component"},
		h("h2", nil, "Counter"),
		h("p", engine.Props{"className": "count"}, "Count: ", count),
		h("p", engine.Props{"className": "status"}, text),
		h("button", engine.Props{"onClick": func() { setCount(func(c int) int { return c + 1 }) }}, "Increment"),
	)
})

// every calls fn on its own goroutine every d until the returned stop
// function is called.
func every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}
