package demo

import (
	"strings"

	"github.com/roach88/hookrt/internal/engine"
)

// TagList renders a list of tags; MemoTagList skips re-rendering while the
// tags slice is the same.
var TagList = engine.Define("TagList", func(r *engine.Render, props engine.Props) engine.Element {
	tags := engine.Prop[[]string](props, "tags")
	renders := engine.UseRef(r, 0)
	renders.Current++
	return h("p", engine.Props{"className": "tags", "data-renders": renders.Current},
		"tags: ", strings.Join(tags, ", "))
})

// MemoTagList is TagList behind Memo.
var MemoTagList = engine.Memo(TagList, nil)

// MemoApp has a counter unrelated to the memoized list and a button that
// adds a tag.
var MemoApp = engine.Define("MemoApp", func(r *engine.Render, props engine.Props) engine.Element {
	val, setVal := engine.UseState(r, 0)
	tags, setTags := engine.UseState(r, []string{"go"})

	return h("div", nil,
		h("p", engine.Props{"className": "val"}, "val: ", val),
		h(MemoTagList, engine.Props{"tags": tags}),
		h("button", engine.Props{"id": "bump", "onClick": func() { setVal(func(v int) int { return v + 1 }) }}, "bump"),
		h("button", engine.Props{"id": "tag", "onClick": func() {
			setTags(func(prev []string) []string {
				next := make([]string, len(prev), len(prev)+1)
				copy(next, prev)
				return append(next, "tag")
			})
		}}, "add tag"),
	)
})
