package demo

import "github.com/roach88/hookrt/internal/engine"

// Theme carries the current theme name.
var Theme = engine.CreateContext("light")

// ThemeLabel prints the theme it sees.
var ThemeLabel = engine.Define("ThemeLabel", func(r *engine.Render, props engine.Props) engine.Element {
	return h("h1", nil, engine.UseContext(r, Theme))
})

// ThemeApp renders one label inside a provider and one outside, and a
// button that switches the provided theme.
var ThemeApp = engine.Define("ThemeApp", func(r *engine.Render, props engine.Props) engine.Element {
	theme, setTheme := engine.UseState(r, "dark")
	toggle := func() {
		setTheme(func(t string) string {
			if t == "dark" {
				return "solarized"
			}
			return "dark"
		})
	}
	return h("div", nil,
		h(Theme.Provider, engine.Props{"value": theme}, h(ThemeLabel, nil)),
		h(ThemeLabel, nil),
		h("button", engine.Props{"onClick": toggle}, "toggle"),
	)
})
