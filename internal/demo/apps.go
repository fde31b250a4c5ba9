package demo

import (
	"fmt"
	"sort"
	"time"

	"github.com/roach88/hookrt/internal/engine"
)

// App is a named root element factory.
type App struct {
	Name        string
	Description string
	Root        func() engine.Element
}

var registry = map[string]App{}

func register(app App) {
	if _, dup := registry[app.Name]; dup {
		panic(fmt.Sprintf("demo: duplicate app %q", app.Name))
	}
	registry[app.Name] = app
}

func init() {
	register(App{Name: "counter", Description: "state, effect-driven text and a click handler", Root: func() engine.Element { return h(Counter, nil) }})
	register(App{Name: "ticker", Description: "the counter driven by a one-second timer effect", Root: func() engine.Element {
		return h(Counter, engine.Props{"interval": time.Second})
	}})
	register(App{Name: "reducer", Description: "UseReducer with increment and decrement actions", Root: func() engine.Element { return h(ReducerCounter, nil) }})
	register(App{Name: "refcount", Description: "controlled input with a UseRef render counter", Root: func() engine.Element { return h(RenderCounter, nil) }})
	register(App{Name: "theme", Description: "context provider scoping with a fallback default", Root: func() engine.Element { return h(ThemeApp, nil) }})
	register(App{Name: "memo", Description: "Memo skips the list while unrelated state changes", Root: func() engine.Element { return h(MemoApp, nil) }})
	register(App{Name: "notes", Description: "notes app with a form, keyed list, edit and delete", Root: func() engine.Element { return h(NotesApp, nil) }})
}

// Lookup returns the app registered under name.
func Lookup(name string) (App, error) {
	app, ok := registry[name]
	if !ok {
		return App{}, fmt.Errorf("unknown app %q (available: %v)", name, Names())
	}
	return app, nil
}

// Names returns the registered app names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func h(typ any, props engine.Props, children ...any) engine.Element {
	return engine.CreateElement(typ, props, children...)
}
