package host

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoMatch is returned when a selector matches no attached node.
var ErrNoMatch = errors.New("host: no node matches selector")

// ErrBadSelector is returned when a selector does not parse.
var ErrBadSelector = errors.New("host: invalid selector")

// Event is a synthetic DOM event.
type Event struct {
	Type   string
	Target *html.Node
	// Value carries the new value for input and change events.
	Value string

	prevented bool
	stopped   bool
}

// PreventDefault suppresses the default action (a submit button's form
// submission).
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// StopPropagation stops the event from bubbling further.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener handles an event.
type Listener func(*Event)

// toListener adapts the handler shapes accepted in on* attributes.
func toListener(v any) Listener {
	switch f := v.(type) {
	case Listener:
		return f
	case func(*Event):
		return f
	case func():
		return func(*Event) { f() }
	case func(string):
		return func(e *Event) { f(e.Value) }
	default:
		return nil
	}
}

func (d *Document) addListener(n *html.Node, event string, l Listener) {
	m := d.listeners[n]
	if m == nil {
		m = make(map[string][]Listener)
		d.listeners[n] = m
	}
	m[event] = append(m[event], l)
}

// prune forgets listeners of nodes no longer in the container.
func (d *Document) prune() {
	for n := range d.listeners {
		if !d.Attached(n) {
			delete(d.listeners, n)
		}
	}
}

// Listeners returns the number of attached nodes with listeners.
func (d *Document) Listeners() int {
	d.prune()
	return len(d.listeners)
}

// Dispatch delivers ev to target and bubbles it up to the container.
// It returns false if a listener called PreventDefault.
func (d *Document) Dispatch(target *html.Node, ev *Event) bool {
	d.prune()
	ev.Target = target
	for n := target; n != nil && !ev.stopped; n = n.Parent {
		for _, l := range d.listeners[n][ev.Type] {
			l(ev)
		}
		if n == d.container {
			break
		}
	}
	return !ev.prevented
}

// Click dispatches a click on the first match of sel.
func (d *Document) Click(sel string) error {
	n, err := d.mustFind(sel)
	if err != nil {
		return err
	}
	d.ClickNode(n)
	return nil
}

// ClickNode dispatches a click on n. A click on a submit button that is
// not prevented submits the enclosing form.
func (d *Document) ClickNode(n *html.Node) {
	if !d.Dispatch(n, &Event{Type: "click"}) {
		return
	}
	if isSubmitButton(n) {
		if form := ancestor(n, "form"); form != nil {
			d.Dispatch(form, &Event{Type: "submit"})
		}
	}
}

// Input types value into the first match of sel.
func (d *Document) Input(sel, value string) error {
	n, err := d.mustFind(sel)
	if err != nil {
		return err
	}
	d.InputNode(n, value)
	return nil
}

// InputNode sets n's value attribute and dispatches input and change
// events carrying it. Children are left alone; they belong to the engine.
func (d *Document) InputNode(n *html.Node, value string) {
	SetAttr(n, "value", value)
	d.Dispatch(n, &Event{Type: "input", Value: value})
	d.Dispatch(n, &Event{Type: "change", Value: value})
}

// Submit dispatches submit on the first match of sel.
func (d *Document) Submit(sel string) error {
	n, err := d.mustFind(sel)
	if err != nil {
		return err
	}
	d.Dispatch(n, &Event{Type: "submit"})
	return nil
}

// Interactive describes an attached node with listeners.
type Interactive struct {
	Node   *html.Node
	Events []string
	Label  string
}

// Interactive lists attached nodes with listeners in document order.
func (d *Document) Interactive() []Interactive {
	d.prune()
	var out []Interactive
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if m := d.listeners[n]; len(m) > 0 {
			events := make([]string, 0, len(m))
			for e := range m {
				events = append(events, e)
			}
			sort.Strings(events)
			out = append(out, Interactive{Node: n, Events: events, Label: d.label(n)})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.container)
	return out
}

func (d *Document) label(n *html.Node) string {
	var sb strings.Builder
	sb.WriteString(n.Data)
	if id, ok := Attr(n, "id"); ok {
		sb.WriteString("#" + id)
	}
	if name, ok := Attr(n, "name"); ok {
		fmt.Fprintf(&sb, "[name=%s]", name)
	}
	if text := strings.TrimSpace(d.Text(n)); text != "" {
		fmt.Fprintf(&sb, " %q", text)
	}
	return sb.String()
}

func (d *Document) mustFind(sel string) (*html.Node, error) {
	n, err := d.Query(sel)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, sel)
	}
	return n, nil
}

func isSubmitButton(n *html.Node) bool {
	switch n.Data {
	case "button":
		t, ok := Attr(n, "type")
		return !ok || t == "submit"
	case "input":
		t, _ := Attr(n, "type")
		return t == "submit"
	}
	return false
}

func ancestor(n *html.Node, tag string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return p
		}
	}
	return nil
}
