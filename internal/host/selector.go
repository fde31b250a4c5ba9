package host

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// compile parses a CSS selector group ("form .note input, button#go").
func compile(sel string) (cascadia.Selector, error) {
	m, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrBadSelector, sel, err)
	}
	return m, nil
}

// QueryAll returns the container's descendants matching sel in document
// order. The container itself never matches.
func (d *Document) QueryAll(sel string) ([]*html.Node, error) {
	m, err := compile(sel)
	if err != nil {
		return nil, err
	}
	return cascadia.QueryAll(d.container, m), nil
}

// Query returns the first descendant of the container matching sel, or
// nil when nothing matches.
func (d *Document) Query(sel string) (*html.Node, error) {
	m, err := compile(sel)
	if err != nil {
		return nil, err
	}
	return cascadia.Query(d.container, m), nil
}

// FindAll is QueryAll for selectors known to be valid; an invalid
// selector matches nothing.
func (d *Document) FindAll(sel string) []*html.Node {
	all, _ := d.QueryAll(sel)
	return all
}

// Find is Query for selectors known to be valid; an invalid selector
// matches nothing.
func (d *Document) Find(sel string) *html.Node {
	n, _ := d.Query(sel)
	return n
}
