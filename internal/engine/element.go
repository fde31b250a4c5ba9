package engine

import (
	"fmt"
	"reflect"
)

// Reserved prop names.
const (
	// ChildrenProp carries a component's children inside its props.
	ChildrenProp = "children"
	// KeyProp is lifted out of props into ComponentElement.Key.
	KeyProp = "key"
	// RefProp on a host element receives the created host node. The value
	// must be a *Ref[HostNode].
	RefProp = "ref"
)

// Props are the arguments of an element.
type Props map[string]any

// Children returns the children delivered to a component.
func (p Props) Children() []Element {
	c, _ := p[ChildrenProp].([]Element)
	return c
}

// Prop reads a typed prop, returning the zero value when the prop is
// missing or holds another type.
func Prop[T any](p Props, name string) T {
	v, _ := p[name].(T)
	return v
}

// Element is an immutable descriptor produced by a render.
//
// Element is a sealed sum type: *HostElement, *ComponentElement, *Fragment
// and Text are its only cases.
type Element interface {
	element()
}

// HostElement describes a host node with attributes and children.
type HostElement struct {
	Type     string
	Attrs    Props
	Children []Element
}

// ComponentElement describes an invocation of a component.
// Instances are only materialized from it by the reconciler.
type ComponentElement struct {
	Component *Component
	Props     Props
	Key       string
	HasKey    bool
}

// Fragment groups children without an intervening host node. Its children
// are spliced into the parent.
type Fragment struct {
	Children []Element
}

// Text is a text node.
type Text string

func (*HostElement) element()      {}
func (*ComponentElement) element() {}
func (*Fragment) element()         {}
func (Text) element()              {}

type fragmentType struct{}

// FragmentType selects the fragment case of CreateElement.
var FragmentType = fragmentType{}

// CreateElement builds an element descriptor.
//
// typ is a host tag (string), a *Component, or FragmentType. Children are
// flattened: nested []Element and []any are spliced, nil is skipped, other
// non-element values become Text via fmt.Sprint.
//
// The key prop becomes ComponentElement.Key and is not passed to the
// component. Component children are delivered in props under ChildrenProp.
//
// CreateElement panics on any other typ; that is a programming error.
func CreateElement(typ any, props Props, children ...any) Element {
	kids := flattenChildren(nil, children)

	switch t := typ.(type) {
	case string:
		attrs := make(Props, len(props))
		for k, v := range props {
			if k == KeyProp {
				continue
			}
			attrs[k] = v
		}
		return &HostElement{Type: t, Attrs: attrs, Children: kids}

	case *Component:
		el := &ComponentElement{Component: t, Props: make(Props, len(props)+1)}
		for k, v := range props {
			if k == KeyProp {
				if v != nil {
					el.Key, el.HasKey = fmt.Sprint(v), true
				}
				continue
			}
			el.Props[k] = v
		}
		if len(kids) > 0 {
			el.Props[ChildrenProp] = kids
		}
		return el

	case fragmentType:
		return &Fragment{Children: kids}

	default:
		panic(fmt.Sprintf("engine: CreateElement: unsupported element type %T", typ))
	}
}

func flattenChildren(out []Element, children []any) []Element {
	for _, c := range children {
		switch v := c.(type) {
		case nil:
		case Element:
			if !isNilElement(v) {
				out = append(out, v)
			}
		case []Element:
			for _, e := range v {
				if e != nil && !isNilElement(e) {
					out = append(out, e)
				}
			}
		case []any:
			out = flattenChildren(out, v)
		case string:
			out = append(out, Text(v))
		default:
			out = append(out, Text(fmt.Sprint(v)))
		}
	}
	return out
}

// isNilElement reports typed nil pointers such as (*HostElement)(nil).
func isNilElement(e Element) bool {
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
