package engine

// RenderFunc is a component body. It is re-invoked on every render of the
// instance and must call its hooks unconditionally and in the same order.
type RenderFunc func(r *Render, props Props) Element

// Component is a named render function. Its pointer identity is the
// component type used by the reconciler, so define each component once
// (typically as a package-level variable).
type Component struct {
	name     string
	render   RenderFunc
	provider *contextCore // non-nil for Context providers
}

// Define creates a component.
func Define(name string, fn RenderFunc) *Component {
	return &Component{name: name, render: fn}
}

// Name returns the component's display name.
func (c *Component) Name() string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}

// String implements fmt.Stringer.
func (c *Component) String() string {
	return c.Name()
}
