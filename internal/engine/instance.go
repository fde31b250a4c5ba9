package engine

// InstanceID is the opaque identity of a mounted component invocation.
type InstanceID string

// Instance is one mounted invocation of a component. Its identity, hook
// records and children survive re-renders until the reconciler unmounts it.
type Instance struct {
	id        InstanceID
	component *Component
	element   *ComponentElement
	parent    *Instance
	slots     childSlots
	output    []HostNode // committed host run; never empty once rendered
	dirty     bool
	alive     bool
	renders   int
}

// ID returns the instance identity.
func (i *Instance) ID() InstanceID { return i.id }

// Component returns the component this instance invokes.
func (i *Instance) Component() *Component { return i.component }

// Props returns the props of the most recent descriptor.
func (i *Instance) Props() Props { return i.element.Props }

// Key returns the explicit key, if any.
func (i *Instance) Key() (string, bool) { return i.element.Key, i.element.HasKey }

// Parent returns the owning instance; nil for the root instance.
func (i *Instance) Parent() *Instance { return i.parent }

// Alive reports whether the instance is still mounted.
func (i *Instance) Alive() bool { return i.alive }

// Dirty reports whether the next render must invoke the component.
func (i *Instance) Dirty() bool { return i.dirty }

// Renders returns how many times the component function has committed.
func (i *Instance) Renders() int { return i.renders }

// Output returns the committed host nodes.
func (i *Instance) Output() []HostNode {
	out := make([]HostNode, len(i.output))
	copy(out, i.output)
	return out
}

// Children returns the child instances of the last render in document
// order.
func (i *Instance) Children() []*Instance {
	out := make([]*Instance, len(i.slots.order))
	copy(out, i.slots.order)
	return out
}

// Walk visits i and its descendants depth-first.
func (i *Instance) Walk(fn func(*Instance) bool) {
	if !fn(i) {
		return
	}
	for _, c := range i.slots.order {
		c.Walk(fn)
	}
}
