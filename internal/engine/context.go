package engine

import "fmt"

// contextCore is the type-erased identity of a Context.
type contextCore struct {
	name string
	def  any
}

// providerFrame is one entry of a render pass's provider stack.
type providerFrame struct {
	core  *contextCore
	value any
}

// Context carries a value down the tree without threading props.
//
// Render Provider with a "value" prop around a subtree; UseContext inside
// that subtree returns the nearest provider's value, or the default outside
// any provider. Provider renders its children directly, without a host
// node of its own.
type Context[T any] struct {
	Provider *Component
	def      T
	core     *contextCore
}

// CreateContext creates a context with a default value.
func CreateContext[T any](def T) *Context[T] {
	core := &contextCore{name: fmt.Sprintf("Context[%T]", def), def: def}
	provider := Define(core.name+".Provider", func(r *Render, props Props) Element {
		return &Fragment{Children: props.Children()}
	})
	provider.provider = core
	return &Context[T]{Provider: provider, def: def, core: core}
}

// Default returns the context's default value.
func (c *Context[T]) Default() T {
	return c.def
}

// UseContext returns the value of the nearest enclosing Provider of ctx.
// It does not occupy a hook slot.
func UseContext[T any](r *Render, ctx *Context[T]) T {
	r.check("UseContext")
	stack := r.root.providers
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].core != ctx.core {
			continue
		}
		v, ok := stack[i].value.(T)
		if !ok {
			return ctx.def
		}
		return v
	}
	return ctx.def
}

// pushProvider pushes inst's value if inst is a context provider and
// returns the function that pops it.
func (root *Root) pushProvider(inst *Instance) func() {
	core := inst.component.provider
	if core == nil {
		return func() {}
	}
	n := len(root.providers)
	root.providers = append(root.providers, providerFrame{core: core, value: inst.element.Props["value"]})
	return func() {
		root.providers = root.providers[:n]
	}
}

// seedProviders rebuilds the provider stack for a re-render that starts at
// inst rather than at the root.
func (root *Root) seedProviders(inst *Instance) {
	root.providers = root.providers[:0]
	var chain []*Instance
	for a := inst.parent; a != nil; a = a.parent {
		if a.component.provider != nil {
			chain = append(chain, a)
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		a := chain[i]
		root.providers = append(root.providers, providerFrame{core: a.component.provider, value: a.element.Props["value"]})
	}
}
