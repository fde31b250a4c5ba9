package engine

// Memo wraps c so that it re-renders only when areEqual reports a change
// in props. A nil areEqual uses ShallowEqual.
//
// The cache lives in a hook slot of the wrapper instance, so it is
// released with the wrapper on unmount. c renders as the wrapper's only
// child; returning the cached descriptor keeps that child from
// re-rendering.
func Memo(c *Component, areEqual func(prev, next Props) bool) *Component {
	if areEqual == nil {
		areEqual = ShallowEqual
	}
	return Define("Memo("+c.Name()+")", func(r *Render, props Props) Element {
		rec, created := r.next(HookMemoized)
		if !created {
			if prev, ok := rec.value.(Props); ok && areEqual(prev, props) {
				return valueAs[*ComponentElement](r, rec, rec.aux)
			}
		}
		el := &ComponentElement{Component: c, Props: props}
		rec.value = props
		rec.aux = el
		return el
	})
}
