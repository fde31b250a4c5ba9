package engine

import "github.com/roach88/hookrt/internal/ir"

// discriminator pairs a child descriptor with a previous child instance:
// the explicit key, or the component for unkeyed children (paired by
// ordinal among unkeyed siblings of that component).
type discriminator struct {
	key       string
	keyed     bool
	component *Component
}

func discriminatorOf(el *ComponentElement) discriminator {
	if el.HasKey {
		return discriminator{key: el.Key, keyed: true}
	}
	return discriminator{component: el.Component}
}

// childSlots records the children of one render of an instance.
type childSlots struct {
	order []*Instance
	by    map[discriminator][]*Instance
}

func (s *childSlots) add(d discriminator, inst *Instance) {
	if s.by == nil {
		s.by = make(map[discriminator][]*Instance)
	}
	s.order = append(s.order, inst)
	s.by[d] = append(s.by[d], inst)
}

// reconcilePass pairs the component descriptors of one render of owner
// against the children of its previous render.
type reconcilePass struct {
	root     *Root
	owner    *Instance
	prev     childSlots
	next     childSlots
	cursors  map[discriminator]int
	seenKeys map[string]bool
	consumed map[*Instance]bool
	created  []*Instance
	reused   []reuse
}

// reuse remembers where a reused child's run sat in the live host tree
// before this pass could move it.
type reuse struct {
	inst    *Instance
	element *ComponentElement
	renders int
	old     []HostNode
	parent  HostNode
	ref     HostNode
}

func (root *Root) newPass(owner *Instance) *reconcilePass {
	return &reconcilePass{
		root:     root,
		owner:    owner,
		prev:     owner.slots,
		cursors:  make(map[discriminator]int),
		seenKeys: make(map[string]bool),
		consumed: make(map[*Instance]bool),
	}
}

// pair returns the instance that renders el: a reused previous child
// rebound to el, or a new one.
func (p *reconcilePass) pair(el *ComponentElement) (*Instance, error) {
	d := discriminatorOf(el)
	if d.keyed {
		if p.seenKeys[d.key] {
			return nil, newKeyCollisionError(p.owner, d.key)
		}
		p.seenKeys[d.key] = true
	}

	idx := p.cursors[d]
	p.cursors[d]++

	if prev := p.prev.by[d]; idx < len(prev) {
		inst := prev[idx]
		// A keyed slot taken over by another component starts over.
		if inst.component == el.Component && !p.consumed[inst] {
			p.consumed[inst] = true
			p.remember(inst)
			if inst.element != el {
				inst.element = el
				inst.dirty = true
			}
			p.next.add(d, inst)
			return inst, nil
		}
	}

	inst := p.root.newInstance(el, p.owner)
	p.created = append(p.created, inst)
	p.next.add(d, inst)
	return inst, nil
}

// commit installs the new children and unmounts unmatched previous ones.
func (p *reconcilePass) commit() {
	p.owner.slots = p.next
	for _, inst := range p.prev.order {
		if !p.consumed[inst] {
			p.root.unmount(inst)
		}
	}
}

func (p *reconcilePass) remember(inst *Instance) {
	r := reuse{inst: inst, element: inst.element, renders: inst.renders, old: inst.output}
	if len(r.old) > 0 {
		r.parent = p.root.adapter.Parent(r.old[0])
		r.ref = p.root.adapter.NextSibling(r.old[len(r.old)-1])
	}
	p.reused = append(p.reused, r)
}

// abort unmounts the instances this pass created and keeps the previous
// children. Reused children may already have been re-rendered or had
// their nodes moved into the discarded host tree; their current runs are
// put back where their old runs were, last paired first, so every ref
// still points at the live tree.
func (p *reconcilePass) abort() {
	adapter := p.root.adapter
	replaced := make(map[HostNode]HostNode)
	for i := len(p.reused) - 1; i >= 0; i-- {
		r := p.reused[i]
		inst := r.inst
		if inst.renders == r.renders {
			inst.element = r.element
		}
		if r.parent == nil {
			continue
		}

		ref := r.ref
		for ref != nil {
			next, ok := replaced[ref]
			if !ok {
				break
			}
			ref = next
		}
		for _, n := range r.old {
			if parent := adapter.Parent(n); parent != nil {
				adapter.RemoveChild(parent, n)
			}
		}
		nodes := inst.output
		for _, n := range nodes {
			adapter.InsertBefore(r.parent, n, ref)
		}
		if len(nodes) > 0 && nodes[0] != r.old[0] {
			replaced[r.old[0]] = nodes[0]
			p.root.spliceAncestors(inst, r.old, nodes)
		}
	}
	for _, inst := range p.created {
		p.root.unmount(inst)
	}
}

func (root *Root) newInstance(el *ComponentElement, parent *Instance) *Instance {
	return &Instance{
		id:        InstanceID(root.ids.Generate()),
		component: el.Component,
		element:   el,
		parent:    parent,
		dirty:     true,
		alive:     true,
	}
}

// renderInstance returns inst's host run, invoking its component only when
// inst is dirty. Child descriptors are reconciled against the previous
// render and realized through the host adapter.
func (root *Root) renderInstance(inst *Instance) ([]HostNode, error) {
	if !inst.dirty && len(inst.output) > 0 {
		return inst.output, nil
	}
	inst.dirty = false

	first := !root.store.Has(inst.id)
	if first {
		root.store.ensure(inst.id)
	}

	pass := root.newPass(inst)
	committed := false
	defer func() {
		if !committed {
			pass.abort()
			inst.dirty = true
		}
	}()

	el := root.invoke(inst, first)

	pop := root.pushProvider(inst)
	nodes, err := root.realize(pass, el)
	pop()
	if err != nil {
		return nil, err
	}
	pass.commit()
	committed = true

	if len(nodes) == 0 {
		nodes = []HostNode{root.adapter.CreateText("")}
	}
	inst.output = nodes
	inst.renders++

	if first {
		root.traceProps(ir.TraceMount, inst)
	} else {
		root.traceProps(ir.TraceUpdate, inst)
	}
	root.logger.Debug("rendered",
		"instance", inst.id,
		"component", inst.component.Name(),
		"first", first,
		"nodes", len(nodes))
	return nodes, nil
}

// invoke calls the component function with a fresh render context.
func (root *Root) invoke(inst *Instance, first bool) Element {
	r := &Render{root: root, inst: inst, first: first, active: true}
	defer func() { r.active = false }()
	el := inst.component.render(r, inst.element.Props)
	r.finish()
	return el
}

// realize converts a descriptor tree into host nodes. Component
// descriptors are paired through pass and rendered recursively.
func (root *Root) realize(pass *reconcilePass, el Element) ([]HostNode, error) {
	if el == nil || isNilElement(el) {
		return nil, nil
	}
	switch e := el.(type) {
	case Text:
		return []HostNode{root.adapter.CreateText(string(e))}, nil

	case *HostElement:
		attrs := make(Props, len(e.Attrs))
		var ref *Ref[HostNode]
		for k, v := range e.Attrs {
			if k == RefProp {
				ref, _ = v.(*Ref[HostNode])
				continue
			}
			attrs[k] = v
		}
		node := root.adapter.CreateElement(e.Type, attrs)
		for _, c := range e.Children {
			kids, err := root.realize(pass, c)
			if err != nil {
				return nil, err
			}
			for _, k := range kids {
				root.adapter.AppendChild(node, k)
			}
		}
		if ref != nil {
			ref.Current = node
		}
		return []HostNode{node}, nil

	case *Fragment:
		var out []HostNode
		for _, c := range e.Children {
			kids, err := root.realize(pass, c)
			if err != nil {
				return nil, err
			}
			out = append(out, kids...)
		}
		return out, nil

	case *ComponentElement:
		child, err := pass.pair(e)
		if err != nil {
			return nil, err
		}
		return root.renderInstance(child)
	}
	return nil, nil
}

// unmount tears down inst and its descendants: effect cleanups run, the
// hook store entry is deleted and the instance is marked dead.
func (root *Root) unmount(inst *Instance) {
	if !inst.alive {
		return
	}
	inst.alive = false
	recs := root.store.delete(inst.id)
	root.runCleanups(inst, recs)
	root.trace(ir.TraceUnmount, inst, 0)
	root.logger.Debug("unmounted", "instance", inst.id, "component", inst.component.Name())

	for _, c := range inst.slots.order {
		root.unmount(c)
	}
}
