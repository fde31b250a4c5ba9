package engine

import (
	"context"

	"github.com/roach88/hookrt/internal/ir"
)

// trace reports a lifecycle event to the recorder, if any. Recorder
// failures are logged; they never fail a render.
func (root *Root) trace(kind ir.TraceKind, inst *Instance, slot int) {
	if root.recorder == nil {
		return
	}
	root.record(root.event(kind, inst, slot))
}

// traceProps is trace for mount and update events, which carry the
// summarized props and their hash.
func (root *Root) traceProps(kind ir.TraceKind, inst *Instance) {
	if root.recorder == nil {
		return
	}
	ev := root.event(kind, inst, 0)
	ev.Props = SummarizeProps(inst.element.Props)
	hash, err := ir.PropsHash(ev.Props)
	if err != nil {
		root.logger.Warn("props hash failed", "instance", inst.id, "error", err)
	}
	ev.PropsHash = hash
	root.record(ev)
}

func (root *Root) event(kind ir.TraceKind, inst *Instance, slot int) ir.TraceEvent {
	ev := ir.TraceEvent{
		Seq:        root.clock.Next(),
		Session:    root.session,
		Kind:       kind,
		InstanceID: string(inst.id),
		Component:  inst.component.Name(),
		Slot:       slot,
	}
	if inst.parent != nil {
		ev.ParentID = string(inst.parent.id)
	}
	return ev
}

func (root *Root) record(ev ir.TraceEvent) {
	if err := root.recorder.Record(context.Background(), ev); err != nil {
		root.logger.Warn("trace record failed",
			"seq", ev.Seq,
			"kind", string(ev.Kind),
			"instance", ev.InstanceID,
			"error", err)
	}
}

// SummarizeProps converts props into their trace representation. Elements
// are replaced by a marker and children by their count.
func SummarizeProps(p Props) ir.IRObject {
	obj := make(ir.IRObject, len(p))
	for k, v := range p {
		switch x := v.(type) {
		case []Element:
			obj[k] = ir.IRInt(len(x))
		case Element:
			obj[k] = ir.IRString(ir.ElementMarker)
		default:
			obj[k] = ir.Summarize(v)
		}
	}
	return obj
}
