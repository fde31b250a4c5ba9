package ir

// TraceKind identifies what happened to an instance.
type TraceKind string

const (
	// TraceMount is recorded after an instance's first render commits.
	TraceMount TraceKind = "mount"
	// TraceUpdate is recorded after a re-render commits.
	TraceUpdate TraceKind = "update"
	// TraceUnmount is recorded when the reconciler tears an instance down.
	TraceUnmount TraceKind = "unmount"
	// TraceEffect is recorded when a deferred effect body runs.
	TraceEffect TraceKind = "effect"
	// TraceCleanup is recorded when an effect cleanup runs.
	TraceCleanup TraceKind = "cleanup"
	// TraceDropped is recorded when a queued task targets a dead instance.
	TraceDropped TraceKind = "dropped"
)

// ValidTraceKinds defines the allowed trace kinds.
var ValidTraceKinds = map[TraceKind]bool{
	TraceMount:   true,
	TraceUpdate:  true,
	TraceUnmount: true,
	TraceEffect:  true,
	TraceCleanup: true,
	TraceDropped: true,
}

// TraceEvent is one entry of a root's lifecycle log.
type TraceEvent struct {
	Seq        int64     `json:"seq"`                 // Logical clock
	Session    string    `json:"session"`             // Root identity
	Kind       TraceKind `json:"kind"`
	InstanceID string    `json:"instance_id"`
	ParentID   string    `json:"parent_id,omitempty"`
	Component  string    `json:"component"`
	Slot       int       `json:"slot,omitempty"`       // Hook slot for effect/cleanup
	PropsHash  string    `json:"props_hash,omitempty"` // mount/update only
	Props      IRObject  `json:"props,omitempty"`      // mount/update only
}
