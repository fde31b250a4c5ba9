package engine

// HookKind identifies the hook that owns a slot.
type HookKind int

const (
	HookState HookKind = iota + 1
	HookReducer
	HookRef
	HookEffect
	HookCallback
	HookMemo
	HookMemoized
)

// String returns the hook's name.
func (k HookKind) String() string {
	switch k {
	case HookState:
		return "UseState"
	case HookReducer:
		return "UseReducer"
	case HookRef:
		return "UseRef"
	case HookEffect:
		return "UseEffect"
	case HookCallback:
		return "UseCallback"
	case HookMemo:
		return "UseMemo"
	case HookMemoized:
		return "Memo"
	default:
		return "unknown"
	}
}

// hookRecord is one hook slot.
//
// Field use by kind:
//
//	State, Reducer: value = current state, aux = stable setter/dispatch,
//	                fn = latest reducer (Reducer only)
//	Ref:            value = *Ref[T]
//	Effect:         fn = latest body, deps, cleanup, gen
//	Callback, Memo: value = cached result, deps
//	Memoized:       value = cached props, aux = cached element
type hookRecord struct {
	kind    HookKind
	value   any
	aux     any
	fn      any
	deps    []any
	cleanup func()
	gen     uint64 // bumped per scheduled effect; stale effect tasks compare against it
	created bool   // deps not yet compared
}

// HookStore maps each live instance to its ordered hook records.
//
// An instance has an entry from its first render until it is unmounted.
// The store is owned by a Root; nothing else mutates it.
type HookStore struct {
	records map[InstanceID][]*hookRecord
}

// NewHookStore creates an empty store.
func NewHookStore() *HookStore {
	return &HookStore{records: make(map[InstanceID][]*hookRecord)}
}

// Len returns the number of instances with an entry.
func (s *HookStore) Len() int {
	return len(s.records)
}

// Has reports whether id has an entry.
func (s *HookStore) Has(id InstanceID) bool {
	_, ok := s.records[id]
	return ok
}

// Slots returns the number of hook records held for id.
func (s *HookStore) Slots(id InstanceID) int {
	return len(s.records[id])
}

// Kinds returns the hook kinds of id's records in slot order.
func (s *HookStore) Kinds(id InstanceID) []HookKind {
	recs := s.records[id]
	out := make([]HookKind, len(recs))
	for i, r := range recs {
		out[i] = r.kind
	}
	return out
}

// IDs returns the instances that hold an entry.
func (s *HookStore) IDs() []InstanceID {
	out := make([]InstanceID, 0, len(s.records))
	for id := range s.records {
		out = append(out, id)
	}
	return out
}

func (s *HookStore) ensure(id InstanceID) {
	if _, ok := s.records[id]; !ok {
		s.records[id] = []*hookRecord{}
	}
}

func (s *HookStore) slot(id InstanceID, i int) (*hookRecord, bool) {
	recs := s.records[id]
	if i < 0 || i >= len(recs) {
		return nil, false
	}
	return recs[i], true
}

func (s *HookStore) append(id InstanceID, rec *hookRecord) {
	s.records[id] = append(s.records[id], rec)
}

// delete removes id's entry and returns its records for cleanup.
func (s *HookStore) delete(id InstanceID) []*hookRecord {
	recs := s.records[id]
	delete(s.records, id)
	return recs
}

func (s *HookStore) clear() {
	s.records = make(map[InstanceID][]*hookRecord)
}
