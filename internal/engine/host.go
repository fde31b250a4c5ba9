package engine

// HostNode is an opaque node of the host tree. The runtime only stores
// host nodes and hands them back to the HostAdapter that created them.
type HostNode interface{}

// HostAdapter creates and arranges host nodes.
//
// The runtime never inspects node contents. Attribute semantics (class
// names, event listeners, boolean attributes) belong to the adapter.
//
// Implementations must return an untyped nil from Parent and NextSibling
// when there is no such node.
type HostAdapter interface {
	// CreateElement creates a host element. attrs excludes the key and ref
	// props; "on*" entries are event handlers.
	CreateElement(tag string, attrs Props) HostNode

	// CreateText creates a text node.
	CreateText(text string) HostNode

	// AppendChild appends child to parent, detaching it from any previous
	// parent first.
	AppendChild(parent, child HostNode)

	// InsertBefore inserts child before ref. A nil ref appends.
	InsertBefore(parent, child, ref HostNode)

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child HostNode)

	// Parent returns the node's parent, or nil.
	Parent(node HostNode) HostNode

	// NextSibling returns the node's next sibling, or nil.
	NextSibling(node HostNode) HostNode
}
