package host

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/roach88/hookrt/internal/engine"
)

// ContainerID is the id attribute of the container element.
const ContainerID = "root"

// Document is an html.Node tree with a container element that roots are
// rendered into.
type Document struct {
	doc       *html.Node
	container *html.Node
	listeners map[*html.Node]map[string][]Listener
}

var _ engine.HostAdapter = (*Document)(nil)

// New creates a document holding an empty <div id="root"> container.
func New() *Document {
	doc := &html.Node{Type: html.DocumentNode}
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "id", Val: ContainerID}},
	}
	doc.AppendChild(container)
	return &Document{
		doc:       doc,
		container: container,
		listeners: make(map[*html.Node]map[string][]Listener),
	}
}

// Container returns the container element.
func (d *Document) Container() *html.Node {
	return d.container
}

// CreateElement creates an element node. Attributes are applied in sorted
// order; "on<Event>" attributes register listeners for the lower-cased
// event name; className and htmlFor map to class and for; nil and false
// values are omitted and true renders as an empty attribute.
func (d *Document) CreateElement(tag string, attrs engine.Props) engine.HostNode {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := attrs[k]
		if event, ok := eventName(k); ok {
			if l := toListener(v); l != nil {
				d.addListener(n, event, l)
			}
			continue
		}
		val, ok := attrValue(v)
		if !ok {
			continue
		}
		n.Attr = append(n.Attr, html.Attribute{Key: attrName(k), Val: val})
	}
	return n
}

// CreateText creates a text node.
func (d *Document) CreateText(text string) engine.HostNode {
	return &html.Node{Type: html.TextNode, Data: text}
}

// AppendChild appends child to parent, detaching it first.
func (d *Document) AppendChild(parent, child engine.HostNode) {
	p, c := asNode(parent), asNode(child)
	detach(c)
	p.AppendChild(c)
}

// InsertBefore inserts child before ref, or appends when ref is nil.
func (d *Document) InsertBefore(parent, child, ref engine.HostNode) {
	p, c, r := asNode(parent), asNode(child), asNode(ref)
	detach(c)
	if r == nil || r.Parent != p {
		p.AppendChild(c)
		return
	}
	p.InsertBefore(c, r)
}

// RemoveChild detaches child if parent is its parent.
func (d *Document) RemoveChild(parent, child engine.HostNode) {
	p, c := asNode(parent), asNode(child)
	if c != nil && c.Parent == p {
		p.RemoveChild(c)
	}
}

// Parent returns the node's parent or nil.
func (d *Document) Parent(node engine.HostNode) engine.HostNode {
	n := asNode(node)
	if n == nil || n.Parent == nil {
		return nil
	}
	return n.Parent
}

// NextSibling returns the node's next sibling or nil.
func (d *Document) NextSibling(node engine.HostNode) engine.HostNode {
	n := asNode(node)
	if n == nil || n.NextSibling == nil {
		return nil
	}
	return n.NextSibling
}

// HTML renders n and its subtree.
func (d *Document) HTML(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return fmt.Sprintf("<!-- render error: %v -->", err)
	}
	return buf.String()
}

// InnerHTML renders n's children.
func (d *Document) InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return fmt.Sprintf("<!-- render error: %v -->", err)
		}
	}
	return buf.String()
}

// Body renders the container's contents.
func (d *Document) Body() string {
	return d.InnerHTML(d.container)
}

// Text returns the concatenated text content of n.
func (d *Document) Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return sb.String()
}

// Attr returns n's attribute value.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces n's attribute.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Attached reports whether n is inside the container.
func (d *Document) Attached(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == d.container {
			return true
		}
	}
	return false
}

func asNode(h engine.HostNode) *html.Node {
	n, _ := h.(*html.Node)
	return n
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// eventName maps "onClick" to "click".
func eventName(k string) (string, bool) {
	if len(k) < 3 || !strings.HasPrefix(k, "on") || !unicode.IsUpper(rune(k[2])) {
		return "", false
	}
	return strings.ToLower(k[2:]), true
}

func attrName(k string) string {
	switch k {
	case "className":
		return "class"
	case "htmlFor":
		return "for"
	default:
		return k
	}
}

func attrValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case bool:
		return "", x
	case string:
		return x, true
	default:
		return fmt.Sprint(v), true
	}
}
