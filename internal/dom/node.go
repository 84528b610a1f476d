// Package dom is a small in-memory node tree the properties panel renders
// into and reads interaction state from.
//
// Nodes carry attributes, classes and, for form controls, their live value
// and checked state. Markup is parsed with golang.org/x/net/html.
package dom

import (
	"sort"
	"strings"
)

// Node is an element or text node.
type Node struct {
	Tag  string
	Text string

	attrs    map[string]string
	classes  []string
	parent   *Node
	children []*Node

	// Value is the live value of a form control.
	Value string
	// Checked is the live checked state of a checkbox or radio control.
	Checked bool
}

// NewElement returns a detached element node.
func NewElement(tag string) *Node {
	return &Node{Tag: strings.ToLower(tag), attrs: map[string]string{}}
}

// NewText returns a detached text node.
func NewText(text string) *Node {
	return &Node{Text: text}
}

// IsText returns whether n is a text node.
func (n *Node) IsText() bool { return n.Tag == "" }

// Attr returns the attribute value and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n.attrs == nil {
		return "", false
	}
	v, ok := n.attrs[name]
	return v, ok
}

// GetAttr returns the attribute value, "" if absent.
func (n *Node) GetAttr(name string) string {
	v, _ := n.Attr(name)
	return v
}

// HasAttr returns whether the attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttr sets an attribute. "class" is routed to the class list.
func (n *Node) SetAttr(name, value string) {
	if name == "class" {
		n.classes = strings.Fields(value)
		return
	}
	if n.attrs == nil {
		n.attrs = map[string]string{}
	}
	n.attrs[name] = value
}

// RemoveAttr removes an attribute.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, name)
}

// AttrNames returns the attribute names in sorted order.
func (n *Node) AttrNames() []string {
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// HasClass returns whether the class is set.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds the class unless present.
func (n *Node) AddClass(class string) {
	if !n.HasClass(class) {
		n.classes = append(n.classes, class)
	}
}

// RemoveClass removes the class if present.
func (n *Node) RemoveClass(class string) {
	for i, c := range n.classes {
		if c == class {
			n.classes = append(n.classes[:i], n.classes[i+1:]...)
			return
		}
	}
}

// ToggleClass adds (on) or removes (!on) the class.
func (n *Node) ToggleClass(class string, on bool) {
	if on {
		n.AddClass(class)
	} else {
		n.RemoveClass(class)
	}
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	return append([]string(nil), n.classes...)
}

// Parent returns the parent node, nil if detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// AppendChild moves child to the end of n's children.
func (n *Node) AppendChild(child *Node) {
	child.Remove()
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches n from its parent. It is a no-op for detached nodes.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// RemoveChildren detaches all children.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Contains returns whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Root returns the top-most ancestor of n.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Closest returns n or its nearest ancestor matching pred, nil if none does.
func (n *Node) Closest(pred func(*Node) bool) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if pred(cur) {
			return cur
		}
	}
	return nil
}

// Walk calls fn for n and all its descendants in document order, skipping the
// subtree of a node for which fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// QueryAll returns all descendants of n (excluding n) matching pred.
func (n *Node) QueryAll(pred func(*Node) bool) []*Node {
	var result []*Node
	for _, c := range n.children {
		c.Walk(func(d *Node) bool {
			if pred(d) {
				result = append(result, d)
			}
			return true
		})
	}
	return result
}

// Query returns the first descendant matching pred, nil if none does.
func (n *Node) Query(pred func(*Node) bool) *Node {
	all := n.QueryAll(pred)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// WithAttr matches element nodes carrying the attribute.
func WithAttr(name string) func(*Node) bool {
	return func(n *Node) bool { return !n.IsText() && n.HasAttr(name) }
}

// WithAttrValue matches element nodes whose attribute has the given value.
func WithAttrValue(name, value string) func(*Node) bool {
	return func(n *Node) bool {
		v, ok := n.Attr(name)
		return ok && v == value
	}
}

// TextContent returns the concatenated text of n's subtree.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(d *Node) bool {
		if d.IsText() {
			sb.WriteString(d.Text)
		}
		return true
	})
	return sb.String()
}

// SetText replaces the children of n by a single text node.
func (n *Node) SetText(text string) {
	n.RemoveChildren()
	if text != "" {
		n.AppendChild(NewText(text))
	}
}
