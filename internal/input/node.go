package input

import (
	"github.com/ja-he/proppanel/internal/action"
)

// Node is a node in a Tree.
// It has either child nodes or an action, never both.
type Node struct {
	Children map[Key]*Node
	Action   action.Action
}

// Child returns the child node for the given Key, nil if there is none.
func (n *Node) Child(k Key) *Node {
	return n.Children[k]
}

// IsLeaf returns whether the node carries an action.
func (n *Node) IsLeaf() bool { return n.Action != nil }

// NewNode returns a pointer to a new empty node Node with initialized children.
//
// NOTE: to construct a leaf with an action, prefer NewLeaf.
func NewNode() *Node {
	return &Node{
		Children: make(map[Key]*Node),
	}
}

// NewLeaf returns a pointer to a new action leaf Node without children.
func NewLeaf(a action.Action) *Node {
	return &Node{
		Action: a,
	}
}
