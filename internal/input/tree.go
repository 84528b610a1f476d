package input

import (
	"fmt"
	"sort"

	"github.com/ja-he/proppanel/internal/action"
)

// Tree represents an input tree, which can contain various input sequences
// that terminate in an action.
//
// Example:
//
//	tree:                       mapping:
//
//	x
//	+-y
//	| +-z   -> action1          "xyz" -> action1
//	+-z     -> action2          "xz"  -> action2
//	z       -> action3          "z"   -> action3
type Tree struct {
	Root    *Node
	Current *Node
}

// ProcessInput attempts to process the provided input.
// Returns whether the provided input "applied", i.E. the processor performed
// an action based on the input or advanced in a sequence.
func (t *Tree) ProcessInput(k Key) (applied bool) {
	next := t.Current.Child(k)
	switch {
	case next == nil:
		t.Current = t.Root
		return false
	case next.IsLeaf():
		t.Current = t.Root
		next.Action.Do()
		return true
	default:
		t.Current = next
		return true
	}
}

// CapturesInput returns whether the tree is in the middle of a sequence.
func (t *Tree) CapturesInput() bool {
	return t.Current != t.Root
}

// ConstructInputTree constructs a Tree for the given mappings of input
// sequence strings to actions.
// A sequence that is a prefix of another one is ambiguous and an error.
func ConstructInputTree(spec map[Keyspec]action.Action) (*Tree, error) {
	root := NewNode()

	// sorted so that errors are deterministic
	specs := make([]Keyspec, 0, len(spec))
	for mapping := range spec {
		specs = append(specs, mapping)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i] < specs[j] })

	for _, mapping := range specs {
		sequence, err := mapping.Parse()
		if err != nil {
			return nil, fmt.Errorf("error converting config keyspec '%s' (%w)", mapping, err)
		}
		if len(sequence) == 0 {
			return nil, fmt.Errorf("empty keyspec mapped to '%s'", spec[mapping].Explain())
		}

		current := root
		for i, key := range sequence {
			if current.IsLeaf() {
				return nil, fmt.Errorf("keyspec '%s' extends a mapped sequence", mapping)
			}
			next, ok := current.Children[key]
			last := i == len(sequence)-1
			switch {
			case !ok && last:
				next = NewLeaf(spec[mapping])
			case !ok:
				next = NewNode()
			case last:
				return nil, fmt.Errorf("keyspec '%s' is a prefix of or equal to another mapped sequence", mapping)
			}
			current.Children[key] = next
			current = next
		}
	}

	return &Tree{
		Root:    root,
		Current: root,
	}, nil
}

// EmptyTree returns a pointer to an empty tree.
func EmptyTree() *Tree {
	root := NewNode()
	return &Tree{
		Root:    root,
		Current: root,
	}
}
