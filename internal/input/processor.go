package input

import (
	"sort"
)

// Processor handles the keys of one input context of the terminal panel: the
// panel's own bindings, the string editor or the element picker.
type Processor interface {
	// ProcessInput handles the key and returns whether anything was bound to
	// it.
	ProcessInput(key Key) bool

	// CapturesInput returns whether the processor wants every key, e.g.
	// because it holds part of a key sequence or because text is being typed.
	CapturesInput() bool

	// Help explains the key sequences the processor currently reacts to.
	Help() Help
}

// Help maps key sequences to explanations of what they do.
type Help map[Keyspec]string

// HelpLine is one explained key sequence.
type HelpLine struct {
	Keys        Keyspec
	Explanation string
}

// Lines returns the help ordered by key sequence.
func (h Help) Lines() []HelpLine {
	lines := make([]HelpLine, 0, len(h))
	for keys, explanation := range h {
		lines = append(lines, HelpLine{Keys: keys, Explanation: explanation})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Keys < lines[j].Keys })
	return lines
}

// Help returns the help for all sequences of the tree.
func (t *Tree) Help() Help {
	help := Help{}
	t.Root.collectHelp(nil, help)
	return help
}

func (n *Node) collectHelp(prefix []Key, help Help) {
	if n.Action != nil {
		help[FormatKeys(prefix...)] = n.Action.Explain()
		return
	}
	for k, child := range n.Children {
		child.collectHelp(append(append([]Key{}, prefix...), k), help)
	}
}
