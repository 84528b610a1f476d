package input_test

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ja-he/proppanel/internal/action"
	"github.com/ja-he/proppanel/internal/input"
)

func TestKeyspecParse(t *testing.T) {

	t.Run("valid", func(t *testing.T) {
		expectValid := func(s input.Keyspec) []input.Key {
			keys, err := s.Parse()
			if err != nil {
				t.Error("unexpected error on valid spec:", err.Error())
			}
			if keys == nil {
				t.Error("unexpected nil keyspec on valid spec")
			}
			return keys
		}

		t.Run("empty", func(t *testing.T) {
			keys := expectValid("")
			if len(keys) != 0 {
				t.Error("expected empty seq of keys")
			}
		})

		t.Run("single", func(t *testing.T) {
			keys := expectValid("x")
			if len(keys) != 1 {
				t.Error("expected single key")
			}
			if (keys[0] != input.Key{Key: tcell.KeyRune, Ch: 'x'}) {
				t.Error("expected single key to be 'x'")
			}
		})

		t.Run("special", func(t *testing.T) {
			t.Run("<c-a>", func(t *testing.T) {
				keys := expectValid("<c-a>")
				if len(keys) != 1 {
					t.Error("expected single key")
				}
				if (keys[0] != input.Key{Key: tcell.KeyCtrlA}) {
					t.Error("expected single key to be <c-a>")
				}
			})
			t.Run("navigation", func(t *testing.T) {
				for spec, expected := range map[input.Keyspec]input.Key{
					"<up>":    {Key: tcell.KeyUp},
					"<down>":  {Key: tcell.KeyDown},
					"<tab>":   {Key: tcell.KeyTab},
					"<s-tab>": {Key: tcell.KeyBacktab},
					"<pgdn>":  {Key: tcell.KeyPgDn},
				} {
					keys := expectValid(spec)
					if len(keys) != 1 || keys[0] != expected {
						t.Errorf("expected '%s' to give %v, got %v", spec, expected, keys)
					}
				}
			})
			t.Run("<space>", func(t *testing.T) {
				keys := expectValid("<space>")
				if len(keys) != 1 {
					t.Error("expected single key")
				}
				if (keys[0] != input.Key{Key: tcell.KeyRune, Ch: ' '}) {
					t.Error("expected single key to be <space>")
				}
			})
		})

		t.Run("sequence", func(t *testing.T) {
			t.Run("characters", func(t *testing.T) {
				keys := expectValid("xyz")
				if len(keys) != 3 {
					t.Error("expected three keys")
				}
				if (keys[0] != input.Key{Key: tcell.KeyRune, Ch: 'x'}) && (keys[1] != input.Key{Key: tcell.KeyRune, Ch: 'y'}) && (keys[2] != input.Key{Key: tcell.KeyRune, Ch: 'z'}) {
					t.Error("expected sequence [x,y,z], not", keys)
				}
			})
			t.Run("with special", func(t *testing.T) {
				keys := expectValid("x<c-w>z")
				if len(keys) != 3 {
					t.Error("expected three keys")
				}
				if (keys[0] != input.Key{Key: tcell.KeyRune, Ch: 'x'}) && (keys[1] != input.Key{Key: tcell.KeyCtrlW}) && (keys[2] != input.Key{Key: tcell.KeyRune, Ch: 'z'}) {
					t.Error("expected sequence [x,<c-w>,z], not", keys)
				}
			})
		})
	})

	t.Run("invalid", func(t *testing.T) {
		expectInvalid := func(s input.Keyspec) error {
			keys, err := s.Parse()
			if err == nil {
				t.Error("unexpectedly no err on invalid spec")
			}
			if keys != nil {
				t.Error("unexpected key seq on invalid spec:", keys)
			}
			return err
		}

		t.Run("unopened special", func(t *testing.T) {
			expectInvalid("c-w>")
		})
		t.Run("unclosed special (EOL)", func(t *testing.T) {
			expectInvalid("<c-w")
		})
		t.Run("unclosed special (double open)", func(t *testing.T) {
			expectInvalid("<c-w<c-a>")
		})
		t.Run("wrong delimiter in special", func(t *testing.T) {
			expectInvalid("<c+a>")
		})
		t.Run("unknown name", func(t *testing.T) {
			expectInvalid("x<ctrl-a>")
		})
		t.Run("empty name", func(t *testing.T) {
			expectInvalid("<>")
		})
	})

}

func TestNewNode(t *testing.T) {
	n := input.NewNode()
	if n.Children == nil {
		t.Error("node.Children not initialized")
	}
	if len(n.Children) != 0 {
		t.Error("node.Children not empty")
	}
}

func TestNewLeaf(t *testing.T) {
	a := DummyAction{}
	l := input.NewLeaf(&a)
	if l.Action != &a {
		t.Error("action not assigned properly to leaf")
	}
	if !(l.Children == nil || len(l.Children) == 0) {
		t.Error("expected leaf to have nil children or to be empty")
	}
}

func TestChild(t *testing.T) {
	t.Run("node with no child gives no child", func(t *testing.T) {
		n := input.NewNode()
		child := n.Child(input.Key{Key: tcell.KeyRune, Ch: 'x'})
		if child != nil {
			t.Errorf("given non-nil child %#v for non-entered input", child)
		}
		if n.Action != nil {
			t.Error("expected new node to have nil action")
		}
	})
	t.Run("node with leaf child on x gives leaf for Child(x)", func(t *testing.T) {
		key := input.Key{Key: tcell.KeyRune, Ch: 'x'}
		action := DummyAction{}
		leaf := input.NewLeaf(&action)

		n := input.NewNode()
		n.Children[key] = leaf
		child := n.Child(key)
		if child == nil {
			t.Error("given nil child for mapped input")
		}
		if child != leaf {
			t.Errorf("not given expected leaf, but %#v", child)
		}
	})
}

func TestConstructInputTree(t *testing.T) {

	t.Run("empty map produces single-node tree", func(t *testing.T) {
		emptyTree, err := input.ConstructInputTree(make(map[input.Keyspec]action.Action))
		if err != nil {
			t.Error(err.Error())
		}
		validateNewlyCreatedTree(t, emptyTree)
		if !(emptyTree.Root.Children != nil && len(emptyTree.Root.Children) == 0) {
			t.Error("empty tree's root node should be the only one, but has children:", emptyTree.Root.Children)
		}
		if emptyTree.ProcessInput(input.Key{Key: tcell.KeyRune, Ch: 'x'}) {
			t.Error("empty tree claims to apply (non-added) input")
		}
	})

	t.Run("single input sequence", func(t *testing.T) {
		shouldGetSetToTrue := false
		tree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{"xyz": &DummyAction{F: func() { shouldGetSetToTrue = true }}})
		if err != nil {
			t.Error(err.Error())
		}
		validateNewlyCreatedTree(t, tree)
		if tree.ProcessInput(input.Key{}) {
			t.Error("tree processes non-added input")
		}
		if tree.CapturesInput() {
			t.Error("tree claims to capture input after processing non-added")
		}

		if !tree.ProcessInput(input.Key{Key: tcell.KeyRune, Ch: 'x'}) {
			t.Error("tree fails to process added input")
		}
		if !tree.CapturesInput() {
			t.Error("tree fails to capture input in the middle of a sequence")
		}
		if !tree.ProcessInput(input.Key{Key: tcell.KeyRune, Ch: 'y'}) {
			t.Error("tree fails to process added input")
		}
		if !tree.CapturesInput() {
			t.Error("tree fails to capture input in the middle of a sequence")
		}
		if !tree.ProcessInput(input.Key{Key: tcell.KeyRune, Ch: 'z'}) {
			t.Error("tree fails to process added input")
		}
		if !shouldGetSetToTrue {
			t.Error("action not applied")
		}
		if tree.CapturesInput() {
			t.Error("tree claims to capture input after complete sequence")
		}
	})

	t.Run("complex inputs", func(t *testing.T) {
		xyzTrueable := false
		ctrlaTrueable := false
		tree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{
			"xyz":   &DummyAction{F: func() { xyzTrueable = true }},
			"<c-a>": &DummyAction{F: func() { ctrlaTrueable = true }},
		})
		if err != nil {
			t.Error(err.Error())
		}
		validateNewlyCreatedTree(t, tree)
		if tree.ProcessInput(input.Key{}) {
			t.Error("tree processes non-added input")
		}
		if tree.CapturesInput() {
			t.Error("tree claims to capture input after processing non-added")
		}

		if !tree.ProcessInput(input.Key{Key: tcell.KeyRune, Ch: 'x'}) {
			t.Error("tree fails to process added input")
		}
		if !tree.CapturesInput() {
			t.Error("tree fails to capture input in the middle of a sequence")
		}
		if tree.ProcessInput(input.Key{}) {
			t.Error("tree processes invalid input in middle of sequence")
		}
		if !tree.ProcessInput(input.Key{Key: tcell.KeyCtrlA}) {
			t.Error("tree fails to process input <c-a>")
		}
		if !ctrlaTrueable {
			t.Error("action not applied")
		}
		if tree.CapturesInput() {
			t.Error("tree claims to capture input after sequence")
		}

		if !tree.ProcessInput(input.Key{Key: tcell.KeyRune, Ch: 'x'}) {
			t.Error("tree fails to process added input")
		}
		if !tree.CapturesInput() {
			t.Error("tree fails to capture input in the middle of a sequence")
		}
		if !tree.ProcessInput(input.Key{Key: tcell.KeyRune, Ch: 'y'}) {
			t.Error("tree fails to process added input")
		}
		if !tree.CapturesInput() {
			t.Error("tree fails to capture input in the middle of a sequence")
		}
		if !tree.ProcessInput(input.Key{Key: tcell.KeyRune, Ch: 'z'}) {
			t.Error("tree fails to process added input")
		}
		if !xyzTrueable {
			t.Error("action not applied")
		}
		if tree.CapturesInput() {
			t.Error("tree claims to capture input after complete sequence")
		}
	})

	t.Run("prefix conflicts error", func(t *testing.T) {
		for _, spec := range []map[input.Keyspec]action.Action{
			{"g": &DummyAction{}, "gg": &DummyAction{}},
			{"gg": &DummyAction{}, "g": &DummyAction{}},
			{"xy": &DummyAction{}, "x": &DummyAction{}, "z": &DummyAction{}},
		} {
			tree, err := input.ConstructInputTree(spec)
			if err == nil {
				t.Error("nil error despite ambiguous mapping", spec)
			}
			if tree != nil {
				t.Error("non-nil tree despite ambiguous mapping")
			}
		}
	})

	t.Run("empty keyspec errors", func(t *testing.T) {
		_, err := input.ConstructInputTree(map[input.Keyspec]action.Action{"": &DummyAction{S: "nothing"}})
		if err == nil {
			t.Error("nil error despite empty keyspec")
		}
	})

	t.Run("invalid keyspec errors", func(t *testing.T) {
		tree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{"<asdf": &DummyAction{}})
		if err == nil {
			t.Error("nil error despite invalid keyspec")
		}
		if tree != nil {
			t.Error("non-nil tree despite invalid keyspec")
		}
	})

}

func TestEmptyTree(t *testing.T) {
	tree := input.EmptyTree()
	validateNewlyCreatedTree(t, tree)
}

func TestHelp(t *testing.T) {
	t.Run("constructed tree", func(t *testing.T) {
		tree, err := input.ConstructInputTree(
			map[input.Keyspec]action.Action{
				"a":     &DummyAction{S: "A"},
				"bc":    &DummyAction{S: "BC"},
				"<c-r>": &DummyAction{S: "redo"},
			},
		)
		if err != nil {
			t.Fatal("unexpectedly tree construction failed while testing help")
		}
		help := tree.Help()
		if len(help) != 3 {
			t.Error("got help with unexpected amount of entries:", len(help))
		}
		for keys, expected := range map[input.Keyspec]string{"a": "A", "bc": "BC", "<c-r>": "redo"} {
			if actual := help[keys]; actual != expected {
				t.Errorf("expected help '%s' for '%s', got '%s'", expected, keys, actual)
			}
		}

		lines := help.Lines()
		if len(lines) != 3 || lines[0].Keys != "<c-r>" || lines[1].Keys != "a" || lines[2].Keys != "bc" {
			t.Error("help lines not ordered by keys:", lines)
		}
	})

	t.Run("empty tree", func(t *testing.T) {
		if help := input.EmptyTree().Help(); len(help) != 0 {
			t.Error("got non-empty help from empty tree")
		}
	})

	t.Run("hand-built tree", func(t *testing.T) {
		root := input.NewNode()
		middle := input.NewNode()
		root.Children[input.Key{Key: tcell.KeyRune, Ch: 'x'}] = input.NewLeaf(&DummyAction{S: "x action"})
		root.Children[input.Key{Key: tcell.KeyRune, Ch: 'y'}] = middle
		middle.Children[input.Key{Key: tcell.KeyEnter}] = input.NewLeaf(&DummyAction{S: "y enter action"})

		help := (&input.Tree{Root: root, Current: root}).Help()
		if len(help) != 2 || help["x"] != "x action" || help["y<cr>"] != "y enter action" {
			t.Error("help looks unexpected:", help)
		}
	})
}

func validateNewlyCreatedTree(t *testing.T, newlyCreated *input.Tree) {
	t.Helper()

	if newlyCreated.Root == nil || newlyCreated.Current == nil {
		t.Error("either root or current is nil on newly created tree:", newlyCreated.Root, ",", newlyCreated.Current)
	}
	if newlyCreated.Root != newlyCreated.Current {
		t.Error("root and current differ on newly created tree:", newlyCreated.Root, ",", newlyCreated.Current)
	}
	if newlyCreated.CapturesInput() {
		t.Error("newly created tree claims to capture input")
	}
}

// to avoid depending on 'action' functions
type DummyAction struct {
	F func()
	S string
}

func (d *DummyAction) Do()             { d.F() }
func (d *DummyAction) Undo()           {}
func (d *DummyAction) Undoable() bool  { return false }
func (d *DummyAction) Explain() string { return d.S }

func TestKeyString(t *testing.T) {
	for expected, k := range map[string]input.Key{
		"x":       {Key: tcell.KeyRune, Ch: 'x'},
		"<space>": {Key: tcell.KeyRune, Ch: ' '},
		"<c-a>":   {Key: tcell.KeyCtrlA},
		"<esc>":   {Key: tcell.KeyEscape},
		"<down>":  {Key: tcell.KeyDown},
		"<tab>":   {Key: tcell.KeyCtrlI},
		"<cr>":    {Key: tcell.KeyCtrlM},
		"<c-bs>":  {Key: tcell.KeyCtrlH},
	} {
		if actual := k.String(); actual != expected {
			t.Errorf("expected '%s', got '%s'", expected, actual)
		}
	}
}

func TestFormatKeysReversesParse(t *testing.T) {
	for _, spec := range []input.Keyspec{"", "dd", "<space>qw", "x<c-w>z", "<s-tab><pgdn>", "g<cr>"} {
		keys, err := spec.Parse()
		if err != nil {
			t.Fatalf("unexpected error parsing '%s': %s", spec, err.Error())
		}
		if actual := input.FormatKeys(keys...); actual != spec {
			t.Errorf("expected '%s' back, got '%s'", spec, actual)
		}
	}
}

func TestNamedKeyIgnoresCase(t *testing.T) {
	k, err := input.NamedKey("C-R")
	if err != nil {
		t.Fatal("unexpected error:", err.Error())
	}
	if (k != input.Key{Key: tcell.KeyCtrlR}) {
		t.Error("expected <c-r>, got", k)
	}
}

func TestAugmentWith(t *testing.T) {
	base := input.InputConfig{
		Panel:  map[input.Keyspec]input.Actionspec{"j": "next-control", "k": "prev-control"},
		Picker: map[input.Keyspec]input.Actionspec{"<cr>": "select"},
	}
	augment := input.InputConfig{
		Panel:        map[input.Keyspec]input.Actionspec{"k": "undo"},
		StringEditor: input.ModedSpec{Insert: map[input.Keyspec]input.Actionspec{"<esc>": "normal-mode"}},
	}
	result := base.AugmentWith(augment)

	if result.Panel["j"] != "next-control" {
		t.Error("base mapping lost:", result.Panel)
	}
	if result.Panel["k"] != "undo" {
		t.Error("augmenting mapping did not take precedence:", result.Panel)
	}
	if result.Picker["<cr>"] != "select" {
		t.Error("base picker mapping lost:", result.Picker)
	}
	if result.StringEditor.Insert["<esc>"] != "normal-mode" {
		t.Error("augmenting editor mapping lost:", result.StringEditor.Insert)
	}
	if base.Panel["k"] != "prev-control" {
		t.Error("base modified by augmenting")
	}
}

func TestResolve(t *testing.T) {
	actions := map[input.Actionspec]action.Action{
		"undo": &DummyAction{S: "undo"},
	}

	t.Run("known", func(t *testing.T) {
		resolved, err := input.Resolve(map[input.Keyspec]input.Actionspec{"u": "undo"}, actions)
		if err != nil {
			t.Fatal("unexpected error:", err.Error())
		}
		if resolved["u"] != actions["undo"] {
			t.Error("mapping not resolved to action")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := input.Resolve(map[input.Keyspec]input.Actionspec{"r": "redo"}, actions)
		var unknown *input.UnknownActionError
		if !errors.As(err, &unknown) {
			t.Fatal("expected unknown action error, got", err)
		}
		if unknown.Action != "redo" || unknown.Keys != "r" {
			t.Error("error names wrong mapping:", unknown.Error())
		}
	})
}
