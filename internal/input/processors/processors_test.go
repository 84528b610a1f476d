package processors_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ja-he/proppanel/internal/action"
	"github.com/ja-he/proppanel/internal/input"
	"github.com/ja-he/proppanel/internal/input/processors"
)

func TestLayered(t *testing.T) {
	x := input.Key{Key: tcell.KeyRune, Ch: 'x'}
	y := input.Key{Key: tcell.KeyRune, Ch: 'y'}
	z := input.Key{Key: tcell.KeyRune, Ch: 'z'}

	t.Run("CapturesInput", func(t *testing.T) {
		base := dummyProcessor{captures: false}
		l := processors.NewLayered(&base)
		if l.CapturesInput() {
			t.Error("claims to capture input, initially")
		}
		base.captures = true
		if !l.CapturesInput() {
			t.Error("does not capture input although its base does")
		}
		l.Push("edit", &dummyProcessor{captures: false})
		if l.CapturesInput() {
			t.Error("captures input although its top layer does not")
		}
	})

	t.Run("top layer gets the keys", func(t *testing.T) {
		panelKeys := dummyProcessor{inputs: map[input.Key]bool{x: true}}
		editKeys := dummyProcessor{inputs: map[input.Key]bool{y: true}}
		pickKeys := dummyProcessor{inputs: map[input.Key]bool{z: true}}
		l := processors.NewLayered(&panelKeys)

		check := func(msg string, expected [3]bool) {
			t.Helper()
			actual := [3]bool{l.ProcessInput(x), l.ProcessInput(y), l.ProcessInput(z)}
			if actual != expected {
				t.Error(msg, "check failed:", expected, "!=", actual)
			}
		}

		check("base", [3]bool{true, false, false})
		if l.Depth() != 0 || l.Active() != "" {
			t.Error("layers present initially")
		}

		popEdit := l.Push("edit", &editKeys)
		check("edit", [3]bool{false, true, false})
		popPick := l.Push("pick", &pickKeys)
		check("pick", [3]bool{false, false, true})
		if l.Depth() != 2 || l.Active() != "pick" {
			t.Error("unexpected layers:", l.Depth(), l.Active())
		}

		popPick()
		check("edit again", [3]bool{false, true, false})
		popPick()
		check("popping twice does nothing", [3]bool{false, true, false})

		popPick = l.Push("pick", &pickKeys)
		popEdit()
		check("popping a lower layer removes those above it", [3]bool{true, false, false})
		if l.Depth() != 0 {
			t.Error("layers left after popping the lowest:", l.Depth())
		}
		popPick()

		popNewEdit := l.Push("edit", &editKeys)
		popEdit()
		check("a stale pop leaves a newer layer alone", [3]bool{false, true, false})
		popNewEdit()
		check("base again", [3]bool{true, false, false})
	})

	t.Run("Help", func(t *testing.T) {
		base := dummyProcessor{help: input.Help{"j": "next control"}}
		l := processors.NewLayered(&base)
		if help := l.Help(); len(help) != 1 || help["j"] != "next control" {
			t.Error("base help looks unexpected:", help)
		}

		pop := l.Push("pick", &dummyProcessor{help: input.Help{"<cr>": "select element"}})
		if help := l.Help(); len(help) != 1 || help["<cr>"] != "select element" {
			t.Error("help should be that of the top layer only:", help)
		}
		pop()
		if help := l.Help(); help["j"] != "next control" {
			t.Error("base help not back after pop:", help)
		}
	})
}

func TestTextInputProcessor(t *testing.T) {
	cA := input.Key{Key: tcell.KeyCtrlA}
	cB := input.Key{Key: tcell.KeyCtrlB}
	cY := input.Key{Key: tcell.KeyCtrlY}
	esc := input.Key{Key: tcell.KeyEscape}

	mustProcessor := func(mappings map[input.Keyspec]action.Action, callback func(rune)) *processors.TextInputProcessor {
		t.Helper()
		p, err := processors.NewTextInputProcessor(mappings, callback)
		if err != nil {
			t.Fatal("unexpected error constructing processor:", err.Error())
		}
		return p
	}
	x := input.Key{Key: tcell.KeyRune, Ch: 'x'}
	y := input.Key{Key: tcell.KeyRune, Ch: 'y'}
	z := input.Key{Key: tcell.KeyRune, Ch: 'z'}

	t.Run("ProcessInput", func(t *testing.T) {

		t.Run("runes", func(t *testing.T) {
			r := rune(0)
			callback := func(newRune rune) { r = newRune }
			p := mustProcessor(
				map[input.Keyspec]action.Action{
					"<c-y>": &dummyAction{action: func() { t.Error("the cY callback was called, which it should not have been") }},
				},
				callback,
			)

			p.ProcessInput(x)
			if r != 'x' {
				t.Error("rune was not set to x but is", r)
			}
			p.ProcessInput(y)
			if r != 'y' {
				t.Error("rune was not set to y but is", r)
			}
			p.ProcessInput(z)
			if r != 'z' {
				t.Error("rune was not set to z but is", r)
			}
		})

		t.Run("specials", func(t *testing.T) {
			cACalled := false
			cBCalled := false
			escCalled := false
			p := mustProcessor(
				map[input.Keyspec]action.Action{
					"<c-a>": &dummyAction{action: func() { cACalled = true }},
					"<c-b>": &dummyAction{action: func() { cBCalled = true }},
					"<esc>": &dummyAction{action: func() { escCalled = true }},
				},
				func(rune) { t.Error("rune callback called for special") },
			)

			if !p.ProcessInput(cA) || !cACalled {
				t.Error("action for <c-a> not done")
			}
			if !p.ProcessInput(cB) || !cBCalled {
				t.Error("action for <c-b> not done")
			}
			if !p.ProcessInput(esc) || !escCalled {
				t.Error("action for <esc> not done")
			}
			if p.ProcessInput(cY) {
				t.Error("claims to apply <c-y> with no such mapping")
			}
		})

		t.Run("mapped rune takes precedence", func(t *testing.T) {
			mapped := false
			p := mustProcessor(
				map[input.Keyspec]action.Action{"x": &dummyAction{action: func() { mapped = true }}},
				func(rune) { t.Error("rune callback called for mapped rune") },
			)
			if !p.ProcessInput(x) || !mapped {
				t.Error("mapping for x not done")
			}
		})

	})

	t.Run("multi-key keyspec errors", func(t *testing.T) {
		_, err := processors.NewTextInputProcessor(map[input.Keyspec]action.Action{"dd": &dummyAction{}}, func(rune) {})
		if err == nil {
			t.Error("no error for multi-key keyspec")
		}
	})

	t.Run("CapturesInput", func(t *testing.T) {
		p := mustProcessor(map[input.Keyspec]action.Action{}, func(rune) {})
		if !p.CapturesInput() {
			t.Error("text input processor does not unconditionally capture input")
		}
	})

	t.Run("Help", func(t *testing.T) {
		p := mustProcessor(
			map[input.Keyspec]action.Action{
				"<c-a>": &dummyAction{explanation: "Aaa"},
				"<c-b>": &dummyAction{explanation: "Bbb"},
			},
			func(rune) {},
		)
		help := p.Help()
		if !(len(help) == 2 && help[input.FormatKeys(cA)] == "Aaa" && help["<c-b>"] == "Bbb") {
			t.Error("help looks unexpected:", help)
		}

		p = mustProcessor(
			map[input.Keyspec]action.Action{},
			func(rune) {},
		)
		if len(p.Help()) != 0 {
			t.Error("help on empty not empty")
		}
	})

}

type dummyProcessor struct {
	captures bool
	inputs   map[input.Key]bool
	help     input.Help
}

func (d *dummyProcessor) CapturesInput() bool           { return d.captures }
func (d *dummyProcessor) ProcessInput(k input.Key) bool { return d.inputs[k] }
func (d *dummyProcessor) Help() input.Help              { return d.help }

// dummy action for testing
type dummyAction struct {
	action      func()
	explanation string
}

func (d *dummyAction) Do()             { d.action() }
func (d *dummyAction) Undo()           {}
func (d *dummyAction) Undoable() bool  { return false }
func (d *dummyAction) Explain() string { return d.explanation }
