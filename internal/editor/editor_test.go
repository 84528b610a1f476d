package editor_test

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/proppanel/internal/editor"
	"github.com/ja-he/proppanel/internal/input"
)

func newEditor(value string) (*editor.StringEditor, *string, *bool) {
	written := new(string)
	done := new(bool)
	e := editor.New("name", value, func(v string) error { *written = v; return nil }, func() { *done = true })
	return e, written, done
}

func TestCursorMovement(t *testing.T) {
	e, _, _ := newEditor("hello big world")
	assert.Equal(t, 14, e.CursorPos(), "cursor starts on last rune")
	assert.Equal(t, editor.ModeNormal, e.Mode())

	e.MoveCursorRight()
	assert.Equal(t, 14, e.CursorPos(), "normal mode does not move past end")

	e.MoveCursorToBeginning()
	e.MoveCursorNextWordBeginning()
	assert.Equal(t, 6, e.CursorPos())
	e.MoveCursorNextWordBeginning()
	assert.Equal(t, 10, e.CursorPos())
	e.MoveCursorNextWordBeginning()
	assert.Equal(t, 14, e.CursorPos(), "no next word goes to end")

	e.MoveCursorPrevWordBeginning()
	assert.Equal(t, 10, e.CursorPos())
	e.MoveCursorPrevWordBeginning()
	assert.Equal(t, 6, e.CursorPos())

	e.MoveCursorLeft()
	assert.Equal(t, 5, e.CursorPos())
}

func TestEditing(t *testing.T) {
	t.Run("insert", func(t *testing.T) {
		e, _, _ := newEditor("ac")
		e.MoveCursorToBeginning()
		e.MoveCursorRight()
		e.SetMode(editor.ModeInsert)
		e.AddRune('b')
		assert.Equal(t, "abc", e.Content())
		assert.Equal(t, 2, e.CursorPos())

		e.MoveCursorPastEnd()
		e.AddRune('d')
		e.AddRune('\x07')
		assert.Equal(t, "abcd", e.Content(), "non-printable rune ignored")
	})

	t.Run("delete and backspace", func(t *testing.T) {
		e, _, _ := newEditor("abcd")
		e.MoveCursorToBeginning()
		e.DeleteRune()
		assert.Equal(t, "bcd", e.Content())

		e.MoveCursorToEnd()
		e.DeleteRune()
		assert.Equal(t, "bc", e.Content())
		assert.Equal(t, 1, e.CursorPos(), "cursor stays on a rune")

		e.BackspaceRune()
		assert.Equal(t, "c", e.Content())
		assert.Equal(t, 0, e.CursorPos())
	})

	t.Run("backspace to beginning", func(t *testing.T) {
		e, _, _ := newEditor("Task_1")
		e.SetMode(editor.ModeInsert)
		e.MoveCursorPastEnd()
		e.MoveCursorLeft()
		e.BackspaceToBeginning()
		assert.Equal(t, "1", e.Content())
	})

	t.Run("leaving insert mode clamps cursor", func(t *testing.T) {
		e, _, _ := newEditor("ab")
		e.SetMode(editor.ModeInsert)
		e.MoveCursorPastEnd()
		assert.Equal(t, 2, e.CursorPos())
		e.SetMode(editor.ModeNormal)
		assert.Equal(t, 1, e.CursorPos())
	})

	t.Run("clear", func(t *testing.T) {
		e, _, _ := newEditor("abc")
		e.Clear()
		assert.Equal(t, "", e.Content())
		assert.Equal(t, 0, e.CursorPos())
	})
}

func TestWrite(t *testing.T) {
	t.Run("success quits", func(t *testing.T) {
		e, written, done := newEditor("a")
		e.WriteAndQuit()
		assert.Equal(t, "a", *written)
		assert.True(t, *done)
		assert.NoError(t, e.Err())
	})

	t.Run("failure stays open", func(t *testing.T) {
		failure := errors.New("ID must be unique.")
		done := false
		e := editor.New("id", "Task_2", func(string) error { return failure }, func() { done = true })
		e.WriteAndQuit()
		assert.False(t, done)
		assert.ErrorIs(t, e.Err(), failure)
	})

	t.Run("quit does not write", func(t *testing.T) {
		e, written, done := newEditor("a")
		e.Quit()
		assert.Equal(t, "", *written)
		assert.True(t, *done)
	})
}

func TestProcessor(t *testing.T) {
	spec := input.ModedSpec{
		Normal: map[input.Keyspec]input.Actionspec{
			"A":     "append-end",
			"dd":    "delete-all",
			"<cr>":  "write-and-quit",
			"<esc>": "quit",
		},
		Insert: map[input.Keyspec]input.Actionspec{
			"<bs>":  "backspace",
			"<esc>": "swap-mode-normal",
		},
	}
	e, written, done := newEditor("Task_1")
	p, err := editor.NewProcessor(e, spec)
	require.NoError(t, err)

	r := func(c rune) input.Key { return input.Key{Key: tcell.KeyRune, Ch: c} }

	assert.True(t, p.CapturesInput())
	assert.True(t, p.ProcessInput(r('A')))
	assert.Equal(t, editor.ModeInsert, e.Mode())
	for _, c := range "0x" {
		p.ProcessInput(r(c))
	}
	assert.True(t, p.ProcessInput(input.Key{Key: tcell.KeyBackspace2}))
	assert.Equal(t, "Task_10", e.Content())

	assert.True(t, p.ProcessInput(input.Key{Key: tcell.KeyEscape}))
	assert.Equal(t, editor.ModeNormal, e.Mode())
	assert.Contains(t, p.Help(), input.Keyspec("dd"))

	assert.True(t, p.ProcessInput(input.Key{Key: tcell.KeyEnter}))
	assert.Equal(t, "Task_10", *written)
	assert.True(t, *done)

	t.Run("unknown action", func(t *testing.T) {
		_, err := editor.NewProcessor(e, input.ModedSpec{Normal: map[input.Keyspec]input.Actionspec{"q": "no-such-action"}})
		var unknown *input.UnknownActionError
		assert.ErrorAs(t, err, &unknown)
	})
}
