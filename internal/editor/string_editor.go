// Package editor implements the modal string editor used to change the value
// of text controls from the terminal.
package editor

import (
	"strconv"
)

// StringEditor edits a single string value.
// The cursor is a rune index; in normal mode it stays on a rune, in insert
// mode it may sit past the last one.
type StringEditor struct {
	name    string
	content []rune
	cursor  int
	mode    Mode

	commit func(string) error
	done   func()
	err    error
}

// New returns an editor for the given value in normal mode with the cursor
// at the end.
// commit is called on write; done is called when the editor is left.
func New(name, value string, commit func(string) error, done func()) *StringEditor {
	e := &StringEditor{
		name:    name,
		content: []rune(value),
		mode:    ModeNormal,
		commit:  commit,
		done:    done,
	}
	e.MoveCursorToEnd()
	return e
}

func (e *StringEditor) Name() string    { return e.name }
func (e *StringEditor) Content() string { return string(e.content) }
func (e *StringEditor) CursorPos() int  { return e.cursor }
func (e *StringEditor) Mode() Mode      { return e.mode }

// Err returns the error of the last failed write, if any.
func (e *StringEditor) Err() error { return e.err }

// SetMode switches the mode, keeping the cursor on a rune when leaving insert
// mode.
func (e *StringEditor) SetMode(m Mode) {
	e.mode = m
	if m == ModeNormal {
		e.clampNormal()
	}
}

// DeleteRune deletes the rune under the cursor.
func (e *StringEditor) DeleteRune() {
	if e.cursor < len(e.content) {
		e.content = append(e.content[:e.cursor:e.cursor], e.content[e.cursor+1:]...)
	}
	if e.mode == ModeNormal {
		e.clampNormal()
	}
}

// BackspaceRune deletes the rune before the cursor.
func (e *StringEditor) BackspaceRune() {
	if e.cursor > 0 {
		e.content = append(e.content[:e.cursor-1:e.cursor-1], e.content[e.cursor:]...)
		e.cursor--
	}
}

// BackspaceToBeginning deletes everything before the cursor.
func (e *StringEditor) BackspaceToBeginning() {
	e.content = append([]rune(nil), e.content[e.cursor:]...)
	e.cursor = 0
}

// Clear deletes everything.
func (e *StringEditor) Clear() {
	e.content = nil
	e.cursor = 0
}

func (e *StringEditor) MoveCursorToBeginning() {
	e.cursor = 0
}

// MoveCursorToEnd moves the cursor onto the last rune.
func (e *StringEditor) MoveCursorToEnd() {
	e.cursor = len(e.content) - 1
	if e.cursor < 0 {
		e.cursor = 0
	}
}

// MoveCursorPastEnd moves the cursor behind the last rune, for appending.
func (e *StringEditor) MoveCursorPastEnd() {
	e.cursor = len(e.content)
}

func (e *StringEditor) MoveCursorLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// MoveCursorRight moves right, past the end only in insert mode.
func (e *StringEditor) MoveCursorRight() {
	limit := len(e.content) - 1
	if e.mode == ModeInsert {
		limit = len(e.content)
	}
	if e.cursor < limit {
		e.cursor++
	}
}

// MoveCursorRightA moves right for appending, i.E. up to past the end.
func (e *StringEditor) MoveCursorRightA() {
	if e.cursor < len(e.content) {
		e.cursor++
	}
}

// MoveCursorNextWordBeginning moves to the beginning of the next word, or
// onto the last rune if there is none.
func (e *StringEditor) MoveCursorNextWordBeginning() {
	i := e.cursor
	for i < len(e.content) && e.content[i] != ' ' {
		i++
	}
	for i < len(e.content) && e.content[i] == ' ' {
		i++
	}
	if i < len(e.content) {
		e.cursor = i
	} else {
		e.MoveCursorToEnd()
	}
}

// MoveCursorPrevWordBeginning moves to the beginning of the current or
// previous word.
func (e *StringEditor) MoveCursorPrevWordBeginning() {
	i := e.cursor
	for i > 0 && e.content[i-1] == ' ' {
		i--
	}
	for i > 0 && e.content[i-1] != ' ' {
		i--
	}
	e.cursor = i
}

// AddRune inserts a printable rune at the cursor.
func (e *StringEditor) AddRune(newRune rune) {
	if !strconv.IsPrint(newRune) {
		return
	}
	e.content = append(e.content[:e.cursor], append([]rune{newRune}, e.content[e.cursor:]...)...)
	e.cursor++
}

// Write commits the current content, remembering a failure for display.
func (e *StringEditor) Write() error {
	e.err = e.commit(string(e.content))
	return e.err
}

// Quit leaves the editor without writing.
func (e *StringEditor) Quit() {
	if e.done != nil {
		e.done()
	}
}

// WriteAndQuit writes and leaves the editor if the write succeeded.
func (e *StringEditor) WriteAndQuit() {
	if e.Write() == nil {
		e.Quit()
	}
}

func (e *StringEditor) clampNormal() {
	if e.cursor > len(e.content)-1 {
		e.MoveCursorToEnd()
	}
}
