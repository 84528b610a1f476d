package editor

import (
	"fmt"

	"github.com/ja-he/proppanel/internal/action"
	"github.com/ja-he/proppanel/internal/input"
	"github.com/ja-he/proppanel/internal/input/processors"
)

func simple(explanation string, f func()) action.Action {
	return action.NewSimple(func() string { return explanation }, f)
}

// NormalActions returns the normal mode actions by their configuration names.
func (e *StringEditor) NormalActions() map[input.Actionspec]action.Action {
	return map[input.Actionspec]action.Action{
		"move-cursor-left":         simple("move cursor left", e.MoveCursorLeft),
		"move-cursor-right":        simple("move cursor right", e.MoveCursorRight),
		"move-cursor-to-beginning": simple("move cursor to beginning", e.MoveCursorToBeginning),
		"move-cursor-to-end":       simple("move cursor to end", e.MoveCursorToEnd),
		"move-cursor-to-next-word": simple("move cursor to next word", e.MoveCursorNextWordBeginning),
		"move-cursor-to-prev-word": simple("move cursor to previous word", e.MoveCursorPrevWordBeginning),
		"delete-char":              simple("delete character", e.DeleteRune),
		"delete-all":               simple("delete everything", e.Clear),
		"swap-mode-insert":         simple("insert", func() { e.SetMode(ModeInsert) }),
		"append": simple("append after cursor", func() {
			e.SetMode(ModeInsert)
			e.MoveCursorRightA()
		}),
		"append-end": simple("append at end", func() {
			e.SetMode(ModeInsert)
			e.MoveCursorPastEnd()
		}),
		"quit":           simple("quit without writing", e.Quit),
		"write-and-quit": simple("write and quit", e.WriteAndQuit),
	}
}

// InsertActions returns the insert mode actions by their configuration names.
func (e *StringEditor) InsertActions() map[input.Actionspec]action.Action {
	return map[input.Actionspec]action.Action{
		"move-cursor-left":       simple("move cursor left", e.MoveCursorLeft),
		"move-cursor-right":      simple("move cursor right", e.MoveCursorRight),
		"backspace":              simple("delete character before cursor", e.BackspaceRune),
		"delete-char":            simple("delete character", e.DeleteRune),
		"backspace-to-beginning": simple("delete to beginning", e.BackspaceToBeginning),
		"swap-mode-normal":       simple("normal mode", func() { e.SetMode(ModeNormal) }),
		"write-and-quit":         simple("write and quit", e.WriteAndQuit),
	}
}

// Processor processes keys for a StringEditor, by a key tree in normal mode
// and by text input in insert mode.
type Processor struct {
	editor *StringEditor
	normal *input.Tree
	insert *processors.TextInputProcessor
}

// NewProcessor resolves the configured mappings against the editor's
// actions.
func NewProcessor(e *StringEditor, spec input.ModedSpec) (*Processor, error) {
	normalMappings, err := input.Resolve(spec.Normal, e.NormalActions())
	if err != nil {
		return nil, fmt.Errorf("normal mode mappings: %w", err)
	}
	normal, err := input.ConstructInputTree(normalMappings)
	if err != nil {
		return nil, fmt.Errorf("normal mode mappings: %w", err)
	}
	insertMappings, err := input.Resolve(spec.Insert, e.InsertActions())
	if err != nil {
		return nil, fmt.Errorf("insert mode mappings: %w", err)
	}
	insert, err := processors.NewTextInputProcessor(insertMappings, e.AddRune)
	if err != nil {
		return nil, fmt.Errorf("insert mode mappings: %w", err)
	}
	return &Processor{editor: e, normal: normal, insert: insert}, nil
}

func (p *Processor) current() input.Processor {
	if p.editor.Mode() == ModeInsert {
		return p.insert
	}
	return p.normal
}

// CapturesInput always returns true, the editor owns the keyboard while open.
func (p *Processor) CapturesInput() bool { return true }

func (p *Processor) ProcessInput(k input.Key) bool { return p.current().ProcessInput(k) }

// Help explains the keys of the current mode.
func (p *Processor) Help() input.Help { return p.current().Help() }
