package processors

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ja-he/proppanel/internal/action"
	"github.com/ja-he/proppanel/internal/input"
)

// TextInputProcessor is an input.Processor specifically for text input.
// It can have a number of defined mappings for single keys (e.g. ESC for a
// callback to remove this processor as an overlay).
// Any unmapped runes it is asked to process are given to its callback
// function for runes, which could, e.g., insert the rune into a field value.
type TextInputProcessor struct {
	mappings map[input.Key]action.Action

	runeCallback func(r rune)
}

// ProcessInput attempts to process the provided input.
// Mappings take precedence over the rune callback.
func (p *TextInputProcessor) ProcessInput(key input.Key) bool {
	if a, ok := p.mappings[key]; ok {
		a.Do()
		return true
	}
	if key.Key == tcell.KeyRune {
		p.runeCallback(key.Ch)
		return true
	}
	return false
}

// CapturesInput always returns true; while text is entered, no other
// processor should see the keys.
func (p *TextInputProcessor) CapturesInput() bool {
	return true
}

// Help explains the mapped keys.
func (p *TextInputProcessor) Help() input.Help {
	result := input.Help{}
	for k, a := range p.mappings {
		result[input.FormatKeys(k)] = a.Explain()
	}
	return result
}

// NewTextInputProcessor returns a pointer to a new TextInputProcessor.
// Every keyspec has to consist of exactly one key.
func NewTextInputProcessor(
	mappings map[input.Keyspec]action.Action,
	runeCallback func(r rune),
) (*TextInputProcessor, error) {
	keyMappings := map[input.Key]action.Action{}
	for keyspec, a := range mappings {
		keys, err := keyspec.Parse()
		if err != nil {
			return nil, fmt.Errorf("could not convert '%s' to keys (%w)", keyspec, err)
		}
		if len(keys) != 1 {
			return nil, fmt.Errorf("keyspec '%s' for text processor has not exactly one key (but %d)", keyspec, len(keys))
		}
		keyMappings[keys[0]] = a
	}
	return &TextInputProcessor{
		mappings:     keyMappings,
		runeCallback: runeCallback,
	}, nil
}
