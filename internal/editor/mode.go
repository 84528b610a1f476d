package editor

// Mode enumerates the possible modes of modal text editing.
type Mode int

const (
	// ModeNormal is the "normal mode" of the editor, i.E. key inputs are not
	// used for input directly, but for navigation and manipulation of the text.
	ModeNormal Mode = iota
	// ModeInsert is the "insert mode" of the editor, i.E. key inputs are used
	// for input directly.
	ModeInsert
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	default:
		return "?"
	}
}
