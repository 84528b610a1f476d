package dom

// EventKind is the kind of a user interaction.
type EventKind string

// Interaction kinds the panel reacts to.
const (
	Input     EventKind = "input"
	Change    EventKind = "change"
	Click     EventKind = "click"
	Keypress  EventKind = "keypress"
	Keydown   EventKind = "keydown"
	Mousedown EventKind = "mousedown"
	Focus     EventKind = "focus"
	Blur      EventKind = "blur"
)

// EventKinds lists all kinds in a stable order.
var EventKinds = []EventKind{Input, Change, Click, Keypress, Keydown, Mousedown, Focus, Blur}

// Event is a user interaction on a target node.
type Event struct {
	Kind   EventKind
	Target *Node
	// Key is the key of keyboard events.
	Key string
}
