// Package action holds the actions key mappings resolve to.
package action

// Action is something a key sequence can trigger.
type Action interface {
	Do()

	Undo()
	Undoable() bool

	// Explain returns a short description for help output.
	Explain() string
}
