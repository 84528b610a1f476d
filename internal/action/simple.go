package action

// Simple implements the Action interface.
// It models a simple, non-undoable action as a func() which is called on Do.
type Simple struct {
	action  func()
	explain func() string
}

// Do performs this simple action.
func (a *Simple) Do() {
	a.action()
}

// Undoable always returns false.
func (a *Simple) Undoable() bool { return false }

// Undo does nothing.
func (a *Simple) Undo() {}

// Explain returns the explanation for this simple action's Do member.
func (a *Simple) Explain() string {
	return a.explain()
}

// NewSimple returns a pointer to a new simple action, which stores the given
// action function and the given explainer to use when prompted with Do or
// Explain respectively.
func NewSimple(explainer func() string, action func()) *Simple {
	return &Simple{
		action:  action,
		explain: explainer,
	}
}

// Fallible is a non-undoable action whose function can fail.
// Errors are handed to its sink instead of being returned, as keys have
// nobody to return them to.
type Fallible struct {
	action  func() error
	sink    func(error)
	explain string
}

// NewFallible returns a new fallible action reporting errors to sink.
// A nil sink drops errors.
func NewFallible(explanation string, action func() error, sink func(error)) *Fallible {
	return &Fallible{
		action:  action,
		sink:    sink,
		explain: explanation,
	}
}

// Do performs the action, passing a non-nil error to the sink.
func (a *Fallible) Do() {
	if err := a.action(); err != nil && a.sink != nil {
		a.sink(err)
	}
}

func (a *Fallible) Undoable() bool  { return false }
func (a *Fallible) Undo()           {}
func (a *Fallible) Explain() string { return a.explain }
