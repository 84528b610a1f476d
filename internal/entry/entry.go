// Package entry defines the descriptors entry providers hand to the
// properties panel: entries, the groups and tabs organizing them, and the
// change-sets entries produce.
package entry

import (
	"errors"
	"fmt"

	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/model"
)

var (
	// ErrMissingID is returned for descriptors without an id.
	ErrMissingID = errors.New("descriptor has no id")
	// ErrDuplicateID is returned for sibling descriptors sharing an id.
	ErrDuplicateID = errors.New("duplicate descriptor id")
)

// Values maps control names to values.
// Text controls contribute strings, toggles booleans (or their explicit
// value), cleared controls nil.
type Values map[string]any

// String returns the value for name as a string, "" if absent.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Bool returns the value for name as a bool, false if absent.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Errors maps control names to validation messages.
type Errors map[string]string

// GetFunc reads the current values of an entry from the model.
// It must not modify anything.
type GetFunc func(el *model.Element, region *dom.Node) Values

// SetFunc computes the change-set for the given values.
// It must not modify anything; the panel dispatches the returned change-set.
// A nil change-set means there is nothing to do.
type SetFunc func(el *model.Element, values Values, region *dom.Node) (ChangeSet, error)

// ValidateFunc validates values; an empty result means valid.
type ValidateFunc func(el *model.Element, values Values) Errors

// ShowFunc decides whether a data-show region is visible.
type ShowFunc func(el *model.Element, region *dom.Node, show *dom.Node) bool

// ActionFunc handles an interaction on a control. Returning true signals that
// state changed and the entry's values should be validated and, unless the
// interaction is an input event, committed.
type ActionFunc func(el *model.Element, control *dom.Node, ev dom.Event) bool

// Entry is one editable unit of the panel.
type Entry struct {
	ID string

	// Markup is the HTML rendered for the entry. Controls are bound by their
	// name attribute; see the package panel for the data-* conventions.
	Markup string

	Get      GetFunc
	Set      SetFunc
	Validate ValidateFunc

	Shows   map[string]ShowFunc
	Actions map[dom.EventKind]map[string]ActionFunc

	// Setup, if set, is called once after the entry's region was built,
	// e.g. to fill select options.
	Setup func(el *model.Element, region *dom.Node)
}

// Show registers a named visibility predicate.
func (e *Entry) Show(name string, fn ShowFunc) *Entry {
	if e.Shows == nil {
		e.Shows = map[string]ShowFunc{}
	}
	e.Shows[name] = fn
	return e
}

// On registers a named action for an interaction kind.
func (e *Entry) On(kind dom.EventKind, name string, fn ActionFunc) *Entry {
	if e.Actions == nil {
		e.Actions = map[dom.EventKind]map[string]ActionFunc{}
	}
	if e.Actions[kind] == nil {
		e.Actions[kind] = map[string]ActionFunc{}
	}
	e.Actions[kind][name] = fn
	return e
}

// Action looks up a named action for an interaction kind.
func (e *Entry) Action(kind dom.EventKind, name string) (ActionFunc, bool) {
	fn, ok := e.Actions[kind][name]
	return fn, ok && fn != nil
}

// ShowPredicate looks up a named visibility predicate.
func (e *Entry) ShowPredicate(name string) (ShowFunc, bool) {
	fn, ok := e.Shows[name]
	return fn, ok && fn != nil
}

// Group is a labeled set of entries.
type Group struct {
	ID      string
	Label   string
	Entries []*Entry
}

// Tab is a labeled set of groups.
type Tab struct {
	ID     string
	Label  string
	Groups []*Group
}

// Check verifies the ids of the group and its entries.
func (g *Group) Check() error {
	if g == nil || g.ID == "" {
		return fmt.Errorf("group: %w", ErrMissingID)
	}
	seen := map[string]bool{}
	for i, e := range g.Entries {
		if e == nil || e.ID == "" {
			return fmt.Errorf("entry %d of group '%s': %w", i, g.ID, ErrMissingID)
		}
		if seen[e.ID] {
			return fmt.Errorf("entry '%s' in group '%s': %w", e.ID, g.ID, ErrDuplicateID)
		}
		seen[e.ID] = true
	}
	return nil
}

// Check verifies the ids of the tab, its groups and their entries.
func (t *Tab) Check() error {
	if t == nil || t.ID == "" {
		return fmt.Errorf("tab: %w", ErrMissingID)
	}
	seen := map[string]bool{}
	for _, g := range t.Groups {
		if err := g.Check(); err != nil {
			return fmt.Errorf("tab '%s': %w", t.ID, err)
		}
		if seen[g.ID] {
			return fmt.Errorf("group '%s' in tab '%s': %w", g.ID, t.ID, ErrDuplicateID)
		}
		seen[g.ID] = true
	}
	return nil
}
