// Package activation decides which entries of the properties panel are
// visible and which of their properties are editable.
//
// Any number of policies can be registered on the event bus at a priority.
// Queries are answered by the highest-priority policy that has an opinion;
// policies without an opinion defer to the ones below them.
package activation

import (
	"github.com/rs/zerolog/log"

	"github.com/ja-he/proppanel/internal/bus"
	"github.com/ja-he/proppanel/internal/entry"
	"github.com/ja-he/proppanel/internal/model"
)

// Bus events the policies answer.
const (
	IsEntryVisibleEvent     = "propertiesPanel.isEntryVisible"
	IsPropertyEditableEvent = "propertiesPanel.isPropertyEditable"
)

// Verdict is a policy's answer.
type Verdict int

const (
	// NoOpinion defers to lower-priority policies.
	NoOpinion Verdict = iota
	// Allow answers true.
	Allow
	// Deny answers false.
	Deny
)

func (v Verdict) String() string {
	switch v {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return "no-opinion"
	}
}

// EntryQuery identifies an entry in the context of the selected element.
type EntryQuery struct {
	Element *model.Element
	Entry   *entry.Entry
	Group   *entry.Group
	Tab     *entry.Tab
}

// PropertyQuery identifies a named property (control) of an entry.
type PropertyQuery struct {
	EntryQuery
	Property string
}

// Policy influences entry visibility and property editability.
type Policy interface {
	EntryVisible(q EntryQuery) Verdict
	PropertyEditable(q PropertyQuery) Verdict
}

// Permissive allows everything. Embed it to override only one of the
// decisions.
type Permissive struct{}

// EntryVisible allows.
func (Permissive) EntryVisible(EntryQuery) Verdict { return Allow }

// PropertyEditable allows.
func (Permissive) PropertyEditable(PropertyQuery) Verdict { return Allow }

// Funcs adapts functions to a Policy; nil functions have no opinion.
type Funcs struct {
	Visible  func(q EntryQuery) Verdict
	Editable func(q PropertyQuery) Verdict
}

// EntryVisible calls f.Visible.
func (f Funcs) EntryVisible(q EntryQuery) Verdict {
	if f.Visible == nil {
		return NoOpinion
	}
	return f.Visible(q)
}

// PropertyEditable calls f.Editable.
func (f Funcs) PropertyEditable(q PropertyQuery) Verdict {
	if f.Editable == nil {
		return NoOpinion
	}
	return f.Editable(q)
}

// Register installs the policy on the bus at the given priority and returns
// a function uninstalling it.
//
// A panicking policy is treated as having no opinion.
func Register(b *bus.Bus, priority int, p Policy) (off func()) {
	offVisible := b.On(IsEntryVisibleEvent, priority, func(e *bus.Event) any {
		q, ok := e.Payload.(EntryQuery)
		if !ok {
			return nil
		}
		return answer(IsEntryVisibleEvent, func() Verdict { return p.EntryVisible(q) })
	})
	offEditable := b.On(IsPropertyEditableEvent, priority, func(e *bus.Event) any {
		q, ok := e.Payload.(PropertyQuery)
		if !ok {
			return nil
		}
		return answer(IsPropertyEditableEvent, func() Verdict { return p.PropertyEditable(q) })
	})
	return func() {
		offVisible()
		offEditable()
	}
}

func answer(event string, decide func() Verdict) (result any) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("event", event).Interface("panic", r).Msg("activation policy panicked, treating as no opinion")
			result = nil
		}
	}()
	switch decide() {
	case Allow:
		return true
	case Deny:
		return false
	default:
		return nil
	}
}

// Activator answers visibility and editability queries through the bus.
// Without any opinion registered, everything is visible and editable.
type Activator struct {
	bus *bus.Bus
}

// NewActivator returns an activator querying the bus.
func NewActivator(b *bus.Bus) *Activator {
	return &Activator{bus: b}
}

// IsEntryVisible returns whether the entry is visible.
func (a *Activator) IsEntryVisible(el *model.Element, e *entry.Entry, g *entry.Group, t *entry.Tab) bool {
	return a.query(IsEntryVisibleEvent, EntryQuery{Element: el, Entry: e, Group: g, Tab: t})
}

// IsPropertyEditable returns whether the named property of the entry is
// editable.
func (a *Activator) IsPropertyEditable(property string, el *model.Element, e *entry.Entry, g *entry.Group, t *entry.Tab) bool {
	return a.query(IsPropertyEditableEvent, PropertyQuery{
		EntryQuery: EntryQuery{Element: el, Entry: e, Group: g, Tab: t},
		Property:   property,
	})
}

func (a *Activator) query(event string, payload any) bool {
	v, ok := a.bus.Query(event, payload, isBool)
	if !ok {
		return true
	}
	return v.(bool)
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}
