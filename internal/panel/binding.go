package panel

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/proppanel/internal/command/handlers"
	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/entry"
	"github.com/ja-he/proppanel/internal/model"
)

// HandleEvent handles a user interaction on a node of the panel.
//
// Events on nodes outside the bound structure (e.g. arriving after the
// selection changed) and on disabled controls are ignored. Errors of an
// entry's Set and of the dispatched command are returned.
func (p *Panel) HandleEvent(ev dom.Event) error {
	s := p.current
	if s == nil || ev.Target == nil || !s.root.Contains(ev.Target) {
		log.Debug().Str("kind", string(ev.Kind)).Msg("ignoring event outside of bound panel")
		return nil
	}
	b, ok := s.lookup(ev.Target)
	if !ok {
		return nil
	}
	if ev.Target.IsFormControl() && ev.Target.IsDisabled() {
		return nil
	}
	el := s.element

	commit := ev.Kind == dom.Change
	proceed := ev.Kind == dom.Change || ev.Kind == dom.Input

	// an action can veto the update; input events never commit
	if node, fn, ok := b.action(ev); ok {
		changed := fn(el, node, ev)
		proceed = changed
		commit = changed && ev.Kind != dom.Input
	}

	var err error
	if proceed {
		values := CollectValues(b.region)
		valid := p.validate(el, b, values)
		if commit && valid {
			err = p.commit(s, b, values)
		}
	}

	// the commit may have rebound the panel
	if p.current == s {
		runShows(el, b, p.cfg.HiddenClass)
	}
	return err
}

// action returns the node and callback the event triggers, if any.
func (b *boundEntry) action(ev dom.Event) (*dom.Node, entry.ActionFunc, bool) {
	attr, ok := actionAttrs[ev.Kind]
	if !ok {
		return nil, nil, false
	}
	node := ev.Target.Closest(dom.WithAttr(attr))
	if node == nil || !b.region.Contains(node) {
		return nil, nil, false
	}
	fn, ok := b.entry.Action(ev.Kind, node.GetAttr(attr))
	return node, fn, ok
}

// validate runs the entry's Validate and presents the result. It returns
// whether no control has an error.
func (p *Panel) validate(el *model.Element, b *boundEntry, values entry.Values) bool {
	var errs entry.Errors
	if b.entry.Validate != nil {
		errs = b.entry.Validate(el, values)
	}

	valid := true
	for _, c := range b.controls() {
		name := c.GetAttr("name")
		msg := errs[name]
		invalid := msg != ""
		valid = valid && !invalid

		c.ToggleClass(p.cfg.InvalidClass, invalid)
		if region := b.region.Query(dom.WithAttrValue(ErrorAttr, name)); region != nil {
			region.ToggleClass(p.cfg.InvalidClass, invalid)
			region.SetText(msg)
		}
	}
	return valid
}

// commit computes the entry's change-set and executes it as one command.
func (p *Panel) commit(s *state, b *boundEntry, values entry.Values) error {
	if b.entry.Set == nil {
		return nil
	}
	cs, err := b.entry.Set(s.element, values, b.region)
	if err != nil {
		return fmt.Errorf("set of entry '%s': %w", b.entry.ID, err)
	}

	switch cs := cs.(type) {
	case nil:
		return nil
	case entry.DirectUpdate:
		if len(cs.Properties) == 0 {
			return nil
		}
		log.Debug().Str("entry", b.entry.ID).Interface("properties", cs.Properties).Msg("committing properties")
		return p.executor.Execute(handlers.UpdateElementPropertiesCmd, &handlers.UpdateElementPropertiesContext{
			Element:    s.element,
			Properties: cs.Properties,
		})
	case entry.NamedCommand:
		log.Debug().Str("entry", b.entry.ID).Str("cmd", cs.Cmd).Msg("committing command")
		return p.executor.Execute(cs.Cmd, cs.Context)
	default:
		return fmt.Errorf("set of entry '%s' returned unsupported change-set %T", b.entry.ID, cs)
	}
}

// CollectValues reads the values of the named form controls below region.
//
// Empty values are collected as nil. Unchecked checkboxes and radios
// contribute nothing; checked ones contribute their value attribute or true.
func CollectValues(region *dom.Node) entry.Values {
	values := entry.Values{}
	for _, c := range region.QueryAll(func(n *dom.Node) bool { return n.IsFormControl() }) {
		name := c.GetAttr("name")
		if c.IsToggle() {
			if !c.Checked {
				continue
			}
			if c.HasAttr("value") {
				values[name] = emptyToNil(c.GetAttr("value"))
			} else {
				values[name] = true
			}
			continue
		}
		values[name] = emptyToNil(c.Value)
	}
	return values
}

func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// DispatchEvent is a convenience for drivers: it fires ev of the given kind
// on the control of entryID named name in the bound structure.
func (p *Panel) DispatchEvent(kind dom.EventKind, entryID, name string) error {
	c := p.Control(entryID, name)
	if c == nil {
		return fmt.Errorf("no control '%s' in entry '%s'", name, entryID)
	}
	return p.HandleEvent(dom.Event{Kind: kind, Target: c})
}

// Control returns the first control named name in the region of the entry
// with id entryID, nil if there is none.
func (p *Panel) Control(entryID, name string) *dom.Node {
	if p.current == nil {
		return nil
	}
	for _, b := range p.current.order {
		if b.entry.ID != entryID {
			continue
		}
		if c := b.region.Query(func(n *dom.Node) bool { return n.IsFormControl() && n.GetAttr("name") == name }); c != nil {
			return c
		}
	}
	return nil
}

// EntryRegion returns the region of the entry with id entryID.
func (p *Panel) EntryRegion(entryID string) *dom.Node {
	if p.current == nil {
		return nil
	}
	for _, b := range p.current.order {
		if b.entry.ID == entryID {
			return b.region
		}
	}
	return nil
}
