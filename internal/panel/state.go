package panel

import (
	"fmt"

	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/entry"
	"github.com/ja-he/proppanel/internal/model"
)

// Markup attributes the panel binds by.
const (
	EntryAttr   = "data-entry"
	GroupAttr   = "data-group"
	TabAttr     = "data-tab"
	ShowAttr    = "data-show"
	ErrorAttr   = "data-error"
	ElementAttr = "data-element"
)

// actionAttrs names, per interaction kind, the attribute naming the entry
// callback a node triggers.
var actionAttrs = map[dom.EventKind]string{
	dom.Click:     "data-action",
	dom.Input:     "data-on-input",
	dom.Change:    "data-on-change",
	dom.Keypress:  "data-keypress",
	dom.Keydown:   "data-keydown",
	dom.Mousedown: "data-mousedown",
	dom.Focus:     "data-focus",
	dom.Blur:      "data-blur",
}

// ActionAttr returns the attribute naming the callback for an interaction
// kind.
func ActionAttr(kind dom.EventKind) string { return actionAttrs[kind] }

// state is the structure bound to one element.
type state struct {
	element *model.Element
	tabs    []*entry.Tab
	root    *dom.Node

	tabRegions   map[*entry.Tab]*dom.Node
	groupRegions map[*entry.Group]*dom.Node
	entries      map[*dom.Node]*boundEntry
	order        []*boundEntry
}

// boundEntry is an entry materialized in a region.
type boundEntry struct {
	entry  *entry.Entry
	group  *entry.Group
	tab    *entry.Tab
	region *dom.Node
}

func (b *boundEntry) controls() []*dom.Node {
	return b.region.QueryAll(func(n *dom.Node) bool { return n.IsFormControl() })
}

// build materializes the tabs the provider returns for el.
func (p *Panel) build(el *model.Element) (*state, error) {
	tabs := p.provider.Tabs(el)

	seen := map[string]bool{}
	for _, t := range tabs {
		if err := t.Check(); err != nil {
			return nil, err
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("tab '%s': %w", t.ID, entry.ErrDuplicateID)
		}
		seen[t.ID] = true
	}

	s := &state{
		element:      el,
		tabs:         tabs,
		root:         dom.NewElement("div"),
		tabRegions:   map[*entry.Tab]*dom.Node{},
		groupRegions: map[*entry.Group]*dom.Node{},
		entries:      map[*dom.Node]*boundEntry{},
	}
	s.root.AddClass("pp-panel")
	s.root.SetAttr(ElementAttr, string(el.ID))

	for _, t := range tabs {
		tabRegion := region("pp-tab", TabAttr, t.ID, t.Label)
		s.root.AppendChild(tabRegion)
		s.tabRegions[t] = tabRegion

		for _, g := range t.Groups {
			groupRegion := region("pp-group", GroupAttr, g.ID, g.Label)
			tabRegion.AppendChild(groupRegion)
			s.groupRegions[g] = groupRegion

			for _, e := range g.Entries {
				entryRegion := dom.NewElement("div")
				entryRegion.AddClass("pp-entry")
				entryRegion.SetAttr(EntryAttr, e.ID)
				if err := dom.ParseInto(entryRegion, e.Markup); err != nil {
					return nil, fmt.Errorf("markup of entry '%s': %w", e.ID, err)
				}
				groupRegion.AppendChild(entryRegion)

				b := &boundEntry{entry: e, group: g, tab: t, region: entryRegion}
				s.entries[entryRegion] = b
				s.order = append(s.order, b)

				if e.Setup != nil {
					e.Setup(el, entryRegion)
				}
			}
		}
	}

	return s, nil
}

func region(class, attr, id, label string) *dom.Node {
	n := dom.NewElement("div")
	n.AddClass(class)
	n.SetAttr(attr, id)
	if label != "" {
		header := dom.NewElement("div")
		header.AddClass(class + "-label")
		header.SetText(label)
		n.AppendChild(header)
	}
	return n
}

// lookup returns the bound entry owning n.
func (s *state) lookup(n *dom.Node) (*boundEntry, bool) {
	r := n.Closest(dom.WithAttr(EntryAttr))
	if r == nil {
		return nil, false
	}
	b, ok := s.entries[r]
	return b, ok
}
