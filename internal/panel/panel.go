// Package panel implements the properties panel: it binds the selected
// diagram element to the entries a provider returns for it, keeps their
// rendered state in sync with the document and turns user interactions into
// commands.
package panel

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/proppanel/internal/activation"
	"github.com/ja-he/proppanel/internal/bus"
	"github.com/ja-he/proppanel/internal/command"
	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/entry"
	"github.com/ja-he/proppanel/internal/model"
)

// Lifecycle events fired by the panel.
const (
	AttachEvent  = "propertiesPanel.attach"
	DetachEvent  = "propertiesPanel.detach"
	ChangedEvent = "propertiesPanel.changed"
	DestroyEvent = "propertiesPanel.destroy"
)

// LifecycleEvent is the payload of the lifecycle events.
type LifecycleEvent struct {
	Panel   *Panel
	Current *model.Element
}

// Config holds the presentation settings of the panel.
type Config struct {
	HiddenClass  string
	InvalidClass string
	// RootTypes are the business object types of elements the panel falls
	// back to when the selection is empty.
	RootTypes []string
}

// DefaultConfig returns the default panel configuration.
func DefaultConfig() Config {
	return Config{
		HiddenClass:  "pp-hidden",
		InvalidClass: "invalid",
		RootTypes:    []string{"bpmn:Process", "bpmn:Collaboration"},
	}
}

// Panel is the properties panel.
type Panel struct {
	bus       *bus.Bus
	executor  command.Executor
	provider  entry.Provider
	registry  *model.ElementRegistry
	activator *activation.Activator
	cfg       Config

	refresher *refresher
	container *dom.Node
	current   *state

	offs []func()
}

// New returns a panel listening for selection and element changes on b.
// Commits are executed on executor.
func New(
	b *bus.Bus,
	executor command.Executor,
	provider entry.Provider,
	registry *model.ElementRegistry,
	activator *activation.Activator,
	cfg Config,
) *Panel {
	p := &Panel{
		bus:       b,
		executor:  executor,
		provider:  provider,
		registry:  registry,
		activator: activator,
		cfg:       cfg,
		refresher: &refresher{activator: activator, cfg: cfg},
	}

	p.offs = append(p.offs,
		b.On(bus.SelectionChanged, bus.DefaultPriority, func(e *bus.Event) any {
			ev, ok := e.Payload.(bus.SelectionChangedEvent)
			if !ok {
				return nil
			}
			var el *model.Element
			if len(ev.NewSelection) > 0 {
				el = ev.NewSelection[0]
			}
			if err := p.Update(el); err != nil {
				log.Error().Err(err).Msg("could not update properties panel on selection change")
			}
			return nil
		}),
		b.On(bus.ElementsChanged, bus.DefaultPriority, func(e *bus.Event) any {
			ev, ok := e.Payload.(bus.ElementsChangedEvent)
			if !ok || p.current == nil {
				return nil
			}
			el := p.current.element
			if ev.Contains(el.ID) || ev.Contains(el.BusinessObject) {
				p.refresh()
			}
			return nil
		}),
		b.On(bus.DiagramDestroy, bus.DefaultPriority, func(*bus.Event) any {
			p.Destroy()
			return nil
		}),
	)

	return p
}

// Current returns the bound element, nil if the panel is empty.
func (p *Panel) Current() *model.Element {
	if p.current == nil {
		return nil
	}
	return p.current.element
}

// Root returns the rendered root of the bound element, nil if the panel is
// empty.
func (p *Panel) Root() *dom.Node {
	if p.current == nil {
		return nil
	}
	return p.current.root
}

// Tabs returns the tabs of the bound element.
func (p *Panel) Tabs() []*entry.Tab {
	if p.current == nil {
		return nil
	}
	return p.current.tabs
}

// Container returns the node the panel is attached to, nil if detached.
func (p *Panel) Container() *dom.Node { return p.container }

// AttachTo attaches the panel to parent, detaching it from a previous parent
// first.
func (p *Panel) AttachTo(parent *dom.Node) {
	p.Detach()
	p.container = parent
	if p.current != nil {
		parent.AppendChild(p.current.root)
	}
	p.bus.Fire(AttachEvent, p.lifecycleEvent())
}

// Detach detaches the panel from its parent. It is a no-op if the panel is
// not attached.
func (p *Panel) Detach() {
	if p.container == nil {
		return
	}
	if p.current != nil {
		p.current.root.Remove()
	}
	p.container = nil
	p.bus.Fire(DetachEvent, p.lifecycleEvent())
}

// Destroy detaches the panel, stops listening on the bus and releases the
// bound element.
func (p *Panel) Destroy() {
	p.Detach()
	for _, off := range p.offs {
		off()
	}
	p.offs = nil
	p.current = nil
	p.bus.Fire(DestroyEvent, p.lifecycleEvent())
}

// Update binds the panel to el.
//
// Selecting the bound element again keeps its rendered structure and only
// refreshes values. A nil element binds the first root element (see
// Config.RootTypes) or empties the panel if there is none.
func (p *Panel) Update(el *model.Element) error {
	if el == nil {
		el = p.fallbackRoot()
	}

	if p.current != nil && el != nil && p.current.element == el {
		log.Debug().Str("element", string(el.ID)).Msg("same element selected, refreshing")
		p.refresh()
		return nil
	}

	p.teardown()

	if el == nil {
		p.bus.Fire(ChangedEvent, p.lifecycleEvent())
		return nil
	}

	s, err := p.build(el)
	if err != nil {
		p.bus.Fire(ChangedEvent, p.lifecycleEvent())
		return fmt.Errorf("building panel for '%s': %w", el.ID, err)
	}
	p.current = s
	if p.container != nil {
		p.container.AppendChild(s.root)
	}
	p.refresher.refresh(s)
	log.Debug().Str("element", string(el.ID)).Int("entries", len(s.order)).Msg("bound properties panel")

	p.bus.Fire(ChangedEvent, p.lifecycleEvent())
	return nil
}

func (p *Panel) refresh() {
	if p.current == nil {
		return
	}
	p.refresher.refresh(p.current)
	p.bus.Fire(ChangedEvent, p.lifecycleEvent())
}

// teardown detaches and drops the bound structure, discarding uncommitted
// input.
func (p *Panel) teardown() {
	if p.current == nil {
		return
	}
	p.current.root.Remove()
	p.current = nil
}

func (p *Panel) fallbackRoot() *model.Element {
	var root *model.Element
	p.registry.ForEach(func(el *model.Element) {
		if root != nil || el.Parent != "" {
			return
		}
		for _, typ := range p.cfg.RootTypes {
			if p.registry.Is(el, typ) {
				root = el
				return
			}
		}
	})
	return root
}

func (p *Panel) lifecycleEvent() LifecycleEvent {
	return LifecycleEvent{Panel: p, Current: p.Current()}
}
