// Package tui drives the properties panel in a terminal: it renders the bound
// node tree and turns key presses into the interactions the panel handles.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/proppanel/internal/action"
	"github.com/ja-he/proppanel/internal/bus"
	"github.com/ja-he/proppanel/internal/command"
	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/editor"
	"github.com/ja-he/proppanel/internal/input"
	"github.com/ja-he/proppanel/internal/input/processors"
	"github.com/ja-he/proppanel/internal/logbuf"
	"github.com/ja-he/proppanel/internal/model"
	"github.com/ja-he/proppanel/internal/panel"
	"github.com/ja-he/proppanel/internal/styling"
)

// Options configure a Driver.
type Options struct {
	Keys        input.InputConfig
	Styles      *styling.Stylesheet
	PanelConfig panel.Config
	// Save persists the document; nil disables saving.
	Save func() error
	// Logs is shown in the log overlay; may be nil.
	Logs logbuf.Reader
}

// Driver runs a panel in a terminal.
type Driver struct {
	screen   *ScreenHandler
	panel    *panel.Panel
	stack    *command.Stack
	bus      *bus.Bus
	registry *model.ElementRegistry
	opts     Options

	processor *processors.Layered

	element  *model.Element
	tab      int
	focus    int
	status   string
	showHelp bool
	showLog  bool
	editor   *editor.StringEditor
	picker   *Picker
	quit     bool

	off func()
}

// New returns a driver for the panel; the panel's key mappings are resolved
// from opts.Keys.Panel.
func New(
	screen *ScreenHandler,
	p *panel.Panel,
	stack *command.Stack,
	b *bus.Bus,
	registry *model.ElementRegistry,
	opts Options,
) (*Driver, error) {
	d := &Driver{
		screen:   screen,
		panel:    p,
		stack:    stack,
		bus:      b,
		registry: registry,
		opts:     opts,
	}

	mappings, err := input.Resolve(opts.Keys.Panel, d.panelActions())
	if err != nil {
		return nil, fmt.Errorf("panel key mappings: %w", err)
	}
	tree, err := input.ConstructInputTree(mappings)
	if err != nil {
		return nil, fmt.Errorf("panel key mappings: %w", err)
	}
	d.processor = processors.NewLayered(tree)

	d.off = b.On(panel.ChangedEvent, bus.DefaultPriority, func(e *bus.Event) any {
		ev, ok := e.Payload.(panel.LifecycleEvent)
		if ok && ev.Current != d.element {
			d.element = ev.Current
			d.tab, d.focus = 0, 0
		}
		return nil
	})
	d.element = p.Current()

	return d, nil
}

// Close stops listening on the bus.
func (d *Driver) Close() {
	if d.off != nil {
		d.off()
		d.off = nil
	}
}

func simple(explanation string, f func()) action.Action {
	return action.NewSimple(func() string { return explanation }, f)
}

func (d *Driver) panelActions() map[input.Actionspec]action.Action {
	return map[input.Actionspec]action.Action{
		"next-control": simple("focus next control", func() { d.moveFocus(1) }),
		"prev-control": simple("focus previous control", func() { d.moveFocus(-1) }),
		"next-tab":     simple("next tab", func() { d.moveTab(1) }),
		"prev-tab":     simple("previous tab", func() { d.moveTab(-1) }),
		"activate":     simple("activate focused control", d.activate),
		"toggle":       simple("toggle checkbox / cycle select", d.toggle),
		"edit":         simple("edit focused text", d.edit),
		"clear":        simple("clear focused text", d.clear),
		"undo":         action.NewFallible("undo", d.stack.Undo, d.report),
		"redo":         action.NewFallible("redo", d.stack.Redo, d.report),
		"pick-element": simple("pick element", d.pick),
		"save":         action.NewFallible("save document", d.save, d.report),
		"help":         simple("toggle help", func() { d.showHelp = !d.showHelp }),
		"log":          simple("toggle log", func() { d.showLog = !d.showLog }),
		"quit":         simple("quit", func() { d.quit = true }),
	}
}

// Run processes terminal events until quit or until ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			d.screen.Interrupt()
		case <-finished:
		}
	}()

	d.Draw()
	for !d.quit {
		switch ev := d.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			d.HandleKey(input.KeyFromTcellEvent(ev))
		case *tcell.EventResize:
			d.screen.NeedsSync()
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		d.Draw()
	}
	return nil
}

// HandleKey processes a single key press.
func (d *Driver) HandleKey(k input.Key) {
	d.status = ""
	if !d.processor.ProcessInput(k) {
		log.Trace().Str("key", k.ToDebugString()).Msg("unmapped key")
	}
}

// Quit reports whether a quit was requested.
func (d *Driver) Quit() bool { return d.quit }

// Status returns the current status line message.
func (d *Driver) Status() string { return d.status }

func (d *Driver) report(err error) {
	d.status = err.Error()
	log.Warn().Err(err).Msg("terminal action failed")
}

func (d *Driver) save() error {
	if d.opts.Save == nil {
		return errors.New("saving is not configured")
	}
	if err := d.opts.Save(); err != nil {
		return err
	}
	d.status = "saved"
	return nil
}

func (d *Driver) tabs() []tabRef {
	return visibleTabs(d.panel.Root(), d.opts.PanelConfig.HiddenClass)
}

// lines returns the lines of the active tab, clamping the tab index.
func (d *Driver) lines() []line {
	tabs := d.tabs()
	if len(tabs) == 0 {
		return nil
	}
	if d.tab >= len(tabs) {
		d.tab = len(tabs) - 1
	}
	return layoutTab(tabs[d.tab].node, d.opts.PanelConfig.HiddenClass)
}

func focusables(lines []line) []int {
	var result []int
	for i, l := range lines {
		if l.focusable() {
			result = append(result, i)
		}
	}
	return result
}

// Focused returns the focused control or button, nil if there is none.
func (d *Driver) Focused() *dom.Node {
	lines := d.lines()
	fs := focusables(lines)
	if len(fs) == 0 {
		return nil
	}
	if d.focus >= len(fs) {
		d.focus = len(fs) - 1
	}
	return lines[fs[d.focus]].node
}

func (d *Driver) dispatch(kind dom.EventKind, n *dom.Node) error {
	return d.panel.HandleEvent(dom.Event{Kind: kind, Target: n})
}

func (d *Driver) moveFocus(delta int) {
	fs := focusables(d.lines())
	if len(fs) == 0 {
		return
	}
	old := d.Focused()
	d.focus = (d.focus + delta + len(fs)) % len(fs)
	if n := d.Focused(); n != old {
		if err := errors.Join(d.dispatch(dom.Blur, old), d.dispatch(dom.Focus, n)); err != nil {
			d.report(err)
		}
	}
}

func (d *Driver) moveTab(delta int) {
	tabs := d.tabs()
	if len(tabs) == 0 {
		return
	}
	d.tab = (d.tab + delta + len(tabs)) % len(tabs)
	d.focus = 0
}

func (d *Driver) activate() {
	n := d.Focused()
	switch {
	case n == nil:
	case n.Tag == "button":
		if err := d.dispatch(dom.Click, n); err != nil {
			d.report(err)
		}
	case n.IsToggle(), n.Tag == "select":
		d.toggle()
	default:
		d.edit()
	}
}

// changeValue fires the interactions of a user changing a control.
func (d *Driver) changeValue(n *dom.Node) {
	if err := d.dispatch(dom.Input, n); err != nil {
		d.report(err)
		return
	}
	if err := d.dispatch(dom.Change, n); err != nil {
		d.report(err)
	}
}

func (d *Driver) toggle() {
	n := d.Focused()
	if n == nil || !n.IsFormControl() || n.IsDisabled() {
		return
	}
	switch {
	case n.IsToggle():
		n.Checked = !n.Checked
	case n.Tag == "select":
		options := n.Options()
		if len(options) == 0 {
			return
		}
		next := 0
		for i, o := range options {
			if dom.OptionValue(o) == n.Value {
				next = (i + 1) % len(options)
				break
			}
		}
		n.Value = dom.OptionValue(options[next])
	default:
		return
	}
	d.changeValue(n)
}

func (d *Driver) clear() {
	n := d.Focused()
	if n == nil || !isText(n) || n.IsDisabled() {
		return
	}
	n.Value = ""
	d.changeValue(n)
}

func isText(n *dom.Node) bool {
	return n.IsFormControl() && !n.IsToggle() && n.Tag != "select"
}

// edit opens the string editor on the focused text control.
// Writing fires the change; an invalid value keeps the editor open.
func (d *Driver) edit() {
	n := d.Focused()
	if n == nil || !isText(n) || n.IsDisabled() || d.editor != nil {
		return
	}

	var pop func()
	e := editor.New(n.GetAttr("name"), n.Value,
		func(v string) error {
			n.Value = v
			if err := d.dispatch(dom.Input, n); err != nil {
				return err
			}
			if err := d.dispatch(dom.Change, n); err != nil {
				return err
			}
			if n.HasClass(d.opts.PanelConfig.InvalidClass) {
				return errors.New(validationMessage(n))
			}
			return nil
		},
		func() {
			pop()
			d.editor = nil
		},
	)
	p, err := editor.NewProcessor(e, d.opts.Keys.StringEditor)
	if err != nil {
		d.report(err)
		return
	}
	d.editor = e
	pop = d.processor.Push("edit", p)
}

// validationMessage returns the error region text for control n.
func validationMessage(n *dom.Node) string {
	region := n.Closest(dom.WithAttr(panel.EntryAttr))
	if region != nil {
		if r := region.Query(dom.WithAttrValue(panel.ErrorAttr, n.GetAttr("name"))); r != nil && r.TextContent() != "" {
			return r.TextContent()
		}
	}
	return "invalid value"
}

// pick opens the element picker; choosing an element changes the selection.
func (d *Driver) pick() {
	if d.picker != nil {
		return
	}
	var pop func()
	picker := NewPicker(d.registry,
		func(el *model.Element) {
			var old []*model.Element
			if current := d.panel.Current(); current != nil {
				old = []*model.Element{current}
			}
			d.bus.Fire(bus.SelectionChanged, bus.SelectionChangedEvent{OldSelection: old, NewSelection: []*model.Element{el}})
		},
		func() {
			pop()
			d.picker = nil
		},
	)
	mappings, err := input.Resolve(d.opts.Keys.Picker, map[input.Actionspec]action.Action{
		"next-match": simple("next match", picker.Next),
		"prev-match": simple("previous match", picker.Prev),
		"backspace":  simple("delete last character", picker.Backspace),
		"select":     simple("select element", picker.Select),
		"quit":       simple("close picker", picker.Quit),
	})
	if err != nil {
		d.report(err)
		return
	}
	p, err := processors.NewTextInputProcessor(mappings, picker.AddRune)
	if err != nil {
		d.report(err)
		return
	}
	d.picker = picker
	pop = d.processor.Push("pick", p)
}
