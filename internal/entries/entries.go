// Package entries provides factories for the common kinds of entries: text
// fields, checkboxes and select boxes bound to a property of the selected
// element's business object.
package entries

import (
	"fmt"
	"html"
	"strings"

	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/entry"
	"github.com/ja-he/proppanel/internal/model"
)

// Options configure an entry factory.
type Options struct {
	ID    string
	Label string
	// Property is the business object property the entry binds, ID if empty.
	// It is also the name of the entry's control.
	Property    string
	Description string

	Validate entry.ValidateFunc
	// Get and Set override the default property binding.
	Get entry.GetFunc
	Set entry.SetFunc
}

func (o Options) property() string {
	if o.Property != "" {
		return o.Property
	}
	return o.ID
}

// PropertyGetter returns a GetFunc reading property from the business object.
func PropertyGetter(registry *model.ElementRegistry, property string) entry.GetFunc {
	return func(el *model.Element, _ *dom.Node) entry.Values {
		bo := registry.BusinessObject(el)
		if bo == nil {
			return entry.Values{}
		}
		return entry.Values{property: bo.Get(property)}
	}
}

// PropertySetter returns a SetFunc writing the control value to property.
func PropertySetter(property string) entry.SetFunc {
	return func(_ *model.Element, values entry.Values, _ *dom.Node) (entry.ChangeSet, error) {
		return entry.DirectUpdate{Properties: map[string]any{property: values[property]}}, nil
	}
}

func newEntry(registry *model.ElementRegistry, o Options, markup string) *entry.Entry {
	e := &entry.Entry{
		ID:       o.ID,
		Markup:   markup,
		Get:      o.Get,
		Set:      o.Set,
		Validate: o.Validate,
	}
	if e.Get == nil {
		e.Get = PropertyGetter(registry, o.property())
	}
	if e.Set == nil {
		e.Set = PropertySetter(o.property())
	}
	return e
}

func controlID(o Options) string {
	return "pp-" + html.EscapeString(o.ID)
}

func label(o Options) string {
	return fmt.Sprintf(`<label for="%s">%s</label>`, controlID(o), html.EscapeString(o.Label))
}

func description(o Options) string {
	if o.Description == "" {
		return ""
	}
	return `<div class="pp-description">` + html.EscapeString(o.Description) + `</div>`
}

func errorRegion(o Options) string {
	return fmt.Sprintf(`<div class="pp-error" data-error="%s"></div>`, html.EscapeString(o.property()))
}

// TextField returns a single-line text entry with a clear button that is
// shown while the field is not empty.
func TextField(registry *model.ElementRegistry, o Options) *entry.Entry {
	prop := html.EscapeString(o.property())
	var sb strings.Builder
	sb.WriteString(label(o))
	sb.WriteString(`<div class="pp-field">`)
	fmt.Fprintf(&sb, `<input id="%s" type="text" name="%s">`, controlID(o), prop)
	sb.WriteString(`<button class="pp-clear" data-action="clear" data-show="canClear">x</button>`)
	sb.WriteString(`</div>`)
	sb.WriteString(errorRegion(o))
	sb.WriteString(description(o))

	e := newEntry(registry, o, sb.String())
	e.On(dom.Click, "clear", func(_ *model.Element, button *dom.Node, _ dom.Event) bool {
		c := control(button.Parent(), o.property())
		if c == nil || c.Value == "" {
			return false
		}
		c.Value = ""
		return true
	})
	e.Show("canClear", func(_ *model.Element, region *dom.Node, _ *dom.Node) bool {
		c := control(region, o.property())
		return c != nil && c.Value != ""
	})
	return e
}

// TextArea returns a multi-line text entry.
func TextArea(registry *model.ElementRegistry, o Options) *entry.Entry {
	markup := label(o) +
		fmt.Sprintf(`<textarea id="%s" name="%s"></textarea>`, controlID(o), html.EscapeString(o.property())) +
		errorRegion(o) +
		description(o)
	return newEntry(registry, o, markup)
}

// Checkbox returns a boolean entry. An unchecked box writes false.
func Checkbox(registry *model.ElementRegistry, o Options) *entry.Entry {
	prop := o.property()
	if o.Get == nil {
		o.Get = func(el *model.Element, _ *dom.Node) entry.Values {
			bo := registry.BusinessObject(el)
			return entry.Values{prop: bo != nil && bo.GetBool(prop)}
		}
	}
	if o.Set == nil {
		o.Set = func(_ *model.Element, values entry.Values, _ *dom.Node) (entry.ChangeSet, error) {
			return entry.DirectUpdate{Properties: map[string]any{prop: values.Bool(prop)}}, nil
		}
	}
	markup := fmt.Sprintf(`<input id="%s" type="checkbox" name="%s">`, controlID(o), html.EscapeString(prop)) +
		label(o) +
		description(o)
	return newEntry(registry, o, markup)
}

// SelectOptions computes the options of a select box for an element.
type SelectOptions func(el *model.Element) []dom.Option

// SelectBox returns an entry choosing one of a computed set of options.
// Options are recomputed on every refresh.
func SelectBox(registry *model.ElementRegistry, o Options, options SelectOptions) *entry.Entry {
	prop := o.property()
	markup := label(o) +
		fmt.Sprintf(`<select id="%s" name="%s"></select>`, controlID(o), html.EscapeString(prop)) +
		errorRegion(o) +
		description(o)

	e := newEntry(registry, o, markup)
	get := e.Get
	e.Setup = func(el *model.Element, region *dom.Node) {
		if c := control(region, prop); c != nil {
			c.SetOptions(options(el))
		}
	}
	e.Get = func(el *model.Element, region *dom.Node) entry.Values {
		e.Setup(el, region)
		return get(el, region)
	}
	return e
}

func control(region *dom.Node, name string) *dom.Node {
	if region == nil {
		return nil
	}
	return region.Query(func(n *dom.Node) bool { return n.IsFormControl() && n.GetAttr("name") == name })
}
