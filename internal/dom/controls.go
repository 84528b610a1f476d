package dom

import (
	"strings"
)

// IsFormControl returns whether n is a named input, select or textarea.
func (n *Node) IsFormControl() bool {
	switch n.Tag {
	case "input", "select", "textarea":
		return n.HasAttr("name")
	}
	return false
}

// InputType returns the lower-cased type of an input, "text" by default.
func (n *Node) InputType() string {
	if t := strings.ToLower(n.GetAttr("type")); t != "" {
		return t
	}
	return "text"
}

// IsToggle returns whether n is a checkbox or radio input.
func (n *Node) IsToggle() bool {
	if n.Tag != "input" {
		return false
	}
	t := n.InputType()
	return t == "checkbox" || t == "radio"
}

// IsDisabled returns whether the control is disabled.
func (n *Node) IsDisabled() bool { return n.HasAttr("disabled") }

// SetDisabled sets or removes the disabled attribute.
func (n *Node) SetDisabled(disabled bool) {
	if disabled {
		n.SetAttr("disabled", "disabled")
	} else {
		n.RemoveAttr("disabled")
	}
}

// Options returns the option nodes of a select.
func (n *Node) Options() []*Node {
	return n.QueryAll(func(d *Node) bool { return d.Tag == "option" })
}

// OptionValue returns the value of an option node (its text if it has no
// value attribute).
func OptionValue(option *Node) string {
	if v, ok := option.Attr("value"); ok {
		return v
	}
	return option.TextContent()
}

// SetOptions replaces the options of a select.
func (n *Node) SetOptions(options []Option) {
	n.RemoveChildren()
	for _, o := range options {
		opt := NewElement("option")
		opt.SetAttr("value", o.Value)
		opt.SetText(o.Label)
		n.AppendChild(opt)
	}
	if !n.hasOption(n.Value) && len(options) > 0 {
		n.Value = options[0].Value
	}
}

func (n *Node) hasOption(value string) bool {
	for _, o := range n.Options() {
		if OptionValue(o) == value {
			return true
		}
	}
	return false
}

// Option is a select option.
type Option struct {
	Value string
	Label string
}

// initControlState initializes Value/Checked from markup.
func (n *Node) initControlState() {
	switch n.Tag {
	case "input":
		n.Value = n.GetAttr("value")
		n.Checked = n.HasAttr("checked")
		if n.IsToggle() && !n.HasAttr("value") {
			n.Value = "on"
		}
	case "textarea":
		n.Value = n.TextContent()
	case "select":
		options := n.Options()
		for _, o := range options {
			if o.HasAttr("selected") {
				n.Value = OptionValue(o)
				return
			}
		}
		if len(options) > 0 {
			n.Value = OptionValue(options[0])
		}
	}
}
