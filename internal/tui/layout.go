package tui

import (
	"strings"

	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/panel"
)

type lineKind int

const (
	lineGroup lineKind = iota
	lineLabel
	lineText
	lineControl
	lineButton
	lineError
)

// line is one row of the flattened panel.
type line struct {
	kind  lineKind
	text  string
	node  *dom.Node
	depth int
}

func (l line) focusable() bool {
	return l.kind == lineControl || l.kind == lineButton
}

// tabRef is a visible tab of the rendered panel.
type tabRef struct {
	id    string
	label string
	node  *dom.Node
}

// visibleTabs returns the tabs of root not hidden by the panel.
func visibleTabs(root *dom.Node, hiddenClass string) []tabRef {
	if root == nil {
		return nil
	}
	var tabs []tabRef
	for _, t := range root.Children() {
		id, ok := t.Attr(panel.TabAttr)
		if !ok || t.HasClass(hiddenClass) {
			continue
		}
		label := id
		if header := t.Query(func(n *dom.Node) bool { return n.HasClass("pp-tab-label") }); header != nil {
			label = header.TextContent()
		}
		tabs = append(tabs, tabRef{id: id, label: label, node: t})
	}
	return tabs
}

// layoutTab flattens the visible contents of a tab region into lines.
func layoutTab(tab *dom.Node, hiddenClass string) []line {
	var lines []line
	for _, c := range tab.Children() {
		if c.HasClass("pp-tab-label") {
			continue
		}
		lines = appendNode(lines, c, 0, hiddenClass)
	}
	return lines
}

func appendNode(lines []line, n *dom.Node, depth int, hiddenClass string) []line {
	if n.IsText() {
		if text := strings.TrimSpace(n.Text); text != "" {
			lines = append(lines, line{kind: lineText, text: text, depth: depth})
		}
		return lines
	}
	if n.HasClass(hiddenClass) {
		return lines
	}

	switch {
	case n.IsFormControl():
		return append(lines, line{kind: lineControl, node: n, depth: depth})
	case n.Tag == "button":
		return append(lines, line{kind: lineButton, text: n.TextContent(), node: n, depth: depth})
	case n.Tag == "label":
		return append(lines, line{kind: lineLabel, text: n.TextContent(), depth: depth})
	case n.HasAttr(panel.ErrorAttr):
		if text := n.TextContent(); text != "" {
			lines = append(lines, line{kind: lineError, text: text, depth: depth})
		}
		return lines
	}

	childDepth := depth
	if n.HasAttr(panel.GroupAttr) {
		childDepth = depth + 1
	}
	for _, c := range n.Children() {
		if c.HasClass("pp-group-label") {
			lines = append(lines, line{kind: lineGroup, text: c.TextContent(), depth: depth})
			continue
		}
		lines = appendNode(lines, c, childDepth, hiddenClass)
	}
	return lines
}

// controlText renders the current state of a form control.
func controlText(n *dom.Node) string {
	switch {
	case n.IsToggle():
		if n.Checked {
			return "[x]"
		}
		return "[ ]"
	case n.Tag == "select":
		label := n.Value
		for _, o := range n.Options() {
			if dom.OptionValue(o) == n.Value {
				label = o.TextContent()
				break
			}
		}
		return "< " + label + " >"
	default:
		return "[" + n.Value + "]"
	}
}
