package dom

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses an HTML fragment into detached nodes.
func Parse(markup string) ([]*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	parsed, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("could not parse markup: %w", err)
	}
	var result []*Node
	for _, p := range parsed {
		if n := fromHTML(p); n != nil {
			result = append(result, n)
		}
	}
	return result, nil
}

// ParseInto parses markup and appends the resulting nodes to parent.
func ParseInto(parent *Node, markup string) error {
	nodes, err := Parse(markup)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}

func fromHTML(h *html.Node) *Node {
	switch h.Type {
	case html.TextNode:
		return NewText(h.Data)
	case html.ElementNode:
		n := NewElement(h.Data)
		for _, a := range h.Attr {
			n.SetAttr(a.Key, a.Val)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if child := fromHTML(c); child != nil {
				n.AppendChild(child)
			}
		}
		n.initControlState()
		return n
	default:
		return nil
	}
}

// Render renders n, including the live state of form controls, as HTML.
func Render(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, toHTML(n)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHTML(n *Node) *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}

	h := &html.Node{Type: html.ElementNode, Data: n.Tag, DataAtom: atom.Lookup([]byte(n.Tag))}
	attrs := map[string]string{}
	for _, k := range n.AttrNames() {
		attrs[k] = n.attrs[k]
	}
	if len(n.classes) > 0 {
		attrs["class"] = strings.Join(n.classes, " ")
	}

	switch n.Tag {
	case "input":
		attrs["value"] = n.Value
		delete(attrs, "checked")
		if n.IsToggle() && n.Checked {
			attrs["checked"] = "checked"
		}
	case "textarea":
		h.AppendChild(&html.Node{Type: html.TextNode, Data: n.Value})
	}

	for _, k := range sortedKeys(attrs) {
		h.Attr = append(h.Attr, html.Attribute{Key: k, Val: attrs[k]})
	}

	if n.Tag == "textarea" {
		return h
	}
	for _, c := range n.children {
		child := toHTML(c)
		if n.Tag == "select" && c.Tag == "option" {
			child.Attr = withoutAttr(child.Attr, "selected")
			if OptionValue(c) == n.Value {
				child.Attr = append(child.Attr, html.Attribute{Key: "selected", Val: "selected"})
			}
		}
		h.AppendChild(child)
	}
	return h
}

func withoutAttr(attrs []html.Attribute, key string) []html.Attribute {
	result := attrs[:0:0]
	for _, a := range attrs {
		if a.Key != key {
			result = append(result, a)
		}
	}
	return result
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
