package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/panel"
)

// ShowCommand renders the properties panel of an element.
type ShowCommand struct {
	File    string `short:"f" long:"file" required:"true" description:"The document to read" value-name:"<file>"`
	Element string `short:"e" long:"element" description:"The element to show (id or fuzzy name match), the root element by default"`
	Format  string `long:"format" choice:"text" choice:"html" default:"text" description:"Output format"`
	Theme   string `short:"t" long:"theme" choice:"light" choice:"dark" description:"Select a 'dark' or a 'light' default theme"`

	out io.Writer
}

func (command *ShowCommand) Execute(args []string) error {
	cfg, err := loadConfig(command.Theme)
	if err != nil {
		return err
	}
	s, err := newSession(cfg, command.File)
	if err != nil {
		return err
	}
	if err := s.selectElement(command.Element); err != nil {
		return err
	}

	out := writerOrStdout(command.out)
	switch command.Format {
	case "html":
		markup, err := dom.Render(s.panel.Root())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, markup)
		return err
	default:
		return writeSummary(out, s.panel.Root(), cfg.Panel.HiddenClass)
	}
}

// writeSummary writes one line per visible control:
//
//	tab/group/entry control = value
func writeSummary(w io.Writer, root *dom.Node, hiddenClass string) error {
	var lines []string
	root.Walk(func(n *dom.Node) bool {
		if n.HasClass(hiddenClass) {
			return false
		}
		if n.IsFormControl() {
			lines = append(lines, summaryLine(n))
		}
		return true
	})
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, "(no entries)")
		return err
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func summaryLine(n *dom.Node) string {
	attr := func(name string) string {
		if r := n.Closest(dom.WithAttr(name)); r != nil {
			return r.GetAttr(name)
		}
		return "?"
	}

	var value string
	switch {
	case n.IsToggle():
		value = fmt.Sprint(n.Checked)
	default:
		value = fmt.Sprintf("%q", n.Value)
	}

	line := fmt.Sprintf("%s/%s/%s %s = %s",
		attr(panel.TabAttr), attr(panel.GroupAttr), attr(panel.EntryAttr), n.GetAttr("name"), value)
	if n.IsDisabled() {
		line += " (read-only)"
	}
	return line
}
