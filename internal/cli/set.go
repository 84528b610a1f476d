package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/panel"
)

// SetCommand changes the value of one control of an element's panel the way
// a user would and saves the document.
type SetCommand struct {
	File    string `short:"f" long:"file" required:"true" description:"The document to modify" value-name:"<file>"`
	Element string `short:"e" long:"element" description:"The element to modify (id or fuzzy name match), the root element by default"`
	Entry   string `long:"entry" required:"true" description:"The id of the entry holding the control"`
	Control string `long:"control" required:"true" description:"The name of the control"`
	Value   string `long:"value" description:"The new value ('true'/'false' for checkboxes and radios)"`
	DryRun  bool   `short:"n" long:"dry-run" description:"Do not save the document"`

	out io.Writer
}

func (command *SetCommand) Execute(args []string) error {
	cfg, err := loadConfig("")
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

	c := s.panel.Control(command.Entry, command.Control)
	if c == nil {
		return fmt.Errorf("no control '%s' in entry '%s' of '%s'", command.Control, command.Entry, s.panel.Current().ID)
	}
	if c.IsDisabled() {
		return fmt.Errorf("control '%s' of entry '%s' is read-only", command.Control, command.Entry)
	}

	out := writerOrStdout(command.out)
	if c.IsToggle() {
		checked, err := strconv.ParseBool(command.Value)
		if err != nil {
			return fmt.Errorf("checkbox value must be a boolean (%w)", err)
		}
		if c.Checked == checked {
			_, err := fmt.Fprintln(out, "nothing changed")
			return err
		}
		c.Checked = checked
	} else {
		if c.Value == command.Value {
			_, err := fmt.Fprintln(out, "nothing changed")
			return err
		}
		c.Value = command.Value
	}

	for _, kind := range []dom.EventKind{dom.Input, dom.Change} {
		if err := s.panel.HandleEvent(dom.Event{Kind: kind, Target: c}); err != nil {
			return err
		}
	}
	if c.HasClass(cfg.Panel.InvalidClass) {
		return fmt.Errorf("invalid value for '%s': %s", command.Control, errorText(c))
	}

	if command.DryRun {
		_, err := fmt.Fprintln(out, "changed (not saved)")
		return err
	}
	if err := s.save(); err != nil {
		return err
	}
	log.Info().Str("file", command.File).Str("entry", command.Entry).Str("control", command.Control).Msg("saved")
	_, err = fmt.Fprintln(out, "saved")
	return err
}

func errorText(c *dom.Node) string {
	if region := c.Closest(dom.WithAttr(panel.EntryAttr)); region != nil {
		if r := region.Query(dom.WithAttrValue(panel.ErrorAttr, c.GetAttr("name"))); r != nil && r.TextContent() != "" {
			return r.TextContent()
		}
	}
	return "rejected"
}
