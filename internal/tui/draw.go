package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/editor"
	"github.com/ja-he/proppanel/internal/styling"
)

// Draw renders the panel and any open overlay.
func (d *Driver) Draw() {
	s := d.opts.Styles
	x, y, w, h := d.screen.Dimensions()
	d.screen.Clear()
	d.screen.HideCursor()
	d.screen.DrawBox(x, y, w, h, s.Normal)

	d.drawHeader(w)
	d.drawLines(2, w, h-3)
	d.drawStatus(h-1, w)

	switch {
	case d.picker != nil:
		d.drawPicker(w, h)
	case d.showHelp:
		d.drawHelp(w, h)
	case d.showLog:
		d.drawLog(w, h)
	}

	d.screen.Show()
}

func (d *Driver) drawHeader(w int) {
	s := d.opts.Styles
	title := "(no element selected)"
	if el := d.panel.Current(); el != nil {
		title = ElementLabel(d.registry, el)
	}
	d.screen.DrawBox(0, 0, w, 1, s.Header)
	d.screen.DrawText(1, 0, w-1, 1, s.Header, title)

	col := 0
	for i, t := range d.tabs() {
		style := s.TabInactive
		if i == d.tab {
			style = s.TabActive
		}
		text := " " + t.label + " "
		d.screen.DrawText(col, 1, len([]rune(text)), 1, style, text)
		col += len([]rune(text)) + 1
	}
}

func (d *Driver) drawLines(top, w, height int) {
	if height <= 0 {
		return
	}
	lines := d.lines()
	focused := d.Focused()

	// scroll so that the focused line is visible
	offset := 0
	for i, l := range lines {
		if l.node != nil && l.node == focused && i >= height {
			offset = i - height + 1
		}
	}

	for row := 0; row < height && offset+row < len(lines); row++ {
		l := lines[offset+row]
		indent := 1 + 2*l.depth
		text, style := d.renderLine(l, l.node != nil && l.node == focused)
		d.screen.DrawText(indent, top+row, w-indent, 1, style, text)
		if d.editor != nil && l.node == focused {
			d.screen.ShowCursor(indent+1+d.editor.CursorPos(), top+row)
		}
	}
}

func (d *Driver) renderLine(l line, focused bool) (string, styling.Style) {
	s := d.opts.Styles
	switch l.kind {
	case lineGroup:
		return l.text, s.GroupLabel
	case lineLabel:
		return l.text, s.EntryLabel
	case lineError:
		return l.text, s.Invalid
	case lineText:
		return l.text, s.Normal
	}

	text := controlText(l.node)
	if l.kind == lineButton {
		text = "(" + l.text + ")"
	}
	if focused && d.editor != nil {
		return "[" + d.editor.Content() + "]", s.Editor
	}
	return text, d.controlStyle(l.node, focused)
}

func (d *Driver) controlStyle(n *dom.Node, focused bool) styling.Style {
	s := d.opts.Styles
	switch {
	case n.IsDisabled():
		return s.ControlDisabled
	case n.HasClass(d.opts.PanelConfig.InvalidClass):
		return s.Invalid
	case focused:
		return s.ControlFocused
	default:
		return s.Control
	}
}

func (d *Driver) drawStatus(row, w int) {
	s := d.opts.Styles
	text := d.status
	switch {
	case d.editor != nil:
		text = fmt.Sprintf("-- %s -- %s", d.editor.Mode(), d.editor.Name())
		if err := d.editor.Err(); err != nil {
			text += ": " + err.Error()
		}
	case d.Layer() != "":
		text = fmt.Sprintf("-- %s --", strings.ToUpper(d.Layer()))
	}
	d.screen.DrawBox(0, row, w, 1, s.Status)
	d.screen.DrawText(1, row, w-1, 1, s.Status, text)
}

// overlay draws a centered box and returns its inner dimensions.
func (d *Driver) overlay(w, h int, style styling.Style, title string) (x, y, iw, ih int) {
	bw, bh := w*3/4, h*3/4
	bx, by := (w-bw)/2, (h-bh)/2
	d.screen.DrawBox(bx, by, bw, bh, style)
	d.screen.DrawText(bx+(bw-len(title))/2, by, len(title), 1, style.Bolded(), title)
	return bx + 1, by + 2, bw - 2, bh - 3
}

func (d *Driver) drawHelp(w, h int) {
	s := d.opts.Styles
	x, y, iw, ih := d.overlay(w, h, s.Help, "HELP")
	lines := d.processor.Help().Lines()
	width := 0
	for _, l := range lines {
		if len(l.Keys) > width {
			width = len(l.Keys)
		}
	}
	for i, l := range lines {
		if i >= ih {
			break
		}
		d.screen.DrawText(x, y+i, iw, 1, s.Help, fmt.Sprintf("%*s  %s", width, l.Keys, l.Explanation))
	}
}

func (d *Driver) drawLog(w, h int) {
	s := d.opts.Styles
	x, y, iw, ih := d.overlay(w, h, s.LogDefault, "LOG")
	if d.opts.Logs == nil || ih <= 0 {
		return
	}
	entries := d.opts.Logs.Get()
	if len(entries) > ih {
		entries = entries[len(entries)-ih:]
	}
	for i := range entries {
		// newest first
		entry := entries[len(entries)-1-i]
		level, _ := entry["level"].(string)
		message, _ := entry["message"].(string)
		d.screen.DrawText(x, y+i, 7, 1, s.LogLevel(level), fmt.Sprintf("%-6s", level))
		d.screen.DrawText(x+7, y+i, iw-7, 1, s.LogDefault, message+extraFields(entry))
	}
}

func extraFields(entry map[string]any) string {
	var keys []string
	for k := range entry {
		switch k {
		case "level", "message", "time", "caller":
		default:
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, entry[k])
	}
	return sb.String()
}

func (d *Driver) drawPicker(w, h int) {
	s := d.opts.Styles
	x, y, iw, ih := d.overlay(w, h, s.Editor, "PICK ELEMENT")
	d.screen.DrawText(x, y, iw, 1, s.Editor, "> "+d.picker.Query())
	d.screen.ShowCursor(x+2+len([]rune(d.picker.Query())), y)
	for i, el := range d.picker.Matches() {
		if i+2 >= ih {
			break
		}
		style := s.Editor
		if i == d.picker.SelectedIndex() {
			style = s.ControlFocused
		}
		d.screen.DrawText(x, y+2+i, iw, 1, style, ElementLabel(d.registry, el))
	}
}

// Layer names the input layer keys currently go to: "edit", "pick", or ""
// for the panel itself.
func (d *Driver) Layer() string { return d.processor.Active() }

// EditorMode returns the mode of the open string editor, false if none is
// open.
func (d *Driver) EditorMode() (editor.Mode, bool) {
	if d.editor == nil {
		return 0, false
	}
	return d.editor.Mode(), true
}
