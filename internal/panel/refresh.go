package panel

import (
	"fmt"

	"github.com/ja-he/proppanel/internal/activation"
	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/model"
)

// refresher synchronizes rendered state with the document. It holds no
// command executor: refreshing never mutates the document.
type refresher struct {
	activator *activation.Activator
	cfg       Config
}

// refresh re-reads every entry's values, re-evaluates visibility and
// editability and re-runs the show predicates.
func (r *refresher) refresh(s *state) {
	el := s.element

	visibleGroups := map[*dom.Node]bool{}
	for _, b := range s.order {
		visible := r.activator.IsEntryVisible(el, b.entry, b.group, b.tab)
		b.region.ToggleClass(r.cfg.HiddenClass, !visible)
		if visible {
			visibleGroups[s.groupRegions[b.group]] = true
		}

		if b.entry.Get != nil {
			values := b.entry.Get(el, b.region)
			for _, c := range b.controls() {
				writeControl(c, values[c.GetAttr("name")])
			}
		}
		for _, c := range b.controls() {
			name := c.GetAttr("name")
			c.SetDisabled(!r.activator.IsPropertyEditable(name, el, b.entry, b.group, b.tab))
		}
		clearValidation(b, r.cfg.InvalidClass)
		runShows(el, b, r.cfg.HiddenClass)
	}

	for _, t := range s.tabs {
		tabVisible := false
		for _, g := range t.Groups {
			groupRegion := s.groupRegions[g]
			visible := visibleGroups[groupRegion]
			groupRegion.ToggleClass(r.cfg.HiddenClass, !visible)
			tabVisible = tabVisible || visible
		}
		s.tabRegions[t].ToggleClass(r.cfg.HiddenClass, !tabVisible)
	}
}

// writeControl shows v in a form control.
func writeControl(c *dom.Node, v any) {
	if c.IsToggle() {
		if b, ok := v.(bool); ok && !c.HasAttr("value") {
			c.Checked = b
			return
		}
		c.Checked = v != nil && formatValue(v) == c.Value
		return
	}
	c.Value = formatValue(v)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case model.ID:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// runShows toggles every data-show region of the entry by its predicate.
// Regions naming an unknown predicate are left alone.
func runShows(el *model.Element, b *boundEntry, hiddenClass string) {
	for _, n := range b.region.QueryAll(dom.WithAttr(ShowAttr)) {
		fn, ok := b.entry.ShowPredicate(n.GetAttr(ShowAttr))
		if !ok {
			continue
		}
		n.ToggleClass(hiddenClass, !fn(el, b.region, n))
	}
}

func clearValidation(b *boundEntry, invalidClass string) {
	for _, c := range b.controls() {
		c.RemoveClass(invalidClass)
	}
	for _, n := range b.region.QueryAll(dom.WithAttr(ErrorAttr)) {
		n.RemoveClass(invalidClass)
		n.SetText("")
	}
}
