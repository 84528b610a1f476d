package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/proppanel/internal/dom"
)

const panelMarkup = `<div class="pp-tab" data-tab="general">
<div class="pp-tab-label">General</div>
<div class="pp-group" data-group="general">
<div class="pp-group-label">General</div>
<div class="pp-entry" data-entry="name">
<label for="pp-name">Name</label>
<input id="pp-name" type="text" name="name" value="Order">
<button data-action="clear" data-show="canClear" class="pp-hidden">x</button>
<div class="pp-error invalid" data-error="name">Name is required.</div>
<div class="pp-description">The name.</div>
</div>
<div class="pp-entry" data-entry="kind">
<select name="kind"><option value="a">Alpha</option><option value="b" selected>Beta</option></select>
<input type="checkbox" name="flag" checked>
</div>
</div>
</div>
<div class="pp-tab pp-hidden" data-tab="hidden"><div class="pp-tab-label">Hidden</div></div>`

func TestLayout(t *testing.T) {
	root := dom.NewElement("div")
	require.NoError(t, dom.ParseInto(root, panelMarkup))

	tabs := visibleTabs(root, "pp-hidden")
	require.Len(t, tabs, 1)
	assert.Equal(t, "general", tabs[0].id)
	assert.Equal(t, "General", tabs[0].label)

	lines := layoutTab(tabs[0].node, "pp-hidden")
	var kinds []lineKind
	var texts []string
	for _, l := range lines {
		kinds = append(kinds, l.kind)
		if l.node != nil {
			texts = append(texts, controlText(l.node))
		} else {
			texts = append(texts, l.text)
		}
	}
	assert.Equal(t, []lineKind{lineGroup, lineLabel, lineControl, lineError, lineText, lineControl, lineControl}, kinds)
	assert.Equal(t, []string{"General", "Name", "[Order]", "Name is required.", "The name.", "< Beta >", "[x]"}, texts)
	assert.Equal(t, 0, lines[0].depth)
	assert.Equal(t, 1, lines[1].depth, "group contents are indented")
	assert.Equal(t, []int{2, 5, 6}, focusables(lines))
}

func TestVisibleTabsOfNothing(t *testing.T) {
	assert.Empty(t, visibleTabs(nil, "pp-hidden"))
}
