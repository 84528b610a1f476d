package entry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/entry"
	"github.com/ja-he/proppanel/internal/model"
)

func TestCheck(t *testing.T) {
	ok := &entry.Group{ID: "g", Entries: []*entry.Entry{{ID: "a"}, {ID: "b"}}}
	assert.NoError(t, ok.Check())

	missing := &entry.Group{ID: "g", Entries: []*entry.Entry{{ID: "a"}, {}}}
	assert.True(t, errors.Is(missing.Check(), entry.ErrMissingID))

	dup := &entry.Group{ID: "g", Entries: []*entry.Entry{{ID: "a"}, {ID: "a"}}}
	assert.True(t, errors.Is(dup.Check(), entry.ErrDuplicateID))

	assert.True(t, errors.Is((&entry.Group{}).Check(), entry.ErrMissingID))

	tab := &entry.Tab{ID: "t", Groups: []*entry.Group{ok, {ID: "g"}}}
	assert.True(t, errors.Is(tab.Check(), entry.ErrDuplicateID))
	assert.True(t, errors.Is((&entry.Tab{}).Check(), entry.ErrMissingID))
}

func TestCallbacks(t *testing.T) {
	e := &entry.Entry{ID: "x"}
	_, ok := e.Action(dom.Click, "clear")
	assert.False(t, ok, "absent action")

	e.On(dom.Click, "clear", func(*model.Element, *dom.Node, dom.Event) bool { return true }).
		Show("always", func(*model.Element, *dom.Node, *dom.Node) bool { return true })

	fn, ok := e.Action(dom.Click, "clear")
	assert.True(t, ok)
	assert.True(t, fn(nil, nil, dom.Event{}))

	_, ok = e.Action(dom.Input, "clear")
	assert.False(t, ok, "action registered for another kind")

	_, ok = e.ShowPredicate("always")
	assert.True(t, ok)
}

func TestValues(t *testing.T) {
	v := entry.Values{"s": "x", "b": true, "n": nil}
	assert.Equal(t, "x", v.String("s"))
	assert.Equal(t, "", v.String("n"))
	assert.True(t, v.Bool("b"))
	assert.False(t, v.Bool("s"))
}

func TestSingleTab(t *testing.T) {
	p := entry.SingleTab(entry.GroupsFunc(func(*model.Element) []*entry.Group {
		return []*entry.Group{{ID: "g"}}
	}))
	tabs := p.Tabs(nil)
	assert.Len(t, tabs, 1)
	assert.Equal(t, entry.DefaultTabID, tabs[0].ID)
	assert.Equal(t, "g", tabs[0].Groups[0].ID)

	var cs entry.ChangeSet = entry.DirectUpdate{Properties: map[string]any{"name": "B"}}
	switch c := cs.(type) {
	case entry.DirectUpdate:
		assert.Equal(t, "B", c.Properties["name"])
	case entry.NamedCommand:
		t.Error("expected direct update")
	}
}
