package entry

import (
	"github.com/ja-he/proppanel/internal/model"
)

// DefaultTabID is the id of the tab wrapping groups-only providers.
const DefaultTabID = "general"

// Provider is the entry catalog the panel queries on every rebuild.
type Provider interface {
	Tabs(el *model.Element) []*Tab
}

// GroupsProvider is a catalog without tabs.
type GroupsProvider interface {
	Groups(el *model.Element) []*Group
}

// GroupsFunc adapts a function to a GroupsProvider.
type GroupsFunc func(el *model.Element) []*Group

// Groups calls f.
func (f GroupsFunc) Groups(el *model.Element) []*Group { return f(el) }

// SingleTab wraps a GroupsProvider into a Provider returning one tab.
func SingleTab(p GroupsProvider) Provider {
	return singleTab{p}
}

type singleTab struct {
	p GroupsProvider
}

func (s singleTab) Tabs(el *model.Element) []*Tab {
	return []*Tab{{ID: DefaultTabID, Label: "General", Groups: s.p.Groups(el)}}
}
