package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ja-he/proppanel/internal/model"
)

// ElementLabel returns the line an element is listed and matched by.
func ElementLabel(registry *model.ElementRegistry, el *model.Element) string {
	label := string(el.ID)
	if bo := registry.BusinessObject(el); bo != nil {
		label += " " + bo.Type()
		if name := bo.GetString("name"); name != "" {
			label += " " + name
		}
	}
	return label
}

// MatchElements returns the elements matching query, best match first.
// An element whose ID equals the query always comes first; otherwise
// elements are ranked by fuzzy distance of their label.
func MatchElements(registry *model.ElementRegistry, query string) []*model.Element {
	elements := registry.All()
	query = strings.TrimSpace(query)
	if query == "" {
		return elements
	}

	labels := make([]string, len(elements))
	for i, el := range elements {
		labels[i] = ElementLabel(registry, el)
	}
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	sort.SliceStable(ranks, func(i, j int) bool {
		exactI := strings.EqualFold(string(elements[ranks[i].OriginalIndex].ID), query)
		exactJ := strings.EqualFold(string(elements[ranks[j].OriginalIndex].ID), query)
		if exactI != exactJ {
			return exactI
		}
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	result := make([]*model.Element, len(ranks))
	for i, r := range ranks {
		result[i] = elements[r.OriginalIndex]
	}
	return result
}

// ResolveElement returns the best match for query, failing if nothing
// matches.
func ResolveElement(registry *model.ElementRegistry, query string) (*model.Element, error) {
	if el, ok := registry.Get(model.ID(query)); ok {
		return el, nil
	}
	matches := MatchElements(registry, query)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no element matches '%s'", query)
	}
	return matches[0], nil
}

// Picker is the state of the fuzzy element picker overlay.
type Picker struct {
	registry *model.ElementRegistry
	query    []rune
	matches  []*model.Element
	selected int

	choose func(*model.Element)
	done   func()
}

// NewPicker returns a picker listing all elements.
// choose is called with the selected element, done when the picker closes.
func NewPicker(registry *model.ElementRegistry, choose func(*model.Element), done func()) *Picker {
	p := &Picker{registry: registry, choose: choose, done: done}
	p.update()
	return p
}

func (p *Picker) update() {
	p.matches = MatchElements(p.registry, string(p.query))
	p.selected = 0
}

func (p *Picker) Query() string             { return string(p.query) }
func (p *Picker) Matches() []*model.Element { return p.matches }
func (p *Picker) SelectedIndex() int        { return p.selected }

// AddRune appends to the query.
func (p *Picker) AddRune(r rune) {
	p.query = append(p.query, r)
	p.update()
}

// Backspace removes the last rune of the query.
func (p *Picker) Backspace() {
	if len(p.query) > 0 {
		p.query = p.query[:len(p.query)-1]
		p.update()
	}
}

func (p *Picker) Next() {
	if p.selected < len(p.matches)-1 {
		p.selected++
	}
}

func (p *Picker) Prev() {
	if p.selected > 0 {
		p.selected--
	}
}

// Select chooses the selected match, if any, and closes the picker.
func (p *Picker) Select() {
	if p.selected < len(p.matches) {
		p.choose(p.matches[p.selected])
	}
	p.Quit()
}

// Quit closes the picker without choosing.
func (p *Picker) Quit() {
	if p.done != nil {
		p.done()
	}
}
