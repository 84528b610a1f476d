package provider

import (
	"github.com/ja-he/proppanel/internal/command/handlers"
	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/entries"
	"github.com/ja-he/proppanel/internal/entry"
	"github.com/ja-he/proppanel/internal/model"
)

// documentationEntry edits the text of the first documentation object of
// the business object.
func (p *Provider) documentationEntry() *entry.Entry {
	return entries.TextArea(p.registry, entries.Options{
		ID:    "documentation",
		Label: "Element Documentation",
		Get: func(el *model.Element, _ *dom.Node) entry.Values {
			if d := p.documentation(el); d != nil {
				return entry.Values{"documentation": d.Get("text")}
			}
			return entry.Values{}
		},
		Set: func(el *model.Element, values entry.Values, _ *dom.Node) (entry.ChangeSet, error) {
			bo := p.registry.BusinessObject(el)
			if bo == nil {
				return nil, nil
			}
			text := values["documentation"]
			d := p.documentation(el)
			switch {
			case d == nil && text == nil:
				return nil, nil
			case d == nil:
				return entry.NamedCommand{
					Cmd: handlers.CreateBusinessObjectListCmd,
					Context: &handlers.CreateBusinessObjectListContext{
						Element:       el,
						CurrentObject: bo,
						PropertyName:  "documentation",
						NewObjects:    []handlers.ObjectSpec{{Type: DocumentationType, Properties: map[string]any{"text": text}}},
					},
				}, nil
			case text == nil:
				return entry.NamedCommand{
					Cmd: handlers.UpdateBusinessObjectListCmd,
					Context: &handlers.UpdateBusinessObjectListContext{
						Element:         el,
						CurrentObject:   bo,
						PropertyName:    "documentation",
						ObjectsToRemove: []*model.Object{d},
					},
				}, nil
			default:
				return entry.NamedCommand{
					Cmd: handlers.UpdateBusinessObjectCmd,
					Context: &handlers.UpdateBusinessObjectContext{
						Element:        el,
						BusinessObject: d,
						Properties:     map[string]any{"text": text},
					},
				}, nil
			}
		},
	})
}

func (p *Provider) documentation(el *model.Element) *model.Object {
	bo := p.registry.BusinessObject(el)
	if bo == nil {
		return nil
	}
	for _, id := range bo.GetRefs("documentation") {
		if d, ok := p.registry.Document().Get(id); ok {
			return d
		}
	}
	return nil
}
