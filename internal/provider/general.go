package provider

import (
	"strings"
	"unicode"

	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/entries"
	"github.com/ja-he/proppanel/internal/entry"
	"github.com/ja-he/proppanel/internal/model"
)

// Validation messages of the id entry.
const (
	IDRequiredMessage   = "Element must have an unique id."
	IDWhitespaceMessage = "Id must not contain spaces."
	IDNotUniqueMessage  = "Element must have an unique id."
)

func (p *Provider) idEntry() *entry.Entry {
	return entries.TextField(p.registry, entries.Options{
		ID:    "id",
		Label: "Id",
		Get: func(el *model.Element, _ *dom.Node) entry.Values {
			return entry.Values{"id": string(el.BusinessObject)}
		},
		Validate: func(el *model.Element, values entry.Values) entry.Errors {
			return entry.Errors{"id": p.validateID(el, values["id"])}
		},
	})
}

func (p *Provider) validateID(el *model.Element, v any) string {
	id, _ := v.(string)
	switch {
	case id == "":
		return IDRequiredMessage
	case strings.IndexFunc(id, unicode.IsSpace) >= 0:
		return IDWhitespaceMessage
	case model.ID(id) != el.BusinessObject && p.registry.Document().Contains(model.ID(id)):
		return IDNotUniqueMessage
	}
	return ""
}

func (p *Provider) nameEntry() *entry.Entry {
	return entries.TextField(p.registry, entries.Options{ID: "name", Label: "Name"})
}

func (p *Provider) executableEntry() *entry.Entry {
	return entries.Checkbox(p.registry, entries.Options{ID: "isExecutable", Label: "Executable"})
}
