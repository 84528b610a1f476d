// Package provider is the default entry catalog for BPMN-like documents.
package provider

import (
	"github.com/ja-he/proppanel/internal/entry"
	"github.com/ja-he/proppanel/internal/model"
)

// Types the catalog knows about.
const (
	ProcessType       = "bpmn:Process"
	MessageType       = "bpmn:Message"
	DocumentationType = "bpmn:Documentation"
	PropertyType      = "camunda:Property"
)

// MessageTypes are the business object types that reference a message.
var MessageTypes = []string{"bpmn:ReceiveTask", "bpmn:SendTask", "bpmn:MessageEventDefinition"}

// Provider returns the tabs for an element.
type Provider struct {
	registry *model.ElementRegistry
}

// New returns the default catalog.
func New(registry *model.ElementRegistry) *Provider {
	return &Provider{registry: registry}
}

// Tabs returns a general tab and an extensions tab. New entries are built on
// every call.
func (p *Provider) Tabs(el *model.Element) []*entry.Tab {
	general := &entry.Tab{ID: "general", Label: "General"}
	general.Groups = append(general.Groups, &entry.Group{
		ID:      "general",
		Label:   "General",
		Entries: []*entry.Entry{p.idEntry(), p.nameEntry()},
	})
	if p.registry.Is(el, ProcessType) {
		general.Groups = append(general.Groups, &entry.Group{
			ID:      "details",
			Label:   "Details",
			Entries: []*entry.Entry{p.executableEntry()},
		})
	}
	if p.referencesMessage(el) {
		general.Groups = append(general.Groups, &entry.Group{
			ID:      "message",
			Label:   "Message",
			Entries: []*entry.Entry{p.messageEntry()},
		})
	}
	general.Groups = append(general.Groups, &entry.Group{
		ID:      "documentation",
		Label:   "Documentation",
		Entries: []*entry.Entry{p.documentationEntry()},
	})

	extensions := &entry.Tab{
		ID:    "extensions",
		Label: "Extensions",
		Groups: []*entry.Group{{
			ID:      "extensionProperties",
			Label:   "Properties",
			Entries: []*entry.Entry{p.extensionPropertiesEntry()},
		}},
	}

	return []*entry.Tab{general, extensions}
}

func (p *Provider) referencesMessage(el *model.Element) bool {
	for _, typ := range MessageTypes {
		if p.registry.Is(el, typ) {
			return true
		}
	}
	return false
}

// definitions returns the root object new shared objects (messages) are
// created under.
func (p *Provider) definitions(bo *model.Object) *model.Object {
	return p.registry.Document().Root(bo)
}
