package provider

import (
	"sort"

	"github.com/ja-he/proppanel/internal/command/handlers"
	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/entries"
	"github.com/ja-he/proppanel/internal/entry"
	"github.com/ja-he/proppanel/internal/model"
)

// NewMessageOption is the select value requesting a new message.
const NewMessageOption = "create:message"

// MessageNameRequiredMessage is shown when creating a message without a name.
const MessageNameRequiredMessage = "Message name must not be empty."

// messageEntry chooses the referenced message or creates a new one.
//
// Switching away from a message no other object references also removes that
// message from the definitions, in the same undo step.
func (p *Provider) messageEntry() *entry.Entry {
	e := entries.SelectBox(p.registry, entries.Options{
		ID:       "message",
		Label:    "Message",
		Property: "messageRef",
		Validate: func(_ *model.Element, values entry.Values) entry.Errors {
			if values.String("messageRef") == NewMessageOption && values["messageName"] == nil {
				return entry.Errors{"messageName": MessageNameRequiredMessage}
			}
			return nil
		},
		Set: p.setMessage,
	}, p.messageOptions)

	e.Markup += `<div data-show="isNewMessage">` +
		`<label for="pp-message-name">Name</label>` +
		`<input id="pp-message-name" type="text" name="messageName">` +
		`<div class="pp-error" data-error="messageName"></div>` +
		`</div>`
	e.Show("isNewMessage", func(_ *model.Element, region *dom.Node, _ *dom.Node) bool {
		sel := region.Query(func(n *dom.Node) bool { return n.GetAttr("name") == "messageRef" })
		return sel != nil && sel.Value == NewMessageOption
	})
	return e
}

// messageOptions lists the messages among the root elements of the
// definitions el lives in. Messages dropped from the definitions are not
// offered even while the document still holds them.
func (p *Provider) messageOptions(el *model.Element) []dom.Option {
	options := []dom.Option{{Value: "", Label: "<none>"}}
	var messages []dom.Option
	for _, o := range p.rootMessages(el) {
		label := o.GetString("name")
		if label == "" {
			label = string(o.ID())
		}
		messages = append(messages, dom.Option{Value: string(o.ID()), Label: label})
	}
	sort.SliceStable(messages, func(i, j int) bool { return messages[i].Label < messages[j].Label })
	options = append(options, messages...)
	return append(options, dom.Option{Value: NewMessageOption, Label: "Create new ..."})
}

// rootMessages returns the messages referenced by the definitions'
// rootElements. Without definitions holding root elements every message of
// the document counts.
func (p *Provider) rootMessages(el *model.Element) []*model.Object {
	doc := p.registry.Document()
	var definitions *model.Object
	if bo := p.registry.BusinessObject(el); bo != nil {
		definitions = p.definitions(bo)
	}

	var messages []*model.Object
	if definitions == nil || !definitions.Has("rootElements") {
		for _, o := range doc.Objects() {
			if o.Type() == MessageType {
				messages = append(messages, o)
			}
		}
		return messages
	}
	for _, id := range definitions.GetRefs("rootElements") {
		if o, ok := doc.Get(id); ok && o.Type() == MessageType {
			messages = append(messages, o)
		}
	}
	return messages
}

func (p *Provider) setMessage(el *model.Element, values entry.Values, _ *dom.Node) (entry.ChangeSet, error) {
	bo := p.registry.BusinessObject(el)
	if bo == nil {
		return nil, nil
	}
	definitions := p.definitions(bo)
	old := bo.GetRef("messageRef")
	selected := values.String("messageRef")

	var steps []handlers.CommandSpec
	switch {
	case selected == NewMessageOption:
		steps = append(steps, handlers.CommandSpec{
			Cmd: handlers.CreateAndReferenceCmd,
			Context: &handlers.CreateAndReferenceContext{
				Element:           el,
				ReferencingObject: bo,
				ReferenceProperty: "messageRef",
				Parent:            definitions,
				ContainerProperty: "rootElements",
				NewObject: handlers.ObjectSpec{
					Type:       MessageType,
					Properties: map[string]any{"name": values["messageName"]},
				},
			},
		})
	case model.ID(selected) == old:
		return nil, nil
	default:
		var ref any
		if selected != "" {
			ref = model.ID(selected)
		}
		steps = append(steps, handlers.CommandSpec{
			Cmd: handlers.UpdateBusinessObjectCmd,
			Context: &handlers.UpdateBusinessObjectContext{
				Element:        el,
				BusinessObject: bo,
				Properties:     map[string]any{"messageRef": ref},
			},
		})
	}

	if orphan := p.orphanedMessage(old, bo); orphan != nil && definitions != nil {
		steps = append(steps, handlers.CommandSpec{
			Cmd: handlers.UpdateBusinessObjectListCmd,
			Context: &handlers.UpdateBusinessObjectListContext{
				Element:         el,
				CurrentObject:   definitions,
				PropertyName:    "rootElements",
				ObjectsToRemove: []*model.Object{orphan},
			},
		})
	}

	return entry.NamedCommand{Cmd: handlers.MultiCommandExecutorCmd, Context: steps}, nil
}

// orphanedMessage returns the message id refers to if nothing but bo
// references it.
func (p *Provider) orphanedMessage(id model.ID, bo *model.Object) *model.Object {
	if id == "" {
		return nil
	}
	doc := p.registry.Document()
	msg, ok := doc.Get(id)
	if !ok {
		return nil
	}
	for _, o := range doc.Objects() {
		if o != bo && o.GetRef("messageRef") == id {
			return nil
		}
	}
	return msg
}
