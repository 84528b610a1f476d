package provider

import (
	"fmt"
	"strconv"

	"github.com/ja-he/proppanel/internal/command/handlers"
	"github.com/ja-he/proppanel/internal/dom"
	"github.com/ja-he/proppanel/internal/entry"
	"github.com/ja-he/proppanel/internal/model"
)

// PropertyNameRequiredMessage is shown when adding a property without a name.
const PropertyNameRequiredMessage = "Property name must not be empty."

type listOpKind int

const (
	noListOp listOpKind = iota
	addListOp
	removeListOp
)

type listOp struct {
	kind  listOpKind
	index int
}

// extensionPropertiesEntry lists the name/value properties of the business
// object and adds or removes them.
func (p *Provider) extensionPropertiesEntry() *entry.Entry {
	var pending listOp

	e := &entry.Entry{
		ID: "properties",
		Markup: `<ul class="pp-list" data-list="properties"></ul>` +
			`<label for="pp-property-name">Name</label>` +
			`<input id="pp-property-name" type="text" name="propertyName" data-on-change="edit">` +
			`<div class="pp-error" data-error="propertyName"></div>` +
			`<label for="pp-property-value">Value</label>` +
			`<input id="pp-property-value" type="text" name="propertyValue" data-on-change="edit">` +
			`<button class="pp-add" data-action="add">Add Property</button>`,
	}

	e.Get = func(el *model.Element, region *dom.Node) entry.Values {
		p.renderProperties(el, region)
		return entry.Values{}
	}
	e.Validate = func(_ *model.Element, values entry.Values) entry.Errors {
		if pending.kind == addListOp && values["propertyName"] == nil {
			return entry.Errors{"propertyName": PropertyNameRequiredMessage}
		}
		return nil
	}
	e.Set = func(el *model.Element, values entry.Values, _ *dom.Node) (entry.ChangeSet, error) {
		bo := p.registry.BusinessObject(el)
		if bo == nil {
			return nil, nil
		}
		switch pending.kind {
		case addListOp:
			prop := model.NewObject(model.NewID("Property"), PropertyType, bo.ID(), map[string]any{
				"name":  values["propertyName"],
				"value": values["propertyValue"],
			})
			return entry.NamedCommand{
				Cmd: handlers.UpdateBusinessObjectListCmd,
				Context: &handlers.UpdateBusinessObjectListContext{
					Element:       el,
					CurrentObject: bo,
					PropertyName:  "properties",
					ObjectsToAdd:  []*model.Object{prop},
				},
			}, nil
		case removeListOp:
			props := p.properties(bo)
			if pending.index < 0 || pending.index >= len(props) {
				return nil, fmt.Errorf("no property at index %d", pending.index)
			}
			return entry.NamedCommand{
				Cmd: handlers.UpdateBusinessObjectListCmd,
				Context: &handlers.UpdateBusinessObjectListContext{
					Element:         el,
					CurrentObject:   bo,
					PropertyName:    "properties",
					ObjectsToRemove: []*model.Object{props[pending.index]},
				},
			}, nil
		}
		return nil, nil
	}

	e.On(dom.Change, "edit", func(*model.Element, *dom.Node, dom.Event) bool {
		pending = listOp{}
		return false
	})
	e.On(dom.Click, "add", func(*model.Element, *dom.Node, dom.Event) bool {
		pending = listOp{kind: addListOp}
		return true
	})
	e.On(dom.Click, "remove", func(_ *model.Element, button *dom.Node, _ dom.Event) bool {
		i, err := strconv.Atoi(button.GetAttr("data-index"))
		if err != nil {
			return false
		}
		pending = listOp{kind: removeListOp, index: i}
		return true
	})

	return e
}

func (p *Provider) properties(bo *model.Object) []*model.Object {
	var result []*model.Object
	for _, id := range bo.GetRefs("properties") {
		if o, ok := p.registry.Document().Get(id); ok {
			result = append(result, o)
		}
	}
	return result
}

func (p *Provider) renderProperties(el *model.Element, region *dom.Node) {
	list := region.Query(dom.WithAttrValue("data-list", "properties"))
	if list == nil {
		return
	}
	list.RemoveChildren()
	bo := p.registry.BusinessObject(el)
	if bo == nil {
		return
	}
	for i, prop := range p.properties(bo) {
		item := dom.NewElement("li")
		label := dom.NewElement("span")
		label.SetText(fmt.Sprintf("%s = %s", prop.GetString("name"), prop.GetString("value")))
		item.AppendChild(label)
		remove := dom.NewElement("button")
		remove.SetAttr("data-action", "remove")
		remove.SetAttr("data-index", strconv.Itoa(i))
		remove.SetText("Remove")
		item.AppendChild(remove)
		list.AppendChild(item)
	}
}
