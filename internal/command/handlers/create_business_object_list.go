package handlers

import (
	"github.com/ja-he/proppanel/internal/model"
)

// CreateBusinessObjectListContext is the context of
// CreateBusinessObjectListCmd.
type CreateBusinessObjectListContext struct {
	Element       *model.Element
	CurrentObject *model.Object
	PropertyName  string
	NewObjects    []ObjectSpec

	created  []*model.Object
	oldValue any
	hadValue bool
}

// CreateBusinessObjectList creates a batch of objects under CurrentObject and
// replaces PropertyName with the list of their references.
type CreateBusinessObjectList struct {
	doc *model.Document
}

// Execute creates the objects and sets the property.
func (h *CreateBusinessObjectList) Execute(ctx any) ([]model.ID, error) {
	c, err := contextAs[CreateBusinessObjectListContext](ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case c.Element == nil:
		return nil, missing("Element")
	case c.CurrentObject == nil:
		return nil, missing("CurrentObject")
	case c.PropertyName == "":
		return nil, missing("PropertyName")
	case c.NewObjects == nil:
		return nil, missing("NewObjects")
	}

	if c.created == nil {
		c.created = make([]*model.Object, 0, len(c.NewObjects))
		for _, spec := range c.NewObjects {
			c.created = append(c.created, spec.create(c.CurrentObject.ID()))
		}
	}
	for i, o := range c.created {
		if err := h.doc.Add(o); err != nil {
			for _, added := range c.created[:i] {
				h.doc.Remove(added.ID())
			}
			return nil, err
		}
	}

	c.hadValue = c.CurrentObject.Has(c.PropertyName)
	c.oldValue = c.CurrentObject.Get(c.PropertyName)
	c.CurrentObject.Set(c.PropertyName, ids(c.created))

	return []model.ID{c.Element.ID, c.CurrentObject.ID()}, nil
}

// Revert restores the previous property value and drops the created objects.
func (h *CreateBusinessObjectList) Revert(ctx any) ([]model.ID, error) {
	c, err := contextAs[CreateBusinessObjectListContext](ctx)
	if err != nil {
		return nil, err
	}
	if c.hadValue {
		c.CurrentObject.Set(c.PropertyName, c.oldValue)
	} else {
		c.CurrentObject.Set(c.PropertyName, nil)
	}
	for _, o := range c.created {
		h.doc.Remove(o.ID())
	}
	return []model.ID{c.Element.ID, c.CurrentObject.ID()}, nil
}

// Created returns the objects created by the last execution.
func (c *CreateBusinessObjectListContext) Created() []*model.Object {
	return c.created
}
