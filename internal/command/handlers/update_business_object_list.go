package handlers

import (
	"github.com/ja-he/proppanel/internal/model"
)

// UpdateBusinessObjectListContext is the context of
// UpdateBusinessObjectListCmd.
//
// A non-nil UpdatedObjectList replaces the list outright (an empty, non-nil
// slice clears it) and ObjectsToRemove/ObjectsToAdd are ignored. Otherwise
// ObjectsToRemove are removed first, then ObjectsToAdd are appended.
// Objects to add that are not yet part of the document are added to it,
// owned by CurrentObject unless they name a parent of their own.
type UpdateBusinessObjectListContext struct {
	Element           *model.Element
	CurrentObject     *model.Object
	PropertyName      string
	UpdatedObjectList []*model.Object
	ObjectsToRemove   []*model.Object
	ObjectsToAdd      []*model.Object

	oldList  []model.ID
	hadList  bool
	inserted []model.ID
}

// UpdateBusinessObjectList updates a reference list property.
type UpdateBusinessObjectList struct {
	doc *model.Document
}

// Execute computes and sets the new list.
func (h *UpdateBusinessObjectList) Execute(ctx any) ([]model.ID, error) {
	c, err := contextAs[UpdateBusinessObjectListContext](ctx)
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
	}

	c.hadList = c.CurrentObject.Has(c.PropertyName)
	c.oldList = c.CurrentObject.GetRefs(c.PropertyName)

	var next []model.ID
	var candidates []*model.Object
	if c.UpdatedObjectList != nil {
		candidates = c.UpdatedObjectList
		next = ids(c.UpdatedObjectList)
	} else {
		remove := ids(c.ObjectsToRemove)
		next = make([]model.ID, 0, len(c.oldList)+len(c.ObjectsToAdd))
		for _, id := range c.oldList {
			if !containsID(remove, id) {
				next = append(next, id)
			}
		}
		next = append(next, ids(c.ObjectsToAdd)...)
		candidates = c.ObjectsToAdd
	}

	c.inserted = nil
	for _, o := range candidates {
		if h.doc.Contains(o.ID()) {
			continue
		}
		if o.Parent() == "" {
			o.SetParent(c.CurrentObject.ID())
		}
		if err := h.doc.Add(o); err != nil {
			h.removeInserted(c)
			return nil, err
		}
		c.inserted = append(c.inserted, o.ID())
	}

	c.CurrentObject.Set(c.PropertyName, next)
	return []model.ID{c.Element.ID, c.CurrentObject.ID()}, nil
}

// Revert restores the previous list.
func (h *UpdateBusinessObjectList) Revert(ctx any) ([]model.ID, error) {
	c, err := contextAs[UpdateBusinessObjectListContext](ctx)
	if err != nil {
		return nil, err
	}
	if c.hadList {
		c.CurrentObject.Set(c.PropertyName, c.oldList)
	} else {
		c.CurrentObject.Set(c.PropertyName, nil)
	}
	h.removeInserted(c)
	return []model.ID{c.Element.ID, c.CurrentObject.ID()}, nil
}

func (h *UpdateBusinessObjectList) removeInserted(c *UpdateBusinessObjectListContext) {
	for _, id := range c.inserted {
		h.doc.Remove(id)
	}
	c.inserted = nil
}
