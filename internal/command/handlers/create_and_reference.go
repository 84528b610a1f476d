package handlers

import (
	"github.com/ja-he/proppanel/internal/model"
)

// CreateAndReferenceContext is the context of CreateAndReferenceCmd.
//
// A new object of NewObject.Type is created under Parent, appended to the
// reference list Parent.ContainerProperty and referenced from
// ReferencingObject.ReferenceProperty.
type CreateAndReferenceContext struct {
	Element           *model.Element
	ReferencingObject *model.Object
	ReferenceProperty string
	Parent            *model.Object
	ContainerProperty string
	NewObject         ObjectSpec

	// Created is the object created on first execution (and re-used on redo).
	Created *model.Object

	oldReference    any
	oldContainer    []model.ID
	hadContainer    bool
	hadOldReference bool
}

// CreateAndReference creates an object and references it in one step.
type CreateAndReference struct {
	doc *model.Document
}

// Execute creates, appends and references the new object.
func (h *CreateAndReference) Execute(ctx any) ([]model.ID, error) {
	c, err := contextAs[CreateAndReferenceContext](ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case c.Element == nil:
		return nil, missing("Element")
	case c.ReferencingObject == nil:
		return nil, missing("ReferencingObject")
	case c.ReferenceProperty == "":
		return nil, missing("ReferenceProperty")
	case c.Parent == nil:
		return nil, missing("Parent")
	case c.ContainerProperty == "":
		return nil, missing("ContainerProperty")
	case c.NewObject.Type == "":
		return nil, missing("NewObject.Type")
	}

	if c.Created == nil {
		c.Created = c.NewObject.create(c.Parent.ID())
	}
	if err := h.doc.Add(c.Created); err != nil {
		return nil, err
	}

	c.hadContainer = c.Parent.Has(c.ContainerProperty)
	c.oldContainer = c.Parent.GetRefs(c.ContainerProperty)
	c.hadOldReference = c.ReferencingObject.Has(c.ReferenceProperty)
	c.oldReference = c.ReferencingObject.Get(c.ReferenceProperty)

	container := append(append([]model.ID(nil), c.oldContainer...), c.Created.ID())
	c.Parent.Set(c.ContainerProperty, container)
	c.ReferencingObject.Set(c.ReferenceProperty, c.Created.ID())

	return []model.ID{c.Element.ID, c.ReferencingObject.ID(), c.Parent.ID()}, nil
}

// Revert removes the created object and restores the previous reference.
func (h *CreateAndReference) Revert(ctx any) ([]model.ID, error) {
	c, err := contextAs[CreateAndReferenceContext](ctx)
	if err != nil {
		return nil, err
	}
	if c.hadContainer {
		c.Parent.Set(c.ContainerProperty, c.oldContainer)
	} else {
		c.Parent.Set(c.ContainerProperty, nil)
	}
	if c.hadOldReference {
		c.ReferencingObject.Set(c.ReferenceProperty, c.oldReference)
	} else {
		c.ReferencingObject.Set(c.ReferenceProperty, nil)
	}
	if c.Created != nil {
		h.doc.Remove(c.Created.ID())
	}
	return []model.ID{c.Element.ID, c.ReferencingObject.ID(), c.Parent.ID()}, nil
}
