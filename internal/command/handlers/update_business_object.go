package handlers

import (
	"github.com/ja-he/proppanel/internal/model"
)

// UpdateBusinessObjectContext is the context of UpdateBusinessObjectCmd.
type UpdateBusinessObjectContext struct {
	Element        *model.Element
	BusinessObject *model.Object
	Properties     map[string]any

	oldProperties map[string]any
}

// UpdateBusinessObject merges properties into an arbitrary business object,
// e.g. one referenced by the selected element.
type UpdateBusinessObject struct{}

// Execute applies the properties.
func (h *UpdateBusinessObject) Execute(ctx any) ([]model.ID, error) {
	c, err := contextAs[UpdateBusinessObjectContext](ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case c.Element == nil:
		return nil, missing("Element")
	case c.BusinessObject == nil:
		return nil, missing("BusinessObject")
	case c.Properties == nil:
		return nil, missing("Properties")
	}
	c.oldProperties = applyProperties(c.BusinessObject, c.Properties)
	return []model.ID{c.Element.ID, c.BusinessObject.ID()}, nil
}

// Revert restores the previous values.
func (h *UpdateBusinessObject) Revert(ctx any) ([]model.ID, error) {
	c, err := contextAs[UpdateBusinessObjectContext](ctx)
	if err != nil {
		return nil, err
	}
	restoreProperties(c.BusinessObject, c.oldProperties)
	return []model.ID{c.Element.ID, c.BusinessObject.ID()}, nil
}
