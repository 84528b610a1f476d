package handlers

import (
	"fmt"

	"github.com/ja-he/proppanel/internal/model"
)

// UpdateElementPropertiesContext is the context of UpdateElementPropertiesCmd.
type UpdateElementPropertiesContext struct {
	Element    *model.Element
	Properties map[string]any

	oldProperties map[string]any
	oldID         model.ID
	newID         model.ID
}

// UpdateElementProperties merges properties into the business object of a
// diagram element. Changing "id" renames the business object.
type UpdateElementProperties struct {
	registry *model.ElementRegistry
}

// Execute applies the properties.
func (h *UpdateElementProperties) Execute(ctx any) ([]model.ID, error) {
	c, err := contextAs[UpdateElementPropertiesContext](ctx)
	if err != nil {
		return nil, err
	}
	if c.Element == nil {
		return nil, missing("Element")
	}
	if c.Properties == nil {
		return nil, missing("Properties")
	}
	bo := h.registry.BusinessObject(c.Element)
	if bo == nil {
		return nil, fmt.Errorf("%w: element '%s' has no business object", ErrPrecondition, c.Element.ID)
	}

	props := make(map[string]any, len(c.Properties))
	for k, v := range c.Properties {
		props[k] = v
	}

	c.oldID, c.newID = bo.ID(), bo.ID()
	if v, ok := props["id"]; ok {
		delete(props, "id")
		newID := model.ID(fmt.Sprint(v))
		if v == nil || newID == "" {
			return nil, fmt.Errorf("%w: id must not be empty", ErrPrecondition)
		}
		if newID != c.oldID {
			if err := h.registry.Document().Rename(c.oldID, newID); err != nil {
				return nil, err
			}
			h.registry.RebindBusinessObject(c.oldID, newID)
			c.newID = newID
		}
	}

	c.oldProperties = applyProperties(bo, props)
	return []model.ID{c.Element.ID, c.oldID, c.newID}, nil
}

// Revert restores the previous values.
func (h *UpdateElementProperties) Revert(ctx any) ([]model.ID, error) {
	c, err := contextAs[UpdateElementPropertiesContext](ctx)
	if err != nil {
		return nil, err
	}
	bo := h.registry.BusinessObject(c.Element)
	if bo == nil {
		return nil, fmt.Errorf("%w: element '%s' has no business object", ErrPrecondition, c.Element.ID)
	}
	restoreProperties(bo, c.oldProperties)
	if c.newID != c.oldID {
		if err := h.registry.Document().Rename(c.newID, c.oldID); err != nil {
			return nil, err
		}
		h.registry.RebindBusinessObject(c.newID, c.oldID)
	}
	return []model.ID{c.Element.ID, c.oldID, c.newID}, nil
}
