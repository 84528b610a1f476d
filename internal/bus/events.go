package bus

import (
	"github.com/ja-he/proppanel/internal/model"
)

// Event types fired by the diagram host and the command stack.
const (
	DiagramInit         = "diagram.init"
	DiagramDestroy      = "diagram.destroy"
	SelectionChanged    = "selection.changed"
	ElementsChanged     = "elements.changed"
	CommandStackChanged = "commandStack.changed"
)

// SelectionChangedEvent is the payload of SelectionChanged.
type SelectionChangedEvent struct {
	OldSelection []*model.Element
	NewSelection []*model.Element
}

// ElementsChangedEvent is the payload of ElementsChanged.
// It names the IDs (elements or business objects) a change touched.
type ElementsChangedEvent struct {
	Elements []model.ID
}

// Contains returns whether the id is among the changed ids.
func (e ElementsChangedEvent) Contains(id model.ID) bool {
	for _, changed := range e.Elements {
		if changed == id {
			return true
		}
	}
	return false
}
