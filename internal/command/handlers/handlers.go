// Package handlers contains the undoable commands the properties panel
// mutates the document with.
package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ja-he/proppanel/internal/command"
	"github.com/ja-he/proppanel/internal/model"
)

// Command ids the handlers are registered under.
const (
	UpdateElementPropertiesCmd  = "element.updateProperties"
	UpdateBusinessObjectCmd     = "properties-panel.update-businessobject"
	UpdateBusinessObjectListCmd = "properties-panel.update-businessobject-list"
	CreateAndReferenceCmd       = "properties-panel.create-and-reference"
	CreateBusinessObjectListCmd = "properties-panel.create-businessobject-list"
	MultiCommandExecutorCmd     = "properties-panel.multi-command-executor"
)

// ErrPrecondition is returned when a command context lacks a required field.
var ErrPrecondition = errors.New("command precondition violated")

func missing(field string) error {
	return fmt.Errorf("%w: '%s' is required", ErrPrecondition, field)
}

// Register registers all handlers with the stack.
func Register(stack *command.Stack, registry *model.ElementRegistry) error {
	doc := registry.Document()
	for id, h := range map[string]command.Handler{
		UpdateElementPropertiesCmd:  &UpdateElementProperties{registry: registry},
		UpdateBusinessObjectCmd:     &UpdateBusinessObject{},
		UpdateBusinessObjectListCmd: &UpdateBusinessObjectList{doc: doc},
		CreateAndReferenceCmd:       &CreateAndReference{doc: doc},
		CreateBusinessObjectListCmd: &CreateBusinessObjectList{doc: doc},
		MultiCommandExecutorCmd:     &MultiCommandExecutor{stack: stack},
	} {
		if err := stack.RegisterHandler(id, h); err != nil {
			return err
		}
	}
	return nil
}

// contextAs asserts the context type, turning a nil or foreign context into a
// precondition error.
func contextAs[T any](ctx any) (*T, error) {
	c, ok := ctx.(*T)
	if !ok || c == nil {
		var zero T
		return nil, fmt.Errorf("%w: expected context of type %T, got %T", ErrPrecondition, &zero, ctx)
	}
	return c, nil
}

// applyProperties sets props on o and returns the previous values of the
// touched keys (nil for keys that were unset).
func applyProperties(o *model.Object, props map[string]any) map[string]any {
	old := make(map[string]any, len(props))
	for k, v := range props {
		if o.Has(k) {
			old[k] = o.Get(k)
		} else {
			old[k] = nil
		}
		o.Set(k, v)
	}
	return old
}

func restoreProperties(o *model.Object, old map[string]any) {
	for k, v := range old {
		o.Set(k, v)
	}
}

func ids(objects []*model.Object) []model.ID {
	result := make([]model.ID, 0, len(objects))
	for _, o := range objects {
		result = append(result, o.ID())
	}
	return result
}

func containsID(list []model.ID, id model.ID) bool {
	for _, other := range list {
		if other == id {
			return true
		}
	}
	return false
}

// idPrefix derives an ID prefix from a type name, "bpmn:Message" -> "Message".
func idPrefix(typ string) string {
	if i := strings.LastIndex(typ, ":"); i >= 0 {
		return typ[i+1:]
	}
	return typ
}

// ObjectSpec describes an object to be created by a command.
type ObjectSpec struct {
	Type       string
	Properties map[string]any
}

func (s ObjectSpec) create(parent model.ID) *model.Object {
	return model.NewObject(model.NewID(idPrefix(s.Type)), s.Type, parent, s.Properties)
}
