// Package model implements the document edited through the properties panel.
//
// The document is an arena of objects addressed by ID. Parent/child and
// reference relationships are stored as IDs (non-owning handles), never as
// pointers, so that the arena remains the single owner of every object.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ID addresses an object or element within a document.
type ID string

// ErrUnknownObject is returned when an ID does not resolve within a document.
var ErrUnknownObject = errors.New("unknown object")

// ErrDuplicateObject is returned when adding an object whose ID is taken.
var ErrDuplicateObject = errors.New("duplicate object id")

// NewID returns a fresh ID with the given prefix, e.g. "Message_1a2b3c4d".
func NewID(prefix string) ID {
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if prefix == "" {
		return ID(short)
	}
	return ID(prefix + "_" + short)
}

// Object is a business object: a typed bag of properties.
//
// Property values are plain values (string, bool, numbers), references (ID)
// or reference lists ([]ID).
//
// NOTE: Set must only be called from command handlers, any other write
// bypasses the undo stack.
type Object struct {
	id     ID
	typ    string
	parent ID
	props  map[string]any
}

// NewObject constructs a detached object (not yet part of any document).
func NewObject(id ID, typ string, parent ID, props map[string]any) *Object {
	o := &Object{
		id:     id,
		typ:    typ,
		parent: parent,
		props:  make(map[string]any, len(props)),
	}
	for k, v := range props {
		o.props[k] = v
	}
	return o
}

// ID returns the object's ID.
func (o *Object) ID() ID { return o.id }

// Type returns the object's type name, e.g. "bpmn:Process".
func (o *Object) Type() string { return o.typ }

// Parent returns the ID of the owning object ("" for roots).
func (o *Object) Parent() ID { return o.parent }

// SetParent re-parents the object.
func (o *Object) SetParent(parent ID) { o.parent = parent }

// Get returns the value of a property, nil if unset.
// The pseudo-property "id" resolves to the object's ID.
func (o *Object) Get(prop string) any {
	if prop == "id" {
		return string(o.id)
	}
	return o.props[prop]
}

// Has returns whether the property is set.
func (o *Object) Has(prop string) bool {
	if prop == "id" {
		return true
	}
	_, ok := o.props[prop]
	return ok
}

// Set sets a property. Setting nil removes the property.
// Setting "id" changes the object's ID; callers must go through
// Document.Rename to keep the arena consistent.
func (o *Object) Set(prop string, value any) {
	if value == nil {
		delete(o.props, prop)
		return
	}
	o.props[prop] = value
}

// GetString returns a string property, "" if unset or not a string.
func (o *Object) GetString(prop string) string {
	s, _ := o.Get(prop).(string)
	return s
}

// GetBool returns a boolean property, false if unset or not a bool.
func (o *Object) GetBool(prop string) bool {
	b, _ := o.Get(prop).(bool)
	return b
}

// GetRef returns a reference property, "" if unset.
func (o *Object) GetRef(prop string) ID {
	switch v := o.Get(prop).(type) {
	case ID:
		return v
	case string:
		return ID(v)
	default:
		return ""
	}
}

// GetRefs returns a copy of a reference list property.
func (o *Object) GetRefs(prop string) []ID {
	switch v := o.Get(prop).(type) {
	case []ID:
		return append([]ID(nil), v...)
	case []any:
		result := make([]ID, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, ID(s))
			}
		}
		return result
	default:
		return nil
	}
}

// Props returns the set property names in sorted order.
func (o *Object) Props() []string {
	names := make([]string, 0, len(o.props))
	for k := range o.props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (o *Object) String() string {
	return fmt.Sprintf("%s<%s>", o.typ, o.id)
}
