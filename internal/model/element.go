package model

import (
	"fmt"
)

// Element is a diagram element, the visual projection of a business object.
type Element struct {
	ID             ID
	BusinessObject ID
	Parent         ID
}

// ElementRegistry holds the diagram elements of a document.
type ElementRegistry struct {
	doc      *Document
	elements map[ID]*Element
	order    []ID
}

// NewElementRegistry returns an empty registry over the given document.
func NewElementRegistry(doc *Document) *ElementRegistry {
	return &ElementRegistry{
		doc:      doc,
		elements: make(map[ID]*Element),
	}
}

// Document returns the document the elements project.
func (r *ElementRegistry) Document() *Document { return r.doc }

// Add registers an element.
func (r *ElementRegistry) Add(el *Element) error {
	if el == nil || el.ID == "" {
		return fmt.Errorf("cannot register element without id")
	}
	if _, exists := r.elements[el.ID]; exists {
		return fmt.Errorf("%w: element '%s'", ErrDuplicateObject, el.ID)
	}
	r.elements[el.ID] = el
	r.order = append(r.order, el.ID)
	return nil
}

// Get returns the element for the ID.
func (r *ElementRegistry) Get(id ID) (*Element, bool) {
	el, ok := r.elements[id]
	return el, ok
}

// ForEach calls fn for every element in registration order.
func (r *ElementRegistry) ForEach(fn func(el *Element)) {
	for _, id := range r.order {
		fn(r.elements[id])
	}
}

// Filter returns the elements matching the predicate.
func (r *ElementRegistry) Filter(pred func(el *Element) bool) []*Element {
	var result []*Element
	r.ForEach(func(el *Element) {
		if pred(el) {
			result = append(result, el)
		}
	})
	return result
}

// All returns all elements in registration order.
func (r *ElementRegistry) All() []*Element {
	return r.Filter(func(*Element) bool { return true })
}

// BusinessObject returns the business object backing the element, nil if
// the element is nil or its business object is not part of the document.
func (r *ElementRegistry) BusinessObject(el *Element) *Object {
	if el == nil {
		return nil
	}
	o, _ := r.doc.Get(el.BusinessObject)
	return o
}

// Is returns whether the element's business object is of the given type.
func (r *ElementRegistry) Is(el *Element, typ string) bool {
	return r.doc.Is(r.BusinessObject(el), typ)
}

// RebindBusinessObject points every element backed by oldID to newID, e.g.
// after the business object was renamed.
func (r *ElementRegistry) RebindBusinessObject(oldID, newID ID) {
	for _, el := range r.elements {
		if el.BusinessObject == oldID {
			el.BusinessObject = newID
		}
	}
}
