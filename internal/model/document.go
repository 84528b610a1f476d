package model

import (
	"fmt"
)

// Document is the arena owning all business objects.
type Document struct {
	objects map[ID]*Object
	order   []ID

	supertypes map[string][]string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		objects:    make(map[ID]*Object),
		supertypes: make(map[string][]string),
	}
}

// DeclareType registers the direct supertypes of a type, so that Is can
// answer for derived types (e.g. "bpmn:Process" is a "bpmn:RootElement").
func (d *Document) DeclareType(typ string, supertypes ...string) {
	d.supertypes[typ] = append(d.supertypes[typ], supertypes...)
}

// TypeHierarchy returns a copy of the declared supertypes per type.
func (d *Document) TypeHierarchy() map[string][]string {
	result := make(map[string][]string, len(d.supertypes))
	for typ, supers := range d.supertypes {
		result[typ] = append([]string(nil), supers...)
	}
	return result
}

// Is returns whether the object is of the given type or derives from it.
func (d *Document) Is(o *Object, typ string) bool {
	if o == nil {
		return false
	}
	return d.derives(o.Type(), typ, map[string]bool{})
}

func (d *Document) derives(have, want string, seen map[string]bool) bool {
	if have == want {
		return true
	}
	if seen[have] {
		return false
	}
	seen[have] = true
	for _, super := range d.supertypes[have] {
		if d.derives(super, want, seen) {
			return true
		}
	}
	return false
}

// Add adds an object to the arena.
func (d *Document) Add(o *Object) error {
	if o == nil {
		return fmt.Errorf("cannot add nil object")
	}
	if _, exists := d.objects[o.ID()]; exists {
		return fmt.Errorf("%w: '%s'", ErrDuplicateObject, o.ID())
	}
	d.objects[o.ID()] = o
	d.order = append(d.order, o.ID())
	return nil
}

// Remove removes an object from the arena. References to it are left as they
// are; callers that care restore them through their own undo data.
func (d *Document) Remove(id ID) {
	if _, ok := d.objects[id]; !ok {
		return
	}
	delete(d.objects, id)
	for i, other := range d.order {
		if other == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Contains returns whether the object is part of the arena.
func (d *Document) Contains(id ID) bool {
	_, ok := d.objects[id]
	return ok
}

// Get returns the object for the ID.
func (d *Document) Get(id ID) (*Object, bool) {
	o, ok := d.objects[id]
	return o, ok
}

// Resolve returns the object for the ID or ErrUnknownObject.
func (d *Document) Resolve(id ID) (*Object, error) {
	o, ok := d.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownObject, id)
	}
	return o, nil
}

// ResolveAll resolves a list of IDs, failing on the first that does not
// resolve.
func (d *Document) ResolveAll(ids []ID) ([]*Object, error) {
	result := make([]*Object, 0, len(ids))
	for _, id := range ids {
		o, err := d.Resolve(id)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}

// Objects returns all objects in insertion order.
func (d *Document) Objects() []*Object {
	result := make([]*Object, 0, len(d.order))
	for _, id := range d.order {
		result = append(result, d.objects[id])
	}
	return result
}

// Children returns the objects whose parent is the given ID.
func (d *Document) Children(parent ID) []*Object {
	var result []*Object
	for _, id := range d.order {
		if o := d.objects[id]; o.Parent() == parent {
			result = append(result, o)
		}
	}
	return result
}

// Root returns the top-most ancestor of the object (the object itself if it
// has no parent). A parent handle that does not resolve ends the walk.
func (d *Document) Root(o *Object) *Object {
	current := o
	seen := map[ID]bool{}
	for current != nil && current.Parent() != "" && !seen[current.ID()] {
		seen[current.ID()] = true
		parent, ok := d.objects[current.Parent()]
		if !ok {
			break
		}
		current = parent
	}
	return current
}

// Rename changes an object's ID, rewriting parent handles and references
// across the arena.
func (d *Document) Rename(oldID, newID ID) error {
	o, err := d.Resolve(oldID)
	if err != nil {
		return err
	}
	if oldID == newID {
		return nil
	}
	if _, exists := d.objects[newID]; exists {
		return fmt.Errorf("%w: '%s'", ErrDuplicateObject, newID)
	}
	delete(d.objects, oldID)
	o.id = newID
	d.objects[newID] = o
	for i, id := range d.order {
		if id == oldID {
			d.order[i] = newID
		}
	}
	for _, other := range d.objects {
		if other.parent == oldID {
			other.parent = newID
		}
		for k, v := range other.props {
			switch ref := v.(type) {
			case ID:
				if ref == oldID {
					other.props[k] = newID
				}
			case []ID:
				renamed := make([]ID, len(ref))
				for i := range ref {
					renamed[i] = ref[i]
					if ref[i] == oldID {
						renamed[i] = newID
					}
				}
				other.props[k] = renamed
			}
		}
	}
	return nil
}
