package storage

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/proppanel/internal/model"
)

// DocumentFile is the YAML representation of a document.
//
// Reference-valued properties are kept apart from plain ones so that they
// decode as model.ID (or []model.ID for lists) again.
type DocumentFile struct {
	Types    map[string][]string `yaml:"types,omitempty"`
	Objects  []ObjectEntry       `yaml:"objects"`
	Elements []ElementEntry      `yaml:"elements"`
}

// ObjectEntry is one business object.
type ObjectEntry struct {
	ID         string         `yaml:"id"`
	Type       string         `yaml:"type"`
	Parent     string         `yaml:"parent,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
	References map[string]any `yaml:"references,omitempty"`
}

// ElementEntry is one diagram element.
type ElementEntry struct {
	ID             string `yaml:"id"`
	BusinessObject string `yaml:"businessObject"`
	Parent         string `yaml:"parent,omitempty"`
}

// Decode parses a YAML document.
func Decode(data []byte) (*model.Document, *model.ElementRegistry, error) {
	var f DocumentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("could not parse document (%w)", err)
	}
	return f.Build()
}

// Build constructs the document and its element registry.
func (f *DocumentFile) Build() (*model.Document, *model.ElementRegistry, error) {
	doc := model.NewDocument()
	for _, typ := range sortedKeys(f.Types) {
		doc.DeclareType(typ, f.Types[typ]...)
	}

	for _, o := range f.Objects {
		if o.ID == "" || o.Type == "" {
			return nil, nil, fmt.Errorf("object '%s' needs id and type", o.ID)
		}
		props := make(map[string]any, len(o.Properties)+len(o.References))
		for k, v := range o.Properties {
			props[k] = v
		}
		for k, v := range o.References {
			ref, err := decodeReference(v)
			if err != nil {
				return nil, nil, fmt.Errorf("reference '%s' of '%s': %w", k, o.ID, err)
			}
			props[k] = ref
		}
		if err := doc.Add(model.NewObject(model.ID(o.ID), o.Type, model.ID(o.Parent), props)); err != nil {
			return nil, nil, err
		}
	}

	registry := model.NewElementRegistry(doc)
	for _, e := range f.Elements {
		bo := e.BusinessObject
		if bo == "" {
			bo = e.ID
		}
		if !doc.Contains(model.ID(bo)) {
			return nil, nil, fmt.Errorf("element '%s': %w: '%s'", e.ID, model.ErrUnknownObject, bo)
		}
		if err := registry.Add(&model.Element{ID: model.ID(e.ID), BusinessObject: model.ID(bo), Parent: model.ID(e.Parent)}); err != nil {
			return nil, nil, err
		}
	}
	return doc, registry, nil
}

func decodeReference(v any) (any, error) {
	switch v := v.(type) {
	case string:
		return model.ID(v), nil
	case []any:
		ids := make([]model.ID, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list item %v is not an id", item)
			}
			ids = append(ids, model.ID(s))
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("value %v is not an id or list of ids", v)
	}
}

// Encode renders the document as YAML.
func Encode(doc *model.Document, registry *model.ElementRegistry) ([]byte, error) {
	f := DocumentFile{Types: doc.TypeHierarchy()}
	for _, o := range doc.Objects() {
		entry := ObjectEntry{ID: string(o.ID()), Type: o.Type(), Parent: string(o.Parent())}
		for _, k := range o.Props() {
			switch v := o.Get(k).(type) {
			case model.ID:
				entry.references()[k] = string(v)
			case []model.ID:
				ids := make([]string, len(v))
				for i := range v {
					ids[i] = string(v[i])
				}
				entry.references()[k] = ids
			default:
				entry.properties()[k] = v
			}
		}
		f.Objects = append(f.Objects, entry)
	}
	registry.ForEach(func(el *model.Element) {
		f.Elements = append(f.Elements, ElementEntry{
			ID:             string(el.ID),
			BusinessObject: string(el.BusinessObject),
			Parent:         string(el.Parent),
		})
	})

	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("could not encode document (%w)", err)
	}
	return data, nil
}

func (e *ObjectEntry) references() map[string]any {
	if e.References == nil {
		e.References = map[string]any{}
	}
	return e.References
}

func (e *ObjectEntry) properties() map[string]any {
	if e.Properties == nil {
		e.Properties = map[string]any{}
	}
	return e.Properties
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
