package input

// Keyspec is a key sequence as written in the configuration, e.g. "<c-r>" or
// "dd".
type Keyspec string

// Actionspec names an action a key sequence is mapped to.
type Actionspec string

// InputConfig holds the key mappings of the terminal driver.
type InputConfig struct {
	Panel        map[Keyspec]Actionspec `yaml:"panel"`
	StringEditor ModedSpec              `yaml:"string-editor"`
	Picker       map[Keyspec]Actionspec `yaml:"picker"`
}

// ModedSpec holds the mappings of a modal editor.
type ModedSpec struct {
	Normal map[Keyspec]Actionspec `yaml:"normal"`
	Insert map[Keyspec]Actionspec `yaml:"insert"`
}

// AugmentWith returns the mappings of base with those of augment added,
// augment taking precedence for equal key sequences.
func (base InputConfig) AugmentWith(augment InputConfig) InputConfig {
	return InputConfig{
		Panel: merge(base.Panel, augment.Panel),
		StringEditor: ModedSpec{
			Normal: merge(base.StringEditor.Normal, augment.StringEditor.Normal),
			Insert: merge(base.StringEditor.Insert, augment.StringEditor.Insert),
		},
		Picker: merge(base.Picker, augment.Picker),
	}
}

func merge(base, augment map[Keyspec]Actionspec) map[Keyspec]Actionspec {
	result := make(map[Keyspec]Actionspec, len(base)+len(augment))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range augment {
		result[k] = v
	}
	return result
}

// Resolve maps the configured key sequences to actions by their names.
// It fails for action names missing from actions.
func Resolve[A any](spec map[Keyspec]Actionspec, actions map[Actionspec]A) (map[Keyspec]A, error) {
	result := make(map[Keyspec]A, len(spec))
	for keys, name := range spec {
		a, ok := actions[name]
		if !ok {
			return nil, &UnknownActionError{Keys: keys, Action: name}
		}
		result[keys] = a
	}
	return result, nil
}

// UnknownActionError is returned when a mapping names an unknown action.
type UnknownActionError struct {
	Keys   Keyspec
	Action Actionspec
}

func (e *UnknownActionError) Error() string {
	return "mapping '" + string(e.Keys) + "' names unknown action '" + string(e.Action) + "'"
}
