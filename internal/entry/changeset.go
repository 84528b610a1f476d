package entry

// ChangeSet is what an entry's Set produces: either a DirectUpdate or a
// NamedCommand.
type ChangeSet interface {
	changeSet()
}

// DirectUpdate merges properties into the selected element's business
// object.
type DirectUpdate struct {
	Properties map[string]any
}

// NamedCommand executes a registered command with the given context.
type NamedCommand struct {
	Cmd     string
	Context any
}

func (DirectUpdate) changeSet() {}
func (NamedCommand) changeSet() {}
