package handlers

import (
	"fmt"

	"github.com/ja-he/proppanel/internal/command"
	"github.com/ja-he/proppanel/internal/model"
)

// CommandSpec names a command and its context.
type CommandSpec struct {
	Cmd     string
	Context any
}

// MultiCommandExecutor executes a list of commands as one undo step.
// Its context is a []CommandSpec.
type MultiCommandExecutor struct {
	stack command.Executor
}

// PreExecute executes every command in order, nested in the current
// transaction.
func (h *MultiCommandExecutor) PreExecute(ctx any) error {
	specs, ok := ctx.([]CommandSpec)
	if !ok || specs == nil {
		return missing("[]CommandSpec")
	}
	for i, spec := range specs {
		if spec.Cmd == "" {
			return missing(fmt.Sprintf("[%d].Cmd", i))
		}
		if err := h.stack.Execute(spec.Cmd, spec.Context); err != nil {
			return err
		}
	}
	return nil
}

// Execute does nothing itself; the nested commands carry all changes.
func (h *MultiCommandExecutor) Execute(any) ([]model.ID, error) { return nil, nil }

// Revert does nothing itself; the nested commands are reverted by the stack.
func (h *MultiCommandExecutor) Revert(any) ([]model.ID, error) { return nil, nil }
