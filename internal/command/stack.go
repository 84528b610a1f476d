// Package command implements the undoable command stack all document
// mutations go through.
//
// Handlers are registered under a stable string id. Executing a command runs
// its handler and records it for undo. Commands executed while another
// command is executing (e.g. from a PreExecute hook) join the outer command's
// transaction: the whole transaction is undone and redone as one step.
package command

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/proppanel/internal/bus"
	"github.com/ja-he/proppanel/internal/model"
)

var (
	// ErrUnknownCommand is returned when executing an unregistered command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrDuplicateHandler is returned when registering an id twice.
	ErrDuplicateHandler = errors.New("handler already registered")
	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo when no undone step is left.
	ErrNothingToRedo = errors.New("nothing to redo")
	// ErrBusy is returned when undo/redo is requested during execution.
	ErrBusy = errors.New("command stack is executing")
)

// Handler executes and reverts one kind of command.
// Both return the IDs of the elements or objects they touched.
type Handler interface {
	Execute(ctx any) ([]model.ID, error)
	Revert(ctx any) ([]model.ID, error)
}

// PreExecuter is implemented by handlers that run nested commands before
// their own Execute. Nested commands become part of the same undo step.
type PreExecuter interface {
	PreExecute(ctx any) error
}

// PostExecuter is implemented by handlers that run nested commands after
// their own Execute.
type PostExecuter interface {
	PostExecute(ctx any) error
}

// Executor is the execution side of a Stack.
type Executor interface {
	Execute(command string, ctx any) error
}

type record struct {
	command string
	ctx     any
	txn     int
}

type transaction struct {
	id       int
	executed []*record
	dirty    []model.ID
}

// Stack is the command stack.
type Stack struct {
	bus      *bus.Bus
	handlers map[string]Handler

	records []*record
	idx     int

	txnSeq  int
	current *transaction
}

// NewStack returns an empty stack that announces changes on the given bus
// (which may be nil).
func NewStack(b *bus.Bus) *Stack {
	return &Stack{
		bus:      b,
		handlers: make(map[string]Handler),
		idx:      -1,
	}
}

// RegisterHandler registers the handler for the command id.
func (s *Stack) RegisterHandler(command string, h Handler) error {
	if command == "" || h == nil {
		return fmt.Errorf("cannot register handler without id or implementation")
	}
	if _, exists := s.handlers[command]; exists {
		return fmt.Errorf("%w: '%s'", ErrDuplicateHandler, command)
	}
	s.handlers[command] = h
	return nil
}

// Execute executes the command with the given context.
//
// A failing command undoes whatever its transaction had applied so far and
// leaves the history untouched.
func (s *Stack) Execute(command string, ctx any) error {
	h, ok := s.handlers[command]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownCommand, command)
	}

	outermost := s.current == nil
	if outermost {
		s.txnSeq++
		s.current = &transaction{id: s.txnSeq}
	}

	err := s.execute(command, h, ctx)
	if !outermost {
		return err
	}

	txn := s.current
	s.current = nil
	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("command failed, rolling back transaction")
		s.rollback(txn)
		return err
	}

	s.records = append(s.records[:s.idx+1], txn.executed...)
	s.idx = len(s.records) - 1
	log.Debug().Str("command", command).Int("steps", len(txn.executed)).Msg("executed command")

	s.changed(txn.dirty, "execute")
	return nil
}

func (s *Stack) execute(command string, h Handler, ctx any) error {
	if pre, ok := h.(PreExecuter); ok {
		if err := pre.PreExecute(ctx); err != nil {
			return fmt.Errorf("pre-execute of '%s': %w", command, err)
		}
	}

	dirty, err := h.Execute(ctx)
	if err != nil {
		return fmt.Errorf("execute of '%s': %w", command, err)
	}
	s.current.executed = append(s.current.executed, &record{command: command, ctx: ctx, txn: s.current.id})
	s.current.dirty = append(s.current.dirty, dirty...)

	if post, ok := h.(PostExecuter); ok {
		if err := post.PostExecute(ctx); err != nil {
			return fmt.Errorf("post-execute of '%s': %w", command, err)
		}
	}
	return nil
}

func (s *Stack) rollback(txn *transaction) {
	for i := len(txn.executed) - 1; i >= 0; i-- {
		r := txn.executed[i]
		if _, err := s.handlers[r.command].Revert(r.ctx); err != nil {
			log.Error().Err(err).Str("command", r.command).Msg("could not revert during rollback")
		}
	}
}

// CanUndo returns whether there is a step to undo.
func (s *Stack) CanUndo() bool { return s.idx >= 0 }

// CanRedo returns whether there is an undone step to redo.
func (s *Stack) CanRedo() bool { return s.idx < len(s.records)-1 }

// Undo reverts the most recent transaction.
func (s *Stack) Undo() error {
	if s.current != nil {
		return ErrBusy
	}
	if !s.CanUndo() {
		return ErrNothingToUndo
	}

	txn := s.records[s.idx].txn
	var dirty []model.ID
	for s.idx >= 0 && s.records[s.idx].txn == txn {
		r := s.records[s.idx]
		d, err := s.handlers[r.command].Revert(r.ctx)
		if err != nil {
			return fmt.Errorf("revert of '%s': %w", r.command, err)
		}
		dirty = append(dirty, d...)
		s.idx--
	}

	s.changed(dirty, "undo")
	return nil
}

// Redo re-applies the most recently undone transaction.
func (s *Stack) Redo() error {
	if s.current != nil {
		return ErrBusy
	}
	if !s.CanRedo() {
		return ErrNothingToRedo
	}

	txn := s.records[s.idx+1].txn
	var dirty []model.ID
	for s.idx+1 < len(s.records) && s.records[s.idx+1].txn == txn {
		r := s.records[s.idx+1]
		d, err := s.handlers[r.command].Execute(r.ctx)
		if err != nil {
			return fmt.Errorf("redo of '%s': %w", r.command, err)
		}
		dirty = append(dirty, d...)
		s.idx++
	}

	s.changed(dirty, "redo")
	return nil
}

// Clear drops the whole history.
func (s *Stack) Clear() {
	s.records = nil
	s.idx = -1
	s.changed(nil, "clear")
}

// StackChangedEvent is the payload of bus.CommandStackChanged.
type StackChangedEvent struct {
	Trigger string
}

func (s *Stack) changed(dirty []model.ID, trigger string) {
	if s.bus == nil {
		return
	}
	if len(dirty) > 0 {
		s.bus.Fire(bus.ElementsChanged, bus.ElementsChangedEvent{Elements: unique(dirty)})
	}
	s.bus.Fire(bus.CommandStackChanged, StackChangedEvent{Trigger: trigger})
}

func unique(ids []model.ID) []model.ID {
	seen := make(map[model.ID]bool, len(ids))
	result := make([]model.ID, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
