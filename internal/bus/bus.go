// Package bus implements a synchronous publish/subscribe event bus with
// prioritized listeners.
//
// Listeners are called from the highest to the lowest priority, listeners of
// equal priority in registration order. A listener returning a non-nil value
// ends the dispatch and that value becomes the result of Fire. This lets
// privileged listeners answer a query before less specific ones ever run.
package bus

import (
	"sort"

	"github.com/rs/zerolog/log"
)

// DefaultPriority is the priority listeners are registered at by default.
const DefaultPriority = 1000

// Event is the object passed to every listener of a single dispatch.
type Event struct {
	Type    string
	Payload any

	stopped bool
}

// StopPropagation prevents listeners after the current one from being
// called, without producing a result.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped returns whether propagation was stopped.
func (e *Event) Stopped() bool { return e.stopped }

// Listener handles an event. Returning nil defers to the next listener.
type Listener func(e *Event) any

type registration struct {
	priority int
	seq      int
	fn       Listener
}

// Bus dispatches events to listeners.
// It is not safe for concurrent use; all dispatch happens on the caller's
// goroutine, nested Fire calls from within listeners included.
type Bus struct {
	listeners map[string][]*registration
	seq       int
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{
		listeners: make(map[string][]*registration),
	}
}

// On registers a listener for the event type at the given priority and
// returns a function removing it again.
func (b *Bus) On(typ string, priority int, fn Listener) (off func()) {
	b.seq++
	reg := &registration{priority: priority, seq: b.seq, fn: fn}
	existing := b.listeners[typ]
	regs := make([]*registration, 0, len(existing)+1)
	regs = append(append(regs, existing...), reg)
	sort.SliceStable(regs, func(i, j int) bool {
		if regs[i].priority != regs[j].priority {
			return regs[i].priority > regs[j].priority
		}
		return regs[i].seq < regs[j].seq
	})
	b.listeners[typ] = regs

	return func() { b.off(typ, reg) }
}

func (b *Bus) off(typ string, reg *registration) {
	regs := b.listeners[typ]
	for i, r := range regs {
		if r == reg {
			// copy so that in-flight dispatches keep their snapshot intact
			remaining := make([]*registration, 0, len(regs)-1)
			remaining = append(remaining, regs[:i]...)
			remaining = append(remaining, regs[i+1:]...)
			b.listeners[typ] = remaining
			return
		}
	}
}

// HasListeners returns whether any listener is registered for the type.
func (b *Bus) HasListeners(typ string) bool {
	return len(b.listeners[typ]) > 0
}

// Fire dispatches an event and returns the first non-nil listener result.
func (b *Bus) Fire(typ string, payload any) any {
	result, _ := b.Query(typ, payload, func(v any) bool { return v != nil })
	return result
}

// Query dispatches an event until a listener produces a result accepted by
// accept. Results that are not accepted are dropped and dispatch continues.
// Returns the accepted result and whether there was one.
func (b *Bus) Query(typ string, payload any, accept func(any) bool) (any, bool) {
	regs := b.listeners[typ]
	if len(regs) == 0 {
		return nil, false
	}

	e := &Event{Type: typ, Payload: payload}
	for _, reg := range regs {
		v := reg.fn(e)
		if v != nil {
			if accept(v) {
				return v, true
			}
			log.Debug().Str("event", typ).Msgf("dropping unaccepted listener result of type %T", v)
		}
		if e.stopped {
			break
		}
	}
	return nil, false
}
