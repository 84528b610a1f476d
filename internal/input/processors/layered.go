package processors

import (
	"github.com/ja-he/proppanel/internal/input"
)

// Layered dispatches keys to the topmost of a stack of processors.
// The panel's bindings are the base layer; the string editor and the element
// picker are pushed on top while they are open and get every key first.
type Layered struct {
	base   input.Processor
	layers []layer
	nextID int
}

type layer struct {
	id   int
	name string
	p    input.Processor
}

// NewLayered returns a Layered processor with no layers over base.
func NewLayered(base input.Processor) *Layered {
	return &Layered{base: base}
}

// Push puts p on top under the given name. The returned func removes p and
// everything pushed after it; calling it again, or after p was removed with
// a lower layer, does nothing.
func (l *Layered) Push(name string, p input.Processor) (pop func()) {
	id := l.nextID
	l.nextID++
	l.layers = append(l.layers, layer{id: id, name: name, p: p})
	return func() {
		for i, ly := range l.layers {
			if ly.id == id {
				l.layers = l.layers[:i]
				return
			}
		}
	}
}

// Depth returns the number of layers over the base.
func (l *Layered) Depth() int { return len(l.layers) }

// Active returns the name of the topmost layer, "" when only the base is
// left.
func (l *Layered) Active() string {
	if len(l.layers) == 0 {
		return ""
	}
	return l.layers[len(l.layers)-1].name
}

func (l *Layered) top() input.Processor {
	if len(l.layers) == 0 {
		return l.base
	}
	return l.layers[len(l.layers)-1].p
}

// ProcessInput hands the key to the topmost processor only.
func (l *Layered) ProcessInput(key input.Key) bool { return l.top().ProcessInput(key) }

// CapturesInput returns whether the topmost processor captures input.
func (l *Layered) CapturesInput() bool { return l.top().CapturesInput() }

// Help returns the help of the topmost processor, the keys that work right
// now.
func (l *Layered) Help() input.Help { return l.top().Help() }
