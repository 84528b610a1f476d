package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ja-he/proppanel/internal/bus"
)

func TestFire(t *testing.T) {

	t.Run("priority order", func(t *testing.T) {
		b := bus.New()
		var order []string
		b.On("x", bus.DefaultPriority, func(*bus.Event) any { order = append(order, "default-1"); return nil })
		b.On("x", bus.DefaultPriority+500, func(*bus.Event) any { order = append(order, "high"); return nil })
		b.On("x", bus.DefaultPriority, func(*bus.Event) any { order = append(order, "default-2"); return nil })
		b.On("x", 500, func(*bus.Event) any { order = append(order, "low"); return nil })

		assert.Nil(t, b.Fire("x", nil))
		assert.Equal(t, []string{"high", "default-1", "default-2", "low"}, order)
	})

	t.Run("first definitive answer", func(t *testing.T) {
		b := bus.New()
		lowCalled := false
		b.On("q", bus.DefaultPriority, func(*bus.Event) any { lowCalled = true; return false })
		b.On("q", bus.DefaultPriority+1, func(*bus.Event) any { return true })

		assert.Equal(t, true, b.Fire("q", nil))
		assert.False(t, lowCalled, "lower priority listener ran after a definitive answer")
	})

	t.Run("nil defers", func(t *testing.T) {
		b := bus.New()
		b.On("q", 2000, func(*bus.Event) any { return nil })
		b.On("q", 1000, func(*bus.Event) any { return "answer" })
		assert.Equal(t, "answer", b.Fire("q", nil))
	})

	t.Run("stop propagation", func(t *testing.T) {
		b := bus.New()
		called := false
		b.On("x", 2000, func(e *bus.Event) any { e.StopPropagation(); return nil })
		b.On("x", 1000, func(*bus.Event) any { called = true; return nil })
		b.Fire("x", nil)
		assert.False(t, called)
	})

	t.Run("off", func(t *testing.T) {
		b := bus.New()
		calls := 0
		off := b.On("x", bus.DefaultPriority, func(*bus.Event) any { calls++; return nil })
		b.Fire("x", nil)
		off()
		b.Fire("x", nil)
		assert.Equal(t, 1, calls)
		assert.False(t, b.HasListeners("x"))
	})

	t.Run("listener panics reach the caller", func(t *testing.T) {
		b := bus.New()
		lowCalled := false
		b.On("x", 2000, func(*bus.Event) any { panic("boom") })
		b.On("x", 1000, func(*bus.Event) any { lowCalled = true; return nil })
		assert.PanicsWithValue(t, "boom", func() { b.Fire("x", nil) })
		assert.False(t, lowCalled)
	})

	t.Run("payload", func(t *testing.T) {
		b := bus.New()
		b.On("x", bus.DefaultPriority, func(e *bus.Event) any { return e.Payload.(int) * 2 })
		assert.Equal(t, 42, b.Fire("x", 21))
	})
}

func TestQuery(t *testing.T) {
	b := bus.New()
	b.On("q", 3000, func(*bus.Event) any { return "not a bool" })
	b.On("q", 2000, func(*bus.Event) any { return false })

	v, ok := b.Query("q", nil, func(v any) bool { _, isBool := v.(bool); return isBool })
	assert.True(t, ok)
	assert.Equal(t, false, v)

	_, ok = b.Query("none", nil, func(any) bool { return true })
	assert.False(t, ok)
}

func TestElementsChangedEvent(t *testing.T) {
	e := bus.ElementsChangedEvent{Elements: nil}
	assert.False(t, e.Contains("a"))
	e.Elements = append(e.Elements, "a")
	assert.True(t, e.Contains("a"))
}
