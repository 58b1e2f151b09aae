package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBinder struct {
	added     int
	addedOnce int
	unbound   int
}

func (b *fakeBinder) AddHandler(handler interface{}) func() {
	b.added++
	return func() { b.unbound++ }
}

func (b *fakeBinder) AddHandlerOnce(handler interface{}) func() {
	b.addedOnce++
	return func() { b.unbound++ }
}

func TestEventRegistryLoadBindsValidHandlers(t *testing.T) {
	binder := &fakeBinder{}
	reg := NewEventRegistry(binder, func() []Handler {
		return []Handler{
			{Name: "ready", Once: true, Fn: func() {}},
			{Name: "interactionCreate", Fn: func() {}},
			{Name: "", Fn: func() {}},
			{Name: "broken", Fn: nil},
		}
	})
	reg.Load()

	assert.Equal(t, 1, binder.added)
	assert.Equal(t, 1, binder.addedOnce)
}

func TestEventRegistryReloadLeavesOneBindingPerHandler(t *testing.T) {
	binder := &fakeBinder{}
	reg := NewEventRegistry(binder, func() []Handler {
		return []Handler{
			{Name: "interactionCreate", Fn: func() {}},
			{Name: "messageCreate", Fn: func() {}},
		}
	})
	reg.Load()
	reg.Reload()
	reg.Reload()

	// Every load bound two handlers; each reload unbound the previous pair.
	assert.Equal(t, 6, binder.added)
	assert.Equal(t, 4, binder.unbound)

	reg.mu.Lock()
	defer reg.mu.Unlock()
	require.Len(t, reg.bound, 2)
	for name, unbinds := range reg.bound {
		assert.Len(t, unbinds, 1, "handler %q", name)
	}
}
