package discord

import (
	"log"
	"sync"
)

// Handler is one gateway event binding. Fn must be a discordgo handler
// function; its signature selects the event type. Once handlers fire a
// single time and then detach.
type Handler struct {
	Name string
	Once bool
	Fn   interface{}
}

// Binder is the slice of discordgo.Session the event registry needs. The
// returned func unbinds the handler.
type Binder interface {
	AddHandler(handler interface{}) func()
	AddHandlerOnce(handler interface{}) func()
}

// EventRegistry binds gateway handlers from a static source so Reload can
// rebuild the set without leaking old bindings.
type EventRegistry struct {
	binder Binder
	source func() []Handler

	mu    sync.Mutex
	bound map[string][]func()
}

func NewEventRegistry(binder Binder, source func() []Handler) *EventRegistry {
	return &EventRegistry{
		binder: binder,
		source: source,
		bound:  make(map[string][]func()),
	}
}

// Load binds every handler from the source. Invalid descriptors are skipped
// with a log line.
func (r *EventRegistry) Load() {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, h := range r.source() {
		switch {
		case h.Name == "":
			log.Printf("[WARN] Skipping event handler with empty name")
			continue
		case h.Fn == nil:
			log.Printf("[WARN] Skipping event handler %q with nil function", h.Name)
			continue
		}

		var unbind func()
		if h.Once {
			unbind = r.binder.AddHandlerOnce(h.Fn)
		} else {
			unbind = r.binder.AddHandler(h.Fn)
		}
		r.bound[h.Name] = append(r.bound[h.Name], unbind)
		count++
	}
	log.Printf("[INFO] Bound %d event handlers", count)
}

// Reload unbinds everything and loads again, so the live set always matches
// the source exactly.
func (r *EventRegistry) Reload() {
	r.mu.Lock()
	for name, unbinds := range r.bound {
		for _, unbind := range unbinds {
			unbind()
		}
		delete(r.bound, name)
	}
	r.mu.Unlock()

	r.Load()
}
