package core

import (
	"log"
	"sort"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Registry holds the command set, built from a static source function so
// Reload can rebuild it from scratch.
type Registry struct {
	source func() []Command

	mu   sync.RWMutex
	cmds map[string]Command
}

func NewRegistry(source func() []Command) *Registry {
	return &Registry{
		source: source,
		cmds:   make(map[string]Command),
	}
}

// Load builds the registry from the source. Invalid descriptors are skipped
// with a log line; a duplicate name keeps the first registration.
func (r *Registry) Load() {
	cmds := make(map[string]Command)
	for _, cmd := range r.source() {
		name := cmd.Name()
		switch {
		case name == "":
			log.Printf("[WARN] Skipping command with empty name (%T)", cmd)
			continue
		case cmd.Description() == "":
			log.Printf("[WARN] Skipping command %q with empty description", name)
			continue
		}
		if _, exists := cmds[name]; exists {
			log.Printf("[WARN] Duplicate command %q, keeping first registration", name)
			continue
		}
		cmds[name] = cmd
	}

	r.mu.Lock()
	r.cmds = cmds
	r.mu.Unlock()
	log.Printf("[INFO] Loaded %d commands", len(cmds))
}

// Reload rebuilds the registry from the source. The result is identical to a
// fresh Load.
func (r *Registry) Reload() { r.Load() }

// Get returns the command with the given name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns every registered command, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	list := make([]Command, 0, len(r.cmds))
	for _, cmd := range r.cmds {
		list = append(list, cmd)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Definitions collects the slash definitions of every registered command
// that provides one, ready for a bulk overwrite upload.
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, cmd := range r.All() {
		provider, ok := cmd.(SlashProvider)
		if !ok {
			continue
		}
		def := provider.SlashDefinition()
		if def == nil {
			continue
		}
		if def.Type == 0 {
			def.Type = discordgo.ChatApplicationCommand
		}
		defs = append(defs, def)
	}
	return defs
}
