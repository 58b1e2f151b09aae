package core

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieee-ucf/larry/internal/permission"
)

type stubCommand struct {
	Base
	runErr error
	ran    int
	panics bool
	reply  func(inv *Invocation) error
}

func newStubCommand(opts Options) *stubCommand {
	return &stubCommand{Base: NewBase(opts)}
}

func (c *stubCommand) Run(ctx context.Context, inv *Invocation) error {
	c.ran++
	if c.panics {
		panic("boom")
	}
	if c.reply != nil {
		if err := c.reply(inv); err != nil {
			return err
		}
	}
	return c.runErr
}

type slashStub struct {
	*stubCommand
}

func (c slashStub) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: c.Name(), Description: c.Description()}
}

func TestRegistryLoadSkipsInvalidDescriptors(t *testing.T) {
	reg := NewRegistry(func() []Command {
		return []Command{
			newStubCommand(Options{Name: "", Description: "nameless"}),
			newStubCommand(Options{Name: "silent", Description: ""}),
			newStubCommand(Options{Name: "ok", Description: "fine"}),
		}
	})
	reg.Load()

	assert.Len(t, reg.All(), 1)
	_, ok := reg.Get("ok")
	assert.True(t, ok)
}

func TestRegistryDuplicateKeepsFirst(t *testing.T) {
	first := newStubCommand(Options{Name: "dup", Description: "first"})
	second := newStubCommand(Options{Name: "dup", Description: "second"})
	reg := NewRegistry(func() []Command { return []Command{first, second} })
	reg.Load()

	got, ok := reg.Get("dup")
	require.True(t, ok)
	assert.Equal(t, "first", got.Description())
	assert.Len(t, reg.All(), 1)
}

func TestRegistryReloadMatchesFreshLoad(t *testing.T) {
	reg := NewRegistry(func() []Command {
		return []Command{
			newStubCommand(Options{Name: "b", Description: "b"}),
			newStubCommand(Options{Name: "a", Description: "a"}),
		}
	})
	reg.Load()
	reg.Reload()

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name())
	assert.Equal(t, "b", all[1].Name())
}

func TestRegistryDefinitionsOnlySlashProviders(t *testing.T) {
	plain := newStubCommand(Options{Name: "plain", Description: "no slash"})
	slash := slashStub{newStubCommand(Options{Name: "slash", Description: "has slash"})}
	reg := NewRegistry(func() []Command { return []Command{plain, slash} })
	reg.Load()

	defs := reg.Definitions()
	require.Len(t, defs, 1)
	assert.Equal(t, "slash", defs[0].Name)
	assert.Equal(t, discordgo.ChatApplicationCommand, defs[0].Type)
}

func TestBaseSetEnabled(t *testing.T) {
	cmd := newStubCommand(Options{Name: "toggle", Description: "x", RequiredLevel: permission.Guest})
	assert.True(t, cmd.Enabled())
	cmd.SetEnabled(false)
	assert.False(t, cmd.Enabled())
	cmd.SetEnabled(true)
	assert.True(t, cmd.Enabled())
}
