// Package admin holds operator-only commands.
package admin

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ieee-ucf/larry/internal/core"
	"github.com/ieee-ucf/larry/internal/permission"
)

type ShutdownCommand struct {
	core.Base
	embeds core.Embeds
	stop   func()
}

// NewShutdown takes the stop function that cancels the process context.
func NewShutdown(embeds core.Embeds, stop func()) *ShutdownCommand {
	return &ShutdownCommand{
		Base: core.NewBase(core.Options{
			Name:          "shutdown",
			Description:   "Shut the bot down cleanly",
			Category:      "🔧 Admin",
			Usage:         "/shutdown",
			RequiredLevel: permission.Administrator,
		}),
		embeds: embeds,
		stop:   stop,
	}
}

func (c *ShutdownCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ShutdownCommand) Run(_ context.Context, inv *core.Invocation) error {
	err := inv.Responder.ReplyEmbed(c.embeds.New("🔴 Shutting Down", "Bot is now shutting down."), false)

	// Give the reply a moment to reach Discord before the session closes.
	go func() {
		time.Sleep(time.Second)
		c.stop()
	}()
	return err
}
