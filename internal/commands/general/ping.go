// Package general holds commands available to everyone, member or not.
package general

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ieee-ucf/larry/internal/core"
	"github.com/ieee-ucf/larry/internal/permission"
)

type PingCommand struct {
	core.Base
	embeds core.Embeds
}

func NewPing(embeds core.Embeds) *PingCommand {
	return &PingCommand{
		Base: core.NewBase(core.Options{
			Name:          "ping",
			Description:   "Check bot latency",
			Category:      "🛠️ General",
			Usage:         "/ping",
			RequiredLevel: permission.Guest,
			Cooldown:      5 * time.Second,
		}),
		embeds: embeds,
	}
}

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PingCommand) Run(_ context.Context, inv *core.Invocation) error {
	desc := fmt.Sprintf("💓 Heartbeat: **%dms**", inv.Session.HeartbeatLatency().Milliseconds())

	// Round-trip is the interaction snowflake's age at the time we got it.
	if created, err := discordgo.SnowflakeTimestamp(inv.Event.ID); err == nil {
		rtt := time.Since(created).Milliseconds()
		desc = fmt.Sprintf("🔁 Round-trip: **%dms**\n%s", rtt, desc)
	}

	return inv.Responder.ReplyEmbed(c.embeds.New("🏓 Pong!", desc), false)
}
