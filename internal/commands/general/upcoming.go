package general

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ieee-ucf/larry/internal/calendar"
	"github.com/ieee-ucf/larry/internal/core"
	"github.com/ieee-ucf/larry/internal/permission"
)

const upcomingLimit = 5

// Feed is the slice of the calendar client this command needs.
type Feed interface {
	Upcoming(ctx context.Context, limit int) ([]calendar.Event, error)
}

type UpcomingCommand struct {
	core.Base
	embeds core.Embeds
	feed   Feed
}

func NewUpcoming(embeds core.Embeds, feed Feed) *UpcomingCommand {
	return &UpcomingCommand{
		Base: core.NewBase(core.Options{
			Name:          "upcoming",
			Description:   "List the next club events from the calendar",
			Category:      "🛠️ General",
			Usage:         "/upcoming",
			RequiredLevel: permission.Guest,
		}),
		embeds: embeds,
		feed:   feed,
	}
}

func (c *UpcomingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *UpcomingCommand) Run(ctx context.Context, inv *core.Invocation) error {
	events, err := c.feed.Upcoming(ctx, upcomingLimit)
	if err != nil {
		return fmt.Errorf("failed to load calendar: %w", err)
	}

	if len(events) == 0 {
		return inv.Responder.ReplyEmbed(
			c.embeds.New("📅 Upcoming Events", "Nothing on the calendar right now."), false)
	}

	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "**%s**\n<t:%d:F>", e.Title, e.Start.Unix())
		if e.Location != "" {
			fmt.Fprintf(&b, " @ %s", e.Location)
		}
		b.WriteString("\n\n")
	}

	return inv.Responder.ReplyEmbed(
		c.embeds.New("📅 Upcoming Events", strings.TrimSpace(b.String())), false)
}
