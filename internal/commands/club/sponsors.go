package club

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ieee-ucf/larry/internal/core"
	"github.com/ieee-ucf/larry/internal/permission"
	"github.com/ieee-ucf/larry/internal/storage"
)

type SponsorsCommand struct {
	core.Base
	embeds core.Embeds
	store  *storage.Storage
}

func NewSponsors(embeds core.Embeds, store *storage.Storage) *SponsorsCommand {
	return &SponsorsCommand{
		Base: core.NewBase(core.Options{
			Name:           "sponsors",
			Description:    "List the club's sponsors by tier",
			Category:       "🎓 Club",
			Usage:          "/sponsors",
			RequiredLevel:  permission.Member,
			BotPermissions: discordgo.PermissionEmbedLinks,
		}),
		embeds: embeds,
		store:  store,
	}
}

func (c *SponsorsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *SponsorsCommand) Run(ctx context.Context, inv *core.Invocation) error {
	sponsorships, err := c.store.AllSponsorships(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch sponsorships: %w", err)
	}

	if len(sponsorships) == 0 {
		return inv.Responder.ReplyEmbed(
			c.embeds.New("🤝 Our Sponsors", "No sponsors on record yet."), false)
	}

	embed := c.embeds.New("🤝 Our Sponsors", "")
	for _, tier := range []storage.SponsorshipTier{storage.TierGold, storage.TierSilver, storage.TierBronze} {
		var lines []string
		for _, sp := range sponsorships {
			if sp.Tier != tier {
				continue
			}
			line := "**" + sp.CompanyName + "**"
			if sp.WebsiteURL != nil && *sp.WebsiteURL != "" {
				line = fmt.Sprintf("[%s](%s)", line, *sp.WebsiteURL)
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  tierHeading(tier),
			Value: strings.Join(lines, "\n"),
		})
	}
	return inv.Responder.ReplyEmbed(embed, false)
}

func tierHeading(tier storage.SponsorshipTier) string {
	switch tier {
	case storage.TierGold:
		return "🥇 Gold"
	case storage.TierSilver:
		return "🥈 Silver"
	default:
		return "🥉 Bronze"
	}
}
