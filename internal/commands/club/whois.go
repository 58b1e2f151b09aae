// Package club holds commands backed by the membership database.
package club

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ieee-ucf/larry/internal/core"
	"github.com/ieee-ucf/larry/internal/permission"
	"github.com/ieee-ucf/larry/internal/storage"
)

type WhoisCommand struct {
	core.Base
	embeds core.Embeds
	store  *storage.Storage
	perms  *permission.Resolver
}

func NewWhois(embeds core.Embeds, store *storage.Storage, perms *permission.Resolver) *WhoisCommand {
	return &WhoisCommand{
		Base: core.NewBase(core.Options{
			Name:          "whois",
			Description:   "Look up a member's club profile",
			Category:      "🎓 Club",
			Usage:         "/whois [user]",
			GuildOnly:     true,
			RequiredLevel: permission.Member,
		}),
		embeds: embeds,
		store:  store,
		perms:  perms,
	}
}

func (c *WhoisCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Member to look up, defaults to you",
			},
		},
	}
}

func (c *WhoisCommand) Run(ctx context.Context, inv *core.Invocation) error {
	target := c.targetUser(inv)

	member, err := c.store.MemberByDiscordID(ctx, target.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return inv.Responder.ReplyEmbed(
			c.embeds.New("🔍 Member Lookup",
				fmt.Sprintf("**%s** has no club record. Point them at the registration portal!", target.Username)),
			true)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch member: %w", err)
	}

	committees, err := c.store.CommitteesForMember(ctx, member.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch committee seats: %w", err)
	}
	projects, err := c.store.ProjectsForMember(ctx, member.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch project seats: %w", err)
	}

	level := c.perms.Resolve(ctx, target.ID)

	embed := c.embeds.New("🔍 "+fullName(member), "")
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Level", Value: level.String(), Inline: true},
		{Name: "Major", Value: member.Major, Inline: true},
		{Name: "Graduates", Value: fmt.Sprintf("%d", member.GraduationYear), Inline: true},
		{Name: "Dues Paid", Value: yesNo(member.DuesPaid), Inline: true},
		{Name: "Committees", Value: seatListCommittees(committees)},
		{Name: "Projects", Value: seatListProjects(projects)},
	}
	return inv.Responder.ReplyEmbed(embed, false)
}

// targetUser picks the user option when present, falling back to the
// invoker.
func (c *WhoisCommand) targetUser(inv *core.Invocation) *discordgo.User {
	data := inv.Event.ApplicationCommandData()
	for _, opt := range data.Options {
		if opt.Name == "user" && opt.Type == discordgo.ApplicationCommandOptionUser {
			return opt.UserValue(inv.Session)
		}
	}
	if inv.Event.Member != nil {
		return inv.Event.Member.User
	}
	return inv.Event.User
}

func fullName(m *storage.Member) string {
	if m.MiddleName != nil && *m.MiddleName != "" {
		return fmt.Sprintf("%s %s %s", m.FirstName, *m.MiddleName, m.LastName)
	}
	return fmt.Sprintf("%s %s", m.FirstName, m.LastName)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func seatListCommittees(seats []storage.CommitteeSeatInfo) string {
	if len(seats) == 0 {
		return "None"
	}
	var parts []string
	for _, s := range seats {
		title := s.Title
		if s.IsChair {
			title += " (chair)"
		}
		parts = append(parts, title)
	}
	return strings.Join(parts, ", ")
}

func seatListProjects(seats []storage.ProjectSeatInfo) string {
	if len(seats) == 0 {
		return "None"
	}
	var parts []string
	for _, s := range seats {
		title := s.Title
		if s.IsLead {
			title += " (lead)"
		}
		parts = append(parts, title)
	}
	return strings.Join(parts, ", ")
}
