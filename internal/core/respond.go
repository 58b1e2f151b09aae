package core

import (
	"github.com/bwmarrin/discordgo"
)

// Responder abstracts replying to an interaction so the dispatcher and
// commands stay testable without a live session.
type Responder interface {
	// ReplyEmbed sends the initial interaction response.
	ReplyEmbed(embed *discordgo.MessageEmbed, ephemeral bool) error
	// FollowUpEmbed sends a follow-up after the initial response went out.
	FollowUpEmbed(embed *discordgo.MessageEmbed, ephemeral bool) error
	// Acknowledged reports whether the initial response was already sent.
	Acknowledged() bool
}

// InteractionResponder is the production Responder over a live session.
type InteractionResponder struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate

	acknowledged bool
}

func (r *InteractionResponder) ReplyEmbed(embed *discordgo.MessageEmbed, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := r.Session.InteractionRespond(r.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err == nil {
		r.acknowledged = true
	}
	return err
}

func (r *InteractionResponder) FollowUpEmbed(embed *discordgo.MessageEmbed, ephemeral bool) error {
	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	_, err := r.Session.FollowupMessageCreate(r.Event.Interaction, true, params)
	return err
}

func (r *InteractionResponder) Acknowledged() bool { return r.acknowledged }

// Embeds builds branded embeds with the configured color and footer.
type Embeds struct {
	Color  int
	Footer string
}

func (e Embeds) New(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       e.Color,
		Footer:      &discordgo.MessageEmbedFooter{Text: e.Footer},
	}
}
