package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/ieee-ucf/larry/internal/core"
)

const errorEmbedColor = 0xFF3333

// channelReporter forwards command failures to the operator log channel.
// Its own delivery errors are logged and swallowed so reporting can never
// cascade into another failure.
type channelReporter struct {
	session   *discordgo.Session
	channelID string
}

func (r *channelReporter) ReportError(inv *core.Invocation, runErr error) {
	if r.channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🚨 Command Error",
		Color: errorEmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Command", Value: "/" + inv.Command, Inline: true},
			{Name: "User", Value: inv.Username + " (" + inv.UserID + ")", Inline: true},
			{Name: "Guild", Value: orDM(inv.GuildID), Inline: true},
			{Name: "Channel", Value: inv.ChannelID, Inline: true},
			{Name: "Error", Value: runErr.Error()},
		},
	}

	if _, err := r.session.ChannelMessageSendEmbed(r.channelID, embed); err != nil {
		log.Printf("[WARN] Failed to forward error report to %s: %v", r.channelID, err)
	}
}

func orDM(guildID string) string {
	if guildID == "" {
		return "DM"
	}
	return guildID
}
