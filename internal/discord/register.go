package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// registerCommands uploads the full slash command set as one atomic
// replacement. Re-running with an unchanged set is a no-op on Discord's
// side, so startup never needs to diff. Failures are logged, not fatal;
// already-registered commands keep working.
func (b *Bot) registerCommands(s *discordgo.Session) {
	defs := b.registry.Definitions()
	scope := "global"
	if b.cfg.MainGuildID != "" {
		scope = "guild " + b.cfg.MainGuildID
	}

	registered, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, b.cfg.MainGuildID, defs)
	if err != nil {
		log.Printf("[ERR] Failed to register %d slash commands (%s): %v", len(defs), scope, err)
		return
	}
	log.Printf("[INFO] Registered %d slash commands (%s)", len(registered), scope)
}
