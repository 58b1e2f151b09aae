package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/ieee-ucf/larry/internal/config"
	"github.com/ieee-ucf/larry/internal/core"
	"github.com/ieee-ucf/larry/internal/storage"
	"github.com/ieee-ucf/larry/internal/version"
)

// Bot owns the gateway session and routes interactions into the dispatcher.
type Bot struct {
	cfg        *config.Config
	store      *storage.Storage
	registry   *core.Registry
	dispatcher *core.Dispatcher

	session *discordgo.Session
	events  *EventRegistry
}

func NewBot(cfg *config.Config, store *storage.Storage, registry *core.Registry, dispatcher *core.Dispatcher) *Bot {
	return &Bot{
		cfg:        cfg,
		store:      store,
		registry:   registry,
		dispatcher: dispatcher,
	}
}

// Run opens the gateway session and blocks until ctx is done. A failure to
// open is returned so main can exit non-zero; everything after a successful
// open is handled in-process.
func (b *Bot) Run(ctx context.Context) error {
	session, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.session = session
	b.configureIntents()

	if b.dispatcher.Reporter == nil && b.cfg.LogChannelID != "" {
		b.dispatcher.Reporter = &channelReporter{
			session:   session,
			channelID: b.cfg.LogChannelID,
		}
	}

	b.events = NewEventRegistry(session, b.handlers)
	b.events.Load()

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer session.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received, closing gateway session")
	return nil
}

func (b *Bot) configureIntents() {
	b.session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages
}

// handlers is the static gateway event table.
func (b *Bot) handlers() []Handler {
	return []Handler{
		{Name: "ready", Once: true, Fn: b.onReady},
		{Name: "interactionCreate", Fn: b.onInteractionCreate},
		{Name: "messageCreate", Fn: b.onMessageCreate},
	}
}

// onReady sets presence and uploads the slash command set.
func (b *Bot) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	if err := s.UpdateWatchStatus(0, b.cfg.StatusName); err != nil {
		log.Printf("[WARN] Failed to set presence: %v", err)
	}

	if b.cfg.InitSlashCommands {
		b.registerCommands(s)
	}

	log.Printf("[DONE] ✅ %s %s is running as %s", version.AppName, version.Version, s.State.User.Username)
}

// onInteractionCreate routes slash command interactions into the dispatcher.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	user := interactionUser(i)
	if user == nil {
		log.Printf("[WARN] Interaction for /%s carried no user", data.Name)
		return
	}

	inv := &core.Invocation{
		Command:   data.Name,
		UserID:    user.ID,
		Username:  user.Username,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Session:   s,
		Event:     i,
		Store:     b.store,
		Responder: &core.InteractionResponder{Session: s, Event: i},
	}
	b.dispatcher.Dispatch(context.Background(), inv)
}

// onMessageCreate answers direct mentions with a pointer at slash commands.
// All real functionality lives behind interactions.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}

	mentioned := false
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, "Hi! I work through slash commands, try `/ping`."); err != nil {
		log.Printf("[WARN] Failed to answer mention in %s: %v", m.ChannelID, err)
	}
}

// interactionUser normalizes the user between guild and DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}
