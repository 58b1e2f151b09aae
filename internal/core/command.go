package core

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ieee-ucf/larry/internal/permission"
	"github.com/ieee-ucf/larry/internal/storage"
)

// Command is a chat command. Descriptors are static; Cooldowns() returns the
// per-command tracker the dispatcher consults.
type Command interface {
	Name() string
	Description() string
	Category() string
	Usage() string
	Enabled() bool
	GuildOnly() bool
	RequiredLevel() permission.Level
	// BotPermissions is the channel permission set the bot itself needs to
	// deliver this command's output; zero means no special requirement.
	BotPermissions() int64
	Cooldowns() *Cooldowns
	Run(ctx context.Context, inv *Invocation) error
}

// SlashProvider is implemented by commands that register a slash definition
// with Discord. Commands without it still dispatch but are never uploaded.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Invocation is what the runtime hands a command when executing it.
type Invocation struct {
	Command   string
	UserID    string
	Username  string
	GuildID   string
	ChannelID string

	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Store   *storage.Storage

	Responder Responder
}

// Options are the static descriptor fields shared by every command. Embed
// Base to get the boilerplate accessors.
type Options struct {
	Name           string
	Description    string
	Category       string
	Usage          string
	GuildOnly      bool
	RequiredLevel  permission.Level
	BotPermissions int64
	Cooldown       time.Duration // 0 disables cooldown tracking
}

// Base supplies the descriptor accessors from Options. Commands embed it and
// implement Run themselves.
type Base struct {
	opts      Options
	cooldowns *Cooldowns
	disabled  bool
}

func NewBase(opts Options) Base {
	return Base{opts: opts, cooldowns: NewCooldowns(opts.Cooldown)}
}

func (b *Base) Name() string                    { return b.opts.Name }
func (b *Base) Description() string             { return b.opts.Description }
func (b *Base) Category() string                { return b.opts.Category }
func (b *Base) Usage() string                   { return b.opts.Usage }
func (b *Base) Enabled() bool                   { return !b.disabled }
func (b *Base) GuildOnly() bool                 { return b.opts.GuildOnly }
func (b *Base) RequiredLevel() permission.Level { return b.opts.RequiredLevel }
func (b *Base) BotPermissions() int64           { return b.opts.BotPermissions }
func (b *Base) Cooldowns() *Cooldowns           { return b.cooldowns }

// SetEnabled toggles the command at runtime. Disabled commands stay
// registered so users get an explanation instead of silence.
func (b *Base) SetEnabled(enabled bool) { b.disabled = !enabled }
