package core

import (
	"context"
	"fmt"
	"log"

	"github.com/ieee-ucf/larry/internal/permission"
	"github.com/ieee-ucf/larry/internal/storage"
)

// History records successful dispatches for the audit trail.
type History interface {
	RecordCommand(ctx context.Context, e storage.CommandLogEntry) error
}

// Reporter forwards command failures to an operator channel. Implementations
// must swallow their own errors; reporting never cascades.
type Reporter interface {
	ReportError(inv *Invocation, runErr error)
}

// Dispatcher runs the gate sequence in front of every command: enabled,
// guild-only, permission, cooldown, then the handler itself.
type Dispatcher struct {
	Registry *Registry
	Perms    *permission.Resolver
	Embeds   Embeds
	History  History
	Reporter Reporter
}

// Dispatch routes one invocation through the gates and the command. Unknown
// names are dropped with a log line; every other refusal gets an ephemeral
// reply so the user knows why nothing happened.
func (d *Dispatcher) Dispatch(ctx context.Context, inv *Invocation) {
	cmd, ok := d.Registry.Get(inv.Command)
	if !ok {
		log.Printf("[WARN] Unknown command %q from %s", inv.Command, inv.UserID)
		return
	}

	if !cmd.Enabled() {
		d.refuse(inv, "❌ Command Disabled",
			fmt.Sprintf("The `/%s` command is currently disabled.", cmd.Name()))
		return
	}

	if cmd.GuildOnly() && inv.GuildID == "" {
		d.refuse(inv, "🏠 Guild Only Command",
			fmt.Sprintf("The `/%s` command only works inside a server.", cmd.Name()))
		return
	}

	if need := cmd.BotPermissions(); need != 0 && !botCanDeliver(inv, need) {
		d.refuse(inv, "🤖 Missing Bot Permissions",
			fmt.Sprintf("I lack the channel permissions needed for `/%s`. Ask an admin to check my role.", cmd.Name()))
		return
	}

	decision := d.Perms.Check(ctx, inv.UserID, cmd.RequiredLevel())
	switch decision.Verdict {
	case permission.CheckFailed:
		log.Printf("[ERR] Permission check for /%s by %s failed: %v", cmd.Name(), inv.UserID, decision.Err)
		d.refuse(inv, "❌ Permission Check Failed",
			"Your permission level could not be verified. Please try again later.")
		return
	case permission.Denied:
		d.refuse(inv, "🔒 Insufficient Permissions",
			fmt.Sprintf("The `/%s` command requires the **%s** level.", cmd.Name(), decision.Required))
		return
	}

	if cmd.Cooldowns().IsOnCooldown(inv.UserID) {
		remaining := cmd.Cooldowns().RemainingSeconds(inv.UserID)
		d.refuse(inv, "⏰ Command on Cooldown",
			fmt.Sprintf("Please wait **%d** more second(s) before using `/%s` again.", remaining, cmd.Name()))
		return
	}

	if err := d.run(ctx, cmd, inv); err != nil {
		log.Printf("[ERR] Command /%s by %s (%s) failed: %v", cmd.Name(), inv.Username, inv.UserID, err)
		d.reportFailure(inv, err)
		return
	}

	cmd.Cooldowns().Set(inv.UserID)
	log.Printf("[CMD] /%s used by %s (%s)", cmd.Name(), inv.Username, inv.UserID)

	if d.History != nil {
		entry := storage.CommandLogEntry{
			GuildID:   inv.GuildID,
			ChannelID: inv.ChannelID,
			UserID:    inv.UserID,
			Username:  inv.Username,
			Command:   cmd.Name(),
		}
		if err := d.History.RecordCommand(ctx, entry); err != nil {
			log.Printf("[WARN] Failed to record /%s in command log: %v", cmd.Name(), err)
		}
	}
}

// botCanDeliver checks the bot's own permission set in the channel. Without
// a live session (tests) the check is skipped.
func botCanDeliver(inv *Invocation, need int64) bool {
	if inv.Session == nil {
		return true
	}
	perms, err := inv.Session.UserChannelPermissions(inv.Session.State.User.ID, inv.ChannelID)
	if err != nil {
		return false
	}
	return perms&need == need
}

// run isolates handler panics so one broken command cannot take down the
// gateway goroutine.
func (d *Dispatcher) run(ctx context.Context, cmd Command, inv *Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command panicked: %v", r)
		}
	}()
	return cmd.Run(ctx, inv)
}

// refuse sends an ephemeral explanation for a gate rejection. Delivery
// failures are logged and dropped.
func (d *Dispatcher) refuse(inv *Invocation, title, description string) {
	embed := d.Embeds.New(title, description)
	if err := inv.Responder.ReplyEmbed(embed, true); err != nil {
		log.Printf("[WARN] Failed to deliver %q notice for /%s: %v", title, inv.Command, err)
	}
}

// reportFailure tells the user the command broke, then forwards the error to
// the operator channel. The user notice goes out as a follow-up when the
// command already acknowledged the interaction.
func (d *Dispatcher) reportFailure(inv *Invocation, runErr error) {
	embed := d.Embeds.New("❌ Command Error",
		fmt.Sprintf("Something went wrong running `/%s`.", inv.Command))

	var deliverErr error
	if inv.Responder.Acknowledged() {
		deliverErr = inv.Responder.FollowUpEmbed(embed, true)
	} else {
		deliverErr = inv.Responder.ReplyEmbed(embed, true)
	}
	if deliverErr != nil {
		log.Printf("[WARN] Failed to deliver error notice for /%s: %v", inv.Command, deliverErr)
	}

	if d.Reporter != nil {
		d.Reporter.ReportError(inv, runErr)
	}
}
