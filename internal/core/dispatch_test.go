package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieee-ucf/larry/internal/permission"
	"github.com/ieee-ucf/larry/internal/storage"
)

type fakeResponder struct {
	replies      []*discordgo.MessageEmbed
	followUps    []*discordgo.MessageEmbed
	replyErr     error
	acknowledged bool
}

func (f *fakeResponder) ReplyEmbed(e *discordgo.MessageEmbed, ephemeral bool) error {
	if f.replyErr != nil {
		return f.replyErr
	}
	f.replies = append(f.replies, e)
	f.acknowledged = true
	return nil
}

func (f *fakeResponder) FollowUpEmbed(e *discordgo.MessageEmbed, ephemeral bool) error {
	f.followUps = append(f.followUps, e)
	return nil
}

func (f *fakeResponder) Acknowledged() bool { return f.acknowledged }

type fakeFactsSource struct {
	facts map[string]*permission.Facts
	err   error
}

func (f *fakeFactsSource) MembershipFacts(_ context.Context, discordID string) (*permission.Facts, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.facts[discordID], nil
}

type fakeHistory struct {
	entries []storage.CommandLogEntry
	err     error
}

func (f *fakeHistory) RecordCommand(_ context.Context, e storage.CommandLogEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, e)
	return nil
}

type fakeReporter struct {
	reported []error
}

func (f *fakeReporter) ReportError(_ *Invocation, runErr error) {
	f.reported = append(f.reported, runErr)
}

func newTestDispatcher(cmds []Command, src permission.Source, history *fakeHistory, reporter *fakeReporter) *Dispatcher {
	reg := NewRegistry(func() []Command { return cmds })
	reg.Load()
	d := &Dispatcher{
		Registry: reg,
		Perms:    permission.NewResolver(src, nil, 0),
		Embeds:   Embeds{Color: 0xFFD61A, Footer: "test"},
	}
	if history != nil {
		d.History = history
	}
	if reporter != nil {
		d.Reporter = reporter
	}
	return d
}

func invocation(command, userID, guildID string, resp Responder) *Invocation {
	return &Invocation{
		Command:   command,
		UserID:    userID,
		Username:  "tester",
		GuildID:   guildID,
		ChannelID: "chan-1",
		Responder: resp,
	}
}

func memberFacts() *permission.Facts { return &permission.Facts{} }

func TestDispatchUnknownCommandStaysSilent(t *testing.T) {
	resp := &fakeResponder{}
	d := newTestDispatcher(nil, &fakeFactsSource{}, nil, nil)

	d.Dispatch(context.Background(), invocation("ghost", "u1", "g1", resp))

	assert.Empty(t, resp.replies)
	assert.Empty(t, resp.followUps)
}

func TestDispatchSuccessSetsCooldownAndLogs(t *testing.T) {
	cmd := newStubCommand(Options{Name: "ping", Description: "x", Cooldown: 5 * time.Second})
	src := &fakeFactsSource{facts: map[string]*permission.Facts{"u1": memberFacts()}}
	history := &fakeHistory{}
	resp := &fakeResponder{}
	d := newTestDispatcher([]Command{cmd}, src, history, nil)

	d.Dispatch(context.Background(), invocation("ping", "u1", "g1", resp))

	assert.Equal(t, 1, cmd.ran)
	assert.True(t, cmd.Cooldowns().IsOnCooldown("u1"))
	require.Len(t, history.entries, 1)
	assert.Equal(t, "ping", history.entries[0].Command)
	assert.Equal(t, "u1", history.entries[0].UserID)
}

func TestDispatchDisabledCommandRefuses(t *testing.T) {
	cmd := newStubCommand(Options{Name: "ping", Description: "x"})
	cmd.SetEnabled(false)
	resp := &fakeResponder{}
	d := newTestDispatcher([]Command{cmd}, &fakeFactsSource{}, nil, nil)

	d.Dispatch(context.Background(), invocation("ping", "u1", "g1", resp))

	assert.Zero(t, cmd.ran)
	require.Len(t, resp.replies, 1)
	assert.Equal(t, "❌ Command Disabled", resp.replies[0].Title)
}

func TestDispatchGuildOnlyBlocksDirectMessages(t *testing.T) {
	cmd := newStubCommand(Options{Name: "whois", Description: "x", GuildOnly: true})
	resp := &fakeResponder{}
	d := newTestDispatcher([]Command{cmd}, &fakeFactsSource{}, nil, nil)

	d.Dispatch(context.Background(), invocation("whois", "u1", "", resp))

	assert.Zero(t, cmd.ran)
	require.Len(t, resp.replies, 1)
	assert.Equal(t, "🏠 Guild Only Command", resp.replies[0].Title)
}

func TestDispatchDeniesBelowRequiredLevel(t *testing.T) {
	cmd := newStubCommand(Options{Name: "shutdown", Description: "x", RequiredLevel: permission.Administrator})
	src := &fakeFactsSource{facts: map[string]*permission.Facts{"u1": memberFacts()}}
	resp := &fakeResponder{}
	d := newTestDispatcher([]Command{cmd}, src, nil, nil)

	d.Dispatch(context.Background(), invocation("shutdown", "u1", "g1", resp))

	assert.Zero(t, cmd.ran)
	require.Len(t, resp.replies, 1)
	assert.Equal(t, "🔒 Insufficient Permissions", resp.replies[0].Title)
	assert.Contains(t, resp.replies[0].Description, "Administrator")
}

func TestDispatchFailsClosedWhenLookupErrors(t *testing.T) {
	cmd := newStubCommand(Options{Name: "whois", Description: "x", RequiredLevel: permission.Member})
	src := &fakeFactsSource{err: errors.New("db down")}
	resp := &fakeResponder{}
	d := newTestDispatcher([]Command{cmd}, src, nil, nil)

	d.Dispatch(context.Background(), invocation("whois", "u1", "g1", resp))

	assert.Zero(t, cmd.ran)
	require.Len(t, resp.replies, 1)
	assert.Equal(t, "❌ Permission Check Failed", resp.replies[0].Title)
}

func TestDispatchCooldownRefusalSkipsRun(t *testing.T) {
	cmd := newStubCommand(Options{Name: "ping", Description: "x", Cooldown: time.Minute})
	src := &fakeFactsSource{facts: map[string]*permission.Facts{"u1": memberFacts()}}
	resp := &fakeResponder{}
	d := newTestDispatcher([]Command{cmd}, src, nil, nil)

	d.Dispatch(context.Background(), invocation("ping", "u1", "g1", resp))
	d.Dispatch(context.Background(), invocation("ping", "u1", "g1", &fakeResponder{}))
	assert.Equal(t, 1, cmd.ran)

	// A different user is not throttled by u1's window.
	d.Dispatch(context.Background(), invocation("ping", "u2", "g1", &fakeResponder{}))
	assert.Equal(t, 2, cmd.ran)
}

func TestDispatchFailureSkipsCooldownAndReports(t *testing.T) {
	cmd := newStubCommand(Options{Name: "ping", Description: "x", Cooldown: 5 * time.Second})
	cmd.runErr = errors.New("handler broke")
	src := &fakeFactsSource{facts: map[string]*permission.Facts{"u1": memberFacts()}}
	history := &fakeHistory{}
	reporter := &fakeReporter{}
	resp := &fakeResponder{}
	d := newTestDispatcher([]Command{cmd}, src, history, reporter)

	d.Dispatch(context.Background(), invocation("ping", "u1", "g1", resp))

	assert.False(t, cmd.Cooldowns().IsOnCooldown("u1"))
	assert.Empty(t, history.entries)
	require.Len(t, resp.replies, 1)
	assert.Equal(t, "❌ Command Error", resp.replies[0].Title)
	require.Len(t, reporter.reported, 1)
	assert.EqualError(t, reporter.reported[0], "handler broke")
}

func TestDispatchErrorNoticeUsesFollowUpWhenAcknowledged(t *testing.T) {
	cmd := newStubCommand(Options{Name: "ping", Description: "x"})
	cmd.runErr = errors.New("late failure")
	cmd.reply = func(inv *Invocation) error {
		return inv.Responder.ReplyEmbed(&discordgo.MessageEmbed{Title: "pong"}, false)
	}
	src := &fakeFactsSource{facts: map[string]*permission.Facts{"u1": memberFacts()}}
	resp := &fakeResponder{}
	d := newTestDispatcher([]Command{cmd}, src, nil, nil)

	d.Dispatch(context.Background(), invocation("ping", "u1", "g1", resp))

	require.Len(t, resp.replies, 1)
	assert.Equal(t, "pong", resp.replies[0].Title)
	require.Len(t, resp.followUps, 1)
	assert.Equal(t, "❌ Command Error", resp.followUps[0].Title)
}

func TestDispatchRecoversFromPanickingHandler(t *testing.T) {
	cmd := newStubCommand(Options{Name: "ping", Description: "x"})
	cmd.panics = true
	src := &fakeFactsSource{facts: map[string]*permission.Facts{"u1": memberFacts()}}
	reporter := &fakeReporter{}
	resp := &fakeResponder{}
	d := newTestDispatcher([]Command{cmd}, src, nil, reporter)

	d.Dispatch(context.Background(), invocation("ping", "u1", "g1", resp))

	require.Len(t, reporter.reported, 1)
	assert.Contains(t, reporter.reported[0].Error(), "command panicked")
}

func TestDispatchBotPermissionCheckSkippedWithoutSession(t *testing.T) {
	cmd := newStubCommand(Options{Name: "sponsors", Description: "x", BotPermissions: 1 << 14})
	src := &fakeFactsSource{facts: map[string]*permission.Facts{"u1": memberFacts()}}
	resp := &fakeResponder{}
	d := newTestDispatcher([]Command{cmd}, src, nil, nil)

	d.Dispatch(context.Background(), invocation("sponsors", "u1", "g1", resp))

	assert.Equal(t, 1, cmd.ran)
}

func TestDispatchAuditFailureDoesNotFailDispatch(t *testing.T) {
	cmd := newStubCommand(Options{Name: "ping", Description: "x"})
	src := &fakeFactsSource{facts: map[string]*permission.Facts{"u1": memberFacts()}}
	history := &fakeHistory{err: errors.New("insert failed")}
	resp := &fakeResponder{}
	d := newTestDispatcher([]Command{cmd}, src, history, nil)

	d.Dispatch(context.Background(), invocation("ping", "u1", "g1", resp))

	assert.Equal(t, 1, cmd.ran)
	assert.Empty(t, resp.followUps)
}
