package storage

import (
	"context"
)

// CommandLogEntry records one successful command dispatch for the audit
// trail.
type CommandLogEntry struct {
	GuildID   string
	ChannelID string
	UserID    string
	Username  string
	Command   string
}

// RecordCommand appends an audit row. Failures are the caller's to log;
// they never block the dispatch that triggered them.
func (s *Storage) RecordCommand(ctx context.Context, e CommandLogEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO command_log (guild_id, channel_id, user_id, username, command)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.GuildID, e.ChannelID, e.UserID, e.Username, e.Command)
	return err
}

// RecentCommands returns the newest audit rows, most recent first.
func (s *Storage) RecentCommands(ctx context.Context, guildID string, limit int) ([]CommandLogEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT guild_id, channel_id, user_id, username, command
		 FROM command_log WHERE guild_id = $1
		 ORDER BY created_at DESC LIMIT $2`, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []CommandLogEntry
	for rows.Next() {
		var e CommandLogEntry
		if err := rows.Scan(&e.GuildID, &e.ChannelID, &e.UserID, &e.Username, &e.Command); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
