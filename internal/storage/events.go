package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ClubEvent is an organization event stored in the database, distinct from
// gateway events and from calendar feed entries.
type ClubEvent struct {
	ID          uuid.UUID
	Title       string
	Location    string
	CommitteeID *uuid.UUID
	Time        time.Time
	Description string
	RSVPLink    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const clubEventColumns = `id, title, location, committee_id, time, description, rsvp_link, created_at, updated_at`

func scanClubEvent(row pgx.Row) (*ClubEvent, error) {
	var e ClubEvent
	err := row.Scan(&e.ID, &e.Title, &e.Location, &e.CommitteeID, &e.Time,
		&e.Description, &e.RSVPLink, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Storage) EventByID(ctx context.Context, id uuid.UUID) (*ClubEvent, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+clubEventColumns+` FROM events WHERE id = $1`, id)
	return scanClubEvent(row)
}

// UpcomingEvents returns events starting after now, soonest first.
func (s *Storage) UpcomingEvents(ctx context.Context, limit int) ([]ClubEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+clubEventColumns+` FROM events
		 WHERE time > now() ORDER BY time ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []ClubEvent
	for rows.Next() {
		e, err := scanClubEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *Storage) CreateEvent(ctx context.Context, e *ClubEvent) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO events (id, title, location, committee_id, time, description, rsvp_link)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, e.Title, e.Location, e.CommitteeID, e.Time, e.Description, e.RSVPLink)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create event: %w", err)
	}
	return id, nil
}

func (s *Storage) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
