package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Committee struct {
	ID        uuid.UUID
	Title     string
	About     string
	ChairID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommitteeSeatInfo is a committee membership joined with its title, as
// shown in member profiles.
type CommitteeSeatInfo struct {
	Title   string
	IsChair bool
}

func (s *Storage) CommitteeByID(ctx context.Context, id uuid.UUID) (*Committee, error) {
	var c Committee
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, about, chair_id, created_at, updated_at
		 FROM committees WHERE id = $1`, id).
		Scan(&c.ID, &c.Title, &c.About, &c.ChairID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) SearchCommittees(ctx context.Context, query string) ([]Committee, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, about, chair_id, created_at, updated_at
		 FROM committees WHERE title ILIKE '%' || $1 || '%' ORDER BY title`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var committees []Committee
	for rows.Next() {
		var c Committee
		if err := rows.Scan(&c.ID, &c.Title, &c.About, &c.ChairID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		committees = append(committees, c)
	}
	return committees, rows.Err()
}

func (s *Storage) CreateCommittee(ctx context.Context, title, about string, chairID uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO committees (id, title, about, chair_id) VALUES ($1, $2, $3, $4)`,
		id, title, about, chairID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create committee: %w", err)
	}
	return id, nil
}

func (s *Storage) DeleteCommittee(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM committees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddCommitteeMember seats a member on a committee.
func (s *Storage) AddCommitteeMember(ctx context.Context, committeeID, memberID uuid.UUID, isChair bool) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO committee_members (id, committee_id, member_id, is_chair)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), committeeID, memberID, isChair)
	return err
}

func (s *Storage) RemoveCommitteeMember(ctx context.Context, committeeID, memberID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM committee_members WHERE committee_id = $1 AND member_id = $2`,
		committeeID, memberID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CommitteesForMember lists a member's committee seats with titles.
func (s *Storage) CommitteesForMember(ctx context.Context, memberID uuid.UUID) ([]CommitteeSeatInfo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT c.title, cm.is_chair
		 FROM committee_members cm JOIN committees c ON c.id = cm.committee_id
		 WHERE cm.member_id = $1 ORDER BY c.title`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []CommitteeSeatInfo
	for rows.Next() {
		var seat CommitteeSeatInfo
		if err := rows.Scan(&seat.Title, &seat.IsChair); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}
