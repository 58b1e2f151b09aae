package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ieee-ucf/larry/internal/permission"
)

// Member is a registered club member. DiscordID links the record to the
// gateway identity; UserID is the club-portal login.
type Member struct {
	ID             uuid.UUID
	UserID         string
	FirstName      string
	MiddleName     *string
	LastName       string
	OfficerStatus  bool
	OfficerRole    *string
	Administrator  bool
	DuesPaid       bool
	DiscordID      string
	Email          string
	Major          string
	GraduationYear int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const memberColumns = `id, user_id, first_name, middle_name, last_name, officer_status,
	officer_role, administrator, dues_paid, discord_id, email, major,
	graduation_year, created_at, updated_at`

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.UserID, &m.FirstName, &m.MiddleName, &m.LastName,
		&m.OfficerStatus, &m.OfficerRole, &m.Administrator, &m.DuesPaid,
		&m.DiscordID, &m.Email, &m.Major, &m.GraduationYear, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MemberByDiscordID returns the member linked to a Discord user ID.
func (s *Storage) MemberByDiscordID(ctx context.Context, discordID string) (*Member, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE discord_id = $1`, discordID)
	return scanMember(row)
}

// MemberByID returns a member by primary key.
func (s *Storage) MemberByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	return scanMember(row)
}

// SearchMembers matches first or last name, case-insensitively.
func (s *Storage) SearchMembers(ctx context.Context, query string) ([]Member, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+memberColumns+` FROM members
		 WHERE first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%'
		 ORDER BY last_name, first_name`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// CreateMember inserts a member record and returns its generated ID.
func (s *Storage) CreateMember(ctx context.Context, m *Member) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO members (id, user_id, first_name, middle_name, last_name,
			officer_status, officer_role, administrator, dues_paid, discord_id,
			email, major, graduation_year)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		id, m.UserID, m.FirstName, m.MiddleName, m.LastName, m.OfficerStatus,
		m.OfficerRole, m.Administrator, m.DuesPaid, m.DiscordID, m.Email,
		m.Major, m.GraduationYear)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create member: %w", err)
	}
	return id, nil
}

// UpdateMemberStatus flips the officer and administrator fields; membership
// callers must invalidate the permission cache for the affected Discord ID.
func (s *Storage) UpdateMemberStatus(ctx context.Context, id uuid.UUID, officerStatus bool, officerRole *string, administrator bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE members
		 SET officer_status = $2, officer_role = $3, administrator = $4, updated_at = now()
		 WHERE id = $1`,
		id, officerStatus, officerRole, administrator)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMemberByDiscordID removes a member record.
func (s *Storage) DeleteMemberByDiscordID(ctx context.Context, discordID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM members WHERE discord_id = $1`, discordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MembershipFacts aggregates everything permission resolution needs for one
// Discord user: the member flags plus committee and project seats. Absent
// member records return (nil, nil), which resolves to Guest.
func (s *Storage) MembershipFacts(ctx context.Context, discordID string) (*permission.Facts, error) {
	var (
		memberID      uuid.UUID
		administrator bool
		officerStatus bool
		officerRole   *string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, administrator, officer_status, officer_role
		 FROM members WHERE discord_id = $1`, discordID).
		Scan(&memberID, &administrator, &officerStatus, &officerRole)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}

	facts := &permission.Facts{
		Administrator: administrator,
		OfficerStatus: officerStatus,
	}
	if officerRole != nil {
		facts.OfficerRole = permission.OfficerRole(*officerRole)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT committee_id, is_chair FROM committee_members WHERE member_id = $1`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch committee memberships: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var seat permission.CommitteeSeat
		if err := rows.Scan(&seat.CommitteeID, &seat.IsChair); err != nil {
			return nil, err
		}
		facts.Committees = append(facts.Committees, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := s.pool.Query(ctx,
		`SELECT project_id, is_lead FROM project_members WHERE member_id = $1`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project memberships: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var seat permission.ProjectSeat
		if err := prows.Scan(&seat.ProjectID, &seat.IsLead); err != nil {
			return nil, err
		}
		facts.Projects = append(facts.Projects, seat)
	}
	return facts, prows.Err()
}
