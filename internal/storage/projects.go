package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Project struct {
	ID        uuid.UUID
	Title     string
	Overview  string
	Skills    *string // comma-separated, e.g. "Python, C++, Machine Learning"
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectSeatInfo is a project membership joined with its title.
type ProjectSeatInfo struct {
	Title  string
	IsLead bool
}

func (s *Storage) ProjectByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var p Project
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, overview, skills, created_at, updated_at
		 FROM projects WHERE id = $1`, id).
		Scan(&p.ID, &p.Title, &p.Overview, &p.Skills, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) SearchProjects(ctx context.Context, query string) ([]Project, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, overview, skills, created_at, updated_at
		 FROM projects
		 WHERE title ILIKE '%' || $1 || '%' OR overview ILIKE '%' || $1 || '%'
		 ORDER BY title`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Overview, &p.Skills, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Storage) CreateProject(ctx context.Context, title, overview string, skills *string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO projects (id, title, overview, skills) VALUES ($1, $2, $3, $4)`,
		id, title, overview, skills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create project: %w", err)
	}
	return id, nil
}

func (s *Storage) DeleteProject(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddProjectMember adds a member to a project roster.
func (s *Storage) AddProjectMember(ctx context.Context, projectID, memberID uuid.UUID, isLead bool) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO project_members (id, project_id, member_id, is_lead)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), projectID, memberID, isLead)
	return err
}

func (s *Storage) RemoveProjectMember(ctx context.Context, projectID, memberID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM project_members WHERE project_id = $1 AND member_id = $2`,
		projectID, memberID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ProjectsForMember lists a member's project seats with titles.
func (s *Storage) ProjectsForMember(ctx context.Context, memberID uuid.UUID) ([]ProjectSeatInfo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.title, pm.is_lead
		 FROM project_members pm JOIN projects p ON p.id = pm.project_id
		 WHERE pm.member_id = $1 ORDER BY p.title`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []ProjectSeatInfo
	for rows.Next() {
		var seat ProjectSeatInfo
		if err := rows.Scan(&seat.Title, &seat.IsLead); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}
