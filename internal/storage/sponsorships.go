package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SponsorshipTier matches the sponsorship_tier_enum column.
type SponsorshipTier string

const (
	TierBronze SponsorshipTier = "bronze"
	TierSilver SponsorshipTier = "silver"
	TierGold   SponsorshipTier = "gold"
)

type Sponsorship struct {
	ID           uuid.UUID
	CompanyName  string
	MoneyDonated int
	Description  *string
	Tier         SponsorshipTier
	WebsiteURL   *string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const sponsorshipColumns = `id, company_name, money_donated, description, tier, website_url, contact_email, created_at, updated_at`

func scanSponsorship(row pgx.Row) (*Sponsorship, error) {
	var sp Sponsorship
	err := row.Scan(&sp.ID, &sp.CompanyName, &sp.MoneyDonated, &sp.Description,
		&sp.Tier, &sp.WebsiteURL, &sp.ContactEmail, &sp.CreatedAt, &sp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *Storage) SponsorshipByID(ctx context.Context, id uuid.UUID) (*Sponsorship, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+sponsorshipColumns+` FROM sponsorships WHERE id = $1`, id)
	return scanSponsorship(row)
}

// AllSponsorships returns every sponsorship, highest tier and donation first.
func (s *Storage) AllSponsorships(ctx context.Context) ([]Sponsorship, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+sponsorshipColumns+` FROM sponsorships
		 ORDER BY CASE tier WHEN 'gold' THEN 0 WHEN 'silver' THEN 1 ELSE 2 END,
		          money_donated DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sponsorships []Sponsorship
	for rows.Next() {
		sp, err := scanSponsorship(rows)
		if err != nil {
			return nil, err
		}
		sponsorships = append(sponsorships, *sp)
	}
	return sponsorships, rows.Err()
}

func (s *Storage) SearchSponsorships(ctx context.Context, query string) ([]Sponsorship, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+sponsorshipColumns+` FROM sponsorships
		 WHERE company_name ILIKE '%' || $1 || '%' ORDER BY company_name`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sponsorships []Sponsorship
	for rows.Next() {
		sp, err := scanSponsorship(rows)
		if err != nil {
			return nil, err
		}
		sponsorships = append(sponsorships, *sp)
	}
	return sponsorships, rows.Err()
}

func (s *Storage) CreateSponsorship(ctx context.Context, sp *Sponsorship) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sponsorships (id, company_name, money_donated, description, tier, website_url, contact_email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, sp.CompanyName, sp.MoneyDonated, sp.Description, sp.Tier, sp.WebsiteURL, sp.ContactEmail)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create sponsorship: %w", err)
	}
	return id, nil
}

func (s *Storage) DeleteSponsorship(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sponsorships WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
