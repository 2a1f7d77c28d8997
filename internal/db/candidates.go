package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const candidateColumns = `id, org_id, name, email, headline, skills, years_of_experience,
	        summary, technology_tags, created_at, updated_at`

// CreateCandidateParams holds the fields for a new candidate record.
type CreateCandidateParams struct {
	OrgID    uuid.UUID
	Name     string
	Email    string
	Headline *string
	// Profile fields are optional; resume upload fills them in afterwards.
	Skills            []string
	YearsOfExperience *int
	Summary           *string
	TechnologyTags    []string
}

// CreateCandidate inserts a new candidate.
func (db *DB) CreateCandidate(ctx context.Context, p CreateCandidateParams) (*Candidate, error) {
	skillsJSON, _ := json.Marshal(emptyIfNil(p.Skills))
	tagsJSON, _ := json.Marshal(emptyIfNil(p.TechnologyTags))

	row := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (org_id, name, email, headline, skills, years_of_experience,
		                         summary, technology_tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+candidateColumns,
		p.OrgID, p.Name, p.Email, p.Headline, skillsJSON, p.YearsOfExperience,
		p.Summary, tagsJSON,
	)

	candidate, err := scanCandidate(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return candidate, nil
}

// GetCandidate retrieves a candidate by ID within one organization.
func (db *DB) GetCandidate(ctx context.Context, orgID, candidateID uuid.UUID) (*Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1 AND org_id = $2`,
		candidateID, orgID,
	)

	candidate, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

// ListCandidates lists an organization's candidates, newest first.
func (db *DB) ListCandidates(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]Candidate, int, error) {
	var total int
	if err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM candidates WHERE org_id = $1`, orgID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count candidates: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates
		 WHERE org_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		orgID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]Candidate, 0)
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *candidate)
	}
	return candidates, total, rows.Err()
}

// UpdateCandidateProfile overwrites the extracted profile fields, typically
// after a resume upload.
func (db *DB) UpdateCandidateProfile(ctx context.Context, orgID, candidateID uuid.UUID, skills []string, years *int, summary *string, tags []string) (*Candidate, error) {
	skillsJSON, _ := json.Marshal(emptyIfNil(skills))
	tagsJSON, _ := json.Marshal(emptyIfNil(tags))

	row := db.pool.QueryRow(ctx,
		`UPDATE candidates
		 SET skills = $3, years_of_experience = $4, summary = $5, technology_tags = $6,
		     updated_at = NOW()
		 WHERE id = $1 AND org_id = $2
		 RETURNING `+candidateColumns,
		candidateID, orgID, skillsJSON, years, summary, tagsJSON,
	)

	candidate, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update candidate profile: %w", err)
	}
	return candidate, nil
}

// UpdateCandidate rewrites the caller-entered fields.
func (db *DB) UpdateCandidate(ctx context.Context, orgID, candidateID uuid.UUID, name, email string, headline *string) (*Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE candidates
		 SET name = $3, email = $4, headline = $5, updated_at = NOW()
		 WHERE id = $1 AND org_id = $2
		 RETURNING `+candidateColumns,
		candidateID, orgID, name, email, headline,
	)

	candidate, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}
	return candidate, nil
}

// DeleteCandidate removes a candidate and returns whether a row was deleted.
func (db *DB) DeleteCandidate(ctx context.Context, orgID, candidateID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM candidates WHERE id = $1 AND org_id = $2`,
		candidateID, orgID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete candidate: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanCandidate(row rowScanner) (*Candidate, error) {
	var c Candidate
	var skillsJSON, tagsJSON []byte

	err := row.Scan(&c.ID, &c.OrgID, &c.Name, &c.Email, &c.Headline, &skillsJSON,
		&c.YearsOfExperience, &c.Summary, &tagsJSON, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.Skills = make([]string, 0)
	c.TechnologyTags = make([]string, 0)
	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &c.Skills)
	}
	if tagsJSON != nil {
		_ = json.Unmarshal(tagsJSON, &c.TechnologyTags)
	}
	return &c, nil
}
