package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, org_id, job_id, candidate_id, status, match_score, created_at, updated_at`

// CreateApplication links a candidate to a job, optionally with an initial
// match score.
func (db *DB) CreateApplication(ctx context.Context, orgID, jobID, candidateID uuid.UUID, matchScore *int) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (org_id, job_id, candidate_id, status, match_score)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+applicationColumns,
		orgID, jobID, candidateID, ApplicationStatusApplied, matchScore,
	).Scan(&a.ID, &a.OrgID, &a.JobID, &a.CandidateID, &a.Status, &a.MatchScore,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &a, nil
}

// GetApplication retrieves an application by ID within one organization.
func (db *DB) GetApplication(ctx context.Context, orgID, applicationID uuid.UUID) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1 AND org_id = $2`,
		applicationID, orgID,
	).Scan(&a.ID, &a.OrgID, &a.JobID, &a.CandidateID, &a.Status, &a.MatchScore,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// ListApplicationsByJob lists a job's applications ordered by match score
// descending, unscored last.
func (db *DB) ListApplicationsByJob(ctx context.Context, orgID, jobID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE org_id = $1 AND job_id = $2
		 ORDER BY match_score DESC NULLS LAST, created_at ASC`,
		orgID, jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	applications := make([]Application, 0)
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.OrgID, &a.JobID, &a.CandidateID, &a.Status,
			&a.MatchScore, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

// UpdateApplicationScore stores a freshly computed match score.
func (db *DB) UpdateApplicationScore(ctx context.Context, orgID, applicationID uuid.UUID, score int) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET match_score = $3, updated_at = NOW()
		 WHERE id = $1 AND org_id = $2`,
		applicationID, orgID, score,
	)
	if err != nil {
		return fmt.Errorf("failed to update application score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", applicationID)
	}
	return nil
}

// UpdateApplicationStatus moves an application through the pipeline.
func (db *DB) UpdateApplicationStatus(ctx context.Context, orgID, applicationID uuid.UUID, status string) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`UPDATE applications SET status = $3, updated_at = NOW()
		 WHERE id = $1 AND org_id = $2
		 RETURNING `+applicationColumns,
		applicationID, orgID, status,
	).Scan(&a.ID, &a.OrgID, &a.JobID, &a.CandidateID, &a.Status, &a.MatchScore,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return &a, nil
}
