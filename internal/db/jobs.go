package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, org_id, title, description, required_skills, preferred_skills,
	        experience_level, leniency, status, ai_profile, created_by, created_at, updated_at`

// CreateJobParams holds the fields for a new job posting.
type CreateJobParams struct {
	OrgID           uuid.UUID
	Title           string
	Description     string
	RequiredSkills  []string
	PreferredSkills []string
	ExperienceLevel *string
	Leniency        float64
	CreatedBy       uuid.UUID
}

// CreateJob inserts a new job posting in the open state.
func (db *DB) CreateJob(ctx context.Context, p CreateJobParams) (*Job, error) {
	requiredJSON, _ := json.Marshal(emptyIfNil(p.RequiredSkills))
	preferredJSON, _ := json.Marshal(emptyIfNil(p.PreferredSkills))

	row := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (org_id, title, description, required_skills, preferred_skills,
		                   experience_level, leniency, status, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+jobColumns,
		p.OrgID, p.Title, p.Description, requiredJSON, preferredJSON,
		p.ExperienceLevel, p.Leniency, JobStatusOpen, p.CreatedBy,
	)

	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJob retrieves a job by ID within one organization. Returns nil when the
// job does not exist or belongs to another tenant.
func (db *DB) GetJob(ctx context.Context, orgID, jobID uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND org_id = $2`,
		jobID, orgID,
	)

	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListJobsOptions filters and paginates job listings.
type ListJobsOptions struct {
	Status string
	Limit  int
	Offset int
}

// ListJobs lists an organization's jobs, newest first.
func (db *DB) ListJobs(ctx context.Context, orgID uuid.UUID, opts ListJobsOptions) ([]Job, int, error) {
	where := `WHERE org_id = $1`
	args := []any{orgID}
	if opts.Status != "" {
		where += ` AND status = $2`
		args = append(args, opts.Status)
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+jobColumns+` FROM jobs %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		where, opts.Limit, opts.Offset)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

// UpdateJobParams holds the mutable job fields.
type UpdateJobParams struct {
	Title           string
	Description     string
	RequiredSkills  []string
	PreferredSkills []string
	ExperienceLevel *string
	Leniency        float64
	Status          string
}

// UpdateJob rewrites a job's mutable fields. Returns nil when the job is not
// visible to the organization.
func (db *DB) UpdateJob(ctx context.Context, orgID, jobID uuid.UUID, p UpdateJobParams) (*Job, error) {
	requiredJSON, _ := json.Marshal(emptyIfNil(p.RequiredSkills))
	preferredJSON, _ := json.Marshal(emptyIfNil(p.PreferredSkills))

	row := db.pool.QueryRow(ctx,
		`UPDATE jobs
		 SET title = $3, description = $4, required_skills = $5, preferred_skills = $6,
		     experience_level = $7, leniency = $8, status = $9, updated_at = NOW()
		 WHERE id = $1 AND org_id = $2
		 RETURNING `+jobColumns,
		jobID, orgID, p.Title, p.Description, requiredJSON, preferredJSON,
		p.ExperienceLevel, p.Leniency, p.Status,
	)

	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// SetJobAIProfile stores the generated ideal-candidate profile on a job.
func (db *DB) SetJobAIProfile(ctx context.Context, orgID, jobID uuid.UUID, profile *AIJobProfile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal AI profile: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET ai_profile = $3, updated_at = NOW() WHERE id = $1 AND org_id = $2`,
		jobID, orgID, profileJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to set AI profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}

// DeleteJob removes a job and returns whether a row was deleted.
func (db *DB) DeleteJob(ctx context.Context, orgID, jobID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM jobs WHERE id = $1 AND org_id = $2`,
		jobID, orgID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var j Job
	var requiredJSON, preferredJSON, aiProfileJSON []byte

	err := row.Scan(&j.ID, &j.OrgID, &j.Title, &j.Description, &requiredJSON, &preferredJSON,
		&j.ExperienceLevel, &j.Leniency, &j.Status, &aiProfileJSON, &j.CreatedBy,
		&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}

	j.RequiredSkills = make([]string, 0)
	j.PreferredSkills = make([]string, 0)
	if requiredJSON != nil {
		_ = json.Unmarshal(requiredJSON, &j.RequiredSkills)
	}
	if preferredJSON != nil {
		_ = json.Unmarshal(preferredJSON, &j.PreferredSkills)
	}
	if aiProfileJSON != nil {
		_ = json.Unmarshal(aiProfileJSON, &j.AIProfile)
	}
	return &j, nil
}

// emptyIfNil keeps JSONB columns as [] rather than null.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
