package db

import (
	"time"

	"github.com/google/uuid"
)

// Organization is an employer tenant. Every other record is scoped to one
// organization and never visible across tenants.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// User roles within an organization.
const (
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleRecruiter = "recruiter"
	RoleReviewer  = "reviewer"
)

// User is a member of an organization.
type User struct {
	ID           uuid.UUID `json:"id"`
	OrgID        uuid.UUID `json:"org_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Job statuses.
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Job is an employer's job posting with its matching parameters.
type Job struct {
	ID              uuid.UUID `json:"id"`
	OrgID           uuid.UUID `json:"org_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	RequiredSkills  []string  `json:"required_skills"`
	PreferredSkills []string  `json:"preferred_skills"`
	ExperienceLevel *string   `json:"experience_level,omitempty"`
	Leniency        float64   `json:"leniency"`
	Status          string    `json:"status"`
	// AIProfile holds the LLM-generated ideal-candidate profile, when
	// generation is enabled.
	AIProfile *AIJobProfile `json:"ai_profile,omitempty"`
	CreatedBy uuid.UUID     `json:"created_by"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// AIJobProfile is the structured output of the ideal-candidate generation.
type AIJobProfile struct {
	Summary            string   `json:"summary"`
	IdealCandidate     string   `json:"ideal_candidate"`
	ScreeningQuestions []string `json:"screening_questions"`
}

// Candidate is a person added to an organization's pipeline, directly or via
// resume upload. Profile fields are nullable: nil means extraction never ran
// or found nothing, which is distinct from an empty value.
type Candidate struct {
	ID                uuid.UUID `json:"id"`
	OrgID             uuid.UUID `json:"org_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Headline          *string   `json:"headline,omitempty"`
	Skills            []string  `json:"skills"`
	YearsOfExperience *int      `json:"years_of_experience,omitempty"`
	Summary           *string   `json:"summary,omitempty"`
	TechnologyTags    []string  `json:"technology_tags"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Application statuses.
const (
	ApplicationStatusApplied     = "applied"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
)

// Application links a candidate to a job. MatchScore is nil until scoring has
// run for the pair.
type Application struct {
	ID          uuid.UUID `json:"id"`
	OrgID       uuid.UUID `json:"org_id"`
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Status      string    `json:"status"`
	MatchScore  *int      `json:"match_score,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuditEvent is one append-only entry in an organization's audit log.
type AuditEvent struct {
	ID         uuid.UUID      `json:"id"`
	OrgID      uuid.UUID      `json:"org_id"`
	ActorID    *uuid.UUID     `json:"actor_id,omitempty"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   *uuid.UUID     `json:"entity_id,omitempty"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
