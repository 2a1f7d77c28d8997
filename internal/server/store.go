package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/hireio/hireio/internal/db"
)

// Store is the persistence surface the HTTP layer depends on. *db.DB is the
// production implementation; tests substitute an in-memory one.
type Store interface {
	Ping(ctx context.Context) error

	CreateOrganization(ctx context.Context, name string) (*db.Organization, error)
	GetOrganization(ctx context.Context, id uuid.UUID) (*db.Organization, error)

	CreateUser(ctx context.Context, orgID uuid.UUID, email, name, role, passwordHash string) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)

	CreateJob(ctx context.Context, p db.CreateJobParams) (*db.Job, error)
	GetJob(ctx context.Context, orgID, jobID uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, orgID uuid.UUID, opts db.ListJobsOptions) ([]db.Job, int, error)
	UpdateJob(ctx context.Context, orgID, jobID uuid.UUID, p db.UpdateJobParams) (*db.Job, error)
	SetJobAIProfile(ctx context.Context, orgID, jobID uuid.UUID, profile *db.AIJobProfile) error
	DeleteJob(ctx context.Context, orgID, jobID uuid.UUID) (bool, error)

	CreateCandidate(ctx context.Context, p db.CreateCandidateParams) (*db.Candidate, error)
	GetCandidate(ctx context.Context, orgID, candidateID uuid.UUID) (*db.Candidate, error)
	ListCandidates(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]db.Candidate, int, error)
	UpdateCandidateProfile(ctx context.Context, orgID, candidateID uuid.UUID, skills []string, years *int, summary *string, tags []string) (*db.Candidate, error)
	UpdateCandidate(ctx context.Context, orgID, candidateID uuid.UUID, name, email string, headline *string) (*db.Candidate, error)
	DeleteCandidate(ctx context.Context, orgID, candidateID uuid.UUID) (bool, error)

	CreateApplication(ctx context.Context, orgID, jobID, candidateID uuid.UUID, matchScore *int) (*db.Application, error)
	GetApplication(ctx context.Context, orgID, applicationID uuid.UUID) (*db.Application, error)
	ListApplicationsByJob(ctx context.Context, orgID, jobID uuid.UUID) ([]db.Application, error)
	UpdateApplicationScore(ctx context.Context, orgID, applicationID uuid.UUID, score int) error
	UpdateApplicationStatus(ctx context.Context, orgID, applicationID uuid.UUID, status string) (*db.Application, error)

	InsertAuditEvent(ctx context.Context, e db.AuditEvent) error
	ListAuditEvents(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]db.AuditEvent, int, error)
}

var _ Store = (*db.DB)(nil)
