package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateApplicationRequest attaches a candidate to a job. The match score is
// computed server-side at creation time.
type CreateApplicationRequest struct {
	CandidateID uuid.UUID `json:"candidate_id" validate:"required"`
}

// UpdateApplicationStatusRequest moves an application through the hiring
// funnel.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=applied shortlisted rejected hired"`
}

// ShortlistEntry is one anonymized row of a job's shortlist. Identifying
// fields are withheld so reviewers score candidates blind.
type ShortlistEntry struct {
	Alias             string    `json:"alias"`
	ApplicationID     uuid.UUID `json:"application_id"`
	MatchScore        *int      `json:"match_score"`
	Skills            []string  `json:"skills"`
	YearsOfExperience *int      `json:"years_of_experience,omitempty"`
	TechnologyTags    []string  `json:"technology_tags"`
}

// ShortlistResponse is the blind shortlist for one job.
type ShortlistResponse struct {
	JobID   uuid.UUID        `json:"job_id"`
	Entries []ShortlistEntry `json:"entries"`
}

// RescoreResponse reports a batch rescore of a job's applications.
type RescoreResponse struct {
	JobID   uuid.UUID `json:"job_id"`
	Updated int       `json:"updated"`
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateApplicationStatusRequest using the validator.
func (r *UpdateApplicationStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
