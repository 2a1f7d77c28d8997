package types

import "github.com/go-playground/validator/v10"

// CreateJobRequest opens a new job posting.
type CreateJobRequest struct {
	Title           string   `json:"title" validate:"required,min=1"`
	Description     string   `json:"description" validate:"required,min=1"`
	RequiredSkills  []string `json:"required_skills" validate:"dive,min=1"`
	PreferredSkills []string `json:"preferred_skills" validate:"dive,min=1"`
	ExperienceLevel *string  `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior lead executive"`
	Leniency        float64  `json:"leniency" validate:"gte=0,lte=1"`
}

// UpdateJobRequest rewrites a job's mutable fields.
type UpdateJobRequest struct {
	Title           string   `json:"title" validate:"required,min=1"`
	Description     string   `json:"description" validate:"required,min=1"`
	RequiredSkills  []string `json:"required_skills" validate:"dive,min=1"`
	PreferredSkills []string `json:"preferred_skills" validate:"dive,min=1"`
	ExperienceLevel *string  `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior lead executive"`
	Leniency        float64  `json:"leniency" validate:"gte=0,lte=1"`
	Status          string   `json:"status" validate:"required,oneof=open closed"`
}

// IngestJobRequest creates a job draft from a public posting URL.
type IngestJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateJobRequest using the validator.
func (r *UpdateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the IngestJobRequest using the validator.
func (r *IngestJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
