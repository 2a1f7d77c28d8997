package types

import "github.com/go-playground/validator/v10"

// CreateCandidateRequest registers a candidate. Sourcing fields only; the
// extracted resume profile is populated by a separate upload.
type CreateCandidateRequest struct {
	Name     string  `json:"name" validate:"required,min=1"`
	Email    string  `json:"email" validate:"required,email"`
	Headline *string `json:"headline,omitempty"`
}

// UpdateCandidateRequest rewrites a candidate's sourcing fields.
type UpdateCandidateRequest struct {
	Name     string  `json:"name" validate:"required,min=1"`
	Email    string  `json:"email" validate:"required,email"`
	Headline *string `json:"headline,omitempty"`
}

// ResumeUploadResponse reports the outcome of a resume upload. Extraction
// failures are reported here rather than failing the request.
type ResumeUploadResponse struct {
	CandidateID       string   `json:"candidate_id"`
	Extracted         bool     `json:"extracted"`
	ExtractionError   string   `json:"extraction_error,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	YearsOfExperience *int     `json:"years_of_experience,omitempty"`
	Summary           *string  `json:"summary,omitempty"`
	TechnologyTags    []string `json:"technology_tags,omitempty"`
}

// Validate validates the CreateCandidateRequest using the validator.
func (r *CreateCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateCandidateRequest using the validator.
func (r *UpdateCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
