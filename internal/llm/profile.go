package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// GeneratedProfile is the structured ideal-candidate output for a job
// posting. The shape is part of the prompt contract below; responses that do
// not validate against generatedProfileSchema are rejected.
type GeneratedProfile struct {
	Summary            string   `json:"summary"`
	IdealCandidate     string   `json:"ideal_candidate"`
	ScreeningQuestions []string `json:"screening_questions"`
}

// generatedProfileSchema validates the LLM response before anything is
// persisted.
const generatedProfileSchema = `{
	"type": "object",
	"required": ["summary", "ideal_candidate", "screening_questions"],
	"properties": {
		"summary": {"type": "string", "minLength": 1},
		"ideal_candidate": {"type": "string", "minLength": 1},
		"screening_questions": {
			"type": "array",
			"items": {"type": "string"},
			"minItems": 1,
			"maxItems": 10
		}
	},
	"additionalProperties": false
}`

// GenerateJobProfile asks the model for an ideal-candidate profile and
// screening questions for one job posting. The model is a replaceable
// collaborator: callers treat failures as a disabled feature, never as a
// reason to fail job creation.
func GenerateJobProfile(ctx context.Context, client Client, title, description string) (*GeneratedProfile, error) {
	if client == nil {
		return nil, fmt.Errorf("LLM client is required")
	}

	prompt := buildJobProfilePrompt(title, description)

	response, err := client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate job profile: %w", err)
	}
	response = CleanJSONBlock(response)

	if err := validateGeneratedProfile(response); err != nil {
		return nil, err
	}

	var profile GeneratedProfile
	if err := json.Unmarshal([]byte(response), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job profile: %w (content: %s)", err, response)
	}
	return &profile, nil
}

// buildJobProfilePrompt constructs the generation prompt.
func buildJobProfilePrompt(title, description string) string {
	var sb strings.Builder
	sb.WriteString("You are a recruiting assistant. Given a job posting, describe the ideal candidate\n")
	sb.WriteString("and propose screening questions. Respond with JSON only, in this exact shape:\n")
	sb.WriteString(`{"summary": "...", "ideal_candidate": "...", "screening_questions": ["...", "..."]}`)
	sb.WriteString("\n\nJob title: ")
	sb.WriteString(title)
	sb.WriteString("\n\nJob description:\n")
	sb.WriteString(description)
	return sb.String()
}

// validateGeneratedProfile checks the raw response against the JSON Schema.
func validateGeneratedProfile(response string) error {
	schemaLoader := gojsonschema.NewStringLoader(generatedProfileSchema)
	documentLoader := gojsonschema.NewStringLoader(response)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate job profile response: %w", err)
	}
	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return fmt.Errorf("job profile response failed schema validation: %s", strings.Join(messages, "; "))
	}
	return nil
}
