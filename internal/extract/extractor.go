// Package extract converts uploaded resume documents into the structured
// profile fields (skills, experience, summary, tags) used for job matching.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// summaryLineCount is how many leading lines of normalized text feed the summary.
	summaryLineCount = 6
	// summaryMaxChars caps the summary length.
	summaryMaxChars = 500
	// minYears and maxYears bound the estimated years of experience.
	minYears = 1
	maxYears = 40
)

// yearsPattern matches phrases like "5 years experience", "7+ yrs of experience".
// Singular "year"/"yr" is deliberately not matched.
var yearsPattern = regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*(?:years|yrs)(?:\s+of)?\s+experience`)

// Profile is the structured signal derived from one resume document.
// Optional fields are pointers: nil means "unknown", which is distinct from a
// zero value and must stay that way.
type Profile struct {
	NormalizedText    string   `json:"normalized_text"`
	Skills            []string `json:"skills"`
	YearsOfExperience *int     `json:"years_of_experience,omitempty"`
	Summary           *string  `json:"summary,omitempty"`
	TechnologyTags    []string `json:"technology_tags"`
}

// Extractor derives a Profile from resume document bytes. The dictionary is
// explicit configuration so tests and tenants can override detection tables.
type Extractor struct {
	dict *Dictionary
}

// NewExtractor creates an extractor with the given dictionary, or the default
// dictionary when dict is nil.
func NewExtractor(dict *Dictionary) *Extractor {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Extractor{dict: dict}
}

// Extract decodes the document, normalizes its text, and derives every
// profile field. It is a pure function of its inputs: identical bytes and
// hints always produce an identical profile.
func (e *Extractor) Extract(data []byte, mimeType, filename string) (*Profile, error) {
	f, ok := detectFormat(mimeType, filename)
	if !ok {
		return nil, &UnsupportedFormatError{MimeType: mimeType, Filename: filename}
	}

	raw, err := decode(data, f)
	if err != nil {
		return nil, &ExtractionError{Format: string(f), Cause: err}
	}

	text := NormalizeText(raw)
	lower := strings.ToLower(text)

	return &Profile{
		NormalizedText:    text,
		Skills:            e.detectSkills(lower),
		YearsOfExperience: estimateYears(text),
		Summary:           buildSummary(text),
		TechnologyTags:    e.detectTags(lower),
	}, nil
}

// detectSkills substring-matches the lowered text against the skill table.
// One entry per detected skill, in dictionary order.
func (e *Extractor) detectSkills(lower string) []string {
	skills := make([]string, 0)
	for _, entry := range e.dict.Skills {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				skills = append(skills, entry.Canonical)
				break
			}
		}
	}
	return skills
}

// estimateYears returns the maximum years-of-experience mention, clamped to
// [1,40], or nil when the text contains no such phrase. Resumes often state
// years per skill; the maximum stands in for overall seniority.
func estimateYears(text string) *int {
	matches := yearsPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	best := 0
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > best {
			best = n
		}
	}
	if best == 0 {
		return nil
	}

	if best < minYears {
		best = minYears
	}
	if best > maxYears {
		best = maxYears
	}
	return &best
}

// buildSummary joins the first six lines of normalized text and truncates to
// 500 characters. Returns nil rather than an empty string when there is
// nothing to summarize.
func buildSummary(text string) *string {
	if text == "" {
		return nil
	}

	lines := strings.SplitN(text, "\n", summaryLineCount+1)
	if len(lines) > summaryLineCount {
		lines = lines[:summaryLineCount]
	}

	summary := strings.Join(lines, " ")
	summary = strings.TrimSpace(horizontalWhitespace.ReplaceAllString(summary, " "))
	if summary == "" {
		return nil
	}
	if len(summary) > summaryMaxChars {
		cut := summaryMaxChars
		// Never split a multibyte rune at the cap.
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut]
	}
	return &summary
}

// detectTags emits every tag whose keyword list hits the lowered text.
func (e *Extractor) detectTags(lower string) []string {
	tags := make([]string, 0)
	for _, entry := range e.dict.Tags {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				tags = append(tags, entry.Name)
				break
			}
		}
	}
	return tags
}
