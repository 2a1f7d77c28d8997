// Package match produces the 0-100 compatibility score between a job's
// requirements and a candidate's extracted profile.
package match

import (
	"math"
	"strings"
)

// ExperienceLevel is a job's target seniority band.
type ExperienceLevel string

// Known experience levels. An empty level scores against the mid-level anchor.
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelLead      ExperienceLevel = "lead"
	LevelExecutive ExperienceLevel = "executive"
)

// JobProfile is the job side of a scoring call.
type JobProfile struct {
	RequiredSkills  []string
	PreferredSkills []string
	ExperienceLevel ExperienceLevel
	// Leniency in [0,1] shrinks the effective experience target for
	// under-experienced candidates. Out-of-range values are clamped.
	Leniency float64
}

// CandidateProfile is the candidate side of a scoring call. Nil years means
// unknown and scores neutrally on the experience axis.
type CandidateProfile struct {
	Skills            []string
	YearsOfExperience *int
}

// Config carries the scoring weights and experience anchors. Explicit
// configuration keeps the score deterministic and auditable, and lets tests
// and future per-tenant tuning override the defaults.
type Config struct {
	RequiredWeight   float64
	PreferredWeight  float64
	ExperienceWeight float64
	// ExperienceAnchors maps a level to its target years.
	ExperienceAnchors map[ExperienceLevel]int
	// DefaultTargetYears applies when the job has no experience level.
	DefaultTargetYears int
}

// DefaultConfig returns the fixed production weights (55/20/25) and anchors.
func DefaultConfig() Config {
	return Config{
		RequiredWeight:   0.55,
		PreferredWeight:  0.20,
		ExperienceWeight: 0.25,
		ExperienceAnchors: map[ExperienceLevel]int{
			LevelEntry:     1,
			LevelMid:       3,
			LevelSenior:    6,
			LevelLead:      8,
			LevelExecutive: 10,
		},
		DefaultTargetYears: 3,
	}
}

// Scorer computes match scores. It is stateless and safe for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given config. A zero-weight config is
// replaced with the defaults.
func NewScorer(cfg Config) *Scorer {
	if cfg.RequiredWeight == 0 && cfg.PreferredWeight == 0 && cfg.ExperienceWeight == 0 {
		cfg = DefaultConfig()
	}
	return &Scorer{cfg: cfg}
}

// Score returns the compatibility score in [0,100]. It is a total,
// deterministic function of its inputs: every input is treated permissively
// and out-of-range numbers are clamped, never rejected.
func (s *Scorer) Score(job JobProfile, candidate CandidateProfile) int {
	candidateSkills := normalizeSkillSet(candidate.Skills)

	required := coverage(job.RequiredSkills, candidateSkills)
	if len(normalizeSkills(job.RequiredSkills)) == 0 {
		// A job with no requirements cannot penalize any candidate.
		required = 1.0
	}
	preferred := coverage(job.PreferredSkills, candidateSkills)

	experience := s.experienceScore(job, candidate)

	total := required*s.cfg.RequiredWeight +
		preferred*s.cfg.PreferredWeight +
		experience*s.cfg.ExperienceWeight

	return int(math.Round(clamp(total*100, 0, 100)))
}

// Breakdown reports the per-axis components behind a score. Shortlist UIs
// surface these so the ranking stays explainable.
type Breakdown struct {
	RequiredCoverage  float64 `json:"required_coverage"`
	PreferredCoverage float64 `json:"preferred_coverage"`
	ExperienceScore   float64 `json:"experience_score"`
	Total             int     `json:"total"`
}

// Explain returns the score with its components.
func (s *Scorer) Explain(job JobProfile, candidate CandidateProfile) Breakdown {
	candidateSkills := normalizeSkillSet(candidate.Skills)

	required := coverage(job.RequiredSkills, candidateSkills)
	if len(normalizeSkills(job.RequiredSkills)) == 0 {
		required = 1.0
	}
	preferred := coverage(job.PreferredSkills, candidateSkills)
	experience := s.experienceScore(job, candidate)

	total := required*s.cfg.RequiredWeight +
		preferred*s.cfg.PreferredWeight +
		experience*s.cfg.ExperienceWeight

	return Breakdown{
		RequiredCoverage:  required,
		PreferredCoverage: preferred,
		ExperienceScore:   experience,
		Total:             int(math.Round(clamp(total*100, 0, 100))),
	}
}

// experienceScore maps the candidate's years against the job's target.
// Meeting the target exactly scores 0.5; twice the target or more caps at
// 1.0. Under-target candidates score against a leniency-shrunk target.
func (s *Scorer) experienceScore(job JobProfile, candidate CandidateProfile) float64 {
	target := s.cfg.DefaultTargetYears
	if job.ExperienceLevel != "" {
		if anchor, ok := s.cfg.ExperienceAnchors[job.ExperienceLevel]; ok {
			target = anchor
		}
	}
	if target <= 0 {
		target = 1
	}

	years := float64(target) // unknown scores neutrally, not as zero
	if candidate.YearsOfExperience != nil {
		years = float64(*candidate.YearsOfExperience)
		if years < 0 {
			years = 0
		}
	}

	ratio := years / float64(target)
	if ratio >= 1 {
		return math.Min(ratio, 2) / 2
	}

	// Leniency never shrinks the target below 55% of its nominal value.
	leniency := clamp(job.Leniency, 0, 0.9)
	tolerance := 1 - leniency*0.5
	adjusted := years / (float64(target) * tolerance)
	return clamp(adjusted, 0, 1)
}

// coverage returns the fraction of wanted skills present in the candidate
// set, or 0 when the job lists none.
func coverage(wanted []string, candidateSkills map[string]bool) float64 {
	normalized := normalizeSkills(wanted)
	if len(normalized) == 0 {
		return 0
	}

	matched := 0
	for _, skill := range normalized {
		if candidateSkills[skill] {
			matched++
		}
	}
	return float64(matched) / float64(len(normalized))
}

// normalizeSkills lowers and trims skill names, dropping empties and
// duplicates while preserving order.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

// normalizeSkillSet builds the candidate's lookup set.
func normalizeSkillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, skill := range skills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
