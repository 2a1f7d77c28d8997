package match

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

// TestScore_FullMatchSenior verifies the worked scenario: full skill coverage
// at exactly the senior target yields 88.
func TestScore_FullMatchSenior(t *testing.T) {
	s := NewScorer(DefaultConfig())

	job := JobProfile{
		RequiredSkills:  []string{"React", "Node.js"},
		PreferredSkills: []string{"AWS"},
		ExperienceLevel: LevelSenior,
		Leniency:        0.5,
	}
	candidate := CandidateProfile{
		Skills:            []string{"React", "Node.js", "AWS"},
		YearsOfExperience: intPtr(6),
	}

	score := s.Score(job, candidate)
	assert.InDelta(t, 88, score, 1)

	breakdown := s.Explain(job, candidate)
	assert.Equal(t, 1.0, breakdown.RequiredCoverage)
	assert.Equal(t, 1.0, breakdown.PreferredCoverage)
	assert.Equal(t, 0.5, breakdown.ExperienceScore)
}

// TestScore_NoMatch verifies an empty candidate scores zero against a
// demanding job.
func TestScore_NoMatch(t *testing.T) {
	s := NewScorer(DefaultConfig())

	job := JobProfile{
		RequiredSkills:  []string{"React", "Node.js"},
		PreferredSkills: []string{"AWS"},
		ExperienceLevel: LevelSenior,
		Leniency:        0.5,
	}
	candidate := CandidateProfile{
		Skills:            []string{},
		YearsOfExperience: intPtr(0),
	}

	assert.Equal(t, 0, s.Score(job, candidate))
}

// TestScore_Deterministic verifies repeated calls yield the identical integer.
func TestScore_Deterministic(t *testing.T) {
	s := NewScorer(DefaultConfig())

	job := JobProfile{
		RequiredSkills:  []string{"Go", "PostgreSQL", "Docker"},
		PreferredSkills: []string{"Kubernetes", "Terraform"},
		ExperienceLevel: LevelMid,
		Leniency:        0.3,
	}
	candidate := CandidateProfile{
		Skills:            []string{"Go", "Docker"},
		YearsOfExperience: intPtr(2),
	}

	first := s.Score(job, candidate)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Score(job, candidate))
	}
}

// TestScore_Range verifies the score stays in [0,100] over adversarial inputs.
func TestScore_Range(t *testing.T) {
	s := NewScorer(DefaultConfig())

	cases := []struct {
		name      string
		job       JobProfile
		candidate CandidateProfile
	}{
		{"empty everything", JobProfile{}, CandidateProfile{}},
		{"negative leniency", JobProfile{Leniency: -5, RequiredSkills: []string{"Go"}}, CandidateProfile{}},
		{"huge leniency", JobProfile{Leniency: 99}, CandidateProfile{YearsOfExperience: intPtr(1)}},
		{"negative years", JobProfile{ExperienceLevel: LevelSenior}, CandidateProfile{YearsOfExperience: intPtr(-3)}},
		{"huge years", JobProfile{ExperienceLevel: LevelEntry}, CandidateProfile{YearsOfExperience: intPtr(120)}},
		{"unknown level", JobProfile{ExperienceLevel: "galactic"}, CandidateProfile{YearsOfExperience: intPtr(4)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score := s.Score(tc.job, tc.candidate)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		})
	}
}

// TestScore_VacuousRequirements verifies a job with no required skills cannot
// penalize any candidate on the required axis.
func TestScore_VacuousRequirements(t *testing.T) {
	s := NewScorer(DefaultConfig())

	breakdown := s.Explain(
		JobProfile{RequiredSkills: nil},
		CandidateProfile{Skills: []string{"Basket weaving"}},
	)
	assert.Equal(t, 1.0, breakdown.RequiredCoverage)

	// Absent preferred skills are not a free bonus.
	assert.Equal(t, 0.0, breakdown.PreferredCoverage)
}

// TestScore_ExactTargetNeutrality verifies hitting the target exactly yields
// an experience component of 0.5 for every level.
func TestScore_ExactTargetNeutrality(t *testing.T) {
	s := NewScorer(DefaultConfig())

	anchors := map[ExperienceLevel]int{
		LevelEntry: 1, LevelMid: 3, LevelSenior: 6, LevelLead: 8, LevelExecutive: 10,
	}
	for level, target := range anchors {
		breakdown := s.Explain(
			JobProfile{ExperienceLevel: level},
			CandidateProfile{YearsOfExperience: intPtr(target)},
		)
		assert.Equal(t, 0.5, breakdown.ExperienceScore, "level %s", level)
	}
}

// TestScore_OverqualificationCap verifies doubling the target caps the
// experience component at 1.0 and more experience adds nothing.
func TestScore_OverqualificationCap(t *testing.T) {
	s := NewScorer(DefaultConfig())
	job := JobProfile{ExperienceLevel: LevelMid} // target 3

	atDouble := s.Explain(job, CandidateProfile{YearsOfExperience: intPtr(6)})
	beyond := s.Explain(job, CandidateProfile{YearsOfExperience: intPtr(25)})

	assert.Equal(t, 1.0, atDouble.ExperienceScore)
	assert.Equal(t, 1.0, beyond.ExperienceScore)
}

// TestScore_LeniencyMonotonic verifies increasing leniency never decreases
// an under-target candidate's experience component.
func TestScore_LeniencyMonotonic(t *testing.T) {
	s := NewScorer(DefaultConfig())
	candidate := CandidateProfile{YearsOfExperience: intPtr(2)}

	prev := -1.0
	for leniency := 0.0; leniency <= 0.91; leniency += 0.1 {
		breakdown := s.Explain(JobProfile{ExperienceLevel: LevelSenior, Leniency: leniency}, candidate)
		assert.GreaterOrEqual(t, breakdown.ExperienceScore, prev, "leniency %.1f", leniency)
		prev = breakdown.ExperienceScore
	}
}

// TestScore_SkillNormalization verifies matching is case and whitespace
// insensitive but nothing fuzzier.
func TestScore_SkillNormalization(t *testing.T) {
	s := NewScorer(DefaultConfig())

	breakdown := s.Explain(
		JobProfile{RequiredSkills: []string{"React", "  node.js "}},
		CandidateProfile{Skills: []string{"react", "NODE.JS"}},
	)
	assert.Equal(t, 1.0, breakdown.RequiredCoverage)

	// No stemming: "reacting" does not match "react".
	breakdown = s.Explain(
		JobProfile{RequiredSkills: []string{"React"}},
		CandidateProfile{Skills: []string{"Reacting"}},
	)
	assert.Equal(t, 0.0, breakdown.RequiredCoverage)
}

// TestScore_UnknownYearsNeutral verifies absent candidate years scores as
// exactly meeting the target rather than as zero experience.
func TestScore_UnknownYearsNeutral(t *testing.T) {
	s := NewScorer(DefaultConfig())

	unknown := s.Explain(JobProfile{ExperienceLevel: LevelLead}, CandidateProfile{})
	atTarget := s.Explain(JobProfile{ExperienceLevel: LevelLead}, CandidateProfile{YearsOfExperience: intPtr(8)})

	assert.Equal(t, atTarget.ExperienceScore, unknown.ExperienceScore)
	assert.Equal(t, 0.5, unknown.ExperienceScore)
}

// TestScore_DuplicateRequiredSkills verifies duplicated requirements collapse
// before coverage is computed.
func TestScore_DuplicateRequiredSkills(t *testing.T) {
	s := NewScorer(DefaultConfig())

	breakdown := s.Explain(
		JobProfile{RequiredSkills: []string{"Go", "go", "GO", "SQL"}},
		CandidateProfile{Skills: []string{"Go"}},
	)
	assert.Equal(t, 0.5, breakdown.RequiredCoverage)
}

// TestScoreBatch verifies batch scoring matches individual scoring and keeps
// input order.
func TestScoreBatch(t *testing.T) {
	s := NewScorer(DefaultConfig())
	job := JobProfile{
		RequiredSkills:  []string{"Go", "SQL"},
		ExperienceLevel: LevelMid,
		Leniency:        0.5,
	}

	items := make([]BatchItem, 0, 50)
	for i := 0; i < 50; i++ {
		items = append(items, BatchItem{
			ID:        fmt.Sprintf("app-%d", i),
			Candidate: CandidateProfile{Skills: []string{"Go"}, YearsOfExperience: intPtr(i % 10)},
		})
	}

	results, err := s.ScoreBatch(context.Background(), job, items)
	require.NoError(t, err)
	require.Len(t, results, 50)

	for i, r := range results {
		assert.Equal(t, items[i].ID, r.ID)
		assert.Equal(t, s.Score(job, items[i].Candidate), r.Score)
	}
}

// TestScoreBatch_Cancelled verifies a cancelled context aborts the batch.
func TestScoreBatch_Cancelled(t *testing.T) {
	s := NewScorer(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ScoreBatch(ctx, JobProfile{}, []BatchItem{{ID: "a"}})
	assert.Error(t, err)
}

// TestNewScorer_ZeroConfigUsesDefaults verifies the zero config falls back to
// the production weights.
func TestNewScorer_ZeroConfigUsesDefaults(t *testing.T) {
	s := NewScorer(Config{})

	score := s.Score(
		JobProfile{RequiredSkills: []string{"Go"}, ExperienceLevel: LevelMid},
		CandidateProfile{Skills: []string{"Go"}, YearsOfExperience: intPtr(3)},
	)
	// 0.55 + 0 + 0.25*0.5 = 0.675
	assert.Equal(t, 68, score)
}

// TestScore_CustomWeights verifies overridden weights flow through.
func TestScore_CustomWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequiredWeight = 1.0
	cfg.PreferredWeight = 0
	cfg.ExperienceWeight = 0
	s := NewScorer(cfg)

	score := s.Score(
		JobProfile{RequiredSkills: []string{"Go", "SQL"}},
		CandidateProfile{Skills: []string{"Go"}},
	)
	assert.Equal(t, 50, score)
}
