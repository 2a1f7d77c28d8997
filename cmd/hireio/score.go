package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hireio/hireio/internal/match"
	"github.com/hireio/hireio/internal/observability"
)

var (
	scoreRequired  []string
	scorePreferred []string
	scoreLevel     string
	scoreLeniency  float64
	scoreSkills    []string
	scoreYears     int
	scoreAsJSON    bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a candidate profile against job requirements",
	Long:  `Compute a deterministic 0-100 match score from job requirements and a candidate profile, with the per-factor breakdown.`,
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringSliceVar(&scoreRequired, "required", nil, "Required skills (comma-separated)")
	scoreCmd.Flags().StringSliceVar(&scorePreferred, "preferred", nil, "Preferred skills (comma-separated)")
	scoreCmd.Flags().StringVar(&scoreLevel, "level", "", "Target experience level (entry, mid, senior, lead, executive)")
	scoreCmd.Flags().Float64Var(&scoreLeniency, "leniency", 0, "Experience leniency in [0,1]")
	scoreCmd.Flags().StringSliceVar(&scoreSkills, "skills", nil, "Candidate skills (comma-separated)")
	scoreCmd.Flags().IntVar(&scoreYears, "years", -1, "Candidate years of experience (-1 for unknown)")
	scoreCmd.Flags().BoolVar(&scoreAsJSON, "json", false, "Print the breakdown as JSON")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	if scoreLeniency < 0 || scoreLeniency > 1 {
		return fmt.Errorf("--leniency must be in [0,1], got %v", scoreLeniency)
	}

	job := match.JobProfile{
		RequiredSkills:  scoreRequired,
		PreferredSkills: scorePreferred,
		ExperienceLevel: match.ExperienceLevel(scoreLevel),
		Leniency:        scoreLeniency,
	}

	candidate := match.CandidateProfile{Skills: scoreSkills}
	if scoreYears >= 0 {
		years := scoreYears
		candidate.YearsOfExperience = &years
	}

	breakdown := match.NewScorer(match.DefaultConfig()).Explain(job, candidate)

	if scoreAsJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(breakdown)
	}

	observability.NewPrinter(os.Stdout).PrintBreakdown(breakdown)
	return nil
}
