package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hireio/hireio/internal/extract"
	"github.com/hireio/hireio/internal/match"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	years := 6
	summary := "Seasoned backend engineer."
	printer.PrintProfile(&extract.Profile{
		Skills:            []string{"Go", "PostgreSQL"},
		TechnologyTags:    []string{"backend"},
		YearsOfExperience: &years,
		Summary:           &summary,
	})

	out := buf.String()
	assert.Contains(t, out, "EXTRACTED PROFILE")
	assert.Contains(t, out, "Go, PostgreSQL")
	assert.Contains(t, out, "6")
	assert.Contains(t, out, "Seasoned backend engineer.")
}

func TestPrintProfile_NilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintProfile_UnknownYears(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfile(&extract.Profile{Skills: []string{"Go"}})
	assert.Contains(t, buf.String(), "unknown")
}

func TestPrintBreakdown(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBreakdown(match.Breakdown{
		RequiredCoverage:  1.0,
		PreferredCoverage: 0.5,
		ExperienceScore:   0.5,
		Total:             78,
	})

	out := buf.String()
	assert.Contains(t, out, "MATCH SCORE")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "78 / 100")
}

func TestJoinLimited(t *testing.T) {
	assert.Equal(t, "(none)", joinLimited(nil))
	assert.Equal(t, "a, b", joinLimited([]string{"a", "b"}))

	many := make([]string, 12)
	for i := range many {
		many[i] = "s"
	}
	out := joinLimited(many)
	assert.Contains(t, out, "+4 more")
	assert.Equal(t, maxItemsToShow, strings.Count(out, "s"))
}
