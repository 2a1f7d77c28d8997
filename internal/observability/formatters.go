// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/hireio/hireio/internal/extract"
	"github.com/hireio/hireio/internal/match"
)

const (
	boxWidth = 60

	// maxItemsToShow caps how many list entries a box row displays.
	maxItemsToShow = 8
)

// innerWidth is the printable width between the box borders.
const innerWidth = boxWidth - 4

// Printer renders boxed sections to a writer, normally stderr in
// verbose mode so scores on stdout stay machine-readable.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) row(line string) {
	if len(line) > innerWidth {
		line = line[:innerWidth-3] + "..."
	}
	fmt.Fprintf(p.out, "│ %-*s │\n", innerWidth, line)
}

// printBox draws a bordered section with a title bar followed by the
// body, one row per line. Write errors are ignored.
func (p *Printer) printBox(title, body string) {
	rule := strings.Repeat("─", boxWidth-2)

	fmt.Fprintf(p.out, "┌%s┐\n", rule)
	p.row(title)
	fmt.Fprintf(p.out, "├%s┤\n", rule)
	for _, line := range strings.Split(body, "\n") {
		p.row(line)
	}
	fmt.Fprintf(p.out, "└%s┘\n", rule)
}

// PrintProfile outputs a human-readable summary of an extracted resume
// profile.
func (p *Printer) PrintProfile(profile *extract.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Skills:   %s\n", joinLimited(profile.Skills)))
	sb.WriteString(fmt.Sprintf("Tags:     %s\n", joinLimited(profile.TechnologyTags)))
	if profile.YearsOfExperience != nil {
		sb.WriteString(fmt.Sprintf("Years:    %d\n", *profile.YearsOfExperience))
	} else {
		sb.WriteString("Years:    unknown\n")
	}
	if profile.Summary != nil {
		sb.WriteString("\n")
		sb.WriteString(*profile.Summary)
	}

	p.printBox("EXTRACTED PROFILE", sb.String())
}

// PrintBreakdown outputs the factor-by-factor view of a match score.
func (p *Printer) PrintBreakdown(b match.Breakdown) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Required coverage:  %.0f%%\n", b.RequiredCoverage*100))
	sb.WriteString(fmt.Sprintf("Preferred coverage: %.0f%%\n", b.PreferredCoverage*100))
	sb.WriteString(fmt.Sprintf("Experience score:   %.0f%%\n", b.ExperienceScore*100))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total:              %d / 100", b.Total))

	p.printBox("MATCH SCORE", sb.String())
}

// joinLimited joins up to maxItemsToShow items, noting how many were elided.
func joinLimited(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	if len(items) <= maxItemsToShow {
		return strings.Join(items, ", ")
	}
	shown := strings.Join(items[:maxItemsToShow], ", ")
	return fmt.Sprintf("%s (+%d more)", shown, len(items)-maxItemsToShow)
}
