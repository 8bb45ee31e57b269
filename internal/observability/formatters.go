// Package observability provides logging setup and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-recommender/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to n runes with a trailing ellipsis
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintRecommendations outputs the top recommendations with their scores.
func (p *Printer) PrintRecommendations(recs *types.Recommendations) {
	if recs == nil {
		return
	}
	if len(recs.Recommendations) == 0 {
		msg := "No matching jobs found"
		if recs.Message != "" {
			msg = recs.Message
		}
		p.printBox("RECOMMENDATIONS", msg)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total recommendations: %d\n\n", recs.Count))

	count := min(len(recs.Recommendations), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := recs.Recommendations[i]
		sb.WriteString(fmt.Sprintf("#%d  %s at %s\n", i+1, r.Title, r.Company))
		sb.WriteString(fmt.Sprintf("    Score: %.2f (similarity %.2f, skills %d)\n",
			r.CombinedScore, r.SimilarityScore, r.SkillMatchCount))
		if len(r.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Matched: %s\n", clip(strings.Join(r.MatchedSkills, ", "), 40)))
		}
		if len(r.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", clip(strings.Join(r.MissingSkills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recs.Recommendations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(recs.Recommendations)-maxItemsToShow))
	}

	p.printBox("TOP RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillGap outputs a skill gap report summary.
func (p *Printer) PrintSkillGap(report *types.SkillGapReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:      %s at %s\n", report.JobTitle, report.JobCompany))
	sb.WriteString(fmt.Sprintf("Match:    %.1f%% (%d/%d)\n",
		report.Analysis.MatchPercentage, report.Analysis.SkillsMatched, report.Analysis.TotalRequired))
	sb.WriteString("\n")

	if len(report.MissingSkills) > 0 {
		sb.WriteString("Missing Skills:\n")
		count := min(len(report.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", report.MissingSkills[i]))
		}
		if len(report.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.MissingSkills)-maxItemsToShow))
		}
	} else {
		sb.WriteString("No missing skills\n")
	}

	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBackfill outputs the result of an embedding backfill run.
func (p *Printer) PrintBackfill(embedded, failed, skipped int) {
	p.printBox("JOB EMBEDDINGS", fmt.Sprintf("Embedded: %d\nFailed:   %d\nSkipped:  %d", embedded, failed, skipped))
}
