package ranking

import (
	"context"
	"strings"

	"github.com/jonathan/job-recommender/internal/types"
)

// FallbackExplanation is used when no explainer is configured or it fails without skill context.
const FallbackExplanation = "Good match based on skills and job description similarity."

// Explainer produces a one-paragraph explanation for a retained recommendation
type Explainer interface {
	Explain(ctx context.Context, in types.ExplanationContext) (string, error)
}

// LocalExplanation builds an explanation from the matched and missing skills alone.
func LocalExplanation(c *types.ScoredCandidate) string {
	if len(c.MatchedSkills) == 0 {
		return FallbackExplanation
	}
	var b strings.Builder
	b.WriteString("Your skills in ")
	b.WriteString(strings.Join(firstN(c.MatchedSkills, 5), ", "))
	b.WriteString(" match this role")
	if len(c.MissingSkills) > 0 {
		b.WriteString("; consider building experience with ")
		b.WriteString(strings.Join(firstN(c.MissingSkills, 3), ", "))
	}
	b.WriteString(".")
	return b.String()
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
