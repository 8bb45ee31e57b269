package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/job-recommender/internal/prompts"
	"github.com/jonathan/job-recommender/internal/types"
)

const recommendPrompts = "recommend.json"

// Explainer writes short match explanations with a text generation client
type Explainer struct {
	client Client
	tier   ModelTier
}

// NewExplainer creates an explainer on the lite tier
func NewExplainer(client Client) *Explainer {
	return &Explainer{client: client, tier: TierLite}
}

// Explain returns a one or two sentence explanation for a recommendation
func (e *Explainer) Explain(ctx context.Context, in types.ExplanationContext) (string, error) {
	prompt, err := ExplanationPrompt(in)
	if err != nil {
		return "", err
	}
	text, err := e.client.GenerateContent(ctx, prompt, e.tier)
	if err != nil {
		return "", fmt.Errorf("failed to generate explanation: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// ExplanationPrompt fills the explanation template for in
func ExplanationPrompt(in types.ExplanationContext) (string, error) {
	return prompts.Render(recommendPrompts, "explain-recommendation", map[string]string{
		"Title":           in.JobTitle,
		"Company":         in.Company,
		"RequiredSkills":  joinFirst(in.RequiredSkills, 5),
		"MatchedSkills":   joinFirst(in.MatchedSkills, 10),
		"MissingSkills":   joinFirst(in.MissingSkills, 10),
		"CombinedScore":   percent(in.CombinedScore),
		"SimilarityScore": percent(in.SimilarityScore),
		"SkillMatchCount": fmt.Sprintf("%d", in.SkillMatchCount),
		"TotalRequired":   fmt.Sprintf("%d", in.TotalRequired),
	})
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func joinFirst(items []string, n int) string {
	if len(items) == 0 {
		return "none"
	}
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
