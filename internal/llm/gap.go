package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/job-recommender/internal/prompts"
)

const skillGapPrompts = "skill_gap.json"

// GapInput is the material for a skill gap narrative
type GapInput struct {
	Title           string
	Company         string
	UserSkills      []string
	RequiredSkills  []string
	MatchedSkills   []string
	MissingSkills   []string
	MatchPercentage float64
}

// GapNarrative is the structured answer of the skill gap prompt
type GapNarrative struct {
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
	PrioritySkills  []string `json:"priority_skills"`
}

// GapAnalyzer asks the model for a skill gap analysis in JSON
type GapAnalyzer struct {
	client Client
	tier   ModelTier
}

// NewGapAnalyzer creates a gap analyzer on the standard tier
func NewGapAnalyzer(client Client) *GapAnalyzer {
	return &GapAnalyzer{client: client, tier: TierStandard}
}

// Narrate returns the model's analysis of the gap
func (a *GapAnalyzer) Narrate(ctx context.Context, in GapInput) (*GapNarrative, error) {
	prompt, err := prompts.Render(skillGapPrompts, "analyze-skill-gap", map[string]string{
		"Title":           in.Title,
		"Company":         in.Company,
		"UserSkills":      joinFirst(in.UserSkills, 20),
		"RequiredSkills":  joinFirst(in.RequiredSkills, 20),
		"MatchedSkills":   joinFirst(in.MatchedSkills, 20),
		"MissingSkills":   joinFirst(in.MissingSkills, 20),
		"MatchPercentage": fmt.Sprintf("%.1f%%", in.MatchPercentage),
	})
	if err != nil {
		return nil, err
	}

	text, err := a.client.GenerateJSON(ctx, prompt, a.tier)
	if err != nil {
		return nil, fmt.Errorf("failed to generate skill gap analysis: %w", err)
	}
	return ParseGapNarrative(text)
}

// ParseGapNarrative decodes a model response, tolerating code fences and surrounding prose.
func ParseGapNarrative(text string) (*GapNarrative, error) {
	var n GapNarrative
	if err := json.Unmarshal([]byte(CleanJSONBlock(text)), &n); err != nil {
		return nil, fmt.Errorf("failed to parse skill gap analysis: %w", err)
	}
	n.Analysis = strings.TrimSpace(n.Analysis)
	if n.Analysis == "" {
		return nil, fmt.Errorf("skill gap analysis is empty")
	}
	return &n, nil
}
