package types

import "github.com/google/uuid"

// ScoredCandidate is a job paired with its scores for one recommendation request.
// It is never persisted.
type ScoredCandidate struct {
	Job             JobCandidate `json:"job"`
	SimilarityScore float64      `json:"similarity_score"`
	SkillMatchCount int          `json:"skill_match_count"`
	SkillMatchRatio float64      `json:"skill_match_ratio"`
	CombinedScore   float64      `json:"combined_score"`
	MatchedSkills   []string     `json:"matched_skills"`
	MissingSkills   []string     `json:"missing_skills"`
	Explanation     string       `json:"explanation"`
}

// Recommendation is the record handed to the transport layer
type Recommendation struct {
	JobID           uuid.UUID `json:"job_id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location,omitempty"`
	ApplicationURL  string    `json:"application_url,omitempty"`
	CombinedScore   float64   `json:"combined_score"`
	SimilarityScore float64   `json:"similarity_score"`
	SkillMatchCount int       `json:"skill_match_count"`
	SkillMatchRatio float64   `json:"skill_match_ratio"`
	MatchedSkills   []string  `json:"matched_skills"`
	MissingSkills   []string  `json:"missing_skills"`
	Explanation     string    `json:"explanation"`
}

// Recommendations wraps a ranked list for JSON output
type Recommendations struct {
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
	Message         string           `json:"message,omitempty"`
}

// ToRecommendation converts a scored candidate into its transport record.
func (c *ScoredCandidate) ToRecommendation() Recommendation {
	matched := c.MatchedSkills
	if matched == nil {
		matched = []string{}
	}
	missing := c.MissingSkills
	if missing == nil {
		missing = []string{}
	}
	return Recommendation{
		JobID:           c.Job.ID,
		Title:           c.Job.Title,
		Company:         c.Job.Company,
		Location:        c.Job.Location,
		ApplicationURL:  c.Job.ApplicationURL,
		CombinedScore:   c.CombinedScore,
		SimilarityScore: c.SimilarityScore,
		SkillMatchCount: c.SkillMatchCount,
		SkillMatchRatio: c.SkillMatchRatio,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Explanation:     c.Explanation,
	}
}

// NewRecommendations converts a ranked list, preserving order.
func NewRecommendations(ranked []ScoredCandidate) *Recommendations {
	out := make([]Recommendation, 0, len(ranked))
	for i := range ranked {
		out = append(out, ranked[i].ToRecommendation())
	}
	return &Recommendations{Recommendations: out, Count: len(out)}
}

// ExplanationContext is the structured input for the explanation provider
type ExplanationContext struct {
	JobID           uuid.UUID `json:"job_id"`
	JobTitle        string    `json:"job_title"`
	Company         string    `json:"company"`
	RequiredSkills  []string  `json:"required_skills"`
	MatchedSkills   []string  `json:"matched_skills"`
	MissingSkills   []string  `json:"missing_skills"`
	CombinedScore   float64   `json:"combined_score"`
	SimilarityScore float64   `json:"similarity_score"`
	SkillMatchCount int       `json:"skill_match_count"`
	TotalRequired   int       `json:"total_required"`
}

// ExplanationContext builds the explanation provider input for a scored candidate.
func (c *ScoredCandidate) ExplanationContext() ExplanationContext {
	return ExplanationContext{
		JobID:           c.Job.ID,
		JobTitle:        c.Job.Title,
		Company:         c.Job.Company,
		RequiredSkills:  c.Job.RequiredSkills,
		MatchedSkills:   c.MatchedSkills,
		MissingSkills:   c.MissingSkills,
		CombinedScore:   c.CombinedScore,
		SimilarityScore: c.SimilarityScore,
		SkillMatchCount: c.SkillMatchCount,
		TotalRequired:   len(c.MatchedSkills) + len(c.MissingSkills),
	}
}
