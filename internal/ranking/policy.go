// Package ranking scores job postings against a user profile and ranks them.
package ranking

import (
	"encoding/json"
	"fmt"
	"time"
)

// Policy holds the scoring and ranking constants
type Policy struct {
	// SimilarityWeight and SkillWeight blend the two signals when embeddings are available
	SimilarityWeight float64 `json:"similarity_weight"`
	SkillWeight      float64 `json:"skill_weight"`
	// SkillOnlyDiscount is applied to the skill ratio when similarity is exactly 0
	SkillOnlyDiscount float64 `json:"skill_only_discount"`

	// Admission thresholds. A candidate passing any one of them is kept.
	MinSimilarity float64 `json:"min_similarity"`
	MinCombined   float64 `json:"min_combined"`

	DefaultTopN int `json:"default_top_n"`
	// CandidateLimit caps how many active jobs are fetched per request.
	// It is a ceiling on recall: jobs beyond it are never scored.
	CandidateLimit int `json:"candidate_limit"`

	ScoringWorkers        int `json:"scoring_workers"`
	ExplainConcurrency    int `json:"explain_concurrency"`
	ExplainTimeoutSeconds int `json:"explain_timeout_seconds"`
}

// DefaultPolicy returns the production policy.
func DefaultPolicy() Policy {
	return Policy{
		SimilarityWeight:      0.5,
		SkillWeight:           0.5,
		SkillOnlyDiscount:     0.8,
		MinSimilarity:         0.3,
		MinCombined:           0.1,
		DefaultTopN:           10,
		CandidateLimit:        500,
		ScoringWorkers:        4,
		ExplainConcurrency:    4,
		ExplainTimeoutSeconds: 20,
	}
}

// UnmarshalJSON decodes a policy over DefaultPolicy, so fields absent from the
// document keep their production values.
func (p *Policy) UnmarshalJSON(data []byte) error {
	type plain Policy
	decoded := plain(DefaultPolicy())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Policy(decoded)
	return nil
}

// withRuntimeDefaults fills unset sizing fields. Score constants are used as given.
func (p Policy) withRuntimeDefaults() Policy {
	d := DefaultPolicy()
	if p.DefaultTopN <= 0 {
		p.DefaultTopN = d.DefaultTopN
	}
	if p.CandidateLimit <= 0 {
		p.CandidateLimit = d.CandidateLimit
	}
	if p.ScoringWorkers <= 0 {
		p.ScoringWorkers = d.ScoringWorkers
	}
	if p.ExplainConcurrency <= 0 {
		p.ExplainConcurrency = d.ExplainConcurrency
	}
	if p.ExplainTimeoutSeconds <= 0 {
		p.ExplainTimeoutSeconds = d.ExplainTimeoutSeconds
	}
	return p
}

func (p Policy) explainTimeout() time.Duration {
	return time.Duration(p.ExplainTimeoutSeconds) * time.Second
}

// Validate checks that weights and thresholds are within sensible ranges.
func (p Policy) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"similarity_weight", p.SimilarityWeight},
		{"skill_weight", p.SkillWeight},
		{"skill_only_discount", p.SkillOnlyDiscount},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > 1 {
			return fmt.Errorf("policy error: '%s' must be within [0, 1], got %v", c.name, c.value)
		}
	}
	if p.MinSimilarity < -1 || p.MinSimilarity > 1 {
		return fmt.Errorf("policy error: 'min_similarity' must be within [-1, 1], got %v", p.MinSimilarity)
	}
	if p.DefaultTopN < 0 || p.CandidateLimit < 0 || p.ScoringWorkers < 0 || p.ExplainConcurrency < 0 {
		return fmt.Errorf("policy error: sizes must be non-negative")
	}
	return nil
}
