package ranking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-recommender/internal/types"
)

func TestCombine(t *testing.T) {
	s := NewScorer(DefaultPolicy(), nil, nil)

	tests := []struct {
		name     string
		sim      float64
		ratio    float64
		expected float64
	}{
		{"skill only branch", 0.0, 0.6, 0.48},
		{"weighted branch", 0.4, 0.6, 0.5},
		{"no signal", 0.0, 0.0, 0.0},
		{"similarity only", 0.8, 0.0, 0.4},
		{"negative similarity stays in weighted branch", -0.2, 0.5, 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, s.Combine(tt.sim, tt.ratio), 1e-9)
		})
	}
}

func TestCombine_CustomPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.SimilarityWeight = 0.7
	p.SkillWeight = 0.3
	p.SkillOnlyDiscount = 1.0
	s := NewScorer(p, nil, nil)

	assert.InDelta(t, 0.6, s.Combine(0, 0.6), 1e-9)
	assert.InDelta(t, 0.46, s.Combine(0.4, 0.6), 1e-9)
}

func TestAdmit(t *testing.T) {
	s := NewScorer(DefaultPolicy(), nil, nil)

	tests := []struct {
		name     string
		c        types.ScoredCandidate
		expected bool
	}{
		{"all thresholds fail", types.ScoredCandidate{SkillMatchCount: 0, SimilarityScore: 0.25, CombinedScore: 0.05}, false},
		{"similarity alone passes", types.ScoredCandidate{SkillMatchCount: 0, SimilarityScore: 0.35, CombinedScore: 0.0}, true},
		{"skill match alone passes", types.ScoredCandidate{SkillMatchCount: 1}, true},
		{"combined alone passes", types.ScoredCandidate{SimilarityScore: 0.2, CombinedScore: 0.11}, true},
		{"thresholds are strict", types.ScoredCandidate{SimilarityScore: 0.3, CombinedScore: 0.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Admit(&tt.c))
		})
	}
}

func TestScore_SkillOnlyScenario(t *testing.T) {
	s := NewScorer(DefaultPolicy(), nil, nil)
	user := &types.UserProfile{Skills: []string{"Python", "Node.js"}}
	job := &types.JobCandidate{
		ID:             uuid.New(),
		Title:          "Backend Engineer",
		RequiredSkills: []string{"python", "nodejs", "docker"},
		Active:         true,
	}

	c := s.Score(nil, user, job)

	assert.Equal(t, 2, c.SkillMatchCount)
	assert.InDelta(t, 0.667, c.SkillMatchRatio, 0.001)
	assert.Equal(t, 0.0, c.SimilarityScore)
	assert.InDelta(t, 0.533, c.CombinedScore, 0.001)
	assert.Equal(t, []string{"python", "nodejs"}, c.MatchedSkills)
	assert.Equal(t, []string{"docker"}, c.MissingSkills)
	assert.Empty(t, c.Explanation)
	assert.True(t, s.Admit(&c))
}

func TestScore_WithEmbeddings(t *testing.T) {
	s := NewScorer(DefaultPolicy(), nil, nil)
	user := &types.UserProfile{Skills: []string{"Go"}}
	job := &types.JobCandidate{
		ID:             uuid.New(),
		RequiredSkills: []string{"golang", "kubernetes"},
		Embedding:      types.Embedding{1, 0, 0},
	}

	c := s.Score(types.Embedding{1, 0, 0}, user, job)

	assert.InDelta(t, 1.0, c.SimilarityScore, 1e-6)
	assert.Equal(t, 1, c.SkillMatchCount)
	assert.InDelta(t, 0.5, c.SkillMatchRatio, 1e-9)
	assert.InDelta(t, 0.75, c.CombinedScore, 1e-6)
}

func TestScore_NoRequiredSkills(t *testing.T) {
	s := NewScorer(DefaultPolicy(), nil, nil)
	c := s.Score(nil, &types.UserProfile{Skills: []string{"go"}}, &types.JobCandidate{ID: uuid.New()})

	assert.Equal(t, 0, c.SkillMatchCount)
	assert.Equal(t, 0.0, c.SkillMatchRatio)
	assert.Equal(t, 0.0, c.CombinedScore)
	assert.False(t, s.Admit(&c))
}

func TestScore_DimensionMismatchScoresZero(t *testing.T) {
	s := NewScorer(DefaultPolicy(), nil, nil)
	job := &types.JobCandidate{ID: uuid.New(), Embedding: types.Embedding{1, 0}}

	c := s.Score(types.Embedding{1, 0, 0}, &types.UserProfile{}, job)

	assert.Equal(t, 0.0, c.SimilarityScore)
}

func TestScore_DoesNotMutateInputs(t *testing.T) {
	s := NewScorer(DefaultPolicy(), nil, nil)
	user := &types.UserProfile{Skills: []string{"Node.js"}}
	job := &types.JobCandidate{ID: uuid.New(), RequiredSkills: []string{"NodeJS", "Docker"}}

	_ = s.Score(nil, user, job)

	assert.Equal(t, []string{"Node.js"}, user.Skills)
	assert.Equal(t, []string{"NodeJS", "Docker"}, job.RequiredSkills)
}
