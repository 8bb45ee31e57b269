package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedding_Present(t *testing.T) {
	assert.False(t, Embedding(nil).Present())
	assert.False(t, Embedding{}.Present())
	assert.True(t, Embedding{0}.Present(), "a computed zero vector is still present")
}

func TestUserProfile_ProfileText(t *testing.T) {
	tests := []struct {
		name     string
		profile  UserProfile
		expected string
	}{
		{"empty", UserProfile{}, ""},
		{"whitespace resume only", UserProfile{ResumeText: "   "}, ""},
		{"skills only", UserProfile{Skills: []string{"Python", "Node.js"}}, "Skills: Python, Node.js"},
		{
			"all fields",
			UserProfile{ResumeText: "Backend engineer", Skills: []string{"Go"}, ExperienceYears: "5", EducationLevel: "BSc"},
			"Backend engineer Skills: Go Experience: 5 years Education: BSc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.profile.ProfileText())
		})
	}
}

func TestUserProfile_HasSignal(t *testing.T) {
	assert.False(t, (&UserProfile{}).HasSignal())
	assert.True(t, (&UserProfile{Skills: []string{"go"}}).HasSignal())
	assert.True(t, (&UserProfile{ResumeText: "text"}).HasSignal())
	assert.True(t, (&UserProfile{Embedding: Embedding{1, 2}}).HasSignal())
}

func TestJobCandidate_EmbeddingText(t *testing.T) {
	job := JobCandidate{Title: "Backend Engineer", Description: "Build APIs", RequiredSkills: []string{"go", "sql"}}
	assert.Equal(t, "Backend Engineer\nBuild APIs\nSkills: go, sql", job.EmbeddingText())
	assert.Equal(t, "", (&JobCandidate{}).EmbeddingText())
}

func TestNewRecommendations_PreservesOrderAndEmptySlices(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ranked := []ScoredCandidate{
		{Job: JobCandidate{ID: a, Title: "A"}, CombinedScore: 0.9, MatchedSkills: []string{"go"}},
		{Job: JobCandidate{ID: b, Title: "B"}, CombinedScore: 0.4},
	}

	recs := NewRecommendations(ranked)
	require.Len(t, recs.Recommendations, 2)
	assert.Equal(t, 2, recs.Count)
	assert.Equal(t, a, recs.Recommendations[0].JobID)
	assert.Equal(t, b, recs.Recommendations[1].JobID)
	assert.NotNil(t, recs.Recommendations[1].MatchedSkills)
	assert.NotNil(t, recs.Recommendations[1].MissingSkills)

	jsonBytes, err := json.Marshal(recs)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"matched_skills":[]`)
	assert.Contains(t, string(jsonBytes), `"combined_score":0.9`)
}

func TestChatRequest_Validate(t *testing.T) {
	valid := ChatRequest{Message: "How do I move into ML?", History: []ChatMessage{{Role: ChatRoleUser, Content: "hi"}}}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&ChatRequest{}).Validate())

	badRole := ChatRequest{Message: "hi", History: []ChatMessage{{Role: "system", Content: "x"}}}
	assert.Error(t, badRole.Validate())
}
