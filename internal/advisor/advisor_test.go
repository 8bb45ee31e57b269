package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-recommender/internal/llm"
	"github.com/jonathan/job-recommender/internal/skills"
	"github.com/jonathan/job-recommender/internal/types"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

type stubNarrator struct {
	narrative *llm.GapNarrative
	err       error
	got       llm.GapInput
}

func (s *stubNarrator) Narrate(_ context.Context, in llm.GapInput) (*llm.GapNarrative, error) {
	s.got = in
	return s.narrative, s.err
}

type stubEmbedder struct {
	vec types.Embedding
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) (types.Embedding, error) {
	return s.vec, s.err
}

type stubJobs struct {
	jobs []types.JobCandidate
	err  error
}

func (s *stubJobs) ListActiveWithEmbeddings(_ context.Context, _ int) ([]types.JobCandidate, error) {
	return s.jobs, s.err
}

func backendJob() *types.JobCandidate {
	return &types.JobCandidate{
		ID:             uuid.New(),
		Title:          "Backend Engineer",
		Company:        "Acme",
		RequiredSkills: []string{"python", "nodejs", "docker"},
		Active:         true,
	}
}

func TestReport_FallbackSummary(t *testing.T) {
	svc := NewGapService(nil, nil, nil)
	user := &types.UserProfile{Skills: []string{"Python", "Node.js"}}

	report := svc.Report(context.Background(), user, backendJob())

	assert.Equal(t, "Backend Engineer", report.JobTitle)
	assert.Equal(t, []string{"python", "nodejs"}, report.UserHasSkills)
	assert.Equal(t, []string{"docker"}, report.MissingSkills)
	assert.Equal(t, 2, report.Analysis.SkillsMatched)
	assert.Equal(t, 1, report.Analysis.SkillsMissing)
	assert.Equal(t, 3, report.Analysis.TotalRequired)
	assert.InDelta(t, 66.67, report.Analysis.MatchPercentage, 0.01)
	assert.Equal(t, "Match: 66.7%. Missing skills: docker", report.Analysis.Analysis)
	assert.Equal(t, []string{"docker"}, report.Recommendations)
	assert.Equal(t, []string{"docker"}, report.Analysis.PrioritySkills)
}

func TestReport_NarratorSuccess(t *testing.T) {
	narrator := &stubNarrator{narrative: &llm.GapNarrative{
		Analysis:        "You are close.",
		Recommendations: []string{"Ship a containerized service"},
	}}
	svc := NewGapService(nil, narrator, nil)

	report := svc.Report(context.Background(), &types.UserProfile{Skills: []string{"python"}}, backendJob())

	assert.Equal(t, "You are close.", report.Analysis.Analysis)
	assert.Equal(t, []string{"Ship a containerized service"}, report.Recommendations)
	// priority skills default to the first missing skills
	assert.Equal(t, []string{"nodejs", "docker"}, report.Analysis.PrioritySkills)
	assert.Equal(t, []string{"nodejs", "docker"}, narrator.got.MissingSkills)
}

func TestReport_NarratorFailure(t *testing.T) {
	svc := NewGapService(nil, &stubNarrator{err: errors.New("quota")}, nil)

	report := svc.Report(context.Background(), &types.UserProfile{}, backendJob())

	assert.Equal(t, "Match: 0.0%. Missing skills: python, nodejs, docker", report.Analysis.Analysis)
	assert.Equal(t, []string{}, report.UserHasSkills)
	assert.Equal(t, []string{}, report.UserSkills)
}

func TestReport_JobWithoutSkills(t *testing.T) {
	svc := NewGapService(skills.Default(), nil, nil)
	job := backendJob()
	job.RequiredSkills = nil

	report := svc.Report(context.Background(), &types.UserProfile{Skills: []string{"go"}}, job)

	assert.Equal(t, 0.0, report.Analysis.MatchPercentage)
	assert.Equal(t, "Match: 0.0%.", report.Analysis.Analysis)
	assert.Equal(t, []string{}, report.JobRequiredSkills)
	assert.Equal(t, []string{}, report.Recommendations)
}

func TestRankByQuery(t *testing.T) {
	jobs := []types.JobCandidate{
		{ID: uuid.New(), Title: "far", Embedding: types.Embedding{0, 1}},
		{ID: uuid.New(), Title: "none"},
		{ID: uuid.New(), Title: "near", Embedding: types.Embedding{1, 0.1}, Description: strings.Repeat("x", 300)},
		{ID: uuid.New(), Title: "mismatch", Embedding: types.Embedding{1, 0, 0}},
	}

	got := RankByQuery(types.Embedding{1, 0}, jobs, 5)

	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].Title)
	assert.Equal(t, "far", got[1].Title)
	assert.Len(t, got[0].Description, 200)

	assert.Len(t, RankByQuery(types.Embedding{1, 0}, jobs, 1), 1)
}

func TestBuildPrompt(t *testing.T) {
	var history []types.ChatMessage
	for i := 0; i < 8; i++ {
		history = append(history, types.ChatMessage{Role: types.ChatRoleUser, Content: "turn" + string(rune('0'+i))})
	}
	relevant := []types.RelevantJob{{Title: "Backend Engineer", Company: "Acme", Description: "Build APIs"}}

	prompt, err := BuildPrompt(&types.UserProfile{Skills: []string{"Go", "SQL"}}, "How do I move into platform work?", history, relevant)

	require.NoError(t, err)
	assert.Contains(t, prompt, "You are a helpful career advisor")
	assert.Contains(t, prompt, "User profile skills: Go, SQL")
	assert.Contains(t, prompt, "User question: How do I move into platform work?")
	assert.Contains(t, prompt, "- Backend Engineer at Acme: Build APIs")
	assert.NotContains(t, prompt, "turn2")
	assert.Contains(t, prompt, "user: turn3")
	assert.Contains(t, prompt, "user: turn7")
}

func TestReply(t *testing.T) {
	var gotTier llm.ModelTier
	client := &MockLLMClient{GenerateContentFunc: func(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
		gotTier = tier
		assert.Contains(t, prompt, "Platform Engineer")
		return " Focus on Kubernetes. ", nil
	}}
	jobs := &stubJobs{jobs: []types.JobCandidate{{ID: uuid.New(), Title: "Platform Engineer", Company: "Acme", Embedding: types.Embedding{1, 0}}}}
	a := NewAdvisor(client, &stubEmbedder{vec: types.Embedding{1, 0}}, jobs, nil)

	reply := a.Reply(context.Background(), &types.UserProfile{}, "What should I learn?", nil)

	assert.Equal(t, "Focus on Kubernetes.", reply.Response)
	require.Len(t, reply.RelevantJobs, 1)
	assert.Equal(t, llm.TierAdvanced, gotTier)
}

func TestReply_EmbeddingFailureDropsContext(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
		assert.NotContains(t, prompt, "Relevant job opportunities")
		return "General advice.", nil
	}}
	a := NewAdvisor(client, &stubEmbedder{err: errors.New("down")}, &stubJobs{}, nil)

	reply := a.Reply(context.Background(), nil, "Help", nil)

	assert.Equal(t, "General advice.", reply.Response)
	assert.Empty(t, reply.RelevantJobs)
	assert.NotNil(t, reply.RelevantJobs)
}

func TestReply_GenerationFailure(t *testing.T) {
	client := &MockLLMClient{GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
		return "", errors.New("timeout")
	}}
	a := NewAdvisor(client, nil, nil, nil)

	reply := a.Reply(context.Background(), &types.UserProfile{}, "Help", nil)

	assert.Equal(t, FallbackReply, reply.Response)
}

func TestPreview_FlattensMarkup(t *testing.T) {
	assert.Equal(t, "Build APIs - Go - SQL", preview("<p>Build APIs</p><ul><li>Go</li><li>SQL</li></ul>", 200))
	assert.Equal(t, "Build", preview("Build APIs", 5))
}
