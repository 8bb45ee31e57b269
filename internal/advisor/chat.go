package advisor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/ingestion"
	"github.com/jonathan/job-recommender/internal/llm"
	"github.com/jonathan/job-recommender/internal/prompts"
	"github.com/jonathan/job-recommender/internal/ranking"
	"github.com/jonathan/job-recommender/internal/similarity"
	"github.com/jonathan/job-recommender/internal/types"
)

const (
	advisorPrompts     = "advisor.json"
	contextPool        = 50 // embedded jobs compared against a question
	contextJobs        = 5
	historyTurns       = 5
	descriptionPreview = 200
)

// FallbackReply is returned when the text model cannot answer
const FallbackReply = "I apologize, but I'm having trouble processing your request right now. Please try again later."

// JobSource lists active jobs that carry embeddings
type JobSource interface {
	ListActiveWithEmbeddings(ctx context.Context, limit int) ([]types.JobCandidate, error)
}

// Advisor answers career questions, grounding answers in the most relevant postings
type Advisor struct {
	client   llm.Client
	embedder ranking.Embedder
	jobs     JobSource
	log      *zap.Logger
}

// NewAdvisor creates an advisor. embedder and jobs may be nil, which disables job context.
func NewAdvisor(client llm.Client, embedder ranking.Embedder, jobs JobSource, log *zap.Logger) *Advisor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Advisor{client: client, embedder: embedder, jobs: jobs, log: log}
}

// Reply answers message in the context of history. It never fails: context lookup errors
// drop the job context and generation errors produce FallbackReply.
func (a *Advisor) Reply(ctx context.Context, user *types.UserProfile, message string, history []types.ChatMessage) *types.AdvisorReply {
	relevant := a.relevantJobs(ctx, message)

	reply := &types.AdvisorReply{Response: FallbackReply, RelevantJobs: relevant}
	if a.client == nil {
		return reply
	}

	prompt, err := BuildPrompt(user, message, history, relevant)
	if err != nil {
		a.log.Error("failed to build advisor prompt", zap.Error(err))
		return reply
	}
	text, err := a.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil || strings.TrimSpace(text) == "" {
		a.log.Warn("advisor generation failed", zap.Error(err))
		return reply
	}
	reply.Response = strings.TrimSpace(text)
	return reply
}

func (a *Advisor) relevantJobs(ctx context.Context, message string) []types.RelevantJob {
	out := []types.RelevantJob{}
	if a.embedder == nil || a.jobs == nil {
		return out
	}

	query, err := a.embedder.Embed(ctx, message)
	if err != nil {
		a.log.Warn("advisor query embedding failed", zap.Error(err))
		return out
	}
	jobs, err := a.jobs.ListActiveWithEmbeddings(ctx, contextPool)
	if err != nil {
		a.log.Warn("advisor job lookup failed", zap.Error(err))
		return out
	}
	return RankByQuery(query, jobs, contextJobs)
}

// RankByQuery orders jobs by cosine similarity to query and keeps the first n.
// Jobs whose embedding cannot be compared are skipped.
func RankByQuery(query types.Embedding, jobs []types.JobCandidate, n int) []types.RelevantJob {
	out := make([]types.RelevantJob, 0, len(jobs))
	for i := range jobs {
		j := &jobs[i]
		if !j.Embedding.Present() {
			continue
		}
		sim, err := similarity.Cosine(query, j.Embedding)
		if err != nil {
			continue
		}
		out = append(out, types.RelevantJob{
			ID:          j.ID,
			Title:       j.Title,
			Company:     j.Company,
			Description: preview(j.Description, descriptionPreview),
			Similarity:  sim,
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Similarity > out[b].Similarity })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// BuildPrompt renders the advisor prompt with the last few turns of history
func BuildPrompt(user *types.UserProfile, message string, history []types.ChatMessage, relevant []types.RelevantJob) (string, error) {
	system, err := prompts.Get(advisorPrompts, "advisor-system")
	if err != nil {
		return "", err
	}

	if len(history) > historyTurns {
		history = history[len(history)-historyTurns:]
	}
	var hist strings.Builder
	for _, m := range history {
		fmt.Fprintf(&hist, "%s: %s\n", m.Role, m.Content)
	}

	var jobCtx strings.Builder
	if len(relevant) > 0 {
		jobCtx.WriteString("\nRelevant job opportunities:\n")
		for _, j := range relevant {
			fmt.Fprintf(&jobCtx, "- %s at %s: %s\n", j.Title, j.Company, j.Description)
		}
	}

	userSkills := "not provided"
	if user != nil && len(user.Skills) > 0 {
		userSkills = strings.Join(user.Skills, ", ")
	}

	return prompts.Render(advisorPrompts, "advisor-user", map[string]string{
		"System":     system,
		"UserSkills": userSkills,
		"History":    strings.TrimRight(hist.String(), "\n"),
		"Message":    message,
		"Context":    jobCtx.String(),
	})
}

// preview flattens a description to one line of at most n runes
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(ingestion.PlainText(s)), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
