// Package advisor builds skill gap reports and answers career questions using job context.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/llm"
	"github.com/jonathan/job-recommender/internal/skills"
	"github.com/jonathan/job-recommender/internal/types"
)

// Narrator writes the narrative part of a skill gap report
type Narrator interface {
	Narrate(ctx context.Context, in llm.GapInput) (*llm.GapNarrative, error)
}

// GapService compares a user against a job and explains the difference
type GapService struct {
	normalizer *skills.Normalizer
	narrator   Narrator
	log        *zap.Logger
}

// NewGapService creates a gap service. A nil narrator produces the local summary only.
func NewGapService(normalizer *skills.Normalizer, narrator Narrator, log *zap.Logger) *GapService {
	if normalizer == nil {
		normalizer = skills.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GapService{normalizer: normalizer, narrator: narrator, log: log}
}

// Report builds the skill gap report for user against job. Narrative failures fall back
// to a local summary and are never returned.
func (s *GapService) Report(ctx context.Context, user *types.UserProfile, job *types.JobCandidate) *types.SkillGapReport {
	gap := s.normalizer.Analyze(user.Skills, job.RequiredSkills)

	report := &types.SkillGapReport{
		JobID:             job.ID,
		JobTitle:          job.Title,
		JobCompany:        job.Company,
		UserSkills:        nonNil(user.Skills),
		JobRequiredSkills: nonNil(job.RequiredSkills),
		UserHasSkills:     nonNil(gap.Matched),
		MissingSkills:     nonNil(gap.Missing),
		Analysis: types.GapDetail{
			MatchPercentage: gap.MatchPercentage,
			SkillsMatched:   len(gap.Matched),
			SkillsMissing:   len(gap.Missing),
			TotalRequired:   gap.TotalRequired,
		},
	}

	narrative := s.narrate(ctx, user, job, gap)
	report.Analysis.Analysis = narrative.Analysis
	report.Recommendations = nonNil(narrative.Recommendations)
	report.Analysis.PrioritySkills = nonNil(firstN(narrative.PrioritySkills, 5))
	return report
}

func (s *GapService) narrate(ctx context.Context, user *types.UserProfile, job *types.JobCandidate, gap skills.Gap) *llm.GapNarrative {
	if s.narrator != nil {
		n, err := s.narrator.Narrate(ctx, llm.GapInput{
			Title:           job.Title,
			Company:         job.Company,
			UserSkills:      user.Skills,
			RequiredSkills:  job.RequiredSkills,
			MatchedSkills:   gap.Matched,
			MissingSkills:   gap.Missing,
			MatchPercentage: gap.MatchPercentage,
		})
		if err == nil {
			if len(n.PrioritySkills) == 0 {
				n.PrioritySkills = firstN(gap.Missing, 5)
			}
			return n
		}
		s.log.Warn("skill gap narrative failed, using summary",
			zap.String("job_id", job.ID.String()), zap.Error(err))
	}
	return FallbackNarrative(gap)
}

// FallbackNarrative is the local summary used when no model answer is available
func FallbackNarrative(gap skills.Gap) *llm.GapNarrative {
	text := fmt.Sprintf("Match: %.1f%%.", gap.MatchPercentage)
	if len(gap.Missing) > 0 {
		text = fmt.Sprintf("Match: %.1f%%. Missing skills: %s", gap.MatchPercentage, strings.Join(firstN(gap.Missing, 10), ", "))
	}
	missing := firstN(gap.Missing, 5)
	return &llm.GapNarrative{
		Analysis:        text,
		Recommendations: missing,
		PrioritySkills:  missing,
	}
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
