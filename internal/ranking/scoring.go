package ranking

import (
	"errors"

	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/similarity"
	"github.com/jonathan/job-recommender/internal/skills"
	"github.com/jonathan/job-recommender/internal/types"
)

// Scorer computes similarity, skill overlap and the combined score for one user/job pair.
type Scorer struct {
	policy     Policy
	normalizer *skills.Normalizer
	log        *zap.Logger
}

// NewScorer creates a scorer. A nil normalizer uses the default alias table.
func NewScorer(policy Policy, normalizer *skills.Normalizer, log *zap.Logger) *Scorer {
	if normalizer == nil {
		normalizer = skills.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scorer{policy: policy, normalizer: normalizer, log: log}
}

// Score scores a job for a user whose embedding has already been resolved.
// userEmbedding may be absent. The explanation is left empty.
func (s *Scorer) Score(userEmbedding types.Embedding, user *types.UserProfile, job *types.JobCandidate) types.ScoredCandidate {
	return s.score(userEmbedding, s.normalizer.Set(user.Skills), job)
}

// score is Score with the user's skill set precomputed, so a batch normalizes it once.
func (s *Scorer) score(userEmbedding types.Embedding, userSkills skills.Set, job *types.JobCandidate) types.ScoredCandidate {
	similarityScore := s.similarity(userEmbedding, job)

	jobSkills := s.normalizer.Set(job.RequiredSkills)
	matched := jobSkills.Intersect(userSkills)
	missing := jobSkills.Difference(userSkills)

	count := len(matched)
	ratio := 0.0
	if total := jobSkills.Len(); total > 0 {
		ratio = float64(count) / float64(total)
	}

	return types.ScoredCandidate{
		Job:             *job,
		SimilarityScore: similarityScore,
		SkillMatchCount: count,
		SkillMatchRatio: ratio,
		CombinedScore:   s.Combine(similarityScore, ratio),
		MatchedSkills:   jobSkills.Displays(matched),
		MissingSkills:   jobSkills.Displays(missing),
	}
}

// similarity returns the cosine similarity, or 0 when either embedding is absent.
func (s *Scorer) similarity(userEmbedding types.Embedding, job *types.JobCandidate) float64 {
	if !userEmbedding.Present() || !job.Embedding.Present() {
		return 0
	}
	score, err := similarity.Cosine(userEmbedding, job.Embedding)
	if err != nil {
		if errors.Is(err, similarity.ErrDimensionMismatch) {
			s.log.Warn("embedding dimension mismatch",
				zap.String("job_id", job.ID.String()),
				zap.Int("user_dim", len(userEmbedding)),
				zap.Int("job_dim", len(job.Embedding)))
		}
		return 0
	}
	return score
}

// Combine applies the two-branch combined score policy. A similarity of exactly 0
// means no semantic signal, so the skill ratio is trusted alone at a discount.
func (s *Scorer) Combine(similarityScore, skillMatchRatio float64) float64 {
	if similarityScore == 0 && skillMatchRatio > 0 {
		return skillMatchRatio * s.policy.SkillOnlyDiscount
	}
	return similarityScore*s.policy.SimilarityWeight + skillMatchRatio*s.policy.SkillWeight
}

// Admit reports whether a scored candidate passes any of the admission thresholds.
func (s *Scorer) Admit(c *types.ScoredCandidate) bool {
	return c.SkillMatchCount > 0 ||
		c.SimilarityScore > s.policy.MinSimilarity ||
		c.CombinedScore > s.policy.MinCombined
}
