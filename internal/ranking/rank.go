package ranking

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-recommender/internal/skills"
	"github.com/jonathan/job-recommender/internal/types"
)

// CandidateStore provides the pool of active job postings
type CandidateStore interface {
	ListActiveCandidates(ctx context.Context, limit int) ([]types.JobCandidate, error)
}

// Ranker turns a user profile and a candidate pool into an ordered, explained list
type Ranker struct {
	policy    Policy
	scorer    *Scorer
	resolver  *EmbeddingResolver
	store     CandidateStore
	explainer Explainer
	log       *zap.Logger
}

// RankerOptions holds the optional collaborators of a Ranker
type RankerOptions struct {
	Normalizer *skills.Normalizer
	Resolver   *EmbeddingResolver
	Store      CandidateStore
	Explainer  Explainer
	Logger     *zap.Logger
}

// NewRanker creates a ranker with the given policy. Nil collaborators disable the
// corresponding step: no resolver means stored embeddings only, no explainer means local
// explanations.
func NewRanker(policy Policy, opts RankerOptions) *Ranker {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = NewEmbeddingResolver(nil, nil, nil, log)
	}
	policy = policy.withRuntimeDefaults()
	return &Ranker{
		policy:    policy,
		scorer:    NewScorer(policy, opts.Normalizer, log),
		resolver:  resolver,
		store:     opts.Store,
		explainer: opts.Explainer,
		log:       log,
	}
}

// Policy returns the effective policy.
func (r *Ranker) Policy() Policy {
	return r.policy
}

// Scorer returns the scorer used by the ranker.
func (r *Ranker) Scorer() *Scorer {
	return r.scorer
}

// Recommend fetches the active pool from the store and ranks it for user.
func (r *Ranker) Recommend(ctx context.Context, user *types.UserProfile, topN int) ([]types.ScoredCandidate, error) {
	if r.store == nil {
		return nil, fmt.Errorf("ranker has no candidate store")
	}
	pool, err := r.store.ListActiveCandidates(ctx, r.policy.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list active candidates: %w", err)
	}
	return r.Rank(ctx, user, pool, topN)
}

// Rank scores, filters, orders and explains pool for user. It returns at most topN
// results (DefaultTopN when topN <= 0), ordered by combined score descending with ties
// kept in pool order.
func (r *Ranker) Rank(ctx context.Context, user *types.UserProfile, pool []types.JobCandidate, topN int) ([]types.ScoredCandidate, error) {
	if topN <= 0 {
		topN = r.policy.DefaultTopN
	}
	if len(pool) == 0 {
		return []types.ScoredCandidate{}, nil
	}

	userEmbedding := r.resolver.Resolve(ctx, user)
	userSkills := r.scorer.normalizer.Set(user.Skills)

	scored := make([]types.ScoredCandidate, len(pool))
	kept := make([]bool, len(pool))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.policy.ScoringWorkers)
	for i := range pool {
		if !pool[i].Active {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c := r.scorer.score(userEmbedding, userSkills, &pool[i])
			scored[i] = c
			kept[i] = r.scorer.Admit(&c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]types.ScoredCandidate, 0, len(pool))
	for i := range scored {
		if kept[i] {
			results = append(results, scored[i])
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].CombinedScore > results[b].CombinedScore
	})
	if len(results) > topN {
		results = results[:topN]
	}

	if err := r.explain(ctx, results); err != nil {
		return nil, err
	}

	r.log.Debug("ranked recommendations",
		zap.String("user_id", user.ID.String()),
		zap.Int("pool", len(pool)),
		zap.Int("returned", len(results)),
		zap.Bool("semantic", userEmbedding.Present()))
	return results, nil
}

// explain fills Explanation for every result, falling back locally on provider errors.
func (r *Ranker) explain(ctx context.Context, results []types.ScoredCandidate) error {
	if r.explainer == nil {
		for i := range results {
			results[i].Explanation = LocalExplanation(&results[i])
		}
		return nil
	}

	g := new(errgroup.Group)
	g.SetLimit(r.policy.ExplainConcurrency)
	for i := range results {
		g.Go(func() error {
			c := &results[i]
			callCtx, cancel := context.WithTimeout(ctx, r.policy.explainTimeout())
			defer cancel()

			text, err := r.explainer.Explain(callCtx, c.ExplanationContext())
			text = strings.TrimSpace(text)
			if err != nil || text == "" {
				if err != nil {
					r.log.Warn("explanation failed, using fallback",
						zap.String("job_id", c.Job.ID.String()), zap.Error(err))
				}
				text = LocalExplanation(c)
			}
			c.Explanation = text
			return nil
		})
	}
	_ = g.Wait()
	return ctx.Err()
}
