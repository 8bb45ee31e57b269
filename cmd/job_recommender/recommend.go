package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/llm"
	"github.com/jonathan/job-recommender/internal/observability"
	"github.com/jonathan/job-recommender/internal/ranking"
	"github.com/jonathan/job-recommender/internal/schemas"
	"github.com/jonathan/job-recommender/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank job postings for a user profile",
	Long:  "Ranks a JSON list of job postings against a JSON user profile and writes the recommendations JSON. With --live, missing user embeddings and explanations come from the configured LLM provider.",
	RunE:  runRecommend,
}

var (
	recommendUser string
	recommendJobs string
	recommendOut  string
	recommendTop  int
	recommendLive bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendUser, "user", "u", "", "Path to input UserProfile JSON file (required)")
	recommendCmd.Flags().StringVarP(&recommendJobs, "jobs", "j", "", "Path to input JSON array of job postings (required)")
	recommendCmd.Flags().StringVarP(&recommendOut, "out", "o", "", "Path to output Recommendations JSON file (default: stdout)")
	recommendCmd.Flags().IntVarP(&recommendTop, "top", "n", 0, "Number of recommendations (default: ranking policy default)")
	recommendCmd.Flags().BoolVar(&recommendLive, "live", false, "Use the configured LLM provider for embeddings and explanations")

	if err := recommendCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}
	if err := recommendCmd.MarkFlagRequired("jobs"); err != nil {
		panic(fmt.Sprintf("failed to mark jobs flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var user types.UserProfile
	if err := readJSON(recommendUser, &user); err != nil {
		return err
	}
	var jobs []types.JobCandidate
	if err := readJSON(recommendJobs, &jobs); err != nil {
		return err
	}

	opts := ranking.RankerOptions{Logger: log}
	if recommendLive {
		p, err := newProviders(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer p.Close()
		if err := p.checkVectorWidth(cfg); err != nil {
			return err
		}
		if p.embedder != nil {
			opts.Resolver = ranking.NewEmbeddingResolver(p.embedder, nil, nil, log)
		}
		if p.client != nil {
			opts.Explainer = llm.NewExplainer(p.client)
		}
	}

	ranker := ranking.NewRanker(cfg.Policy(), opts)
	ranked, err := ranker.Rank(cmd.Context(), &user, jobs, recommendTop)
	if err != nil {
		return fmt.Errorf("failed to rank jobs: %w", err)
	}
	log.Debug("ranked jobs", zap.Int("pool", len(jobs)), zap.Int("kept", len(ranked)))

	recs := types.NewRecommendations(ranked)
	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintRecommendations(recs)
	}
	return writeOutput(recommendOut, recs, schemas.RecommendationsSchema, log)
}
