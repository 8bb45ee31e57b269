package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/db"
	"github.com/jonathan/job-recommender/internal/ingestion"
	"github.com/jonathan/job-recommender/internal/observability"
	"github.com/jonathan/job-recommender/internal/ranking"
	"github.com/jonathan/job-recommender/internal/types"
)

var embedJobsCmd = &cobra.Command{
	Use:   "embed-jobs",
	Short: "Backfill embeddings for active job postings",
	Long:  "Embeds title, description and required skills for active job postings that have no embedding yet and stores the vectors in Postgres. Individual failures are logged and counted.",
	RunE:  runEmbedJobs,
}

var (
	embedJobsLimit  int
	embedJobsDryRun bool
)

func init() {
	embedJobsCmd.Flags().IntVar(&embedJobsLimit, "limit", 100, "Maximum number of jobs to embed")
	embedJobsCmd.Flags().BoolVar(&embedJobsDryRun, "dry-run", false, "List the jobs that would be embedded without calling the provider")
	rootCmd.AddCommand(embedJobsCmd)
}

// jobEmbeddingStore is the part of the database the backfill needs
type jobEmbeddingStore interface {
	ListJobsMissingEmbeddings(ctx context.Context, limit int) ([]types.JobCandidate, error)
	UpdateJobEmbedding(ctx context.Context, id uuid.UUID, emb types.Embedding) error
}

// backfillResult counts the outcome of a backfill run
type backfillResult struct {
	Embedded int
	Failed   int
	Skipped  int
}

func runEmbedJobs(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if embedJobsDryRun {
		jobs, err := database.ListJobsMissingEmbeddings(ctx, embedJobsLimit)
		if err != nil {
			return err
		}
		for _, job := range jobs {
			fmt.Fprintf(os.Stdout, "%s\t%s\t%s\n", job.ID, job.Company, job.Title)
		}
		return nil
	}

	p, err := newProviders(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer p.Close()
	if p.embedder == nil {
		return fmt.Errorf("an LLM API key is required to embed jobs")
	}
	if err := p.checkVectorWidth(cfg); err != nil {
		return err
	}

	result, err := backfill(ctx, database, p.embedder, embedJobsLimit, log)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintBackfill(result.Embedded, result.Failed, result.Skipped)
	}
	fmt.Fprintf(os.Stdout, "Embedded %d jobs (%d failed, %d skipped)\n", result.Embedded, result.Failed, result.Skipped)
	return nil
}

// backfill embeds up to limit jobs. Only listing failure and cancellation are fatal.
func backfill(ctx context.Context, store jobEmbeddingStore, embedder ranking.Embedder, limit int, log *zap.Logger) (backfillResult, error) {
	var result backfillResult

	jobs, err := store.ListJobsMissingEmbeddings(ctx, limit)
	if err != nil {
		return result, err
	}

	for i := range jobs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		job := &jobs[i]
		text := ingestion.JobEmbeddingText(job)
		if strings.TrimSpace(text) == "" {
			result.Skipped++
			continue
		}

		emb, err := embedder.Embed(ctx, text)
		if err == nil {
			err = store.UpdateJobEmbedding(ctx, job.ID, emb)
		}
		if err != nil {
			result.Failed++
			log.Warn("failed to embed job", zap.Stringer("job_id", job.ID), zap.Error(err))
			continue
		}
		result.Embedded++
		log.Debug("embedded job", zap.Stringer("job_id", job.ID), zap.String("title", observability.TruncateForLog(job.Title, 60)))
	}
	return result, nil
}
