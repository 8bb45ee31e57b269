package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/advisor"
	"github.com/jonathan/job-recommender/internal/cache"
	"github.com/jonathan/job-recommender/internal/config"
	"github.com/jonathan/job-recommender/internal/db"
	"github.com/jonathan/job-recommender/internal/llm"
	"github.com/jonathan/job-recommender/internal/ranking"
	"github.com/jonathan/job-recommender/internal/server"
	"github.com/jonathan/job-recommender/internal/skills"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes recommendation, job browsing, skill gap and advisor endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
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
	onStop := []func(){database.Close}

	var embeddingCache ranking.EmbeddingCache
	if cfg.RedisAddr != "" {
		c, err := cache.NewEmbeddingCache(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL(),
		})
		if err != nil {
			// the cache is an optimisation; serve without it
			log.Warn("embedding cache unavailable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			embeddingCache = c
			onStop = append(onStop, func() { _ = c.Close() })
		}
	}

	p, err := newProviders(ctx, cfg, log)
	if err == nil {
		onStop = append(onStop, p.Close)
		err = p.checkVectorWidth(cfg)
	}
	if err != nil {
		for _, stop := range onStop {
			stop()
		}
		return err
	}

	normalizer := skills.Default()
	opts := ranking.RankerOptions{
		Normalizer: normalizer,
		Store:      database,
		Logger:     log,
	}
	var narrator advisor.Narrator
	var embedder ranking.Embedder
	if p.embedder != nil {
		embedder = p.embedder
		opts.Resolver = ranking.NewEmbeddingResolver(embedder, embeddingCache, database, log)
	}
	if p.client != nil {
		opts.Explainer = llm.NewExplainer(p.client)
		narrator = llm.NewGapAnalyzer(p.client)
	}

	jwtService := server.NewJWTService(jwtConfig)
	srv, err := server.New(server.Config{
		Port:       cfg.ListenPort(),
		CORSOrigin: cfg.CORSOrigin,
	}, server.Deps{
		Store:     database,
		Ranker:    ranking.NewRanker(cfg.Policy(), opts),
		Gaps:      advisor.NewGapService(normalizer, narrator, log),
		Advisor:   advisor.NewAdvisor(p.client, embedder, database, log),
		Validator: jwtService.AsTokenValidator(),
		Logger:    log,
		OnStop:    onStop,
	})
	if err != nil {
		for _, fn := range onStop {
			fn()
		}
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
