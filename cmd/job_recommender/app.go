package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/config"
	"github.com/jonathan/job-recommender/internal/llm"
	"github.com/jonathan/job-recommender/internal/observability"
	"github.com/jonathan/job-recommender/internal/schemas"
)

// loadConfig layers the config file, if any, over the environment and validates the result.
func loadConfig() (*config.Config, error) {
	env := config.FromEnv()
	cfg := env
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(env)
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := observability.NewLogger(jsonLogs, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// providers holds the optional LLM collaborators. Both are nil when no API key is configured.
type providers struct {
	client   llm.Client
	embedder llm.Embedder
}

func (p *providers) Close() {
	if p.client != nil {
		_ = p.client.Close()
	}
	if p.embedder != nil {
		_ = p.embedder.Close()
	}
}

// newProviders builds the text and embedding clients for the configured provider.
func newProviders(ctx context.Context, cfg *config.Config, log *zap.Logger) (*providers, error) {
	p := &providers{}
	apiKey := cfg.ProviderAPIKey()
	if apiKey == "" {
		log.Warn("no LLM API key configured; using stored embeddings and local explanations")
		return p, nil
	}

	llmConfig, err := cfg.LLMConfig()
	if err != nil {
		return nil, err
	}

	p.client, err = llm.NewClient(ctx, llmConfig, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	p.embedder, err = llm.NewEmbedder(ctx, llmConfig, apiKey)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	log.Info("LLM providers ready",
		zap.String("provider", string(llmConfig.Provider)),
		zap.String("embedding_model", llmConfig.EmbeddingModel),
		zap.Int("embedding_dimensions", p.embedder.Dimensions()),
	)
	return p, nil
}

// checkVectorWidth fails when the embedder's vectors cannot be compared with stored ones
func (p *providers) checkVectorWidth(cfg *config.Config) error {
	if p.embedder == nil {
		return nil
	}
	want := cfg.VectorWidth()
	if got := p.embedder.Dimensions(); got != want {
		return fmt.Errorf("embedding model produces %d-dimensional vectors but stored embeddings are %d-dimensional; "+
			"set EMBEDDING_MODEL and EMBEDDING_DIMENSIONS, or VECTOR_DIMENSIONS to match the columns", got, want)
	}
	return nil
}

// readJSON decodes a JSON file into v
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeOutput writes v as indented JSON to path, or to stdout when path is empty.
// The document is checked against schemaFile when the schema can be found; a mismatch
// is logged, not fatal.
func writeOutput(path string, v any, schemaFile string, log *zap.Logger) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if schemaPath := schemas.ResolveSchemaPath(schemaFile); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			log.Warn("output validation failed", zap.String("schema", schemaFile), zap.Error(err))
		}
	}

	data = append(data, '\n')
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
