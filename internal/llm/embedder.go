package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/jonathan/job-recommender/internal/types"
)

// Embedder generates embeddings for text
type Embedder interface {
	Embed(ctx context.Context, text string) (types.Embedding, error)
	// Dimensions returns the expected vector width, 0 when unknown
	Dimensions() int
	Close() error
}

// NewEmbedder creates an embedder for the configured provider
func NewEmbedder(ctx context.Context, config *Config, apiKey string) (Embedder, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.EmbeddingModel == "" {
		return nil, fmt.Errorf("no embedding model configured")
	}

	switch config.Provider {
	case ProviderOpenAI:
		client, err := newOpenAIAPI(config, apiKey)
		if err != nil {
			return nil, err
		}
		return &OpenAIEmbedder{client: client, config: config}, nil
	case ProviderGemini:
		if apiKey == "" {
			return nil, fmt.Errorf("API key is required")
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return &GeminiEmbedder{client: client, config: config}, nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %q", config.Provider)
	}
}

// GeminiEmbedder generates embeddings with a Gemini embedding model
type GeminiEmbedder struct {
	client *genai.Client
	config *Config
}

// Embed returns the embedding of text
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) (types.Embedding, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}
	model := e.client.EmbeddingModel(e.config.EmbeddingModel)
	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, providerErr(ProviderGemini, "embed", err)
	}
	if resp == nil || resp.Embedding == nil {
		return nil, providerErr(ProviderGemini, "embed", fmt.Errorf("empty embedding in response"))
	}
	return checkDimensions(ProviderGemini, resp.Embedding.Values, e.config.EmbeddingDimensions)
}

// Dimensions returns the configured vector width
func (e *GeminiEmbedder) Dimensions() int {
	return e.config.EmbeddingDimensions
}

// Close releases resources held by the embedder
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// OpenAIEmbedder generates embeddings with an OpenAI-compatible embedding model
type OpenAIEmbedder struct {
	client *openai.Client
	config *Config
}

// Embed returns the embedding of text
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) (types.Embedding, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(e.config.EmbeddingModel),
		Dimensions: e.config.EmbeddingDimensions,
	})
	if err != nil {
		return nil, providerErr(ProviderOpenAI, "embed", err)
	}
	if len(resp.Data) == 0 {
		return nil, providerErr(ProviderOpenAI, "embed", fmt.Errorf("empty embedding in response"))
	}
	return checkDimensions(ProviderOpenAI, resp.Data[0].Embedding, e.config.EmbeddingDimensions)
}

// Dimensions returns the configured vector width
func (e *OpenAIEmbedder) Dimensions() int {
	return e.config.EmbeddingDimensions
}

// Close is a no-op
func (e *OpenAIEmbedder) Close() error {
	return nil
}

func checkDimensions(p Provider, values []float32, want int) (types.Embedding, error) {
	if len(values) == 0 {
		return nil, providerErr(p, "embed", fmt.Errorf("empty embedding in response"))
	}
	if want > 0 && len(values) != want {
		return nil, providerErr(p, "embed", fmt.Errorf("expected %d dimensions, got %d", want, len(values)))
	}
	return types.Embedding(values), nil
}
