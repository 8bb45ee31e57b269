// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-recommender/internal/llm"
	"github.com/jonathan/job-recommender/internal/ranking"
	"github.com/jonathan/job-recommender/internal/types"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment, CLI flags or defaults.
type Config struct {
	// Storage. The Redis embedding cache is disabled when RedisAddr is empty.
	DatabaseURL   string `json:"database_url,omitempty"`
	RedisAddr     string `json:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty" validate:"min=0,max=15"`
	CacheTTLHours int    `json:"cache_ttl_hours,omitempty" validate:"min=0"`

	// Providers. Model fields override the provider defaults per tier:
	// lite for explanations, standard for skill gap analysis, advanced for the advisor.
	// APIKey wins over the per-provider keys read from the environment.
	Provider            string `json:"provider,omitempty" validate:"omitempty,oneof=gemini openai"`
	APIKey              string `json:"api_key,omitempty"`
	GeminiAPIKey        string `json:"-"`
	OpenAIAPIKey        string `json:"-"`
	BaseURL             string `json:"base_url,omitempty" validate:"omitempty,url"`
	LiteModel           string `json:"lite_model,omitempty"`
	StandardModel       string `json:"standard_model,omitempty"`
	AdvancedModel       string `json:"advanced_model,omitempty"`
	EmbeddingModel      string `json:"embedding_model,omitempty"`
	EmbeddingDimensions int    `json:"embedding_dimensions,omitempty" validate:"min=0"`
	// VectorDimensions is the width of the stored embedding columns, types.Dimension when unset.
	VectorDimensions int `json:"vector_dimensions,omitempty" validate:"min=0"`

	// Server
	Port       int    `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	CORSOrigin string `json:"cors_origin,omitempty"`

	// Behavior
	Verbose bool            `json:"verbose,omitempty"`
	Ranking *ranking.Policy `json:"ranking,omitempty"`
}

// DefaultPort is the HTTP port used when none is configured
const DefaultPort = 8080

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the commands that need them.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Ranking != nil {
		if err := c.Ranking.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer config file values over environment values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	strs := []struct {
		dst *string
		src string
	}{
		{&result.DatabaseURL, defaults.DatabaseURL},
		{&result.RedisAddr, defaults.RedisAddr},
		{&result.RedisPassword, defaults.RedisPassword},
		{&result.Provider, defaults.Provider},
		{&result.APIKey, defaults.APIKey},
		{&result.GeminiAPIKey, defaults.GeminiAPIKey},
		{&result.OpenAIAPIKey, defaults.OpenAIAPIKey},
		{&result.BaseURL, defaults.BaseURL},
		{&result.LiteModel, defaults.LiteModel},
		{&result.StandardModel, defaults.StandardModel},
		{&result.AdvancedModel, defaults.AdvancedModel},
		{&result.EmbeddingModel, defaults.EmbeddingModel},
		{&result.CORSOrigin, defaults.CORSOrigin},
	}
	for _, s := range strs {
		if *s.dst == "" {
			*s.dst = s.src
		}
	}

	// Int fields: use default if zero
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}
	if result.CacheTTLHours == 0 {
		result.CacheTTLHours = defaults.CacheTTLHours
	}
	if result.EmbeddingDimensions == 0 {
		result.EmbeddingDimensions = defaults.EmbeddingDimensions
	}
	if result.VectorDimensions == 0 {
		result.VectorDimensions = defaults.VectorDimensions
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.Ranking == nil && defaults.Ranking != nil {
		p := *defaults.Ranking
		result.Ranking = &p
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv reads the configuration from environment variables.
// Both provider keys are read; ProviderAPIKey picks one once the provider is settled.
func FromEnv() Config {
	c := Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		Provider:       strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER"))),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		BaseURL:        os.Getenv("OPENAI_BASE_URL"),
		EmbeddingModel: os.Getenv("EMBEDDING_MODEL"),
		CORSOrigin:     os.Getenv("CORS_ORIGIN"),
	}
	c.Port = envInt("PORT")
	c.EmbeddingDimensions = envInt("EMBEDDING_DIMENSIONS")
	c.VectorDimensions = envInt("VECTOR_DIMENSIONS")
	return c
}

func envInt(key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return 0
	}
	return n
}

// ProviderAPIKey returns the API key for the provider in effect
func (c *Config) ProviderAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch llm.Provider(c.Provider) {
	case llm.ProviderOpenAI:
		return c.OpenAIAPIKey
	case llm.ProviderGemini, "":
		return c.GeminiAPIKey
	default:
		return ""
	}
}

// VectorWidth returns the width of stored embeddings
func (c *Config) VectorWidth() int {
	if c.VectorDimensions > 0 {
		return c.VectorDimensions
	}
	return types.Dimension
}

// LLMConfig builds the provider configuration with any model overrides applied
func (c *Config) LLMConfig() (*llm.Config, error) {
	base, err := llm.ConfigFor(c.Provider)
	if err != nil {
		return nil, err
	}
	overrides := map[llm.ModelTier]string{
		llm.TierLite:     c.LiteModel,
		llm.TierStandard: c.StandardModel,
		llm.TierAdvanced: c.AdvancedModel,
	}
	for tier, model := range overrides {
		if model != "" {
			base = base.WithModel(tier, model)
		}
	}
	if c.EmbeddingModel != "" {
		dims := c.EmbeddingDimensions
		if dims == 0 {
			dims = base.EmbeddingDimensions
		}
		base = base.WithEmbeddingModel(c.EmbeddingModel, dims)
	} else if c.EmbeddingDimensions > 0 {
		base = base.WithEmbeddingModel(base.EmbeddingModel, c.EmbeddingDimensions)
	}
	base.BaseURL = c.BaseURL
	return base, nil
}

// Policy returns the ranking policy, defaulting to the production policy
func (c *Config) Policy() ranking.Policy {
	if c.Ranking == nil {
		return ranking.DefaultPolicy()
	}
	return *c.Ranking
}

// CacheTTL returns the embedding cache TTL, 0 meaning the cache default
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// ListenPort returns the configured port or DefaultPort
func (c *Config) ListenPort() int {
	if c.Port == 0 {
		return DefaultPort
	}
	return c.Port
}
