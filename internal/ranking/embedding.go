package ranking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/types"
)

// Embedder turns text into an embedding
type Embedder interface {
	Embed(ctx context.Context, text string) (types.Embedding, error)
}

// EmbeddingCache stores embeddings derived for users between requests
type EmbeddingCache interface {
	Get(ctx context.Context, userID uuid.UUID) (types.Embedding, bool, error)
	Set(ctx context.Context, userID uuid.UUID, embedding types.Embedding) error
}

// EmbeddingSaver persists a derived user embedding
type EmbeddingSaver interface {
	UpdateUserEmbedding(ctx context.Context, userID uuid.UUID, embedding types.Embedding) error
}

// EmbeddingResolver finds or derives the embedding for a user profile.
// Every collaborator is optional.
type EmbeddingResolver struct {
	embedder Embedder
	cache    EmbeddingCache
	saver    EmbeddingSaver
	log      *zap.Logger
}

// NewEmbeddingResolver creates a resolver. Any of embedder, cache and saver may be nil.
func NewEmbeddingResolver(embedder Embedder, cache EmbeddingCache, saver EmbeddingSaver, log *zap.Logger) *EmbeddingResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &EmbeddingResolver{embedder: embedder, cache: cache, saver: saver, log: log}
}

// Resolve returns the stored embedding, else a cached one, else one generated from the
// profile text. It returns nil (absent) when there is no text or the provider fails;
// failures are logged and never returned.
func (r *EmbeddingResolver) Resolve(ctx context.Context, user *types.UserProfile) types.Embedding {
	if user.Embedding.Present() {
		return user.Embedding
	}
	log := r.log.With(zap.String("user_id", user.ID.String()))

	cacheable := r.cache != nil && user.ID != uuid.Nil
	if cacheable {
		cached, ok, err := r.cache.Get(ctx, user.ID)
		if err != nil {
			log.Warn("embedding cache read failed", zap.Error(err))
		} else if ok && cached.Present() {
			return cached
		}
	}

	text := user.ProfileText()
	if text == "" {
		log.Debug("no profile text for embedding generation")
		return nil
	}
	if r.embedder == nil {
		return nil
	}

	embedding, err := r.embedder.Embed(ctx, text)
	if err != nil {
		log.Warn("user embedding generation failed, using skill matching only", zap.Error(err))
		return nil
	}
	if !embedding.Present() {
		return nil
	}

	if cacheable {
		if err := r.cache.Set(ctx, user.ID, embedding); err != nil {
			log.Warn("embedding cache write failed", zap.Error(err))
		}
	}
	if r.saver != nil && user.ID != uuid.Nil {
		if err := r.saver.UpdateUserEmbedding(ctx, user.ID, embedding); err != nil {
			log.Warn("failed to store generated user embedding", zap.Error(err))
		} else {
			log.Debug("generated and stored user embedding", zap.Int("dim", len(embedding)))
		}
	}
	return embedding
}
