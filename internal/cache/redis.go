// Package cache stores derived user embeddings in Redis between requests.
package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jonathan/job-recommender/internal/types"
)

// DefaultTTL bounds how long a derived embedding outlives the profile it came from
const DefaultTTL = 24 * time.Hour

const keyPrefix = "jobrec:user-embedding:"

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// EmbeddingCache is a Redis-backed user embedding cache
type EmbeddingCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewEmbeddingCache connects to Redis and verifies the connection
func NewEmbeddingCache(ctx context.Context, opts Options) (*EmbeddingCache, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newEmbeddingCache(rdb, opts.TTL), nil
}

func newEmbeddingCache(rdb *goredis.Client, ttl time.Duration) *EmbeddingCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &EmbeddingCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached embedding for userID. A miss is (nil, false, nil).
func (c *EmbeddingCache) Get(ctx context.Context, userID uuid.UUID) (types.Embedding, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached embedding: %w", err)
	}
	emb, err := Decode(raw)
	if err != nil {
		return nil, false, err
	}
	return emb, true, nil
}

// Set stores the embedding for userID with the configured TTL
func (c *EmbeddingCache) Set(ctx context.Context, userID uuid.UUID, emb types.Embedding) error {
	if err := c.rdb.Set(ctx, Key(userID), Encode(emb), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache embedding: %w", err)
	}
	return nil
}

// Invalidate drops the cached embedding, e.g. after a profile update
func (c *EmbeddingCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, Key(userID)).Err()
}

// Close closes the Redis client
func (c *EmbeddingCache) Close() error {
	return c.rdb.Close()
}

// Key returns the Redis key for a user's embedding
func Key(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

// Encode packs an embedding as little-endian float32 values
func Encode(emb types.Embedding) []byte {
	buf := make([]byte, 4*len(emb))
	for i, v := range emb {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Decode unpacks a value written by Encode
func Decode(raw []byte) (types.Embedding, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("corrupt cached embedding: %d bytes", len(raw))
	}
	emb := make(types.Embedding, len(raw)/4)
	for i := range emb {
		emb[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return emb, nil
}
