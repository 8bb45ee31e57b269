package ranking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jonathan/job-recommender/internal/types"
)

type stubEmbedder struct {
	vec   types.Embedding
	err   error
	calls atomic.Int32
	texts []string
	mu    sync.Mutex
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (types.Embedding, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.texts = append(s.texts, text)
	s.mu.Unlock()
	return s.vec, s.err
}

type stubExplainer struct {
	fn    func(ctx context.Context, in types.ExplanationContext) (string, error)
	calls atomic.Int32
}

func (s *stubExplainer) Explain(ctx context.Context, in types.ExplanationContext) (string, error) {
	s.calls.Add(1)
	return s.fn(ctx, in)
}

type stubStore struct {
	jobs      []types.JobCandidate
	err       error
	lastLimit int
}

func (s *stubStore) ListActiveCandidates(_ context.Context, limit int) ([]types.JobCandidate, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.jobs, nil
}

type memCache struct {
	mu   sync.Mutex
	data map[uuid.UUID]types.Embedding
	err  error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[uuid.UUID]types.Embedding)}
}

func (c *memCache) Get(_ context.Context, id uuid.UUID) (types.Embedding, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	e, ok := c.data[id]
	return e, ok, nil
}

func (c *memCache) Set(_ context.Context, id uuid.UUID, e types.Embedding) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data[id] = e
	return nil
}

type stubSaver struct {
	saved map[uuid.UUID]types.Embedding
	err   error
}

func (s *stubSaver) UpdateUserEmbedding(_ context.Context, id uuid.UUID, e types.Embedding) error {
	if s.err != nil {
		return s.err
	}
	if s.saved == nil {
		s.saved = make(map[uuid.UUID]types.Embedding)
	}
	s.saved[id] = e
	return nil
}

var errProvider = errors.New("provider unavailable")

func job(title string, skills []string, emb types.Embedding) types.JobCandidate {
	return types.JobCandidate{
		ID:             uuid.New(),
		Title:          title,
		Company:        "Acme",
		RequiredSkills: skills,
		Embedding:      emb,
		Active:         true,
	}
}
