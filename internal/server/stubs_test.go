package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-recommender/internal/config"
	"github.com/jonathan/job-recommender/internal/db"
	"github.com/jonathan/job-recommender/internal/server/ratelimit"
	"github.com/jonathan/job-recommender/internal/types"
)

const testSecret = "test-secret-key-that-is-long-enough"

type stubStore struct {
	users   map[uuid.UUID]*types.UserProfile
	jobs    map[uuid.UUID]*types.JobCandidate
	page    *db.JobPage
	filters db.JobFilters
	pingErr error
	listErr error
}

func (s *stubStore) GetUserProfile(_ context.Context, id uuid.UUID) (*types.UserProfile, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, db.ErrNotFound
}

func (s *stubStore) GetJobCandidate(_ context.Context, id uuid.UUID) (*types.JobCandidate, error) {
	if j, ok := s.jobs[id]; ok {
		return j, nil
	}
	return nil, db.ErrNotFound
}

func (s *stubStore) ListJobs(_ context.Context, f db.JobFilters) (*db.JobPage, error) {
	s.filters = f
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.page == nil {
		return &db.JobPage{Limit: f.Limit, Offset: f.Offset}, nil
	}
	return s.page, nil
}

func (s *stubStore) Ping(context.Context) error {
	return s.pingErr
}

type stubRanker struct {
	ranked []types.ScoredCandidate
	err    error
	calls  int
	topN   int
}

func (r *stubRanker) Recommend(_ context.Context, _ *types.UserProfile, topN int) ([]types.ScoredCandidate, error) {
	r.calls++
	r.topN = topN
	return r.ranked, r.err
}

type stubGaps struct{}

func (stubGaps) Report(_ context.Context, u *types.UserProfile, j *types.JobCandidate) *types.SkillGapReport {
	return &types.SkillGapReport{JobID: j.ID, JobTitle: j.Title, UserSkills: u.Skills}
}

type stubAdvisor struct {
	message string
	history []types.ChatMessage
}

func (a *stubAdvisor) Reply(_ context.Context, _ *types.UserProfile, message string, history []types.ChatMessage) *types.AdvisorReply {
	a.message = message
	a.history = history
	return &types.AdvisorReply{Response: "try learning docker", RelevantJobs: []types.RelevantJob{}}
}

type fixture struct {
	server  *Server
	store   *stubStore
	ranker  *stubRanker
	advisor *stubAdvisor
	user    *types.UserProfile
	job     *types.JobCandidate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	user := &types.UserProfile{ID: uuid.New(), Skills: []string{"Python", "Docker"}}
	job := &types.JobCandidate{
		ID:             uuid.New(),
		Title:          "Backend Engineer",
		Company:        "Acme",
		RequiredSkills: []string{"python", "kubernetes"},
		Active:         true,
	}
	f := &fixture{
		store: &stubStore{
			users: map[uuid.UUID]*types.UserProfile{user.ID: user},
			jobs:  map[uuid.UUID]*types.JobCandidate{job.ID: job},
		},
		ranker:  &stubRanker{},
		advisor: &stubAdvisor{},
		user:    user,
		job:     job,
	}

	jwtService := NewJWTService(&config.JWTConfig{Secret: testSecret})
	s, err := New(Config{Port: 0, RateLimit: &ratelimit.Config{Enabled: false}}, Deps{
		Store:     f.store,
		Ranker:    f.ranker,
		Gaps:      stubGaps{},
		Advisor:   f.advisor,
		Validator: jwtService.AsTokenValidator(),
	})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	f.server = s
	return f
}

func signToken(t *testing.T, claims jwt.Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return signToken(t, &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}, testSecret)
}

func (f *fixture) do(t *testing.T, req *http.Request, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	if authed {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, f.user.ID))
	}
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

var errBoom = errors.New("boom")
