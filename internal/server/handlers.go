package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/job-recommender/internal/db"
	"github.com/jonathan/job-recommender/internal/server/middleware"
	"github.com/jonathan/job-recommender/internal/types"
)

const (
	// MaxRecommendations caps the limit query parameter
	MaxRecommendations = 50

	// OnboardingMessage is returned instead of recommendations for an empty profile
	OnboardingMessage = "Please complete your profile to get personalized recommendations"

	// UnavailableMessage is returned when the candidate pool cannot be read
	UnavailableMessage = "Unable to generate recommendations at this time. Please try again later."
)

// parseID reads a UUID path value
func parseID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a valid UUID"}
	}
	return id, nil
}

// queryInt reads an optional non-negative integer query parameter
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &ErrValidation{Field: name, Message: "must be a non-negative integer"}
	}
	return n, nil
}

// loadUser fetches a profile, mapping absence to ErrUserNotFound
func (s *Server) loadUser(ctx context.Context, id uuid.UUID) (*types.UserProfile, error) {
	user, err := s.store.GetUserProfile(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, &ErrUserNotFound{UserID: id}
	}
	return user, err
}

// loadJob fetches a job, mapping absence to ErrJobNotFound
func (s *Server) loadJob(ctx context.Context, id uuid.UUID) (*types.JobCandidate, error) {
	job, err := s.store.GetJobCandidate(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, &ErrJobNotFound{JobID: id}
	}
	return job, err
}

// currentUser loads the authenticated caller's profile
func (s *Server) currentUser(r *http.Request) (*types.UserProfile, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return nil, err
	}
	return s.loadUser(r.Context(), userID)
}
