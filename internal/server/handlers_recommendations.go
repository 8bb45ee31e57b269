package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/job-recommender/internal/server/middleware"
	"github.com/jonathan/job-recommender/internal/types"
)

// handleRecommendations ranks jobs for the authenticated user
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.recommend(w, r, user)
}

// handleUserRecommendations ranks jobs for the user in the path, which must be the caller
func (s *Server) handleUserRecommendations(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	caller, err := middleware.GetUserID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if caller != id {
		s.fail(w, r, &ErrForbidden{})
		return
	}

	user, err := s.loadUser(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.recommend(w, r, user)
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request, user *types.UserProfile) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	limit = min(limit, MaxRecommendations)

	if !user.HasSignal() {
		s.jsonResponse(w, http.StatusOK, &types.Recommendations{
			Recommendations: []types.Recommendation{},
			Message:         OnboardingMessage,
		})
		return
	}

	ranked, err := s.ranker.Recommend(r.Context(), user, limit)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		s.log.Error("failed to generate recommendations", zap.Stringer("user_id", user.ID), zap.Error(err))
		s.jsonResponse(w, http.StatusOK, &types.Recommendations{
			Recommendations: []types.Recommendation{},
			Message:         UnavailableMessage,
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, types.NewRecommendations(ranked))
}
