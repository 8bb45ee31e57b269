package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-recommender/internal/types"
)

// handleSkillGap compares the caller's skills against one job
func (s *Server) handleSkillGap(w http.ResponseWriter, r *http.Request) {
	jobID, err := parseID(r, "job_id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	user, err := s.currentUser(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	job, err := s.loadJob(r.Context(), jobID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.gaps.Report(r.Context(), user, job))
}

// handleAdvisorChat answers a career question with job context
func (s *Server) handleAdvisorChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.advisor.Reply(r.Context(), user, req.Message, req.History))
}

// validationError converts the first validator failure into an ErrValidation
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Namespace(), Message: "failed on the '" + fe.Tag() + "' rule"}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
