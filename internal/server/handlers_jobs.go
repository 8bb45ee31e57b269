package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/job-recommender/internal/db"
	"github.com/jonathan/job-recommender/internal/ingestion"
	"github.com/jonathan/job-recommender/internal/types"
)

// listDescriptionLimit truncates descriptions in the job listing
const listDescriptionLimit = 500

// JobResponse is a job posting as exposed by the browse endpoints
type JobResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	JobType        string    `json:"job_type"`
	Description    string    `json:"description"`
	RequiredSkills []string  `json:"required_skills"`
	ApplicationURL string    `json:"application_url,omitempty"`
}

// JobListResponse is one page of the job listing
type JobListResponse struct {
	Jobs   []JobResponse `json:"jobs"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func newJobResponse(job *types.JobCandidate, descriptionLimit int) JobResponse {
	description := ingestion.PlainText(job.Description)
	if descriptionLimit > 0 {
		if runes := []rune(description); len(runes) > descriptionLimit {
			description = string(runes[:descriptionLimit]) + "..."
		}
	}
	skills := job.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:             job.ID,
		Title:          job.Title,
		Company:        job.Company,
		Location:       job.Location,
		JobType:        job.JobType,
		Description:    description,
		RequiredSkills: skills,
		ApplicationURL: job.ApplicationURL,
	}
}

// handleListJobs lists active jobs with optional filters
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", db.DefaultPageSize)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	q := r.URL.Query()
	page, err := s.store.ListJobs(r.Context(), db.JobFilters{
		Search:   q.Get("q"),
		Location: q.Get("location"),
		JobType:  q.Get("job_type"),
		Company:  q.Get("company"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := JobListResponse{
		Jobs:   make([]JobResponse, 0, len(page.Jobs)),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for i := range page.Jobs {
		resp.Jobs = append(resp.Jobs, newJobResponse(&page.Jobs[i], listDescriptionLimit))
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetJob returns one job posting
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	job, err := s.loadJob(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newJobResponse(job, 0))
}
