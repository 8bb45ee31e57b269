// Package types provides type definitions for structured data used throughout the job recommender.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/google/uuid"
)

// Dimension is the default width of stored user and job embeddings.
const Dimension = 1536

// Embedding is a fixed-length vector. A nil or empty Embedding means "no embedding",
// which is distinct from a computed zero vector.
type Embedding []float32

// Present reports whether the embedding carries a computed vector.
func (e Embedding) Present() bool {
	return len(e) > 0
}

// UserProfile is the subset of a user record the recommender consumes
type UserProfile struct {
	ID              uuid.UUID `json:"id"`
	Skills          []string  `json:"skills"`
	ResumeText      string    `json:"resume_text,omitempty"`
	ExperienceYears string    `json:"experience_years,omitempty"`
	EducationLevel  string    `json:"education_level,omitempty"`
	Embedding       Embedding `json:"embedding,omitempty"`
}

// ProfileText builds the text the embedding provider is asked to embed when no stored
// embedding exists. Returns "" when the profile has no text material at all.
func (u *UserProfile) ProfileText() string {
	var parts []string
	if s := strings.TrimSpace(u.ResumeText); s != "" {
		parts = append(parts, s)
	}
	if len(u.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(u.Skills, ", "))
	}
	if s := strings.TrimSpace(u.ExperienceYears); s != "" {
		parts = append(parts, "Experience: "+s+" years")
	}
	if s := strings.TrimSpace(u.EducationLevel); s != "" {
		parts = append(parts, "Education: "+s)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// HasSignal reports whether the profile carries anything the ranker can score with.
func (u *UserProfile) HasSignal() bool {
	return len(u.Skills) > 0 || u.Embedding.Present() || strings.TrimSpace(u.ResumeText) != ""
}

// JobCandidate is an active job posting as seen by the ranker. Read-only.
type JobCandidate struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location,omitempty"`
	JobType        string    `json:"job_type,omitempty"`
	Description    string    `json:"description,omitempty"`
	RequiredSkills []string  `json:"required_skills"`
	ApplicationURL string    `json:"application_url,omitempty"`
	Embedding      Embedding `json:"embedding,omitempty"`
	Active         bool      `json:"active"`
}

// EmbeddingText is the text used to embed a job posting at ingestion time.
func (j *JobCandidate) EmbeddingText() string {
	var parts []string
	if s := strings.TrimSpace(j.Title); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(j.Description); s != "" {
		parts = append(parts, s)
	}
	if len(j.RequiredSkills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(j.RequiredSkills, ", "))
	}
	return strings.Join(parts, "\n")
}
