package types

import "github.com/google/uuid"

// ChatRole constants for advisor conversation turns
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a single conversation turn
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// RelevantJob is a job surfaced as context for an advisor reply
type RelevantJob struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Similarity  float64   `json:"similarity"`
}

// AdvisorReply is the advisor's answer plus the jobs it referenced
type AdvisorReply struct {
	Response     string        `json:"response"`
	RelevantJobs []RelevantJob `json:"relevant_jobs"`
}
