package types

import "github.com/google/uuid"

// SkillGapReport is the result of comparing a user's skills against one job
type SkillGapReport struct {
	JobID             uuid.UUID `json:"job_id"`
	JobTitle          string    `json:"job_title"`
	JobCompany        string    `json:"job_company"`
	UserSkills        []string  `json:"user_skills"`
	JobRequiredSkills []string  `json:"job_required_skills"`
	UserHasSkills     []string  `json:"user_has_skills"`
	MissingSkills     []string  `json:"missing_skills"`
	Analysis          GapDetail `json:"skill_gap_analysis"`
	Recommendations   []string  `json:"recommendations"`
}

// GapDetail holds the numeric and narrative part of a skill gap report
type GapDetail struct {
	MatchPercentage float64  `json:"match_percentage"`
	SkillsMatched   int      `json:"skills_matched"`
	SkillsMissing   int      `json:"skills_missing"`
	TotalRequired   int      `json:"total_required"`
	Analysis        string   `json:"analysis"`
	PrioritySkills  []string `json:"priority_skills"`
}
