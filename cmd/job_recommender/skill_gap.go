package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-recommender/internal/advisor"
	"github.com/jonathan/job-recommender/internal/llm"
	"github.com/jonathan/job-recommender/internal/observability"
	"github.com/jonathan/job-recommender/internal/schemas"
	"github.com/jonathan/job-recommender/internal/types"
)

var skillGapCmd = &cobra.Command{
	Use:   "skill-gap",
	Short: "Compare a user's skills against one job posting",
	Long:  "Builds a skill gap report for a JSON user profile and a JSON job posting. With --live, the narrative and learning recommendations come from the configured LLM provider.",
	RunE:  runSkillGap,
}

var (
	skillGapUser string
	skillGapJob  string
	skillGapOut  string
	skillGapLive bool
)

func init() {
	skillGapCmd.Flags().StringVarP(&skillGapUser, "user", "u", "", "Path to input UserProfile JSON file (required)")
	skillGapCmd.Flags().StringVarP(&skillGapJob, "job", "j", "", "Path to input job posting JSON file (required)")
	skillGapCmd.Flags().StringVarP(&skillGapOut, "out", "o", "", "Path to output SkillGapReport JSON file (default: stdout)")
	skillGapCmd.Flags().BoolVar(&skillGapLive, "live", false, "Use the configured LLM provider for the narrative")

	if err := skillGapCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}
	if err := skillGapCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(skillGapCmd)
}

func runSkillGap(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var user types.UserProfile
	if err := readJSON(skillGapUser, &user); err != nil {
		return err
	}
	var job types.JobCandidate
	if err := readJSON(skillGapJob, &job); err != nil {
		return err
	}

	var narrator advisor.Narrator
	if skillGapLive {
		p, err := newProviders(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer p.Close()
		if p.client != nil {
			narrator = llm.NewGapAnalyzer(p.client)
		}
	}

	report := advisor.NewGapService(nil, narrator, log).Report(cmd.Context(), &user, &job)
	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintSkillGap(report)
	}
	return writeOutput(skillGapOut, report, schemas.SkillGapSchema, log)
}
