package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andrea/gig-matcher/internal/observability"
	"github.com/andrea/gig-matcher/internal/scoring"
	"github.com/andrea/gig-matcher/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score job postings against a candidate profile",
	Long:  "Score one or more job postings (JSON) against a candidate profile (JSON) and print the ranked results with score breakdowns.",
	RunE:  runScore,
}

var (
	scoreProfileFile string
	scoreJobsFile    string
	scoreOutputFile  string
	scoreVerbose     bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreProfileFile, "profile", "p", "", "Path to candidate profile JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreJobsFile, "jobs", "j", "", "Path to JSON file with one job posting or an array of postings (required)")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to output JSON file (default: stdout summary only)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print the full score breakdown per job")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	if scoreProfileFile == "" || scoreJobsFile == "" {
		return fmt.Errorf("both --profile and --jobs are required")
	}

	profileBytes, err := os.ReadFile(scoreProfileFile)
	if err != nil {
		return fmt.Errorf("failed to read profile file: %w", err)
	}
	var profile types.CandidateProfile
	if err := json.Unmarshal(profileBytes, &profile); err != nil {
		return fmt.Errorf("failed to parse profile: %w", err)
	}

	jobs, err := readJobs(scoreJobsFile)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no job postings in %s", scoreJobsFile)
	}

	scored := make([]types.ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		scored = append(scored, types.ScoredJob{
			Job:   job,
			Match: scoring.Score(profile, job),
		})
	}
	sort.SliceStable(scored, func(i, k int) bool {
		a, b := scored[i], scored[k]
		if a.Match.Score != b.Match.Score {
			return a.Match.Score > b.Match.Score
		}
		if !a.Job.PostedAt.Equal(b.Job.PostedAt) {
			return a.Job.PostedAt.After(b.Job.PostedAt)
		}
		return a.Job.ID < b.Job.ID
	})

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintScoredJobs(scored)
	if scoreVerbose {
		for i := range scored {
			printer.PrintMatchResult(&scored[i].Job, &scored[i].Match)
		}
	}

	if scoreOutputFile != "" {
		jsonBytes, err := json.MarshalIndent(scored, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(scoreOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", scoreOutputFile)
	}
	return nil
}

// readJobs accepts either a single posting object or an array of postings.
func readJobs(path string) ([]types.JobPosting, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}

	var jobs []types.JobPosting
	if err := json.Unmarshal(raw, &jobs); err == nil {
		return jobs, nil
	}

	var job types.JobPosting
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("failed to parse jobs file: %w", err)
	}
	return []types.JobPosting{job}, nil
}
