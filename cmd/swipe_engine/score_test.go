package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrea/gig-matcher/internal/types"
)

func writeScoreInputs(t *testing.T, profile types.CandidateProfile, jobs any) (string, string) {
	t.Helper()
	tmpDir := t.TempDir()

	profilePath := filepath.Join(tmpDir, "profile.json")
	profileBytes, err := json.Marshal(profile)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(profilePath, profileBytes, 0644))

	jobsPath := filepath.Join(tmpDir, "jobs.json")
	jobsBytes, err := json.Marshal(jobs)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(jobsPath, jobsBytes, 0644))

	return profilePath, jobsPath
}

func TestScoreCommand_MissingFlags(t *testing.T) {
	scoreProfileFile = ""
	scoreJobsFile = ""

	err := runScore(nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestScoreCommand_RanksAndWritesOutput(t *testing.T) {
	profile := types.CandidateProfile{
		UserID: "u1",
		Skills: []string{"cooking", "cleaning"},
	}
	jobs := []types.JobPosting{
		{ID: "job-low", Title: "Driver", RequiredSkills: []string{"driving"}, Status: types.JobStatusActive},
		{ID: "job-high", Title: "Cook", RequiredSkills: []string{"cooking"}, Status: types.JobStatusActive},
	}
	profilePath, jobsPath := writeScoreInputs(t, profile, jobs)
	outPath := filepath.Join(t.TempDir(), "scored.json")

	scoreProfileFile = profilePath
	scoreJobsFile = jobsPath
	scoreOutputFile = outPath
	scoreVerbose = false
	defer func() { scoreOutputFile = "" }()

	require.NoError(t, runScore(nil, nil))

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var scored []types.ScoredJob
	require.NoError(t, json.Unmarshal(raw, &scored))
	require.Len(t, scored, 2)
	assert.Equal(t, "job-high", scored[0].Job.ID)
	assert.Greater(t, scored[0].Match.Score, scored[1].Match.Score)
}

func TestScoreCommand_AcceptsSingleJobObject(t *testing.T) {
	profile := types.CandidateProfile{UserID: "u1", Skills: []string{"cooking"}}
	job := types.JobPosting{ID: "job-1", Title: "Cook", Status: types.JobStatusActive}
	profilePath, jobsPath := writeScoreInputs(t, profile, job)

	scoreProfileFile = profilePath
	scoreJobsFile = jobsPath
	scoreOutputFile = ""

	assert.NoError(t, runScore(nil, nil))
}

func TestScoreCommand_InvalidJobsFile(t *testing.T) {
	profilePath, _ := writeScoreInputs(t, types.CandidateProfile{UserID: "u1"}, []types.JobPosting{})
	badPath := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(badPath, []byte("not json"), 0644))

	scoreProfileFile = profilePath
	scoreJobsFile = badPath
	scoreOutputFile = ""

	err := runScore(nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse jobs file")
}
