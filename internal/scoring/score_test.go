package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrea/gig-matcher/internal/types"
)

var scoreClock = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestComputeSkillsScore_PartialOverlap(t *testing.T) {
	score := computeSkillsScore([]string{"cooking", "cleaning"}, []string{"cooking", "driving"})
	assert.InDelta(t, 0.5, score, 0.0001)
}

func TestComputeSkillsScore_FullMatch(t *testing.T) {
	score := computeSkillsScore([]string{"cooking", "cleaning"}, []string{"cooking", "cleaning"})
	assert.InDelta(t, 1.0, score, 0.0001)
}

func TestComputeSkillsScore_CaseInsensitive(t *testing.T) {
	score := computeSkillsScore([]string{"Cooking", " CLEANING "}, []string{"cooking", "cleaning"})
	assert.InDelta(t, 1.0, score, 0.0001)
}

func TestComputeSkillsScore_MissingData(t *testing.T) {
	assert.Equal(t, 0.0, computeSkillsScore(nil, []string{"cooking"}))
	assert.Equal(t, 0.0, computeSkillsScore([]string{"cooking"}, nil))
}

func TestComputeTitleScore_BestDesiredTitleWins(t *testing.T) {
	score := computeTitleScore([]string{"warehouse picker", "kitchen assistant"}, "Kitchen Assistant")
	assert.InDelta(t, 1.0, score, 0.0001)
}

func TestComputeTitleScore_PartialTokenOverlap(t *testing.T) {
	score := computeTitleScore([]string{"kitchen assistant"}, "Assistant Cook")
	assert.InDelta(t, 0.5, score, 0.0001)
}

func TestComputeTitleScore_NoDesiredTitles(t *testing.T) {
	assert.Equal(t, 0.0, computeTitleScore(nil, "Assistant Cook"))
}

func TestComputeLocationScore_ExactAndContainment(t *testing.T) {
	assert.Equal(t, 1.0, computeLocationScore("Jakarta", "jakarta"))
	assert.Equal(t, 0.5, computeLocationScore("Jakarta", "Jakarta Selatan"))
	assert.Equal(t, 0.0, computeLocationScore("Jakarta", "Bandung"))
	assert.Equal(t, 0.0, computeLocationScore("", "Bandung"))
}

func TestComputeSalaryScore_Bounds(t *testing.T) {
	profile := types.CandidateProfile{MinSalary: 1000, SalaryType: types.SalaryMonthly}

	at := func(amount float64) float64 {
		return computeSalaryScore(profile, types.JobPosting{SalaryAmount: amount, SalaryType: types.SalaryMonthly})
	}

	assert.Equal(t, 1.0, at(1000))
	assert.Equal(t, 1.0, at(1500))
	assert.Equal(t, 0.0, at(800))
	assert.InDelta(t, 0.5, at(900), 0.0001)
}

func TestComputeSalaryScore_MissingOrMismatched(t *testing.T) {
	profile := types.CandidateProfile{MinSalary: 1000, SalaryType: types.SalaryMonthly}

	// No salary on the job side contributes zero, not a penalty.
	assert.Equal(t, 0.0, computeSalaryScore(profile, types.JobPosting{}))
	// Mismatched salary types are not comparable.
	hourly := types.JobPosting{SalaryAmount: 15, SalaryType: types.SalaryHourly}
	assert.Equal(t, 0.0, computeSalaryScore(profile, hourly))
	// No expectation on the profile side.
	assert.Equal(t, 0.0, computeSalaryScore(types.CandidateProfile{}, types.JobPosting{SalaryAmount: 1000}))
}

func TestComputeExperienceScore(t *testing.T) {
	assert.Equal(t, 1.0, computeExperienceScore(5, 3))
	assert.InDelta(t, 0.5, computeExperienceScore(1.5, 3), 0.0001)
	assert.Equal(t, 0.0, computeExperienceScore(5, 0))
}

func TestComputeAvailabilityScore(t *testing.T) {
	avail := []string{"mon_morning", "tue_morning", "sat_evening"}
	assert.InDelta(t, 1.0, computeAvailabilityScore(avail, []string{"mon_morning"}), 0.0001)
	assert.InDelta(t, 0.5, computeAvailabilityScore(avail, []string{"mon_morning", "sun_evening"}), 0.0001)
	assert.Equal(t, 0.0, computeAvailabilityScore(nil, []string{"mon_morning"}))
	assert.Equal(t, 0.0, computeAvailabilityScore(avail, nil))
}

func TestComputeRecencyScore_LinearDecay(t *testing.T) {
	assert.InDelta(t, 1.0, computeRecencyScore(scoreClock, scoreClock), 0.0001)
	assert.InDelta(t, 0.5, computeRecencyScore(scoreClock.AddDate(0, 0, -15), scoreClock), 0.0001)
	assert.Equal(t, 0.0, computeRecencyScore(scoreClock.AddDate(0, 0, -45), scoreClock))
	assert.Equal(t, 0.0, computeRecencyScore(time.Time{}, scoreClock))
}

func TestScoreAt_PartialSkillsScoresBelowFullMatch(t *testing.T) {
	profile := types.CandidateProfile{Skills: []string{"cooking", "cleaning"}}

	partial := types.JobPosting{
		ID:             "job-partial",
		Title:          "Cook",
		RequiredSkills: []string{"cooking", "driving"},
		PostedAt:       scoreClock.AddDate(0, 0, -1),
		Status:         types.JobStatusActive,
	}
	full := partial
	full.ID = "job-full"
	full.RequiredSkills = []string{"cooking", "cleaning"}

	partialResult := ScoreAt(profile, partial, scoreClock)
	fullResult := ScoreAt(profile, full, scoreClock)

	assert.Greater(t, partialResult.Breakdown.SkillsMatch, 0.0)
	assert.Less(t, partialResult.Breakdown.SkillsMatch, fullResult.Breakdown.SkillsMatch)
	assert.Less(t, partialResult.Score, fullResult.Score)
}

func TestScoreAt_ScoreWithinBoundsAndDerivedFromBreakdown(t *testing.T) {
	profile := types.CandidateProfile{
		Skills:          []string{"cooking", "cleaning", "driving"},
		Location:        "Jakarta",
		DesiredTitles:   []string{"cook"},
		DesiredJobTypes: []string{"full_time"},
		MinSalary:       900,
		SalaryType:      types.SalaryMonthly,
		ExperienceYears: 4,
		Availability:    []string{"mon_morning", "tue_morning"},
		AverageRating:   4.8,
		RatingCount:     12,
	}
	job := types.JobPosting{
		ID:                      "job-1",
		Title:                   "Cook",
		Location:                "Jakarta",
		SalaryAmount:            1200,
		SalaryType:              types.SalaryMonthly,
		RequiredSkills:          []string{"cooking", "cleaning"},
		RequiredExperienceYears: 2,
		JobType:                 "full_time",
		Shifts:                  []string{"mon_morning"},
		PostedAt:                scoreClock.AddDate(0, 0, -2),
		Status:                  types.JobStatusActive,
	}

	result := ScoreAt(profile, job, scoreClock)

	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
	assert.InDelta(t, result.Breakdown.Total(), result.Score, 0.0001)
}

func TestScoreAt_Deterministic(t *testing.T) {
	profile := types.CandidateProfile{
		Skills:        []string{"cooking"},
		Location:      "Jakarta",
		DesiredTitles: []string{"cook"},
	}
	job := types.JobPosting{
		ID:             "job-1",
		Title:          "Cook",
		Location:       "Jakarta",
		RequiredSkills: []string{"cooking"},
		PostedAt:       scoreClock.AddDate(0, 0, -3),
	}

	first := ScoreAt(profile, job, scoreClock)
	second := ScoreAt(profile, job, scoreClock)

	assert.Equal(t, first, second)
}

func TestScoreAt_EmptyInputsDegradeToZero(t *testing.T) {
	result := ScoreAt(types.CandidateProfile{}, types.JobPosting{ID: "job-x"}, scoreClock)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, types.ScoreBreakdown{}, result.Breakdown)
	assert.Empty(t, result.Reasons)
}

func TestGenerateReasons_Thresholds(t *testing.T) {
	b := types.ScoreBreakdown{
		SkillsMatch:   skillsWeight,       // strong
		LocationMatch: locationWeight,     // exact
		SalaryMatch:   salaryWeight,       // within range
		RecencyBonus:  recencyBonusWeight, // fresh
	}
	reasons := generateReasons(b)

	assert.Contains(t, reasons, "Strong skills match")
	assert.Contains(t, reasons, "In your area")
	assert.Contains(t, reasons, "Within preferred salary range")
	assert.Contains(t, reasons, "Recently posted")
	assert.NotContains(t, reasons, "Preferred job type")
}

func TestGenerateReasons_PartialSkills(t *testing.T) {
	b := types.ScoreBreakdown{SkillsMatch: skillsWeight * 0.5}
	reasons := generateReasons(b)

	assert.Contains(t, reasons, "Some of your skills match")
	assert.NotContains(t, reasons, "Strong skills match")
}
