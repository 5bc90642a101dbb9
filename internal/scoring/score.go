// Package scoring computes multi-factor match scores between candidate
// profiles and job postings.
package scoring

import (
	"strings"
	"time"

	"github.com/andrea/gig-matcher/internal/types"
)

// Component weights. Each component is computed in 0..1 and scaled by its
// weight; the weights of the main components plus the two bonuses sum to
// 100, so the clamped total stays in 0..100. Skills and title similarity
// dominate; rating and recency are small bonuses.
const (
	skillsWeight       = 25.0
	jobTitleWeight     = 20.0
	locationWeight     = 15.0
	jobTypeWeight      = 10.0
	salaryWeight       = 10.0
	experienceWeight   = 10.0
	availabilityWeight = 5.0
	ratingBonusWeight  = 3.0
	recencyBonusWeight = 2.0
)

// recencyWindowDays is the age at which a posting's recency bonus decays to zero.
const recencyWindowDays = 30.0

// Score computes the match between a profile and a job posting.
// Pure and deterministic apart from the clock used for the recency bonus.
func Score(profile types.CandidateProfile, job types.JobPosting) types.MatchResult {
	return ScoreAt(profile, job, time.Now())
}

// ScoreAt is Score with an explicit clock, for deterministic evaluation.
// Missing or malformed data on either side contributes zero to the
// affected component, never an error.
func ScoreAt(profile types.CandidateProfile, job types.JobPosting, now time.Time) types.MatchResult {
	breakdown := types.ScoreBreakdown{
		SkillsMatch:       skillsWeight * computeSkillsScore(profile.Skills, job.RequiredSkills),
		JobTitleMatch:     jobTitleWeight * computeTitleScore(profile.DesiredTitles, job.Title),
		LocationMatch:     locationWeight * computeLocationScore(profile.Location, job.Location),
		JobTypeMatch:      jobTypeWeight * computeJobTypeScore(profile.DesiredJobTypes, job.JobType),
		SalaryMatch:       salaryWeight * computeSalaryScore(profile, job),
		ExperienceMatch:   experienceWeight * computeExperienceScore(profile.ExperienceYears, job.RequiredExperienceYears),
		AvailabilityMatch: availabilityWeight * computeAvailabilityScore(profile.Availability, job.Shifts),
		RatingBonus:       ratingBonusWeight * computeRatingScore(profile.AverageRating, profile.RatingCount),
		RecencyBonus:      recencyBonusWeight * computeRecencyScore(job.PostedAt, now),
	}

	score := breakdown.Total()
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return types.MatchResult{
		JobID:     job.ID,
		Score:     score,
		Reasons:   generateReasons(breakdown),
		Breakdown: breakdown,
	}
}

// computeSkillsScore calculates the fraction of required skills the
// candidate covers. Returns 0 when the job lists no requirements.
func computeSkillsScore(candidateSkills, requiredSkills []string) float64 {
	if len(requiredSkills) == 0 || len(candidateSkills) == 0 {
		return 0.0
	}

	have := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		if n := normalize(s); n != "" {
			have[n] = true
		}
	}

	required := 0
	matched := 0
	for _, s := range requiredSkills {
		n := normalize(s)
		if n == "" {
			continue
		}
		required++
		if have[n] {
			matched++
		}
	}
	if required == 0 {
		return 0.0
	}
	return float64(matched) / float64(required)
}

// computeTitleScore measures token overlap between the job title and the
// candidate's desired titles, taking the best overlap across all of them.
func computeTitleScore(desiredTitles []string, jobTitle string) float64 {
	titleTokens := tokenize(jobTitle)
	if len(titleTokens) == 0 || len(desiredTitles) == 0 {
		return 0.0
	}

	best := 0.0
	for _, desired := range desiredTitles {
		desiredSet := make(map[string]bool)
		for _, tok := range tokenize(desired) {
			desiredSet[tok] = true
		}
		if len(desiredSet) == 0 {
			continue
		}
		matched := 0
		for _, tok := range titleTokens {
			if desiredSet[tok] {
				matched++
			}
		}
		overlap := float64(matched) / float64(len(titleTokens))
		if overlap > best {
			best = overlap
		}
	}
	return best
}

// computeLocationScore gives full credit for an exact (normalized)
// location match and half credit when one location contains the other,
// which covers city vs. "city, district" formats.
func computeLocationScore(profileLocation, jobLocation string) float64 {
	p := normalize(profileLocation)
	j := normalize(jobLocation)
	if p == "" || j == "" {
		return 0.0
	}
	if p == j {
		return 1.0
	}
	if strings.Contains(p, j) || strings.Contains(j, p) {
		return 0.5
	}
	return 0.0
}

// computeJobTypeScore is binary: the job's type is either among the
// candidate's desired types or it is not.
func computeJobTypeScore(desiredTypes []string, jobType string) float64 {
	j := normalize(jobType)
	if j == "" {
		return 0.0
	}
	for _, d := range desiredTypes {
		if normalize(d) == j {
			return 1.0
		}
	}
	return 0.0
}

// computeSalaryScore compares the posting's salary against the
// candidate's expectation. Missing salary data on either side, or
// mismatched salary types, contributes zero rather than a penalty.
// Offers at or above the minimum expectation score full; offers within
// 80% of the minimum score proportionally.
func computeSalaryScore(profile types.CandidateProfile, job types.JobPosting) float64 {
	if job.SalaryAmount <= 0 || profile.MinSalary <= 0 {
		return 0.0
	}
	if profile.SalaryType != "" && job.SalaryType != "" && profile.SalaryType != job.SalaryType {
		return 0.0
	}
	if job.SalaryAmount >= profile.MinSalary {
		return 1.0
	}
	floor := profile.MinSalary * 0.8
	if job.SalaryAmount <= floor {
		return 0.0
	}
	return (job.SalaryAmount - floor) / (profile.MinSalary - floor)
}

// computeExperienceScore is the fraction of the required years the
// candidate has, capped at full credit. Jobs with no requirement
// contribute zero.
func computeExperienceScore(candidateYears, requiredYears float64) float64 {
	if requiredYears <= 0 || candidateYears < 0 {
		return 0.0
	}
	if candidateYears >= requiredYears {
		return 1.0
	}
	return candidateYears / requiredYears
}

// computeAvailabilityScore is the fraction of the job's shifts covered by
// the candidate's availability slots.
func computeAvailabilityScore(availability, shifts []string) float64 {
	if len(shifts) == 0 || len(availability) == 0 {
		return 0.0
	}
	avail := make(map[string]bool, len(availability))
	for _, slot := range availability {
		if n := normalize(slot); n != "" {
			avail[n] = true
		}
	}
	total := 0
	covered := 0
	for _, shift := range shifts {
		n := normalize(shift)
		if n == "" {
			continue
		}
		total++
		if avail[n] {
			covered++
		}
	}
	if total == 0 {
		return 0.0
	}
	return float64(covered) / float64(total)
}

// computeRatingScore scales the candidate's average rating into 0..1.
// Unrated candidates get no bonus and no penalty.
func computeRatingScore(averageRating float64, ratingCount int) float64 {
	if ratingCount <= 0 || averageRating <= 0 {
		return 0.0
	}
	score := averageRating / 5.0
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// computeRecencyScore decays linearly from 1.0 for a just-posted job to
// 0.0 at recencyWindowDays. Unknown posting times contribute zero.
func computeRecencyScore(postedAt, now time.Time) float64 {
	if postedAt.IsZero() {
		return 0.0
	}
	days := now.Sub(postedAt).Hours() / 24
	if days < 0 {
		return 1.0
	}
	if days >= recencyWindowDays {
		return 0.0
	}
	return 1.0 - days/recencyWindowDays
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// tokenize splits a title into lowercase word tokens, dropping
// punctuation-only fragments.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
