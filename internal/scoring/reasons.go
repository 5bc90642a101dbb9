package scoring

import "github.com/andrea/gig-matcher/internal/types"

// Materiality thresholds, expressed as a fraction of each component's
// weight. Components below their threshold do not produce a reason.
const (
	strongSkillsRatio  = 0.7
	partialSkillsRatio = 0.3
	titleRatio         = 0.6
	nearLocationRatio  = 0.4
	availabilityRatio  = 0.5
	recencyRatio       = 0.8
)

// generateReasons assembles the human-readable explanation list from the
// components that exceeded their materiality threshold.
func generateReasons(b types.ScoreBreakdown) []string {
	reasons := make([]string, 0, 6)

	switch {
	case b.SkillsMatch >= skillsWeight*strongSkillsRatio:
		reasons = append(reasons, "Strong skills match")
	case b.SkillsMatch >= skillsWeight*partialSkillsRatio:
		reasons = append(reasons, "Some of your skills match")
	}

	if b.JobTitleMatch >= jobTitleWeight*titleRatio {
		reasons = append(reasons, "Title matches your preferences")
	}

	if b.JobTypeMatch >= jobTypeWeight {
		reasons = append(reasons, "Preferred job type")
	}

	switch {
	case b.LocationMatch >= locationWeight:
		reasons = append(reasons, "In your area")
	case b.LocationMatch >= locationWeight*nearLocationRatio:
		reasons = append(reasons, "Near your area")
	}

	if b.SalaryMatch >= salaryWeight {
		reasons = append(reasons, "Within preferred salary range")
	}

	if b.ExperienceMatch >= experienceWeight {
		reasons = append(reasons, "You meet the experience requirement")
	}

	if b.AvailabilityMatch >= availabilityWeight*availabilityRatio {
		reasons = append(reasons, "Fits your availability")
	}

	if b.RecencyBonus >= recencyBonusWeight*recencyRatio {
		reasons = append(reasons, "Recently posted")
	}

	return reasons
}
