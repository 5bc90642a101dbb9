package types

// ScoreBreakdown holds the weighted contribution of every scoring
// component. Each field is independently bounded by its component weight;
// the total match score is the clamped sum of all fields.
type ScoreBreakdown struct {
	JobTitleMatch     float64 `json:"job_title_match"`
	JobTypeMatch      float64 `json:"job_type_match"`
	LocationMatch     float64 `json:"location_match"`
	SalaryMatch       float64 `json:"salary_match"`
	SkillsMatch       float64 `json:"skills_match"`
	ExperienceMatch   float64 `json:"experience_match"`
	AvailabilityMatch float64 `json:"availability_match"`
	RatingBonus       float64 `json:"rating_bonus"`
	RecencyBonus      float64 `json:"recency_bonus"`
}

// Total returns the unclamped sum of all breakdown components.
func (b ScoreBreakdown) Total() float64 {
	return b.JobTitleMatch + b.JobTypeMatch + b.LocationMatch + b.SalaryMatch +
		b.SkillsMatch + b.ExperienceMatch + b.AvailabilityMatch +
		b.RatingBonus + b.RecencyBonus
}

// MatchResult is the outcome of scoring one job posting against a
// candidate profile.
type MatchResult struct {
	JobID     string         `json:"job_id"`
	Score     float64        `json:"score"` // 0..100
	Reasons   []string       `json:"reasons,omitempty"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// ScoredJob pairs a posting with its match result; the feed buffer holds
// these in rank order.
type ScoredJob struct {
	Job   JobPosting  `json:"job"`
	Match MatchResult `json:"match"`
}
