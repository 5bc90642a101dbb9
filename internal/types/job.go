package types

import "time"

// SalaryType constants
const (
	SalaryHourly  = "hourly"
	SalaryMonthly = "monthly"
)

// JobStatus constants
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
)

// JobPosting represents a candidate job served through the recommendation feed.
type JobPosting struct {
	ID                      string    `json:"id"`
	Title                   string    `json:"title"`
	Description             string    `json:"description,omitempty"`
	Location                string    `json:"location,omitempty"`
	SalaryAmount            float64   `json:"salary_amount,omitempty"`
	SalaryType              string    `json:"salary_type,omitempty"`
	RequiredSkills          []string  `json:"required_skills,omitempty"`
	RequiredExperienceYears float64   `json:"required_experience_years,omitempty"`
	JobType                 string    `json:"job_type,omitempty"`
	Shifts                  []string  `json:"shifts,omitempty"` // slot names, same vocabulary as CandidateProfile.Availability
	Boosted                 bool      `json:"boosted,omitempty"`
	BoostExpiresAt          time.Time `json:"boost_expires_at,omitempty"`
	PostedAt                time.Time `json:"posted_at"`
	Status                  string    `json:"status"`
}

// IsActive returns true if the posting is open for swiping.
func (j *JobPosting) IsActive() bool {
	return j.Status == JobStatusActive
}

// BoostActive returns true if the posting carries a paid boost that has not expired.
func (j *JobPosting) BoostActive(now time.Time) bool {
	return j.Boosted && now.Before(j.BoostExpiresAt)
}
