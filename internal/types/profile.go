// Package types provides type definitions for structured data used throughout the gig-matcher engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateProfile is an immutable snapshot of a worker profile, supplied
// by the caller per scoring call. Zero values mean "not provided" and
// contribute nothing to match scores.
type CandidateProfile struct {
	UserID          string   `json:"user_id"`
	Skills          []string `json:"skills,omitempty"`
	Location        string   `json:"location,omitempty"`
	DesiredTitles   []string `json:"desired_titles,omitempty"`
	DesiredJobTypes []string `json:"desired_job_types,omitempty"`
	MinSalary       float64  `json:"min_salary,omitempty"`
	MaxSalary       float64  `json:"max_salary,omitempty"`
	SalaryType      string   `json:"salary_type,omitempty"` // 'hourly' or 'monthly'
	ExperienceYears float64  `json:"experience_years,omitempty"`
	Availability    []string `json:"availability,omitempty"` // slot names, e.g. "mon_morning"
	Languages       []string `json:"languages,omitempty"`
	AverageRating   float64  `json:"average_rating,omitempty"` // 0..5, 0 = unrated
	RatingCount     int      `json:"rating_count,omitempty"`
}
