package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andrea/gig-matcher/internal/types"
)

// Postgres implements JobSource, ProfileSource and SwipeStore on a
// pgxpool connection.
type Postgres struct {
	pool       *pgxpool.Pool
	dailyLimit int
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string, dailyLimit int) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Postgres{pool: pool, dailyLimit: dailyLimit}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// FetchMatchedJobs returns a page of active postings the user has not
// swiped yet. Actively boosted postings sort ahead of the rest so they
// reach the scorer before the page window runs out; final ranking is the
// scorer's job.
func (p *Postgres) FetchMatchedJobs(ctx context.Context, userID string, limit, offset int) ([]types.JobPosting, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, title, COALESCE(description, ''), COALESCE(location, ''),
		        COALESCE(salary_amount, 0), COALESCE(salary_type, ''),
		        COALESCE(required_skills, '{}'), COALESCE(required_experience_years, 0),
		        COALESCE(job_type, ''), COALESCE(shifts, '{}'),
		        boosted, COALESCE(boost_expires_at, 'epoch'::timestamptz),
		        posted_at, status
		 FROM job_postings jp
		 WHERE jp.status = 'active'
		   AND NOT EXISTS (
		     SELECT 1 FROM swipe_interactions si
		     WHERE si.user_id = $1 AND si.job_id = jp.id
		   )
		 ORDER BY (jp.boosted AND jp.boost_expires_at > NOW()) DESC,
		          jp.posted_at DESC, jp.id
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matched jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]types.JobPosting, 0, limit)
	for rows.Next() {
		var j types.JobPosting
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Description, &j.Location,
			&j.SalaryAmount, &j.SalaryType,
			&j.RequiredSkills, &j.RequiredExperienceYears,
			&j.JobType, &j.Shifts,
			&j.Boosted, &j.BoostExpiresAt,
			&j.PostedAt, &j.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job postings: %w", err)
	}
	return jobs, nil
}

// GetCandidateProfile loads the worker profile snapshot used for scoring.
func (p *Postgres) GetCandidateProfile(ctx context.Context, userID string) (types.CandidateProfile, error) {
	profile := types.CandidateProfile{UserID: userID}
	err := p.pool.QueryRow(ctx,
		`SELECT COALESCE(skills, '{}'), COALESCE(location, ''),
		        COALESCE(desired_titles, '{}'), COALESCE(desired_job_types, '{}'),
		        COALESCE(min_salary, 0), COALESCE(max_salary, 0), COALESCE(salary_type, ''),
		        COALESCE(experience_years, 0), COALESCE(availability, '{}'),
		        COALESCE(languages, '{}'), COALESCE(average_rating, 0), COALESCE(rating_count, 0)
		 FROM worker_profiles WHERE user_id = $1`,
		userID,
	).Scan(
		&profile.Skills, &profile.Location,
		&profile.DesiredTitles, &profile.DesiredJobTypes,
		&profile.MinSalary, &profile.MaxSalary, &profile.SalaryType,
		&profile.ExperienceYears, &profile.Availability,
		&profile.Languages, &profile.AverageRating, &profile.RatingCount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			// A user without a saved profile still gets a feed; every
			// component degrades to zero contribution.
			return profile, nil
		}
		return types.CandidateProfile{}, fmt.Errorf("failed to get candidate profile: %w", err)
	}
	return profile, nil
}

// GetSwipeLimitStatus computes the authoritative quota from today's
// committed swipes. Unlimited-plan users get the sentinel value.
func (p *Postgres) GetSwipeLimitStatus(ctx context.Context, userID string) (types.SwipeLimitStatus, error) {
	var unlimited bool
	err := p.pool.QueryRow(ctx,
		`SELECT COALESCE(unlimited_swipes, false) FROM users WHERE id = $1`,
		userID,
	).Scan(&unlimited)
	if err != nil && err != pgx.ErrNoRows {
		return types.SwipeLimitStatus{}, fmt.Errorf("failed to get swipe plan: %w", err)
	}
	if unlimited {
		return types.SwipeLimitStatus{
			RemainingSwipes: types.UnlimitedThreshold,
			DailyLimit:      p.dailyLimit,
			CanSwipe:        true,
		}, nil
	}

	var used int
	err = p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM swipe_interactions
		 WHERE user_id = $1 AND created_at >= date_trunc('day', NOW())`,
		userID,
	).Scan(&used)
	if err != nil {
		return types.SwipeLimitStatus{}, fmt.Errorf("failed to count swipes: %w", err)
	}

	remaining := p.dailyLimit - used
	if remaining < 0 {
		remaining = 0
	}
	return types.SwipeLimitStatus{
		RemainingSwipes: remaining,
		DailyLimit:      p.dailyLimit,
		CanSwipe:        remaining > 0,
	}, nil
}

// SubmitSwipeAction persists one swipe decision. A repeated swipe on the
// same job overwrites the earlier decision rather than creating a second
// row. The returned result carries the authoritative quota and the
// interaction ID used for rewind.
func (p *Postgres) SubmitSwipeAction(ctx context.Context, userID, jobID string, action types.SwipeAction) (types.SwipeResult, error) {
	var id uuid.UUID
	err := p.pool.QueryRow(ctx,
		`INSERT INTO swipe_interactions (user_id, job_id, action)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, job_id) DO UPDATE SET action = $3, created_at = NOW()
		 RETURNING id`,
		userID, jobID, string(action),
	).Scan(&id)
	if err != nil {
		return types.SwipeResult{}, fmt.Errorf("failed to submit swipe: %w", err)
	}

	status, err := p.GetSwipeLimitStatus(ctx, userID)
	if err != nil {
		// The decision is committed; the engine reconciles quota on the
		// next successful submission.
		return types.SwipeResult{Success: true, InteractionID: id.String()}, nil
	}
	return types.SwipeResult{
		Success:       true,
		SwipeStatus:   &status,
		InteractionID: id.String(),
	}, nil
}

// RewindInteraction invalidates a previously committed decision.
func (p *Postgres) RewindInteraction(ctx context.Context, interactionID string) error {
	id, err := uuid.Parse(interactionID)
	if err != nil {
		return fmt.Errorf("invalid interaction id %q: %w", interactionID, err)
	}
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM swipe_interactions WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to rewind interaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interaction %s not found", interactionID)
	}
	return nil
}
