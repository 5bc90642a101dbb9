// Package store defines the persistence collaborators the swipe engine
// calls, and provides the PostgreSQL and Redis implementations.
package store

import (
	"context"

	"github.com/andrea/gig-matcher/internal/types"
)

// JobSource retrieves paginated candidate postings for a user. Results
// are pre-filtered upstream (active, not yet swiped); ranking happens in
// the engine.
type JobSource interface {
	FetchMatchedJobs(ctx context.Context, userID string, limit, offset int) ([]types.JobPosting, error)
}

// ProfileSource retrieves the candidate profile snapshot used for scoring.
type ProfileSource interface {
	GetCandidateProfile(ctx context.Context, userID string) (types.CandidateProfile, error)
}

// SwipeStore is the persistence collaborator for swipe decisions and the
// daily quota.
type SwipeStore interface {
	GetSwipeLimitStatus(ctx context.Context, userID string) (types.SwipeLimitStatus, error)
	SubmitSwipeAction(ctx context.Context, userID, jobID string, action types.SwipeAction) (types.SwipeResult, error)
	RewindInteraction(ctx context.Context, interactionID string) error
}

// FeedCache caches a user's ranked feed page. All operations are
// best-effort from the engine's perspective; a failed Invalidate never
// fails the gesture that requested it.
type FeedCache interface {
	Get(ctx context.Context, userID string) ([]types.ScoredJob, bool, error)
	Set(ctx context.Context, userID string, jobs []types.ScoredJob) error
	Invalidate(ctx context.Context, userID string) error
}
