package feed

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/andrea/gig-matcher/internal/store"
	"github.com/andrea/gig-matcher/internal/types"
)

// Coordinator deduplicates concurrent replenishment fetches across every
// feed view mounted for the same user. It replaces ambient module-level
// state with an explicit object injected into each Manager.
type Coordinator struct {
	group singleflight.Group
}

// NewCoordinator returns a Coordinator shared by all sessions of a process.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Fetch runs one page fetch per user at a time; concurrent callers for
// the same user share the in-flight call's result. shared is true for
// callers that piggybacked on another caller's fetch.
func (c *Coordinator) Fetch(ctx context.Context, source store.JobSource, userID string, limit, offset int) (jobs []types.JobPosting, shared bool, err error) {
	v, err, shared := c.group.Do(userID, func() (any, error) {
		return source.FetchMatchedJobs(ctx, userID, limit, offset)
	})
	if err != nil {
		return nil, shared, err
	}
	jobs, _ = v.([]types.JobPosting)
	return jobs, shared, nil
}
