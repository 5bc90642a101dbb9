package types

// SwipeAction is a user's decision on one candidate job.
type SwipeAction string

// Swipe action constants
const (
	ActionLike      SwipeAction = "like"
	ActionSkip      SwipeAction = "skip"
	ActionSuperlike SwipeAction = "superlike"
)

// Valid reports whether the action is one of the known swipe gestures.
func (a SwipeAction) Valid() bool {
	switch a {
	case ActionLike, ActionSkip, ActionSuperlike:
		return true
	}
	return false
}

// UnlimitedThreshold marks the unlimited-plan sentinel: a
// SwipeLimitStatus whose RemainingSwipes is at or above this value is
// always swipeable and never decremented.
const UnlimitedThreshold = 1_000_000

// SwipeLimitStatus is the daily quota snapshot tracked per user.
type SwipeLimitStatus struct {
	RemainingSwipes int  `json:"remaining_swipes"`
	DailyLimit      int  `json:"daily_limit"`
	CanSwipe        bool `json:"can_swipe"`
}

// Unlimited reports whether the sentinel value for an unlimited plan is active.
func (s SwipeLimitStatus) Unlimited() bool {
	return s.RemainingSwipes >= UnlimitedThreshold
}

// SwipeQueueItem is one pending swipe decision awaiting submission.
// Items are processed strictly FIFO and removed only after their
// submission attempt resolves.
type SwipeQueueItem struct {
	JobID  string      `json:"job_id"`
	Action SwipeAction `json:"action"`
	Job    JobPosting  `json:"job"`
}

// SwipeResult is the persistence collaborator's answer to one submitted
// swipe decision.
type SwipeResult struct {
	Success       bool              `json:"success"`
	SwipeStatus   *SwipeLimitStatus `json:"swipe_status,omitempty"`
	InteractionID string            `json:"interaction_id,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// RewindEntry references the most recently committed swipe; at most one
// exists per session.
type RewindEntry struct {
	Job           JobPosting `json:"job"`
	InteractionID string     `json:"interaction_id"`
}
