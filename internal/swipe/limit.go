// Package swipe turns user swipe gestures into persisted decisions: it
// holds the daily quota tracker, the ordered single-flight action queue
// and the single-slot rewind cache.
package swipe

import (
	"sync"

	"github.com/andrea/gig-matcher/internal/types"
)

// LimitTracker holds the remaining-quota state for one session. It is
// adjusted optimistically when a gesture is accepted and reconciled from
// the authoritative server value on every committed submission.
type LimitTracker struct {
	mu     sync.Mutex
	status types.SwipeLimitStatus
}

// NewLimitTracker starts from a server-prefetched status.
func NewLimitTracker(initial types.SwipeLimitStatus) *LimitTracker {
	return &LimitTracker{status: initial}
}

// Status returns the current quota snapshot.
func (t *LimitTracker) Status() types.SwipeLimitStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// CanSwipe reports whether a gesture may be accepted right now.
func (t *LimitTracker) CanSwipe() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status.CanSwipe
}

// DecrementOptimistic burns one swipe locally before the submission
// confirms. No-op under the unlimited sentinel.
func (t *LimitTracker) DecrementOptimistic() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.Unlimited() {
		return
	}
	if t.status.RemainingSwipes > 0 {
		t.status.RemainingSwipes--
	}
	t.status.CanSwipe = t.status.RemainingSwipes > 0
}

// RestoreOne gives back one optimistically burned swipe after a failed
// submission, capped at the daily limit. No-op under the unlimited
// sentinel.
func (t *LimitTracker) RestoreOne() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.Unlimited() {
		return
	}
	t.status.RemainingSwipes++
	if t.status.RemainingSwipes > t.status.DailyLimit {
		t.status.RemainingSwipes = t.status.DailyLimit
	}
	t.status.CanSwipe = t.status.RemainingSwipes > 0
}

// Reconcile replaces the tracked value wholesale with a freshly fetched
// authoritative status.
func (t *LimitTracker) Reconcile(status types.SwipeLimitStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
}
