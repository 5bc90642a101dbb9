package swipe

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrea/gig-matcher/internal/types"
)

// fakeSwipeStore records submission order and serves scripted results.
type fakeSwipeStore struct {
	mu        sync.Mutex
	submitted []string
	results   map[string]types.SwipeResult
	errs      map[string]error
	onSubmit  func(jobID string)
}

func newFakeSwipeStore() *fakeSwipeStore {
	return &fakeSwipeStore{
		results: make(map[string]types.SwipeResult),
		errs:    make(map[string]error),
	}
}

func (f *fakeSwipeStore) GetSwipeLimitStatus(context.Context, string) (types.SwipeLimitStatus, error) {
	return types.SwipeLimitStatus{}, nil
}

func (f *fakeSwipeStore) SubmitSwipeAction(_ context.Context, _ string, jobID string, _ types.SwipeAction) (types.SwipeResult, error) {
	f.mu.Lock()
	f.submitted = append(f.submitted, jobID)
	hook := f.onSubmit
	res, hasRes := f.results[jobID]
	err := f.errs[jobID]
	f.mu.Unlock()

	if hook != nil {
		hook(jobID)
	}
	if err != nil {
		return types.SwipeResult{}, err
	}
	if hasRes {
		return res, nil
	}
	return types.SwipeResult{Success: true, InteractionID: "int-" + jobID}, nil
}

func (f *fakeSwipeStore) RewindInteraction(context.Context, string) error {
	return nil
}

func (f *fakeSwipeStore) order() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.submitted))
	copy(out, f.submitted)
	return out
}

// fakeFeed records head reinsertions.
type fakeFeed struct {
	mu        sync.Mutex
	reinserts []string
}

func (f *fakeFeed) Reinsert(job types.JobPosting, _ types.MatchResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reinserts = append(f.reinserts, job.ID)
}

func (f *fakeFeed) reinserted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.reinserts))
	copy(out, f.reinserts)
	return out
}

// fakeNotifier records raised events.
type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) Notify(event string, item types.SwipeQueueItem, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event+":"+item.JobID)
}

func (f *fakeNotifier) raised() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	copy(out, f.events)
	return out
}

func item(jobID string) types.SwipeQueueItem {
	return types.SwipeQueueItem{
		JobID:  jobID,
		Action: types.ActionLike,
		Job:    types.JobPosting{ID: jobID, Status: types.JobStatusActive},
	}
}

func newTestQueue(st *fakeSwipeStore, limits *LimitTracker) (*Queue, *fakeFeed, *fakeNotifier, *RewindCache) {
	feed := &fakeFeed{}
	notifier := &fakeNotifier{}
	rewind := NewRewindCache()
	q := NewQueue("u1", st, limits, rewind, feed, notifier, nil)
	return q, feed, notifier, rewind
}

func TestQueue_SubmitsStrictlyFIFO(t *testing.T) {
	st := newFakeSwipeStore()
	limits := NewLimitTracker(types.SwipeLimitStatus{RemainingSwipes: 10, DailyLimit: 10, CanSwipe: true})
	q, _, _, _ := newTestQueue(st, limits)

	q.Enqueue(item("A"), types.MatchResult{})
	q.Enqueue(item("B"), types.MatchResult{})
	q.Enqueue(item("C"), types.MatchResult{})
	q.Flush()

	assert.Equal(t, []string{"A", "B", "C"}, st.order())
}

func TestQueue_FailureDoesNotBlockLaterItems(t *testing.T) {
	st := newFakeSwipeStore()
	st.errs["B"] = errors.New("network down")
	limits := NewLimitTracker(types.SwipeLimitStatus{RemainingSwipes: 10, DailyLimit: 10, CanSwipe: true})
	q, feed, notifier, _ := newTestQueue(st, limits)

	q.Enqueue(item("A"), types.MatchResult{})
	q.Enqueue(item("B"), types.MatchResult{})
	q.Enqueue(item("C"), types.MatchResult{})
	q.Flush()

	assert.Equal(t, []string{"A", "B", "C"}, st.order())
	assert.Equal(t, []string{"B"}, feed.reinserted())
	assert.Contains(t, notifier.raised(), EventSwipeFailed+":B")
	assert.Equal(t, 0, q.Len())
}

func TestQueue_RollbackRestoresExactlyOneSwipe(t *testing.T) {
	st := newFakeSwipeStore()
	st.errs["X"] = errors.New("timeout")
	limits := NewLimitTracker(types.SwipeLimitStatus{RemainingSwipes: 5, DailyLimit: 10, CanSwipe: true})
	q, feed, _, _ := newTestQueue(st, limits)

	// Gesture accepted: quota burned optimistically, then submission fails.
	limits.DecrementOptimistic()
	require.Equal(t, 4, limits.Status().RemainingSwipes)

	q.Enqueue(item("X"), types.MatchResult{})
	q.Flush()

	assert.Equal(t, 5, limits.Status().RemainingSwipes)
	assert.Equal(t, []string{"X"}, feed.reinserted())
}

func TestQueue_UnsuccessfulResultRollsBack(t *testing.T) {
	st := newFakeSwipeStore()
	st.results["X"] = types.SwipeResult{Success: false, Error: "job closed"}
	limits := NewLimitTracker(types.SwipeLimitStatus{RemainingSwipes: 4, DailyLimit: 10, CanSwipe: true})
	q, feed, notifier, rewind := newTestQueue(st, limits)

	limits.DecrementOptimistic()
	q.Enqueue(item("X"), types.MatchResult{})
	q.Flush()

	assert.Equal(t, 4, limits.Status().RemainingSwipes)
	assert.Equal(t, []string{"X"}, feed.reinserted())
	assert.Contains(t, notifier.raised(), EventSwipeFailed+":X")
	assert.False(t, rewind.HasEntry())
}

func TestQueue_CommitReconcilesQuotaAndRecordsRewind(t *testing.T) {
	st := newFakeSwipeStore()
	server := types.SwipeLimitStatus{RemainingSwipes: 7, DailyLimit: 10, CanSwipe: true}
	st.results["Y"] = types.SwipeResult{Success: true, SwipeStatus: &server, InteractionID: "int-42"}
	limits := NewLimitTracker(types.SwipeLimitStatus{RemainingSwipes: 3, DailyLimit: 10, CanSwipe: true})
	q, _, _, rewind := newTestQueue(st, limits)

	q.Enqueue(item("Y"), types.MatchResult{})
	q.Flush()

	assert.Equal(t, 7, limits.Status().RemainingSwipes)
	entry, ok := rewind.Peek()
	require.True(t, ok)
	assert.Equal(t, "Y", entry.Job.ID)
	assert.Equal(t, "int-42", entry.InteractionID)
}

func TestQueue_RewindSlotTracksMostRecentGesture(t *testing.T) {
	st := newFakeSwipeStore()
	limits := NewLimitTracker(types.SwipeLimitStatus{RemainingSwipes: 10, DailyLimit: 10, CanSwipe: true})
	q, _, _, rewind := newTestQueue(st, limits)

	q.Enqueue(item("first"), types.MatchResult{})
	q.Enqueue(item("second"), types.MatchResult{})
	q.Flush()

	entry, ok := rewind.Peek()
	require.True(t, ok)
	assert.Equal(t, "second", entry.Job.ID)
}

func TestQueue_ItemEnqueuedDuringDrainIsProcessed(t *testing.T) {
	st := newFakeSwipeStore()
	limits := NewLimitTracker(types.SwipeLimitStatus{RemainingSwipes: 10, DailyLimit: 10, CanSwipe: true})
	q, _, _, _ := newTestQueue(st, limits)

	// Enqueue a follow-up from inside the first item's submission,
	// racing the drain loop's exit.
	var once sync.Once
	st.onSubmit = func(string) {
		once.Do(func() {
			q.Enqueue(item("late"), types.MatchResult{})
		})
	}

	q.Enqueue(item("early"), types.MatchResult{})
	q.Flush()

	assert.Equal(t, []string{"early", "late"}, st.order())
}
