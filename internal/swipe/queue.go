package swipe

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/andrea/gig-matcher/internal/store"
	"github.com/andrea/gig-matcher/internal/types"
)

// Reinserter puts a rolled-back job back at the head of the feed buffer.
type Reinserter interface {
	Reinsert(job types.JobPosting, match types.MatchResult)
}

// Notifier raises non-blocking, user-visible notifications.
type Notifier interface {
	Notify(event string, item types.SwipeQueueItem, message string)
}

// Notification event names emitted by the queue.
const (
	EventSwipeCommitted = "swipe_committed"
	EventSwipeFailed    = "swipe_failed"
)

// command carries one swipe decision through its lifecycle:
// Enqueued -> Submitting -> Committed | RolledBack. Both terminal states
// remove it from the pending sequence, so a permanently failing item can
// never stall the queue.
type command struct {
	item  types.SwipeQueueItem
	match types.MatchResult
}

// Queue is the ordered, single-flight processor for swipe decisions.
// Exactly one command is submitting at any time; the rest wait strictly
// FIFO, so decisions commit in gesture order and the rewind cache always
// reflects the most recently issued gesture.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []command
	running bool

	userID string
	store  store.SwipeStore
	limits *LimitTracker
	rewind *RewindCache
	feed   Reinserter
	notify Notifier
	log    *zap.Logger
}

// NewQueue wires the queue to its collaborators. notify may be nil.
func NewQueue(userID string, swipeStore store.SwipeStore, limits *LimitTracker, rewind *RewindCache, feed Reinserter, notify Notifier, log *zap.Logger) *Queue {
	if log == nil {
		log = zap.NewNop()
	}
	q := &Queue{
		userID: userID,
		store:  swipeStore,
		limits: limits,
		rewind: rewind,
		feed:   feed,
		notify: notify,
		log:    log,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends a decision and starts the drain loop if it is idle.
// The caller has already passed the quota gate and removed the card from
// the feed; Enqueue never blocks on network I/O.
func (q *Queue) Enqueue(item types.SwipeQueueItem, match types.MatchResult) {
	q.mu.Lock()
	q.pending = append(q.pending, command{item: item, match: match})
	start := !q.running
	if start {
		q.running = true
	}
	q.mu.Unlock()

	if start {
		go q.drain()
	}
}

// Len returns the number of decisions still awaiting submission.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush blocks until every pending decision has resolved. Used by tests
// and by graceful shutdown.
func (q *Queue) Flush() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.running || len(q.pending) > 0 {
		q.cond.Wait()
	}
}

// drain processes commands strictly FIFO, one submission in flight at a
// time. The emptiness re-check and the running flag share the mutex with
// Enqueue, so an item added concurrently with loop exit is either picked
// up here or starts a fresh drain; no wake-up is ever missed.
func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.running = false
			q.cond.Broadcast()
			q.mu.Unlock()
			return
		}
		cmd := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.submit(cmd)
	}
}

// submit performs the one persistence write and routes the outcome to
// commit or rollback. Either way the command is done; one decision's
// failure never blocks the rest of the queue.
func (q *Queue) submit(cmd command) {
	res, err := q.store.SubmitSwipeAction(context.Background(), q.userID, cmd.item.JobID, cmd.item.Action)
	if err != nil {
		q.rollback(cmd, err)
		return
	}
	if !res.Success {
		q.rollback(cmd, fmt.Errorf("swipe rejected: %s", res.Error))
		return
	}
	q.commit(cmd, res)
}

// commit reconciles the authoritative quota and records the rewind slot.
func (q *Queue) commit(cmd command, res types.SwipeResult) {
	if res.SwipeStatus != nil {
		q.limits.Reconcile(*res.SwipeStatus)
	}
	if res.InteractionID != "" {
		q.rewind.Record(cmd.item.Job, res.InteractionID)
	}
	if q.notify != nil {
		q.notify.Notify(EventSwipeCommitted, cmd.item, "")
	}
	q.log.Debug("swipe committed",
		zap.String("user_id", q.userID),
		zap.String("job_id", cmd.item.JobID),
		zap.String("action", string(cmd.item.Action)),
		zap.String("interaction_id", res.InteractionID))
}

// rollback restores the optimistically burned swipe, reinserts the job
// at the feed head (idempotently) and raises a non-blocking failure
// notification.
func (q *Queue) rollback(cmd command, cause error) {
	q.limits.RestoreOne()
	q.feed.Reinsert(cmd.item.Job, cmd.match)
	if q.notify != nil {
		q.notify.Notify(EventSwipeFailed, cmd.item, "Your swipe didn't go through. Please try again.")
	}
	q.log.Warn("swipe rolled back",
		zap.String("user_id", q.userID),
		zap.String("job_id", cmd.item.JobID),
		zap.String("action", string(cmd.item.Action)),
		zap.Error(cause))
}
