// Package engine composes the feed manager, swipe queue, limit tracker
// and rewind cache into one swipe session and exposes the gesture entry
// points the UI layer calls.
package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/andrea/gig-matcher/internal/feed"
	"github.com/andrea/gig-matcher/internal/scoring"
	"github.com/andrea/gig-matcher/internal/store"
	"github.com/andrea/gig-matcher/internal/swipe"
	"github.com/andrea/gig-matcher/internal/types"
)

// Gesture rejection errors. These are local, synchronous rejections; a
// rejected gesture never touches the queue or the quota.
var (
	ErrInvalidAction     = errors.New("invalid swipe action")
	ErrSwipeLimitReached = errors.New("daily swipe limit reached")
	ErrJobNotInFeed      = errors.New("job is not in the visible feed")
	ErrNothingToRewind   = errors.New("nothing to rewind")
)

// Config assembles a session's collaborators and initial state.
type Config struct {
	UserID  string
	Profile types.CandidateProfile

	Source      store.JobSource
	SwipeStore  store.SwipeStore
	Cache       store.FeedCache // optional
	Coordinator *feed.Coordinator
	Logger      *zap.Logger

	// InitialJobs and InitialLimit are server-prefetched for first
	// paint. When InitialJobs is empty the session loads its first page
	// itself (consulting the feed cache when available).
	InitialJobs  []types.ScoredJob
	InitialLimit types.SwipeLimitStatus

	FeedOptions feed.ManagerOptions
}

// Session is one user's swipe session: created at session start,
// discarded at session end. Rewind state does not survive it.
type Session struct {
	userID  string
	profile types.CandidateProfile
	limits  *swipe.LimitTracker
	rewind  *swipe.RewindCache
	feed    *feed.Manager
	queue   *swipe.Queue
	store   store.SwipeStore
	cache   store.FeedCache
	log     *zap.Logger
	events  chan Event
}

// Event is a non-blocking notification surfaced to the UI layer.
type Event struct {
	Type    string `json:"type"`
	JobID   string `json:"job_id,omitempty"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message,omitempty"`
}

// eventBuffer bounds the notification channel; when the UI is not
// draining, older notifications are dropped rather than blocking the
// queue processor.
const eventBuffer = 16

// NewSession builds a session and fills its initial feed buffer.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.UserID == "" {
		return nil, fmt.Errorf("session requires a user ID")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		userID:  cfg.UserID,
		profile: cfg.Profile,
		limits:  swipe.NewLimitTracker(cfg.InitialLimit),
		rewind:  swipe.NewRewindCache(),
		store:   cfg.SwipeStore,
		cache:   cfg.Cache,
		log:     log,
		events:  make(chan Event, eventBuffer),
	}
	s.feed = feed.NewManager(cfg.UserID, cfg.Profile, cfg.Source, cfg.Coordinator, log, cfg.FeedOptions)
	s.queue = swipe.NewQueue(cfg.UserID, cfg.SwipeStore, s.limits, s.rewind, s.feed, s, log)

	if err := s.loadInitialFeed(ctx, cfg.InitialJobs); err != nil {
		return nil, err
	}
	return s, nil
}

// loadInitialFeed seeds from the prefetched batch, the ranked-feed cache
// or a fresh first-page fetch, in that order.
func (s *Session) loadInitialFeed(ctx context.Context, prefetched []types.ScoredJob) error {
	if len(prefetched) > 0 {
		s.feed.Seed(prefetched)
		return nil
	}
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, s.userID); err == nil && ok && len(cached) > 0 {
			s.feed.Seed(cached)
			return nil
		}
	}
	if err := s.feed.LoadInitial(ctx); err != nil {
		return fmt.Errorf("initial feed load: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, s.userID, s.feed.Visible()); err != nil {
			s.log.Debug("feed cache write failed", zap.String("user_id", s.userID), zap.Error(err))
		}
	}
	return nil
}

// OnSwipe is the sole entry point for swipe gestures. The quota gate
// runs synchronously before the optimistic decrement; the card leaves
// the buffer immediately and the decision is queued for submission.
func (s *Session) OnSwipe(ctx context.Context, jobID string, action types.SwipeAction) error {
	if !action.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	if !s.limits.CanSwipe() {
		return ErrSwipeLimitReached
	}

	sj, ok := s.feed.Take(jobID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotInFeed, jobID)
	}

	s.limits.DecrementOptimistic()
	s.queue.Enqueue(types.SwipeQueueItem{JobID: jobID, Action: action, Job: sj.Job}, sj.Match)
	s.feed.MaybeReplenish(ctx)
	return nil
}

// OnRewind is the sole entry point for undo. It invalidates the
// persisted interaction, reinserts the job at the feed head and clears
// the rewind slot. A failed server-side invalidation aborts the rewind
// with the slot retained; a failed feed-cache invalidation does not.
func (s *Session) OnRewind(ctx context.Context) (types.ScoredJob, error) {
	entry, ok := s.rewind.Peek()
	if !ok {
		return types.ScoredJob{}, ErrNothingToRewind
	}

	if err := s.store.RewindInteraction(ctx, entry.InteractionID); err != nil {
		return types.ScoredJob{}, fmt.Errorf("rewind interaction %s: %w", entry.InteractionID, err)
	}
	s.rewind.Clear()

	match := scoring.Score(s.profile, entry.Job)
	s.feed.Reinsert(entry.Job, match)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, s.userID); err != nil {
			// Best-effort: the rewind itself has already taken effect.
			s.log.Warn("ranked feed cache invalidation failed",
				zap.String("user_id", s.userID), zap.Error(err))
		}
	}

	s.emit(Event{Type: "rewind", JobID: entry.Job.ID})
	return types.ScoredJob{Job: entry.Job, Match: match}, nil
}

// VisibleJobs returns the current visible buffer for rendering.
func (s *Session) VisibleJobs() []types.ScoredJob {
	return s.feed.Visible()
}

// LimitStatus returns the current quota snapshot for rendering.
func (s *Session) LimitStatus() types.SwipeLimitStatus {
	return s.limits.Status()
}

// CanRewind reports whether an undo is currently possible.
func (s *Session) CanRewind() bool {
	return s.rewind.HasEntry()
}

// FeedExhausted reports whether the upstream ran out of candidates.
func (s *Session) FeedExhausted() bool {
	return s.feed.Exhausted()
}

// RetryFeed clears the exhausted state after a preference change and
// fetches the next page.
func (s *Session) RetryFeed(ctx context.Context) error {
	return s.feed.Retry(ctx)
}

// Events exposes the session's notification stream.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Flush blocks until all queued swipe decisions have resolved. Used by
// graceful shutdown.
func (s *Session) Flush() {
	s.queue.Flush()
}

// Notify implements swipe.Notifier by forwarding queue outcomes onto the
// session's event stream.
func (s *Session) Notify(event string, item types.SwipeQueueItem, message string) {
	s.emit(Event{Type: event, JobID: item.JobID, Action: string(item.Action), Message: message})
}

// emit never blocks; when the buffer is full the oldest event is dropped.
func (s *Session) emit(e Event) {
	for {
		select {
		case s.events <- e:
			return
		default:
			select {
			case <-s.events:
			default:
			}
		}
	}
}
