package server

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/andrea/gig-matcher/internal/engine"
	"github.com/andrea/gig-matcher/internal/feed"
)

// SessionRegistry creates and caches one engine session per user. The
// replenishment coordinator is shared across all sessions of the
// process, so concurrently mounted feed views never duplicate a fetch.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*engine.Session

	backend  Backend
	coord    *feed.Coordinator
	log      *zap.Logger
	feedOpts feed.ManagerOptions
}

// NewSessionRegistry returns an empty registry.
func NewSessionRegistry(backend Backend, coord *feed.Coordinator, log *zap.Logger, feedOpts feed.ManagerOptions) *SessionRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionRegistry{
		sessions: make(map[string]*engine.Session),
		backend:  backend,
		coord:    coord,
		log:      log,
		feedOpts: feedOpts,
	}
}

// Get returns the user's session, creating it on first use: the profile
// and the authoritative limit status are fetched once, then the session
// fills its initial feed buffer.
func (r *SessionRegistry) Get(ctx context.Context, userID string) (*engine.Session, error) {
	r.mu.Lock()
	if s, ok := r.sessions[userID]; ok {
		r.mu.Unlock()
		return s, nil
	}
	r.mu.Unlock()

	profile, err := r.backend.Profiles.GetCandidateProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile for %s: %w", userID, err)
	}
	limit, err := r.backend.Swipes.GetSwipeLimitStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load swipe limit for %s: %w", userID, err)
	}

	s, err := engine.NewSession(ctx, engine.Config{
		UserID:       userID,
		Profile:      profile,
		Source:       r.backend.Source,
		SwipeStore:   r.backend.Swipes,
		Cache:        r.backend.Cache,
		Coordinator:  r.coord,
		Logger:       r.log,
		InitialLimit: limit,
		FeedOptions:  r.feedOpts,
	})
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// A concurrent request may have created the session first; keep the
	// winner so both views share one buffer.
	if existing, ok := r.sessions[userID]; ok {
		return existing, nil
	}
	r.sessions[userID] = s
	return s, nil
}

// Lookup returns an existing session without creating one.
func (r *SessionRegistry) Lookup(userID string) (*engine.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// FlushAll drains every session's swipe queue. Used by graceful shutdown.
func (r *SessionRegistry) FlushAll() {
	r.mu.Lock()
	sessions := make([]*engine.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.Flush()
	}
}
