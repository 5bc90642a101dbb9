package feed

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/andrea/gig-matcher/internal/scoring"
	"github.com/andrea/gig-matcher/internal/store"
	"github.com/andrea/gig-matcher/internal/types"
)

// Replenishment policy defaults.
const (
	DefaultPageSize           = 10
	DefaultReplenishThreshold = 3
)

// sessionState is the per-session bookkeeping for pagination: the next
// fetch offset, the exhaustion latch and the set of jobs already swiped
// this session. Created at session start, discarded with the Manager.
type sessionState struct {
	offset    int
	exhausted bool
	fetching  bool
	swiped    map[string]bool
}

// Manager orchestrates the ranked feed for one user session: it fetches
// candidate batches, scores them, deduplicates against buffered and
// already-swiped jobs, and keeps the visible buffer topped up.
type Manager struct {
	mu      sync.Mutex
	userID  string
	profile types.CandidateProfile
	source  store.JobSource
	coord   *Coordinator
	log     *zap.Logger

	buf       *Buffer
	state     sessionState
	pageSize  int
	threshold int
}

// ManagerOptions tune the replenishment policy. Zero values use defaults.
type ManagerOptions struct {
	PageSize           int
	ReplenishThreshold int
}

// NewManager returns a Manager for one user session.
func NewManager(userID string, profile types.CandidateProfile, source store.JobSource, coord *Coordinator, log *zap.Logger, opts ManagerOptions) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if coord == nil {
		coord = NewCoordinator()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	threshold := opts.ReplenishThreshold
	if threshold <= 0 {
		threshold = DefaultReplenishThreshold
	}
	return &Manager{
		userID:    userID,
		profile:   profile,
		source:    source,
		coord:     coord,
		log:       log,
		buf:       NewBuffer(),
		state:     sessionState{swiped: make(map[string]bool)},
		pageSize:  pageSize,
		threshold: threshold,
	}
}

// Seed preloads the buffer with an already-scored batch (server-prefetched
// for first paint) and advances the offset past it.
func (m *Manager) Seed(jobs []types.ScoredJob) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sj := range jobs {
		m.buf.Insert(sj)
	}
	m.state.offset += len(jobs)
}

// LoadInitial fetches and ranks the first page. Call once per session
// when no prefetched batch is available.
func (m *Manager) LoadInitial(ctx context.Context) error {
	return m.Replenish(ctx)
}

// Visible returns the current buffer contents in rank order.
func (m *Manager) Visible() []types.ScoredJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.Items()
}

// Exhausted reports whether the upstream returned an empty page and no
// further fetches will run until Retry.
func (m *Manager) Exhausted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.exhausted
}

// Take removes the job from the buffer optimistically (before its swipe
// submission resolves) and marks it swiped for this session.
func (m *Manager) Take(jobID string) (types.ScoredJob, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sj, ok := m.buf.Remove(jobID)
	if ok {
		m.state.swiped[jobID] = true
	}
	return sj, ok
}

// Reinsert puts a job back at the head of the buffer after a rollback or
// rewind. Idempotent: a job already visible is left alone. The job is
// unmarked as swiped so it stays eligible for future fetches.
func (m *Manager) Reinsert(job types.JobPosting, match types.MatchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state.swiped, job.ID)
	m.buf.PushFront(types.ScoredJob{Job: job, Match: match})
}

// NeedsReplenish reports whether the visible buffer is at or below the
// replenishment threshold and a fetch is worth triggering.
func (m *Manager) NeedsReplenish() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.Len() <= m.threshold && !m.state.exhausted && !m.state.fetching
}

// MaybeReplenish triggers a background fetch when the buffer is low.
// Returns true when a fetch was started; concurrent callers while one is
// in flight return false immediately.
func (m *Manager) MaybeReplenish(ctx context.Context) bool {
	m.mu.Lock()
	if m.buf.Len() > m.threshold || m.state.exhausted || m.state.fetching {
		m.mu.Unlock()
		return false
	}
	m.state.fetching = true
	m.mu.Unlock()

	// The fetch outlives the gesture that triggered it.
	bgCtx := context.WithoutCancel(ctx)
	go func() {
		if err := m.replenish(bgCtx); err != nil {
			// Best-effort: the feed simply does not grow this cycle.
			m.log.Warn("feed replenishment failed",
				zap.String("user_id", m.userID), zap.Error(err))
		}
	}()
	return true
}

// Replenish fetches the next page synchronously. Used for the initial
// load and by Retry; background top-ups go through MaybeReplenish.
func (m *Manager) Replenish(ctx context.Context) error {
	m.mu.Lock()
	if m.state.exhausted {
		m.mu.Unlock()
		return nil
	}
	if m.state.fetching {
		m.mu.Unlock()
		return nil
	}
	m.state.fetching = true
	m.mu.Unlock()

	return m.replenish(ctx)
}

// replenish performs the fetch-score-insert cycle. The fetching flag is
// already set and is cleared on exit.
func (m *Manager) replenish(ctx context.Context) error {
	m.mu.Lock()
	offset := m.state.offset
	m.mu.Unlock()

	jobs, shared, err := m.coord.Fetch(ctx, m.source, m.userID, m.pageSize, offset)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.fetching = false

	if err != nil {
		return fmt.Errorf("fetch page at offset %d: %w", offset, err)
	}
	if shared {
		// Another view's fetch covered this cycle; offset and
		// exhaustion were or will be advanced by that call's owner.
		m.mergePage(jobs)
		return nil
	}

	m.state.offset += m.pageSize
	if len(jobs) == 0 {
		m.state.exhausted = true
		m.log.Debug("feed exhausted", zap.String("user_id", m.userID), zap.Int("offset", offset))
		return nil
	}
	m.mergePage(jobs)
	return nil
}

// mergePage scores and inserts a fetched page, skipping inactive
// postings, jobs already buffered and jobs already swiped this session.
// Caller holds the mutex.
func (m *Manager) mergePage(jobs []types.JobPosting) {
	added := 0
	for _, job := range jobs {
		if !job.IsActive() || m.state.swiped[job.ID] {
			continue
		}
		match := scoring.Score(m.profile, job)
		if m.buf.Insert(types.ScoredJob{Job: job, Match: match}) {
			added++
		}
	}
	m.log.Debug("feed replenished",
		zap.String("user_id", m.userID),
		zap.Int("fetched", len(jobs)),
		zap.Int("added", added),
		zap.Int("buffered", m.buf.Len()))
}

// Retry clears the exhaustion latch (after a preference change, for
// example) and fetches the next page immediately.
func (m *Manager) Retry(ctx context.Context) error {
	m.mu.Lock()
	m.state.exhausted = false
	m.mu.Unlock()
	return m.Replenish(ctx)
}
