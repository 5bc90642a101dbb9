// Package feed maintains the ranked recommendation feed for one swipe
// session: the ordered buffer of scored postings, the replenishment
// policy and the shared single-flight fetch coordinator.
package feed

import (
	"sort"

	"github.com/andrea/gig-matcher/internal/types"
)

// Buffer is the ordered working set of scored jobs for one session.
// Insertion order is rank order: descending score, ties broken by the
// more recently posted job, then by ID. Not safe for concurrent use; the
// Manager serializes access.
type Buffer struct {
	items []types.ScoredJob
	index map[string]bool // job IDs currently present
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{index: make(map[string]bool)}
}

// ranksBefore reports whether a belongs ahead of b in the feed.
func ranksBefore(a, b types.ScoredJob) bool {
	if a.Match.Score != b.Match.Score {
		return a.Match.Score > b.Match.Score
	}
	if !a.Job.PostedAt.Equal(b.Job.PostedAt) {
		return a.Job.PostedAt.After(b.Job.PostedAt)
	}
	return a.Job.ID < b.Job.ID
}

// Insert places the job at its rank position. Returns false without
// modifying the buffer when the job is already present.
func (b *Buffer) Insert(sj types.ScoredJob) bool {
	if b.index[sj.Job.ID] {
		return false
	}
	pos := sort.Search(len(b.items), func(i int) bool {
		return ranksBefore(sj, b.items[i])
	})
	b.items = append(b.items, types.ScoredJob{})
	copy(b.items[pos+1:], b.items[pos:])
	b.items[pos] = sj
	b.index[sj.Job.ID] = true
	return true
}

// PushFront reinserts the job at the head regardless of rank, used for
// rollback and rewind. Idempotent: a job already present is left alone.
func (b *Buffer) PushFront(sj types.ScoredJob) bool {
	if b.index[sj.Job.ID] {
		return false
	}
	b.items = append([]types.ScoredJob{sj}, b.items...)
	b.index[sj.Job.ID] = true
	return true
}

// Remove takes the job with the given ID out of the buffer.
func (b *Buffer) Remove(jobID string) (types.ScoredJob, bool) {
	if !b.index[jobID] {
		return types.ScoredJob{}, false
	}
	for i, sj := range b.items {
		if sj.Job.ID == jobID {
			b.items = append(b.items[:i], b.items[i+1:]...)
			delete(b.index, jobID)
			return sj, true
		}
	}
	return types.ScoredJob{}, false
}

// Contains reports whether the job is currently in the buffer.
func (b *Buffer) Contains(jobID string) bool {
	return b.index[jobID]
}

// Len returns the number of buffered jobs.
func (b *Buffer) Len() int {
	return len(b.items)
}

// Items returns a copy of the buffer contents in rank order.
func (b *Buffer) Items() []types.ScoredJob {
	out := make([]types.ScoredJob, len(b.items))
	copy(out, b.items)
	return out
}
