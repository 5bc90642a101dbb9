package swipe

import (
	"sync"

	"github.com/andrea/gig-matcher/internal/types"
)

// RewindCache stores the single most recently committed swipe of a
// session. Recording overwrites the previous entry; rewind is strictly
// "undo the last swipe", never a history stack, and is not recoverable
// across sessions.
type RewindCache struct {
	mu    sync.Mutex
	entry *types.RewindEntry
}

// NewRewindCache returns an empty cache.
func NewRewindCache() *RewindCache {
	return &RewindCache{}
}

// Record stores the latest committed swipe, superseding any prior entry.
func (c *RewindCache) Record(job types.JobPosting, interactionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &types.RewindEntry{Job: job, InteractionID: interactionID}
}

// Peek returns the current entry without clearing it, so a failed
// server-side rewind can leave it in place.
func (c *RewindCache) Peek() (types.RewindEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil {
		return types.RewindEntry{}, false
	}
	return *c.entry, true
}

// HasEntry reports whether a rewind is currently possible.
func (c *RewindCache) HasEntry() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entry != nil
}

// Clear empties the cache.
func (c *RewindCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}
