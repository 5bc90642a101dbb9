package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrea/gig-matcher/internal/types"
)

func scored(id string, score float64, postedAt time.Time) types.ScoredJob {
	return types.ScoredJob{
		Job:   types.JobPosting{ID: id, PostedAt: postedAt, Status: types.JobStatusActive},
		Match: types.MatchResult{JobID: id, Score: score},
	}
}

var bufClock = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestBuffer_InsertKeepsDescendingScoreOrder(t *testing.T) {
	b := NewBuffer()
	b.Insert(scored("a", 40, bufClock))
	b.Insert(scored("b", 90, bufClock))
	b.Insert(scored("c", 65, bufClock))

	items := b.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[0].Job.ID)
	assert.Equal(t, "c", items[1].Job.ID)
	assert.Equal(t, "a", items[2].Job.ID)
}

func TestBuffer_TieBreakByRecencyThenID(t *testing.T) {
	older := bufClock.Add(-time.Hour)

	b := NewBuffer()
	b.Insert(scored("x", 50, older))
	b.Insert(scored("y", 50, bufClock))
	b.Insert(scored("w", 50, older))

	items := b.Items()
	require.Len(t, items, 3)
	// Same score: newer posting first, then lexicographic ID.
	assert.Equal(t, "y", items[0].Job.ID)
	assert.Equal(t, "w", items[1].Job.ID)
	assert.Equal(t, "x", items[2].Job.ID)
}

func TestBuffer_InsertDeduplicatesByID(t *testing.T) {
	b := NewBuffer()
	assert.True(t, b.Insert(scored("a", 40, bufClock)))
	assert.False(t, b.Insert(scored("a", 90, bufClock)))
	assert.Equal(t, 1, b.Len())
}

func TestBuffer_PushFrontIsIdempotent(t *testing.T) {
	b := NewBuffer()
	b.Insert(scored("a", 90, bufClock))
	b.Insert(scored("b", 80, bufClock))

	// Reinsertion goes to the head regardless of rank.
	assert.True(t, b.PushFront(scored("c", 10, bufClock)))
	assert.Equal(t, "c", b.Items()[0].Job.ID)

	// A second reinsertion of the same job must not duplicate it.
	assert.False(t, b.PushFront(scored("c", 10, bufClock)))
	assert.Equal(t, 3, b.Len())
}

func TestBuffer_Remove(t *testing.T) {
	b := NewBuffer()
	b.Insert(scored("a", 90, bufClock))
	b.Insert(scored("b", 80, bufClock))

	sj, ok := b.Remove("a")
	require.True(t, ok)
	assert.Equal(t, "a", sj.Job.ID)
	assert.False(t, b.Contains("a"))
	assert.Equal(t, 1, b.Len())

	_, ok = b.Remove("a")
	assert.False(t, ok)
}
