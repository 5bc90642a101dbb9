package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSwipeAction_Valid(t *testing.T) {
	assert.True(t, ActionLike.Valid())
	assert.True(t, ActionSkip.Valid())
	assert.True(t, ActionSuperlike.Valid())
	assert.False(t, SwipeAction("dislike").Valid())
	assert.False(t, SwipeAction("").Valid())
}

func TestSwipeLimitStatus_Unlimited(t *testing.T) {
	limited := SwipeLimitStatus{RemainingSwipes: 10, DailyLimit: 10, CanSwipe: true}
	assert.False(t, limited.Unlimited())

	unlimited := SwipeLimitStatus{RemainingSwipes: UnlimitedThreshold, DailyLimit: 10, CanSwipe: true}
	assert.True(t, unlimited.Unlimited())
}

func TestJobPosting_BoostActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	boosted := JobPosting{Boosted: true, BoostExpiresAt: now.Add(time.Hour)}
	assert.True(t, boosted.BoostActive(now))

	expired := JobPosting{Boosted: true, BoostExpiresAt: now.Add(-time.Hour)}
	assert.False(t, expired.BoostActive(now))

	unboosted := JobPosting{Boosted: false}
	assert.False(t, unboosted.BoostActive(now))
}

func TestScoreBreakdown_Total(t *testing.T) {
	b := ScoreBreakdown{
		JobTitleMatch:     20,
		JobTypeMatch:      10,
		LocationMatch:     15,
		SalaryMatch:       10,
		SkillsMatch:       25,
		ExperienceMatch:   10,
		AvailabilityMatch: 5,
		RatingBonus:       3,
		RecencyBonus:      2,
	}
	assert.InDelta(t, 100.0, b.Total(), 0.0001)
	assert.Equal(t, 0.0, ScoreBreakdown{}.Total())
}
