package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopophobic/vinciUI/internal/tiers"
	"github.com/scopophobic/vinciUI/internal/usage"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCheck_FreeTierAllowsFirstImage(t *testing.T) {
	store := usage.NewMemoryStore()
	limiter := New(store)

	result, err := limiter.Check(context.Background(), "user-1", tiers.TierFree, usage.ActionImage)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.RemainingQuota, "cap 2 minus 0 used minus the slot being consumed")
}

func TestCheck_FreeTierLifetimeCapCrossesDays(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	store := usage.NewMemoryStore()
	store.Seed("user-1", usage.TodayKey(day1), 2, 0)
	store.Now = fixedClock(day2)

	limiter := New(store)
	limiter.Now = fixedClock(day2)

	result, err := limiter.Check(context.Background(), "user-1", tiers.TierFree, usage.ActionImage)

	require.NoError(t, err)
	assert.False(t, result.Allowed, "two lifetime images must block on any later day")
	assert.Contains(t, result.Message, "2 total")
	assert.Equal(t, 0, result.RemainingQuota)
	assert.Nil(t, result.ResetTime, "a lifetime cap never resets")
}

func TestCheck_PremiumDailyCapResets(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	store := usage.NewMemoryStore()
	store.Seed("user-1", usage.TodayKey(day1), 100, 0)

	limiter := New(store)

	// at cap within the day
	store.Now = fixedClock(day1)
	limiter.Now = fixedClock(day1)

	result, err := limiter.Check(context.Background(), "user-1", tiers.TierPremium, usage.ActionImage)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Message, "Daily image generation limit reached (100)")
	require.NotNil(t, result.ResetTime)
	assert.Equal(t, usage.NextReset(day1), *result.ResetTime)

	// fresh counter the next day
	store.Now = fixedClock(day2)
	limiter.Now = fixedClock(day2)

	result, err = limiter.Check(context.Background(), "user-1", tiers.TierPremium, usage.ActionImage)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 99, result.RemainingQuota)
}

func TestCheck_FreeTierCooldown(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	store := usage.NewMemoryStore()
	store.Now = fixedClock(now)
	store.SetLastSuccess("user-1", now.Add(-10*time.Minute))

	limiter := New(store)
	limiter.Now = fixedClock(now)

	result, err := limiter.Check(context.Background(), "user-1", tiers.TierFree, usage.ActionImage)

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Message, "wait 20 minutes")
	assert.Equal(t, 2, result.RemainingQuota, "a cooldown denial does not consume quota")
	require.NotNil(t, result.ResetTime)
	assert.Equal(t, now.Add(20*time.Minute), *result.ResetTime)
}

func TestCheck_CooldownExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	store := usage.NewMemoryStore()
	store.Now = fixedClock(now)
	store.SetLastSuccess("user-1", now.Add(-31*time.Minute))

	limiter := New(store)
	limiter.Now = fixedClock(now)

	result, err := limiter.Check(context.Background(), "user-1", tiers.TierFree, usage.ActionImage)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestCheck_PremiumHasNoCooldown(t *testing.T) {
	now := time.Now()

	store := usage.NewMemoryStore()
	store.SetLastSuccess("user-1", now.Add(-1*time.Second))

	limiter := New(store)

	result, err := limiter.Check(context.Background(), "user-1", tiers.TierPremium, usage.ActionImage)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestCheck_EnhancementDailyCap(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	store := usage.NewMemoryStore()
	store.Now = fixedClock(now)
	store.Seed("user-1", usage.TodayKey(now), 0, 5)

	limiter := New(store)
	limiter.Now = fixedClock(now)

	result, err := limiter.Check(context.Background(), "user-1", tiers.TierFree, usage.ActionEnhancement)

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Message, "Daily prompt enhancement limit reached (5)")
	assert.Equal(t, 0, result.RemainingQuota)
}

func TestCheck_EnhancementRemainingQuota(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	store := usage.NewMemoryStore()
	store.Now = fixedClock(now)
	store.Seed("user-1", usage.TodayKey(now), 0, 2)

	limiter := New(store)
	limiter.Now = fixedClock(now)

	result, err := limiter.Check(context.Background(), "user-1", tiers.TierFree, usage.ActionEnhancement)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 2, result.RemainingQuota, "cap 5 minus 2 used minus the slot being consumed")
}

func TestCheck_UnknownActionDenied(t *testing.T) {
	limiter := New(usage.NewMemoryStore())

	result, err := limiter.Check(context.Background(), "user-1", tiers.TierFree, usage.Action("video"))

	require.NoError(t, err, "an unknown action is a denial, not an exception")
	assert.False(t, result.Allowed)
	assert.Equal(t, "Invalid action type", result.Message)
}

func TestCheck_UnknownTierGetsFreeLimits(t *testing.T) {
	store := usage.NewMemoryStore()
	limiter := New(store)

	result, err := limiter.Check(context.Background(), "user-1", tiers.Tier("gold"), usage.ActionImage)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.RemainingQuota, "unknown tiers fall back to the free cap of 2")
}

type erroringStore struct {
	usage.Store
}

func (erroringStore) Today(ctx context.Context, userID string) (usage.Record, error) {
	return usage.Record{}, errors.New("database down")
}

func TestCheck_StoreFailureFailsClosed(t *testing.T) {
	limiter := New(erroringStore{})

	result, err := limiter.Check(context.Background(), "user-1", tiers.TierPremium, usage.ActionImage)

	assert.Error(t, err)
	assert.False(t, result.Allowed)
}
