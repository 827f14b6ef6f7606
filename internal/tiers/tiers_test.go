package tiers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimitsFor_KnownTiers(t *testing.T) {
	tests := []struct {
		tier             Tier
		imagesPerDay     int
		enhancementsDay  int
		cooldown         time.Duration
		maxPromptLength  int
		bypassModeration bool
		lifetimeCap      bool
	}{
		{TierFree, 2, 5, 30 * time.Minute, 300, false, true},
		{TierPremium, 100, 200, 0, 1000, false, false},
		{TierTester, 50, 100, 0, 500, false, false},
		{TierDeveloper, 1000, 1000, 0, 2000, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			limits := LimitsFor(tt.tier)

			assert.Equal(t, tt.tier, limits.Tier)
			assert.Equal(t, tt.imagesPerDay, limits.ImagesPerDay)
			assert.Equal(t, tt.enhancementsDay, limits.EnhancementsDay)
			assert.Equal(t, tt.cooldown, limits.Cooldown)
			assert.Equal(t, tt.maxPromptLength, limits.MaxPromptLength)
			assert.Equal(t, tt.bypassModeration, limits.BypassModeration)
			assert.Equal(t, tt.lifetimeCap, limits.LifetimeImageCap)
		})
	}
}

func TestLimitsFor_UnknownTierFallsBackToFree(t *testing.T) {
	for _, tier := range []Tier{"", "gold", "PREMIUM"} {
		limits := LimitsFor(tier)

		assert.Equal(t, TierFree, limits.Tier, "tier %q should map to free", tier)
		assert.Equal(t, 2, limits.ImagesPerDay)
		assert.True(t, limits.LifetimeImageCap)
		assert.False(t, limits.BypassModeration, "unknown tier must never bypass moderation")
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(TierFree))
	assert.True(t, Valid(TierDeveloper))
	assert.False(t, Valid("gold"))
	assert.False(t, Valid(""))
}
