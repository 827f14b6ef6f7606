package tiers

import "time"

// subscription tier names, the only values the policy table recognizes
type Tier string

const (
	TierFree      Tier = "free"
	TierPremium   Tier = "premium"
	TierTester    Tier = "tester"
	TierDeveloper Tier = "developer"
)

// quota and moderation policy for a single tier
type Limits struct {
	Tier             Tier
	ImagesPerDay     int
	EnhancementsDay  int
	Cooldown         time.Duration
	MaxPromptLength  int
	BypassModeration bool

	// the free tier counts images against an all-time total instead of a
	// daily window; the cap value is still ImagesPerDay
	LifetimeImageCap bool
}

// one row per tier; product policy, not tunable at runtime
var limitsByTier = map[Tier]Limits{
	TierFree: {
		Tier:             TierFree,
		ImagesPerDay:     2,
		EnhancementsDay:  5,
		Cooldown:         30 * time.Minute,
		MaxPromptLength:  300,
		LifetimeImageCap: true,
	},
	TierPremium: {
		Tier:            TierPremium,
		ImagesPerDay:    100,
		EnhancementsDay: 200,
		MaxPromptLength: 1000,
	},
	TierTester: {
		Tier:            TierTester,
		ImagesPerDay:    50,
		EnhancementsDay: 100,
		MaxPromptLength: 500,
	},
	TierDeveloper: {
		Tier:             TierDeveloper,
		ImagesPerDay:     1000,
		EnhancementsDay:  1000,
		MaxPromptLength:  2000,
		BypassModeration: true,
	},
}

// returns the limits for a tier, falling back to the free tier for unknown
// or empty values so a bad tier string can never widen a user's quota
func LimitsFor(tier Tier) Limits {
	if limits, ok := limitsByTier[tier]; ok {
		return limits
	}

	return limitsByTier[TierFree]
}

// reports whether the string names a known tier
func Valid(tier Tier) bool {
	_, ok := limitsByTier[tier]
	return ok
}
