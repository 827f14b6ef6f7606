package usage

import (
	"context"
	"time"
)

// countable action types
type Action string

const (
	ActionImage       Action = "image"
	ActionEnhancement Action = "enhancement"
)

// per-user, per-day usage counters; one record per (user, UTC day)
type Record struct {
	UserID          string    `json:"user_id"`
	Date            string    `json:"date"` // YYYY-MM-DD, UTC
	ImagesGenerated int       `json:"images_generated"`
	PromptsEnhanced int       `json:"prompts_enhanced"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// durable usage counters consulted by the rate limiter and handlers.
// Increment must be atomic at the storage layer: overlapping requests from
// the same user may not lose updates.
type Store interface {
	// returns today's record for the user, zero-valued if none exists yet
	Today(ctx context.Context, userID string) (Record, error)

	// returns the user's all-time image total across all days
	LifetimeImages(ctx context.Context, userID string) (int, error)

	// adds one to the counter for the action, creating today's record if needed
	Increment(ctx context.Context, userID string, action Action) error

	// returns the time of the user's most recent successful generation,
	// or nil if they have none
	LastSuccess(ctx context.Context, userID string) (*time.Time, error)
}

// returns the current UTC calendar day as stored in usage records
func TodayKey(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

// returns the next UTC midnight, when daily counters reset
func NextReset(now time.Time) time.Time {
	day := now.UTC().Truncate(24 * time.Hour)
	return day.Add(24 * time.Hour)
}
