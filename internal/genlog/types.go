package genlog

import (
	"context"
	"time"
)

// terminal and in-flight states of a generation attempt
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusBlocked Status = "blocked"
)

// structured metadata attached to a generation attempt outcome
type Detail map[string]any

// one row per generation attempt, including attempts blocked before the
// external call and attempts that failed after it
type Attempt struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Prompt    string    `json:"prompt"`
	ModelUsed string    `json:"model_used"`
	Status    Status    `json:"status"`
	Detail    Detail    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// a single moderation decision, persisted for audit
type ModerationEntry struct {
	UserID      string    `json:"user_id"`
	Content     string    `json:"content"`
	ContentType string    `json:"content_type"`
	Flags       []string  `json:"flags"`
	Action      string    `json:"action"`
	CreatedAt   time.Time `json:"created_at"`
}

// append-only audit trail of generation attempts and moderation decisions
type Log interface {
	// records a pending attempt before the external call is made, so
	// in-flight attempts are observable; returns the attempt id
	StartAttempt(ctx context.Context, userID, prompt, model string) (string, error)

	// moves a pending attempt to its terminal status; each attempt is
	// finished exactly once
	FinishAttempt(ctx context.Context, attemptID string, status Status, detail Detail) error

	// records an attempt that never reached the external API
	LogBlockedAttempt(ctx context.Context, userID, prompt, model string, detail Detail) error

	// records a moderation decision
	LogModeration(ctx context.Context, entry ModerationEntry) error
}
