package genlog

import (
	"context"

	"github.com/scopophobic/vinciUI/internal/logger"
)

// wraps a Log so failures are recorded server-side but never propagated;
// the audit trail must not gate any policy decision or response
type BestEffort struct {
	log Log
}

func NewBestEffort(log Log) *BestEffort {
	return &BestEffort{log: log}
}

// records a pending attempt; returns an empty id when logging failed
func (b *BestEffort) StartAttempt(ctx context.Context, userID, prompt, model string) string {
	attemptID, err := b.log.StartAttempt(ctx, userID, prompt, model)
	if err != nil {
		logger.ErrorErr(err, "failed to log generation attempt", "user_id", userID)
		return ""
	}

	return attemptID
}

// resolves a pending attempt; a missing id (failed start) is a no-op
func (b *BestEffort) FinishAttempt(ctx context.Context, attemptID string, status Status, detail Detail) {
	if attemptID == "" {
		return
	}

	if err := b.log.FinishAttempt(ctx, attemptID, status, detail); err != nil {
		logger.ErrorErr(err, "failed to finish generation attempt",
			"attempt_id", attemptID,
			"status", status,
		)
	}
}

func (b *BestEffort) LogBlockedAttempt(ctx context.Context, userID, prompt, model string, detail Detail) {
	if err := b.log.LogBlockedAttempt(ctx, userID, prompt, model, detail); err != nil {
		logger.ErrorErr(err, "failed to log blocked attempt", "user_id", userID)
	}
}

func (b *BestEffort) LogModeration(ctx context.Context, entry ModerationEntry) {
	if err := b.log.LogModeration(ctx, entry); err != nil {
		logger.ErrorErr(err, "failed to log moderation decision", "user_id", entry.UserID)
	}
}
