package genlog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// in-memory log for tests
type MemoryLog struct {
	mu          sync.Mutex
	attempts    []*Attempt
	moderations []ModerationEntry
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) StartAttempt(ctx context.Context, userID, prompt, model string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	attempt := &Attempt{
		ID:        uuid.NewString(),
		UserID:    userID,
		Prompt:    prompt,
		ModelUsed: model,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}

	l.attempts = append(l.attempts, attempt)

	return attempt.ID, nil
}

func (l *MemoryLog) FinishAttempt(ctx context.Context, attemptID string, status Status, detail Detail) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, attempt := range l.attempts {
		if attempt.ID == attemptID {
			if attempt.Status != StatusPending {
				return fmt.Errorf("attempt %s not pending", attemptID)
			}

			attempt.Status = status
			attempt.Detail = detail

			return nil
		}
	}

	return fmt.Errorf("attempt %s not found", attemptID)
}

func (l *MemoryLog) LogBlockedAttempt(ctx context.Context, userID, prompt, model string, detail Detail) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.attempts = append(l.attempts, &Attempt{
		ID:        uuid.NewString(),
		UserID:    userID,
		Prompt:    prompt,
		ModelUsed: model,
		Status:    StatusBlocked,
		Detail:    detail,
		CreatedAt: time.Now(),
	})

	return nil
}

func (l *MemoryLog) LogModeration(ctx context.Context, entry ModerationEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.CreatedAt = time.Now()
	l.moderations = append(l.moderations, entry)

	return nil
}

// returns a copy of all logged attempts
func (l *MemoryLog) Attempts() []Attempt {
	l.mu.Lock()
	defer l.mu.Unlock()

	attempts := make([]Attempt, 0, len(l.attempts))
	for _, attempt := range l.attempts {
		attempts = append(attempts, *attempt)
	}

	return attempts
}

// returns a copy of all logged moderation entries
func (l *MemoryLog) Moderations() []ModerationEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]ModerationEntry(nil), l.moderations...)
}
