package genlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLog_AttemptLifecycle(t *testing.T) {
	log := NewMemoryLog()
	ctx := context.Background()

	id, err := log.StartAttempt(ctx, "user-1", "a cat", "gemini-2.5-flash-image-preview")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	attempts := log.Attempts()
	require.Len(t, attempts, 1)
	assert.Equal(t, StatusPending, attempts[0].Status)

	err = log.FinishAttempt(ctx, id, StatusSuccess, nil)
	require.NoError(t, err)

	attempts = log.Attempts()
	assert.Equal(t, StatusSuccess, attempts[0].Status)
}

func TestMemoryLog_FinishTwiceRejected(t *testing.T) {
	log := NewMemoryLog()
	ctx := context.Background()

	id, err := log.StartAttempt(ctx, "user-1", "a cat", "model")
	require.NoError(t, err)

	require.NoError(t, log.FinishAttempt(ctx, id, StatusFailed, Detail{"error": "timeout"}))

	err = log.FinishAttempt(ctx, id, StatusSuccess, nil)
	assert.Error(t, err, "an attempt is finished exactly once")
}

func TestMemoryLog_FinishUnknownAttempt(t *testing.T) {
	log := NewMemoryLog()

	err := log.FinishAttempt(context.Background(), "no-such-id", StatusFailed, nil)
	assert.Error(t, err)
}

func TestMemoryLog_BlockedAttempt(t *testing.T) {
	log := NewMemoryLog()

	err := log.LogBlockedAttempt(context.Background(), "user-1", "bad prompt", "model", Detail{"flags": []string{"banned_keyword:x"}})
	require.NoError(t, err)

	attempts := log.Attempts()
	require.Len(t, attempts, 1)
	assert.Equal(t, StatusBlocked, attempts[0].Status)
	assert.Equal(t, "user-1", attempts[0].UserID)
}

// log that fails every operation
type downLog struct{}

func (downLog) StartAttempt(ctx context.Context, userID, prompt, model string) (string, error) {
	return "", errors.New("unavailable")
}

func (downLog) FinishAttempt(ctx context.Context, attemptID string, status Status, detail Detail) error {
	return errors.New("unavailable")
}

func (downLog) LogBlockedAttempt(ctx context.Context, userID, prompt, model string, detail Detail) error {
	return errors.New("unavailable")
}

func (downLog) LogModeration(ctx context.Context, entry ModerationEntry) error {
	return errors.New("unavailable")
}

func TestBestEffort_SwallowsFailures(t *testing.T) {
	be := NewBestEffort(downLog{})
	ctx := context.Background()

	id := be.StartAttempt(ctx, "user-1", "a cat", "model")
	assert.Empty(t, id, "failed start yields an empty id")

	// none of these may panic or propagate anything
	be.FinishAttempt(ctx, id, StatusSuccess, nil)
	be.FinishAttempt(ctx, "real-id", StatusFailed, Detail{"error": "x"})
	be.LogBlockedAttempt(ctx, "user-1", "p", "m", nil)
	be.LogModeration(ctx, ModerationEntry{UserID: "user-1"})
}

func TestBestEffort_EmptyIDFinishIsNoOp(t *testing.T) {
	log := NewMemoryLog()
	be := NewBestEffort(log)

	be.FinishAttempt(context.Background(), "", StatusFailed, nil)

	assert.Empty(t, log.Attempts())
}
