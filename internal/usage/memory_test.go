package usage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrement_ConcurrentCallersLoseNoUpdates(t *testing.T) {
	const callers = 50

	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, store.Increment(ctx, "user-1", ActionImage))
		}()
	}
	wg.Wait()

	record, err := store.Today(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, callers, record.ImagesGenerated)
}

func TestIncrement_SeparateCounters(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Increment(ctx, "user-1", ActionImage))
	require.NoError(t, store.Increment(ctx, "user-1", ActionEnhancement))
	require.NoError(t, store.Increment(ctx, "user-1", ActionEnhancement))

	record, err := store.Today(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, record.ImagesGenerated)
	assert.Equal(t, 2, record.PromptsEnhanced)
}

func TestLifetimeImages_SumsAcrossDays(t *testing.T) {
	store := NewMemoryStore()

	store.Seed("user-1", "2025-02-27", 1, 0)
	store.Seed("user-1", "2025-02-28", 1, 3)
	store.Seed("user-2", "2025-02-28", 5, 0)

	total, err := store.LifetimeImages(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, total, "other users' images must not count")
}

func TestToday_ZeroValuedWithoutRecord(t *testing.T) {
	store := NewMemoryStore()

	record, err := store.Today(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, record.ImagesGenerated)
	assert.Equal(t, 0, record.PromptsEnhanced)
	assert.Equal(t, "user-1", record.UserID)
}

func TestTodayKey_UTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC
	loc := time.FixedZone("EST", -5*3600)
	now := time.Date(2025, 3, 1, 23, 30, 0, 0, loc)

	assert.Equal(t, "2025-03-02", TodayKey(now))
}

func TestNextReset_Midnight(t *testing.T) {
	now := time.Date(2025, 3, 1, 18, 45, 12, 0, time.UTC)

	reset := NextReset(now)

	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), reset)
	assert.True(t, reset.After(now))
}
