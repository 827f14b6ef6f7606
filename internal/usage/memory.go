package usage

import (
	"context"
	"sync"
	"time"
)

// in-memory usage store for tests and local development.
// Increment is atomic under the mutex, matching the storage-layer guarantee
// of the Postgres implementation.
type MemoryStore struct {
	mu          sync.Mutex
	records     map[string]*Record // keyed by userID + "/" + date
	lastSuccess map[string]time.Time

	// overrides the clock when set, so tests can cross day boundaries
	Now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:     make(map[string]*Record),
		lastSuccess: make(map[string]time.Time),
	}
}

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}

	return time.Now()
}

func (s *MemoryStore) Today(ctx context.Context, userID string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := TodayKey(s.now())

	if record, ok := s.records[userID+"/"+date]; ok {
		return *record, nil
	}

	return Record{UserID: userID, Date: date}, nil
}

func (s *MemoryStore) LifetimeImages(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0

	for _, record := range s.records {
		if record.UserID == userID {
			total += record.ImagesGenerated
		}
	}

	return total, nil
}

func (s *MemoryStore) Increment(ctx context.Context, userID string, action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	date := TodayKey(now)
	key := userID + "/" + date

	record, ok := s.records[key]
	if !ok {
		record = &Record{UserID: userID, Date: date}
		s.records[key] = record
	}

	switch action {
	case ActionEnhancement:
		record.PromptsEnhanced++
	default:
		record.ImagesGenerated++
	}

	record.UpdatedAt = now

	return nil
}

func (s *MemoryStore) LastSuccess(ctx context.Context, userID string) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.lastSuccess[userID]; ok {
		t := last
		return &t, nil
	}

	return nil, nil
}

// records a successful generation time; tests use this to exercise cooldowns
func (s *MemoryStore) SetLastSuccess(userID string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSuccess[userID] = t
}

// pre-seeds a usage record on a specific day; tests use this to cross days
func (s *MemoryStore) Seed(userID, date string, images, enhancements int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[userID+"/"+date] = &Record{
		UserID:          userID,
		Date:            date,
		ImagesGenerated: images,
		PromptsEnhanced: enhancements,
	}
}
