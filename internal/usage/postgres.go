package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres-backed usage store
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// creates the user_usage table if it doesn't exist
func (s *PostgresStore) Initialize(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaUserUsage)
	return err
}

func (s *PostgresStore) Today(ctx context.Context, userID string) (Record, error) {
	record := Record{
		UserID: userID,
		Date:   TodayKey(time.Now()),
	}

	err := s.db.QueryRow(ctx, queryToday, userID, record.Date).Scan(
		&record.UserID,
		&record.Date,
		&record.ImagesGenerated,
		&record.PromptsEnhanced,
		&record.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		// record is created lazily on first increment of the day
		return record, nil
	}

	if err != nil {
		return Record{}, fmt.Errorf("failed to read usage: %w", err)
	}

	return record, nil
}

func (s *PostgresStore) LifetimeImages(ctx context.Context, userID string) (int, error) {
	var total int

	if err := s.db.QueryRow(ctx, queryLifetimeImages, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to read lifetime usage: %w", err)
	}

	return total, nil
}

func (s *PostgresStore) Increment(ctx context.Context, userID string, action Action) error {
	query := queryIncrementImages
	if action == ActionEnhancement {
		query = queryIncrementEnhancements
	}

	if _, err := s.db.Exec(ctx, query, userID, TodayKey(time.Now())); err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}

	return nil
}

func (s *PostgresStore) LastSuccess(ctx context.Context, userID string) (*time.Time, error) {
	var last time.Time

	err := s.db.QueryRow(ctx, queryLastSuccess, userID).Scan(&last)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read last generation time: %w", err)
	}

	return &last, nil
}
