package genlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres-backed generation and moderation log
type PostgresLog struct {
	db *pgxpool.Pool
}

func NewPostgresLog(db *pgxpool.Pool) *PostgresLog {
	return &PostgresLog{db: db}
}

// creates the generations and moderation_logs tables if they don't exist
func (l *PostgresLog) Initialize(ctx context.Context) error {
	_, err := l.db.Exec(ctx, schemaGenerations)
	return err
}

func (l *PostgresLog) StartAttempt(ctx context.Context, userID, prompt, model string) (string, error) {
	attemptID := uuid.NewString()

	detail, err := json.Marshal(Detail{})
	if err != nil {
		return "", fmt.Errorf("failed to encode detail: %w", err)
	}

	_, err = l.db.Exec(ctx, queryInsertAttempt, attemptID, userID, prompt, model, StatusPending, detail)
	if err != nil {
		return "", fmt.Errorf("failed to log attempt: %w", err)
	}

	return attemptID, nil
}

func (l *PostgresLog) FinishAttempt(ctx context.Context, attemptID string, status Status, detail Detail) error {
	if detail == nil {
		detail = Detail{}
	}

	encoded, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to encode detail: %w", err)
	}

	tag, err := l.db.Exec(ctx, queryFinishAttempt, status, encoded, attemptID)
	if err != nil {
		return fmt.Errorf("failed to finish attempt: %w", err)
	}

	// the WHERE status='pending' guard makes a double finish a no-op
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attempt %s not pending", attemptID)
	}

	return nil
}

func (l *PostgresLog) LogBlockedAttempt(ctx context.Context, userID, prompt, model string, detail Detail) error {
	if detail == nil {
		detail = Detail{}
	}

	encoded, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to encode detail: %w", err)
	}

	_, err = l.db.Exec(ctx, queryInsertAttempt, uuid.NewString(), userID, prompt, model, StatusBlocked, encoded)
	if err != nil {
		return fmt.Errorf("failed to log blocked attempt: %w", err)
	}

	return nil
}

func (l *PostgresLog) LogModeration(ctx context.Context, entry ModerationEntry) error {
	flags, err := json.Marshal(entry.Flags)
	if err != nil {
		return fmt.Errorf("failed to encode flags: %w", err)
	}

	_, err = l.db.Exec(ctx, queryInsertModeration,
		entry.UserID,
		entry.Content,
		entry.ContentType,
		flags,
		entry.Action,
	)

	if err != nil {
		return fmt.Errorf("failed to log moderation: %w", err)
	}

	return nil
}
