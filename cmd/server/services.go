package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scopophobic/vinciUI/internal/config"
	"github.com/scopophobic/vinciUI/internal/gemini"
	"github.com/scopophobic/vinciUI/internal/genlog"
	"github.com/scopophobic/vinciUI/internal/moderation"
	"github.com/scopophobic/vinciUI/internal/ratelimit"
	"github.com/scopophobic/vinciUI/internal/usage"
)

// creates the policy engine components around the shared database pool and
// a single Gemini client, ensuring the tables they query exist
func InitializeServices(ctx context.Context, cfg *config.Config, db *pgxpool.Pool) (*Services, error) {
	geminiClient := gemini.NewClient(cfg.GeminiKey)

	usageStore := usage.NewPostgresStore(db)
	if err := usageStore.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize usage store: %w", err)
	}

	log := genlog.NewPostgresLog(db)
	if err := log.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize generation log: %w", err)
	}

	attempts := genlog.NewBestEffort(log)

	return &Services{
		Gemini:     geminiClient,
		Limiter:    ratelimit.New(usageStore),
		Moderation: moderation.NewEngine(attempts),
		AIMod:      moderation.NewAIModerator(geminiClient),
		Usage:      usageStore,
		Attempts:   attempts,
	}, nil
}
