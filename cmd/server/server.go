package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	libredis "github.com/redis/go-redis/v9"

	"github.com/scopophobic/vinciUI/internal/config"
	"github.com/scopophobic/vinciUI/internal/logger"
	"github.com/scopophobic/vinciUI/internal/users"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// configure connection pool for supabase free tier pooler compatibility
	// free tier has ~10-15 pooler connections, so keep our pool small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// use simple protocol for supabase pooler (PgBouncer) compatibility:
	// transaction mode doesn't support prepared statements, which causes
	// connections to hang on subsequent queries
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var redisClient *libredis.Client

	if cfg.RedisURL != "" {
		opts, err := libredis.ParseURL(cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}

		redisClient = libredis.NewClient(opts)

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.ErrorErr(err, "redis unreachable, disabling request throttle")
			redisClient.Close() //nolint:errcheck,gosec // best-effort cleanup
			redisClient = nil
		}
	}

	userRepo := users.NewRepository(db)
	if err := userRepo.Initialize(ctx); err != nil {
		closeRedis(redisClient)
		db.Close()
		return nil, fmt.Errorf("failed to initialize users table: %w", err)
	}

	services, err := InitializeServices(ctx, cfg, db)
	if err != nil {
		closeRedis(redisClient)
		db.Close()
		return nil, err
	}

	server := &Server{
		db:       db,
		config:   cfg,
		userRepo: userRepo,
		services: services,
		router:   gin.Default(),
		redis:    redisClient,
	}

	if err := RegisterRoutes(server.router, server); err != nil {
		closeRedis(redisClient)
		db.Close()
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return server, nil
}

func closeRedis(client *libredis.Client) {
	if client != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup
	}
}
