package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	libredis "github.com/redis/go-redis/v9"

	"github.com/scopophobic/vinciUI/internal/config"
	"github.com/scopophobic/vinciUI/internal/gemini"
	"github.com/scopophobic/vinciUI/internal/genlog"
	"github.com/scopophobic/vinciUI/internal/moderation"
	"github.com/scopophobic/vinciUI/internal/ratelimit"
	"github.com/scopophobic/vinciUI/internal/usage"
	"github.com/scopophobic/vinciUI/internal/users"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	userRepo *users.Repository
	services *Services
	router   *gin.Engine

	// nil when REDIS_URL is not configured; the IP throttle is disabled then
	redis *libredis.Client
}

// holds the policy engine components and the external API client
type Services struct {
	Gemini     *gemini.Client
	Limiter    *ratelimit.Limiter
	Moderation *moderation.Engine
	AIMod      *moderation.AIModerator
	Usage      usage.Store
	Attempts   *genlog.BestEffort
}
