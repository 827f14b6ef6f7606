package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	supabaseSecret := os.Getenv("SUPABASE_JWT_SECRET")
	jwtSecret := os.Getenv("JWT_SECRET")
	redisURL := os.Getenv("REDIS_URL")
	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
	environment := os.Getenv("ENVIRONMENT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if geminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	if supabaseSecret == "" {
		return nil, fmt.Errorf("SUPABASE_JWT_SECRET environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if frontendOrigin == "" {
		frontendOrigin = "http://localhost:5173"
	}

	if environment == "" {
		environment = "development"
	}

	// REDIS_URL is optional: without it the perimeter throttle is disabled
	return &Config{
		DatabaseURL:       databaseURL,
		GeminiKey:         geminiKey,
		SupabaseJWTSecret: supabaseSecret,
		JWTSecret:         jwtSecret,
		RedisURL:          redisURL,
		FrontendOrigin:    frontendOrigin,
		Environment:       environment,
	}, nil
}
