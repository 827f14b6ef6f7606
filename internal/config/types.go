package config

// holds application configuration loaded from environment variables
type Config struct {
	DatabaseURL       string
	GeminiKey         string
	SupabaseJWTSecret string
	JWTSecret         string
	RedisURL          string
	FrontendOrigin    string
	Environment       string
}
