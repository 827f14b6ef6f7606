package auth

import (
	"time"

	"github.com/scopophobic/vinciUI/internal/users"
)

// AuthResponse returned after successful OAuth callback
type AuthResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// MeResponse wraps the current user's profile and usage snapshot
type MeResponse struct {
	User MeUser `json:"user"`
}

// MeUser is the profile shape returned by /me
type MeUser struct {
	ID      string        `json:"id"`
	Email   string        `json:"email"`
	Name    string        `json:"name"`
	Picture string        `json:"picture"`
	Tier    string        `json:"tier"`
	Usage   UsageSnapshot `json:"usage"`
}

// UsageSnapshot reports today's counters against the tier's image cap
type UsageSnapshot struct {
	ImagesGenerated int       `json:"imagesGenerated"`
	PromptsEnhanced int       `json:"promptsEnhanced"`
	DailyLimit      int       `json:"dailyLimit"`
	ResetTime       time.Time `json:"resetTime"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
