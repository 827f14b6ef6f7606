package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/scopophobic/vinciUI/internal/tiers"
)

// represents claims on tokens issued by this server
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// represents the claims we read from a Supabase access token; the user id
// is the registered subject claim
type SupabaseClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// the authenticated identity attached to each request, with the tier
// resolved fresh from the database
type Principal struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Tier  tiers.Tier `json:"tier"`
}
