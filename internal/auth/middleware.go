package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scopophobic/vinciUI/internal/logger"
	"github.com/scopophobic/vinciUI/internal/tiers"
)

const principalKey = "principal"

// looks up the current tier for a user id
type TierResolver interface {
	TierFor(ctx context.Context, userID string) (tiers.Tier, error)
}

// validates bearer tokens and attaches the authenticated principal to the
// request context. Supabase access tokens and tokens issued by this server
// are both accepted. The tier is re-read from the database on every request
// so an upgrade takes effect immediately; if the lookup fails the request
// proceeds on the free tier rather than erroring.
func Middleware(resolver TierResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		userID, email, err := identify(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		tier := tiers.TierFree

		resolved, err := resolver.TierFor(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("tier lookup failed, defaulting to free",
				"user_id", userID,
				"error", err.Error(),
			)
		} else {
			tier = resolved
		}

		SetPrincipal(c, Principal{ID: userID, Email: email, Tier: tier})

		c.Next()
	}
}

func identify(token string) (userID, email string, err error) {
	if claims, serr := ValidateSupabaseJWT(token); serr == nil {
		return claims.Subject, claims.Email, nil
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		return "", "", err
	}

	return claims.UserID, claims.Email, nil
}

// attaches a principal to the request context; handler tests use this to
// stand in for Middleware
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// extracts the principal from context after Middleware
func GetPrincipal(c *gin.Context) (Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}

	principal, ok := value.(Principal)
	return principal, ok
}
