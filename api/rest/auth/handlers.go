package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"

	"github.com/scopophobic/vinciUI/internal/auth"
	"github.com/scopophobic/vinciUI/internal/errors"
	"github.com/scopophobic/vinciUI/internal/logger"
	"github.com/scopophobic/vinciUI/internal/tiers"
	"github.com/scopophobic/vinciUI/internal/usage"
	"github.com/scopophobic/vinciUI/internal/users"
)

// starts the OAuth flow with the provider named in the path
func BeginAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if provider != "google" {
			errors.BadRequest(c, "invalid provider", nil)
			return
		}

		// set provider in query for gothic
		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// completes the OAuth flow, upserts the user and returns a token
func CallbackHandler(userRepo *users.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			errors.InternalError(c, "authentication failed", err)
			return
		}

		user, err := userRepo.FindOrCreateByProvider(
			c.Request.Context(),
			gothUser.Provider,
			gothUser.UserID,
			gothUser.Email,
			gothUser.Name,
			gothUser.AvatarURL,
		)

		if err != nil {
			errors.InternalError(c, "failed to create user", err)
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Email)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{
			User:  user,
			Token: token,
		})
	}
}

// returns the authenticated user's profile with today's usage counters
func MeHandler(userRepo *users.Repository, store usage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.GetPrincipal(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		ctx := c.Request.Context()

		// upsert so a first-time Supabase login gets a row
		user, err := userRepo.Ensure(ctx, principal.ID, principal.Email)
		if err != nil {
			errors.InternalError(c, "failed to load user", err)
			return
		}

		record, err := store.Today(ctx, principal.ID)
		if err != nil {
			errors.InternalError(c, "failed to load usage", err)
			return
		}

		limits := tiers.LimitsFor(principal.Tier)

		c.JSON(http.StatusOK, MeResponse{
			User: MeUser{
				ID:      user.ID,
				Email:   user.Email,
				Name:    user.Name,
				Picture: user.AvatarURL,
				Tier:    string(principal.Tier),
				Usage: UsageSnapshot{
					ImagesGenerated: record.ImagesGenerated,
					PromptsEnhanced: record.PromptsEnhanced,
					DailyLimit:      limits.ImagesPerDay,
					ResetTime:       usage.NextReset(time.Now()),
				},
			},
		})
	}
}

// clears the OAuth session cookie
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gothic.Logout(c.Writer, c.Request); err != nil {
			logger.ErrorErr(err, "failed to logout user from gothic session")
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
	}
}
