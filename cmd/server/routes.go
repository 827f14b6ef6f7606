package main

import (
	"github.com/gin-gonic/gin"

	restauth "github.com/scopophobic/vinciUI/api/rest/auth"
	"github.com/scopophobic/vinciUI/api/rest/generate"
	"github.com/scopophobic/vinciUI/api/rest/health"
	"github.com/scopophobic/vinciUI/internal/auth"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) error {
	router.Use(CORSMiddleware(server.config))

	if server.redis != nil {
		throttle, err := ThrottleMiddleware(server.redis)
		if err != nil {
			return err
		}

		router.Use(throttle)
	}

	api := router.Group("/api")
	{
		health.RegisterRoutes(api, server.db)

		authMW := auth.Middleware(server.userRepo)

		restauth.RegisterRoutes(api, authMW, server.userRepo, server.services.Usage)

		generate.RegisterRoutes(
			api,
			authMW,
			server.services.Gemini,
			server.services.Gemini,
			server.services.Limiter,
			server.services.Moderation,
			server.services.AIMod,
			server.services.Usage,
			server.services.Attempts,
		)
	}

	return nil
}
