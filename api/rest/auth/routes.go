package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/scopophobic/vinciUI/internal/usage"
	"github.com/scopophobic/vinciUI/internal/users"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, userRepo *users.Repository, store usage.Store) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/:provider", BeginAuthHandler())
		authGroup.GET("/:provider/callback", CallbackHandler(userRepo))
		authGroup.POST("/logout", LogoutHandler())
		authGroup.GET("/me", authMW, MeHandler(userRepo, store))
	}
}
