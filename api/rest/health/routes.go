package health

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// registers health check routes
func RegisterRoutes(router *gin.RouterGroup, db *pgxpool.Pool) {
	router.GET("/health", Handler(db))
	router.GET("/ping", PingHandler)
}
