package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Response represents the health check response
type Response struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database,omitempty"`
}

// returns the server health status including a database probe
func Handler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := http.StatusOK
		status := "healthy"
		database := "ok"

		if err := db.Ping(c.Request.Context()); err != nil {
			code = http.StatusServiceUnavailable
			status = "degraded"
			database = "unreachable"
		}

		c.JSON(code, Response{
			Status:   status,
			Service:  "vinciui",
			Version:  "1.0.0",
			Database: database,
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
