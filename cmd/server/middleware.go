package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	libredis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/scopophobic/vinciUI/internal/config"
)

// per-IP request budget enforced ahead of auth and quota checks
const throttleRate = "120-M"

// allows the frontend origin with credentials
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// redis-backed per-IP throttle; a coarse perimeter defense, not the
// per-user quota system
func ThrottleMiddleware(client *libredis.Client) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(throttleRate)
	if err != nil {
		return nil, err
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "vinciui:throttle",
	})

	if err != nil {
		return nil, err
	}

	return mgin.NewMiddleware(limiter.New(store, rate)), nil
}
