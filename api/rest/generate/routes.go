package generate

import (
	"github.com/gin-gonic/gin"

	"github.com/scopophobic/vinciUI/internal/genlog"
	"github.com/scopophobic/vinciUI/internal/moderation"
	"github.com/scopophobic/vinciUI/internal/ratelimit"
	"github.com/scopophobic/vinciUI/internal/usage"
)

// registers generation routes; all of them require authentication
func RegisterRoutes(
	router *gin.RouterGroup,
	authMW gin.HandlerFunc,
	images ImageGenerator,
	texts TextGenerator,
	limiter *ratelimit.Limiter,
	engine *moderation.Engine,
	aiMod *moderation.AIModerator,
	store usage.Store,
	attempts *genlog.BestEffort,
) {
	group := router.Group("/generate", authMW)
	{
		group.POST("/image", ImageHandler(images, limiter, engine, aiMod, store, attempts))
		group.POST("/enhance", EnhanceHandler(texts, limiter, engine, store))
		group.POST("/refine", RefineHandler(texts, limiter, engine, store))
	}
}
