package generate

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scopophobic/vinciUI/internal/auth"
	"github.com/scopophobic/vinciUI/internal/errors"
	"github.com/scopophobic/vinciUI/internal/gemini"
	"github.com/scopophobic/vinciUI/internal/genlog"
	"github.com/scopophobic/vinciUI/internal/logger"
	"github.com/scopophobic/vinciUI/internal/moderation"
	"github.com/scopophobic/vinciUI/internal/ratelimit"
	"github.com/scopophobic/vinciUI/internal/tiers"
	"github.com/scopophobic/vinciUI/internal/usage"
)

// upper bound on a single external generation call
const generationTimeout = 60 * time.Second

// generates images; satisfied by *gemini.Client
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req gemini.ImageRequest) (*gemini.ImageResult, error)
}

// produces text completions; satisfied by *gemini.Client
type TextGenerator interface {
	GenerateText(ctx context.Context, req gemini.TextRequest) (string, error)
}

// creates the image generation handler. The request moves through
// validation, quota, moderation and the external call in that order; the
// order matters because it decides what gets logged and when quota is
// consumed.
func ImageHandler(
	images ImageGenerator,
	limiter *ratelimit.Limiter,
	engine *moderation.Engine,
	aiMod *moderation.AIModerator,
	store usage.Store,
	attempts *genlog.BestEffort,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.GetPrincipal(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		var req ImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		limits := tiers.LimitsFor(principal.Tier)

		if strings.TrimSpace(req.Prompt) == "" {
			errors.BadRequest(c, "Prompt cannot be empty", nil)
			return
		}

		if len(req.Prompt) > limits.MaxPromptLength {
			errors.BadRequest(c, fmt.Sprintf("Prompt exceeds maximum length of %d characters", limits.MaxPromptLength), nil)
			return
		}

		ctx := c.Request.Context()

		rateResult, err := limiter.Check(ctx, principal.ID, principal.Tier, usage.ActionImage)
		if err != nil {
			errors.InternalError(c, "rate limit check failed", err)
			return
		}

		if !rateResult.Allowed {
			errors.RateLimited(c, rateResult.Message, rateResult.ResetTime, rateResult.RemainingQuota)
			return
		}

		model := gemini.ResolveImageModel(req.Model)

		// attempt logging must survive a cancelled request
		logCtx := context.WithoutCancel(ctx)

		if limits.BypassModeration {
			logger.Debug("bypassing content moderation", "user_id", principal.ID, "tier", principal.Tier)
		} else {
			result := engine.Moderate(ctx, req.Prompt, principal.ID, moderation.ContentTypePrompt)
			if !result.Allowed {
				attempts.LogBlockedAttempt(logCtx, principal.ID, req.Prompt, model, genlog.Detail{"moderation": result})
				errors.ContentBlocked(c, result.Message, result.Flags)
				return
			}

			// second opinion from the external model; an unavailable
			// verdict is not a block when the keyword pass succeeded
			aiResult, err := aiMod.AIModerate(ctx, req.Prompt)
			if err != nil {
				logger.Warn("ai moderation unavailable, proceeding on keyword result",
					"user_id", principal.ID,
					"error", err.Error(),
				)
			} else if !aiResult.Allowed {
				attempts.LogBlockedAttempt(logCtx, principal.ID, req.Prompt, model, genlog.Detail{"aiModeration": aiResult})
				errors.ContentBlocked(c, aiResult.Message, aiResult.Flags)
				return
			}
		}

		attemptID := attempts.StartAttempt(logCtx, principal.ID, req.Prompt, model)

		// every pending attempt gets a terminal status, whatever path
		// the handler takes out of here
		finished := false
		defer func() {
			if !finished {
				attempts.FinishAttempt(logCtx, attemptID, genlog.StatusFailed, genlog.Detail{"error": "request aborted"})
			}
		}()

		genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
		defer cancel()

		result, err := images.GenerateImage(genCtx, gemini.ImageRequest{
			Prompt: req.Prompt,
			Images: req.Images,
			Model:  model,
			Seed:   req.Seed,
		})

		if err != nil {
			var apiErr *gemini.APIError

			switch {
			case stderrors.As(err, &apiErr) && apiErr.IsQuotaExceeded():
				attempts.FinishAttempt(logCtx, attemptID, genlog.StatusFailed, genlog.Detail{
					"error":      "quota_exceeded",
					"retryDelay": apiErr.RetryDelay,
				})
				finished = true

				message := "Please wait a few minutes and try again, or upgrade your plan."
				if apiErr.RetryDelay != "" {
					message = fmt.Sprintf("Please wait %s and try again, or upgrade your plan.", apiErr.RetryDelay)
				}

				errors.UpstreamQuota(c, message, apiErr.RetryDelay)

			case stderrors.Is(err, context.DeadlineExceeded):
				attempts.FinishAttempt(logCtx, attemptID, genlog.StatusFailed, genlog.Detail{"error": "timeout"})
				finished = true
				errors.UpstreamTimeout(c, "")

			default:
				attempts.FinishAttempt(logCtx, attemptID, genlog.StatusFailed, genlog.Detail{"error": err.Error()})
				finished = true
				errors.UpstreamFailure(c, "Image generation failed", err)
			}

			return
		}

		if err := store.Increment(ctx, principal.ID, usage.ActionImage); err != nil {
			attempts.FinishAttempt(logCtx, attemptID, genlog.StatusFailed, genlog.Detail{"error": "usage_update_failed"})
			finished = true
			errors.InternalError(c, "failed to record usage", err)
			return
		}

		attempts.FinishAttempt(logCtx, attemptID, genlog.StatusSuccess, nil)
		finished = true

		c.JSON(http.StatusOK, ImageResponse{
			Success:        true,
			Image:          result.ImageData,
			Model:          result.Model,
			RemainingQuota: remainingImages(ctx, store, limits, principal.ID, rateResult.RemainingQuota),
		})
	}
}

// creates the prompt enhancement handler. Unlike image generation, an
// upstream failure here degrades to a local suffix enhancement instead of
// erroring, and the degraded success is still charged against quota.
func EnhanceHandler(
	texts TextGenerator,
	limiter *ratelimit.Limiter,
	engine *moderation.Engine,
	store usage.Store,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.GetPrincipal(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		var req EnhanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		limits := tiers.LimitsFor(principal.Tier)

		if strings.TrimSpace(req.Prompt) == "" {
			errors.BadRequest(c, "Prompt cannot be empty", nil)
			return
		}

		if len(req.Prompt) > limits.MaxPromptLength {
			errors.BadRequest(c, fmt.Sprintf("Prompt exceeds maximum length of %d characters", limits.MaxPromptLength), nil)
			return
		}

		ctx := c.Request.Context()

		rateResult, err := limiter.Check(ctx, principal.ID, principal.Tier, usage.ActionEnhancement)
		if err != nil {
			errors.InternalError(c, "rate limit check failed", err)
			return
		}

		if !rateResult.Allowed {
			errors.RateLimited(c, rateResult.Message, rateResult.ResetTime, rateResult.RemainingQuota)
			return
		}

		if !limits.BypassModeration {
			result := engine.Moderate(ctx, req.Prompt, principal.ID, moderation.ContentTypePrompt)
			if !result.Allowed {
				errors.ContentBlocked(c, result.Message, result.Flags)
				return
			}
		}

		instruction, style := instructionFor(req.Style)

		text := fmt.Sprintf("%s\n\nOriginal prompt: %q\n\nEnhanced prompt:", instruction, req.Prompt)
		if len(req.ReferenceImages) > 0 {
			text += "\n\nAnalyze the provided reference image and incorporate relevant visual details into the enhancement."
		}

		genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
		defer cancel()

		enhanced, err := texts.GenerateText(genCtx, gemini.TextRequest{
			Prompt: text,
			Images: req.ReferenceImages,
		})

		if err != nil {
			var apiErr *gemini.APIError
			if stderrors.As(err, &apiErr) && apiErr.IsQuotaExceeded() {
				errors.UpstreamQuota(c, "Please wait a few minutes and try again, or upgrade your plan.", apiErr.RetryDelay)
				return
			}

			logger.ErrorErr(err, "enhancement call failed, using local fallback", "user_id", principal.ID)

			chargeEnhancement(ctx, store, principal.ID)
			respondEnhancement(c, req.Prompt, fallbackEnhancement(req.Prompt, style), style, true,
				"Used local enhancement due to API unavailability", rateResult.RemainingQuota)
			return
		}

		// the model's output is content too, so it gets the same check
		if !limits.BypassModeration {
			result := engine.Moderate(ctx, enhanced, principal.ID, moderation.ContentTypePrompt)
			if !result.Allowed {
				chargeEnhancement(ctx, store, principal.ID)
				respondEnhancement(c, req.Prompt, fallbackEnhancement(req.Prompt, style), style, true,
					"Used safe fallback enhancement due to content policy", rateResult.RemainingQuota)
				return
			}
		}

		chargeEnhancement(ctx, store, principal.ID)
		respondEnhancement(c, req.Prompt, strings.TrimSpace(enhanced), style, false, "",
			remainingEnhancements(ctx, store, limits, principal.ID, rateResult.RemainingQuota))
	}
}

func chargeEnhancement(ctx context.Context, store usage.Store, userID string) {
	if err := store.Increment(ctx, userID, usage.ActionEnhancement); err != nil {
		logger.ErrorErr(err, "failed to record enhancement usage", "user_id", userID)
	}
}

func respondEnhancement(c *gin.Context, original, enhanced, style string, fallback bool, message string, remaining int) {
	c.JSON(http.StatusOK, EnhanceResponse{
		Success:        true,
		EnhancedPrompt: enhanced,
		OriginalPrompt: original,
		Style:          style,
		Fallback:       fallback,
		Message:        message,
		RemainingQuota: remaining,
	})
}

// re-reads the image quota after an increment so the response reflects
// true remaining usage rather than the pre-increment estimate
func remainingImages(ctx context.Context, store usage.Store, limits tiers.Limits, userID string, fallback int) int {
	used := 0

	if limits.LifetimeImageCap {
		total, err := store.LifetimeImages(ctx, userID)
		if err != nil {
			return fallback
		}

		used = total
	} else {
		record, err := store.Today(ctx, userID)
		if err != nil {
			return fallback
		}

		used = record.ImagesGenerated
	}

	return max(0, limits.ImagesPerDay-used)
}

func remainingEnhancements(ctx context.Context, store usage.Store, limits tiers.Limits, userID string, fallback int) int {
	record, err := store.Today(ctx, userID)
	if err != nil {
		return fallback
	}

	return max(0, limits.EnhancementsDay-record.PromptsEnhanced)
}
