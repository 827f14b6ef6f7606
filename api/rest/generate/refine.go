package generate

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scopophobic/vinciUI/internal/auth"
	"github.com/scopophobic/vinciUI/internal/errors"
	"github.com/scopophobic/vinciUI/internal/gemini"
	"github.com/scopophobic/vinciUI/internal/logger"
	"github.com/scopophobic/vinciUI/internal/moderation"
	"github.com/scopophobic/vinciUI/internal/ratelimit"
	"github.com/scopophobic/vinciUI/internal/tiers"
	"github.com/scopophobic/vinciUI/internal/usage"
)

const (
	refineAutoInstruction = `You are a prompt optimizer for an AI image generator. The user wrote a basic prompt. Improve it by adding specific visual details about composition, lighting, colors, and style while preserving the user's core intent. Keep it under 150 words. Do NOT change what the user wants, only add quality-improving details. Output ONLY the improved prompt, nothing else.

User prompt: %q`

	refineQuestionsInstruction = `You are helping a user create a better image generation prompt. Given their prompt, generate exactly 3 short clarifying questions to understand what they want. Each question should have 3-5 concise preset answer options. Return ONLY a valid JSON array, no markdown, no explanation:
[{"question": "...", "options": ["...", "...", "..."]}]

User prompt: %q`

	refineApplyInstruction = `Rewrite this image generation prompt incorporating the user's preferences below. Keep the core subject but enhance with the specified preferences. Output ONLY the rewritten prompt, nothing else. Keep under 200 words.

Original prompt: %q
User preferences:
%s`
)

// served when the model's question list cannot be parsed, so the client
// always gets a usable Q&A round
var defaultRefineQuestions = []RefineQuestion{
	{Question: "What style do you prefer?", Options: []string{"Photorealistic", "Digital Art", "Anime", "Painterly", "Minimalist"}},
	{Question: "What mood should the image have?", Options: []string{"Calm", "Dramatic", "Mysterious", "Joyful", "Epic"}},
	{Question: "Any specific composition details?", Options: []string{"Close-up", "Wide shot", "Bird's eye", "Low angle", "Centered"}},
}

// creates the prompt refinement handler. The "questions" mode is a free
// intermediate step and is not charged against the enhancement quota; the
// "auto" and "apply" modes produce a refined prompt and are charged.
func RefineHandler(
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

		var req RefineRequest
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

		var instruction string
		var temperature float32

		switch req.Mode {
		case "auto":
			instruction = fmt.Sprintf(refineAutoInstruction, req.Prompt)
			temperature = 0.7
		case "questions":
			instruction = fmt.Sprintf(refineQuestionsInstruction, req.Prompt)
			temperature = 0.3
		case "apply":
			lines := make([]string, 0, len(req.Answers))
			for _, answer := range req.Answers {
				lines = append(lines, fmt.Sprintf("- %s: %s", answer.Question, answer.Answer))
			}

			instruction = fmt.Sprintf(refineApplyInstruction, req.Prompt, strings.Join(lines, "\n"))
			temperature = 0.7
		default:
			errors.BadRequest(c, "Invalid refine mode", nil)
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

		genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
		defer cancel()

		response, err := texts.GenerateText(genCtx, gemini.TextRequest{
			Prompt:      instruction,
			Images:      req.ReferenceImages,
			Temperature: temperature,
		})

		if err != nil {
			var apiErr *gemini.APIError
			if stderrors.As(err, &apiErr) && apiErr.IsQuotaExceeded() {
				errors.UpstreamQuota(c, "Please wait a few minutes and try again, or upgrade your plan.", apiErr.RetryDelay)
				return
			}

			errors.UpstreamFailure(c, "Prompt refinement failed", err)
			return
		}

		if req.Mode == "questions" {
			c.JSON(http.StatusOK, RefineQuestionsResponse{Questions: parseRefineQuestions(response)})
			return
		}

		chargeEnhancement(ctx, store, principal.ID)

		c.JSON(http.StatusOK, RefineResponse{
			Success:        true,
			RefinedPrompt:  strings.TrimSpace(response),
			RemainingQuota: remainingEnhancements(ctx, store, limits, principal.ID, rateResult.RemainingQuota),
		})
	}
}

// extracts the question list from the model's response, tolerating code
// fences; malformed output falls back to a fixed question set
func parseRefineQuestions(response string) []RefineQuestion {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var questions []RefineQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil || len(questions) == 0 {
		logger.Warn("unparseable refine questions, serving defaults", "response_length", len(response))

		questions = make([]RefineQuestion, len(defaultRefineQuestions))
		copy(questions, defaultRefineQuestions)
	}

	for i := range questions {
		questions[i].Answer = ""
	}

	return questions
}
