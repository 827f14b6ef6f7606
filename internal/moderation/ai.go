package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scopophobic/vinciUI/internal/gemini"
)

// instruction template sent to the text-completion API for a second opinion
const aiModerationPrompt = `You are a content moderation AI. Analyze this image generation prompt for inappropriate content.

Respond with ONLY a JSON object in this exact format:
{
  "safe": true/false,
  "reason": "brief explanation",
  "severity": "low/medium/high"
}

Consider UNSAFE:
- NSFW/adult/sexual content
- Violence, weapons, gore
- Hate speech, discrimination
- Illegal activities
- Self-harm content
- Inappropriate content involving minors
- Graphic or disturbing imagery

Prompt to analyze: "%s"`

// the strict JSON verdict expected back from the model
type aiVerdict struct {
	Safe     bool   `json:"safe"`
	Reason   string `json:"reason"`
	Severity string `json:"severity"`
}

// produces text completions; satisfied by *gemini.Client
type TextGenerator interface {
	GenerateText(ctx context.Context, req gemini.TextRequest) (string, error)
}

// secondary moderation layer that defers classification to the external
// text-completion API
type AIModerator struct {
	generator TextGenerator
}

func NewAIModerator(generator TextGenerator) *AIModerator {
	return &AIModerator{generator: generator}
}

// asks the external model for a safety verdict on the content.
// Any failure (transport error, malformed verdict, missing generator) fails
// closed: the result denies the content and the error tells callers the
// verdict is unavailable rather than a genuine block.
func (m *AIModerator) AIModerate(ctx context.Context, content string) (Result, error) {
	verdict, err := m.fetchVerdict(ctx, content)
	if err != nil {
		return failClosed(), fmt.Errorf("ai moderation unavailable: %w", err)
	}

	if verdict.Safe {
		return Result{
			Allowed:  true,
			Flags:    []string{},
			Action:   ActionAllowed,
			Severity: SeverityLow,
			Message:  "AI moderation passed",
		}, nil
	}

	severity := Severity(verdict.Severity)
	if severity != SeverityLow && severity != SeverityMedium && severity != SeverityHigh {
		severity = SeverityMedium
	}

	return Result{
		Allowed:  false,
		Flags:    []string{"ai_flagged"},
		Action:   ActionBlocked,
		Severity: severity,
		Message:  "AI moderation failed: " + verdict.Reason,
	}, nil
}

func (m *AIModerator) fetchVerdict(ctx context.Context, content string) (*aiVerdict, error) {
	if m.generator == nil {
		return nil, fmt.Errorf("no text generator configured")
	}

	response, err := m.generator.GenerateText(ctx, gemini.TextRequest{
		Prompt:      fmt.Sprintf(aiModerationPrompt, content),
		Temperature: 0.1,
	})

	if err != nil {
		return nil, err
	}

	// models occasionally wrap JSON in code fences despite instructions
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var verdict aiVerdict
	if err := json.Unmarshal([]byte(cleaned), &verdict); err != nil {
		return nil, fmt.Errorf("malformed moderation verdict: %w", err)
	}

	return &verdict, nil
}

// the deny-by-default result returned when the secondary check cannot run
func failClosed() Result {
	return Result{
		Allowed:  false,
		Flags:    []string{"ai_moderation_failed"},
		Action:   ActionBlocked,
		Severity: SeverityMedium,
		Message:  "Content moderation temporarily unavailable. Please try again later.",
	}
}
