package moderation

import (
	"context"
	"strings"

	"github.com/scopophobic/vinciUI/internal/genlog"
)

// escalation levels driving the block/flag/allow decision
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// outcome categories for a classification
type Action string

const (
	ActionAllowed Action = "allowed"
	ActionFlagged Action = "flagged"
	ActionBlocked Action = "blocked"
)

// content types the engine classifies
type ContentType string

const (
	ContentTypePrompt ContentType = "prompt"
	ContentTypeImage  ContentType = "image"
)

// result of classifying a piece of content.
// Allowed is true exactly when Action is not blocked.
type Result struct {
	Allowed  bool     `json:"allowed"`
	Flags    []string `json:"flags"`
	Action   Action   `json:"action"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// classifies free-text content against keyword lists, regex patterns and
// high-risk phrases, and logs every decision best-effort
type Engine struct {
	log *genlog.BestEffort
}

func NewEngine(log *genlog.BestEffort) *Engine {
	return &Engine{log: log}
}

// classifies content and records the decision; a logging failure never
// affects the returned result
func (e *Engine) Moderate(ctx context.Context, content, userID string, contentType ContentType) Result {
	result := Classify(content)

	if e.log != nil {
		e.log.LogModeration(ctx, genlog.ModerationEntry{
			UserID:      userID,
			Content:     content,
			ContentType: string(contentType),
			Flags:       result.Flags,
			Action:      string(result.Action),
		})
	}

	return result
}

// pure classification: all checks run and all matches accumulate into flags
// before the final decision is made
func Classify(content string) Result {
	flags := []string{}
	severity := SeverityLow

	lowerContent := strings.ToLower(strings.TrimSpace(content))

	// high-risk phrases force high severity immediately
	for _, phrase := range highRiskPhrases {
		if strings.Contains(lowerContent, phrase) {
			flags = append(flags, "high_risk_phrase:"+phrase)
			severity = SeverityHigh
		}
	}

	// banned keywords escalate to at least medium
	for _, keyword := range bannedKeywords {
		if strings.Contains(lowerContent, keyword) {
			flags = append(flags, "banned_keyword:"+keyword)
			if severity == SeverityLow {
				severity = SeverityMedium
			}
		}
	}

	// suspicious patterns escalate to at least medium
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(lowerContent) {
			flags = append(flags, "suspicious_pattern:"+pattern.String())
			if severity == SeverityLow {
				severity = SeverityMedium
			}
		}
	}

	// structural checks flag without escalating severity
	if len(content) > 1000 {
		flags = append(flags, "content_too_long")
	}

	if strings.TrimSpace(content) == "" {
		flags = append(flags, "empty_content")
	}

	specialCharCount := len(specialCharPattern.FindAllString(content, -1))
	if len(content) > 0 && float64(specialCharCount) > float64(len(content))*0.3 {
		flags = append(flags, "excessive_special_characters")
	}

	if hasRepeatedCharSpam(content) {
		flags = append(flags, "repeated_character_spam")
	}

	return decide(flags, severity)
}

// applies the decision rule after all flags are collected
func decide(flags []string, severity Severity) Result {
	action := ActionAllowed
	message := "Content approved"

	if len(flags) > 0 {
		switch {
		case severity == SeverityHigh || hasHighRiskFlag(flags):
			action = ActionBlocked
			message = "Content blocked due to policy violations. Please ensure your prompts are appropriate and follow our community guidelines."
		case severity == SeverityMedium || len(flags) >= 3:
			action = ActionBlocked
			message = "Content blocked due to inappropriate content. Please revise your prompt to comply with our content policy."
		default:
			action = ActionFlagged
			message = "Content flagged for review but allowed to proceed."
		}
	}

	return Result{
		Allowed:  action != ActionBlocked,
		Flags:    flags,
		Action:   action,
		Severity: severity,
		Message:  message,
	}
}

func hasHighRiskFlag(flags []string) bool {
	for _, flag := range flags {
		if strings.HasPrefix(flag, "high_risk_phrase") {
			return true
		}
	}

	return false
}

// detects any rune repeated repeatedCharLimit or more times consecutively
func hasRepeatedCharSpam(content string) bool {
	var prev rune
	run := 0

	for _, r := range content {
		if r == prev {
			run++
			if run >= repeatedCharLimit {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}

	return false
}
