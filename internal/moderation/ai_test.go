package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopophobic/vinciUI/internal/gemini"
)

type stubGenerator struct {
	response string
	err      error
}

func (s stubGenerator) GenerateText(ctx context.Context, req gemini.TextRequest) (string, error) {
	return s.response, s.err
}

func TestAIModerate_SafeVerdict(t *testing.T) {
	mod := NewAIModerator(stubGenerator{
		response: `{"safe": true, "reason": "harmless", "severity": "low"}`,
	})

	result, err := mod.AIModerate(context.Background(), "a cat")

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, ActionAllowed, result.Action)
	assert.Empty(t, result.Flags)
}

func TestAIModerate_UnsafeVerdict(t *testing.T) {
	mod := NewAIModerator(stubGenerator{
		response: `{"safe": false, "reason": "graphic violence", "severity": "high"}`,
	})

	result, err := mod.AIModerate(context.Background(), "something grim")

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ActionBlocked, result.Action)
	assert.Equal(t, SeverityHigh, result.Severity)
	assert.Contains(t, result.Message, "graphic violence")
}

func TestAIModerate_CodeFencedVerdict(t *testing.T) {
	mod := NewAIModerator(stubGenerator{
		response: "```json\n{\"safe\": true, \"reason\": \"fine\", \"severity\": \"low\"}\n```",
	})

	result, err := mod.AIModerate(context.Background(), "a dog")

	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestAIModerate_NetworkFailureFailsClosed(t *testing.T) {
	mod := NewAIModerator(stubGenerator{err: errors.New("connection refused")})

	result, err := mod.AIModerate(context.Background(), "a cat")

	assert.Error(t, err, "callers need to know the verdict is unavailable")
	assert.False(t, result.Allowed)
	assert.Equal(t, ActionBlocked, result.Action)
	assert.Equal(t, SeverityMedium, result.Severity)
	assert.Contains(t, result.Flags, "ai_moderation_failed")
}

func TestAIModerate_MalformedVerdictFailsClosed(t *testing.T) {
	mod := NewAIModerator(stubGenerator{response: "I think this prompt is fine!"})

	result, err := mod.AIModerate(context.Background(), "a cat")

	assert.Error(t, err)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Flags, "ai_moderation_failed")
}

func TestAIModerate_UnknownSeverityNormalizedToMedium(t *testing.T) {
	mod := NewAIModerator(stubGenerator{
		response: `{"safe": false, "reason": "odd", "severity": "catastrophic"}`,
	})

	result, err := mod.AIModerate(context.Background(), "something")

	require.NoError(t, err)
	assert.Equal(t, SeverityMedium, result.Severity)
}
