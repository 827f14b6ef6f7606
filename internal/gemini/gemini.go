package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	// image generation models the API surface accepts
	DefaultImageModel = "gemini-2.5-flash-image-preview"
	LegacyImageModel  = "gemini-2.0-flash-preview-image-generation"

	// model used for text completions (enhancement, AI moderation)
	TextModel = "gemini-2.5-flash"

	defaultImageTemperature = 0.8
	defaultTextTemperature  = 0.7
)

// shared HTTP client for Gemini API calls
var geminiHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for outbound Gemini calls (25 requests/second, burst of 5)
var geminiRateLimiter = rate.NewLimiter(25, 5)

// an error response from the Gemini API; RetryDelay is populated from the
// RetryInfo detail on 429 responses when the API provides one
type APIError struct {
	StatusCode int
	Body       string
	RetryDelay string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini API request failed with status %d: %s", e.StatusCode, e.Body)
}

// reports whether the upstream API itself is rate limited
func (e *APIError) IsQuotaExceeded() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// client for the generative-language API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: geminiHTTPClient,
	}
}

// creates a client pointed at a custom endpoint, for tests
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: geminiHTTPClient,
	}
}

// returns the requested model if it is on the allow-list, otherwise the default
func ResolveImageModel(model string) string {
	switch model {
	case DefaultImageModel, LegacyImageModel:
		return model
	default:
		return DefaultImageModel
	}
}

// generates an image from the prompt and optional input images.
// Returns *APIError for upstream failures so callers can distinguish
// quota exhaustion (429 + retry hint) from other errors.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	model := ResolveImageModel(req.Model)

	promptParts := []part{{Text: req.Prompt}}

	// the legacy model only supports a single input image
	images := req.Images
	if model == LegacyImageModel && len(images) > 1 {
		images = images[:1]
	}

	for _, img := range images {
		promptParts = append(promptParts, part{
			InlineData: &inlineData{MimeType: "image/png", Data: img},
		})
	}

	body := generateRequest{
		Contents: []content{{Parts: promptParts}},
		GenerationConfig: &generationConfig{
			Temperature:        defaultImageTemperature,
			CandidateCount:     1,
			ResponseModalities: []string{"TEXT", "IMAGE"},
			Seed:               req.Seed,
		},
	}

	resp, err := c.generateContent(ctx, model, body)
	if err != nil {
		return nil, err
	}

	imageData := extractImage(resp)
	if imageData == "" {
		return nil, fmt.Errorf("no image in gemini response")
	}

	return &ImageResult{
		ImageData: "data:image/png;base64," + imageData,
		Model:     model,
	}, nil
}

// generates a text completion using the text model
func (c *Client) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	temperature := req.Temperature
	if temperature == 0 {
		temperature = defaultTextTemperature
	}

	promptParts := []part{{Text: req.Prompt}}

	for _, img := range req.Images {
		promptParts = append(promptParts, part{
			InlineData: &inlineData{MimeType: "image/png", Data: img},
		})
	}

	body := generateRequest{
		Contents: []content{{Parts: promptParts}},
		GenerationConfig: &generationConfig{
			Temperature:    temperature,
			CandidateCount: 1,
		},
	}

	resp, err := c.generateContent(ctx, TextModel, body)
	if err != nil {
		return "", err
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("no text in gemini response")
	}

	return text, nil
}

func (c *Client) generateContent(ctx context.Context, model string, body generateRequest) (*generateResponse, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// rate limiting
	if err := geminiRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &genResp, nil
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	if statusCode == http.StatusTooManyRequests {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			for _, detail := range errResp.Error.Details {
				if strings.Contains(detail.Type, "RetryInfo") && detail.RetryDelay != "" {
					apiErr.RetryDelay = detail.RetryDelay
					break
				}
			}
		}
	}

	return apiErr
}

// pulls the first inline image out of the response candidates
func extractImage(resp *generateResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}

		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				return p.InlineData.Data
			}
		}
	}

	return ""
}

// pulls the first text part out of the response candidates
func extractText(resp *generateResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}

		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return strings.TrimSpace(p.Text)
			}
		}
	}

	return ""
}
