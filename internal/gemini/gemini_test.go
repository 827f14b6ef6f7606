package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveImageModel(t *testing.T) {
	assert.Equal(t, DefaultImageModel, ResolveImageModel(""))
	assert.Equal(t, DefaultImageModel, ResolveImageModel("gpt-4o"))
	assert.Equal(t, DefaultImageModel, ResolveImageModel(DefaultImageModel))
	assert.Equal(t, LegacyImageModel, ResolveImageModel(LegacyImageModel))
}

func TestGenerateImage_Success(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := generateResponse{
			Candidates: []candidate{{
				Content: &content{Parts: []part{
					{Text: "here is your image"},
					{InlineData: &inlineData{MimeType: "image/png", Data: "aGVsbG8="}},
				}},
			}},
		}

		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	result, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "a cat"})

	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", result.ImageData)
	assert.Equal(t, DefaultImageModel, result.Model)
	assert.Contains(t, gotPath, DefaultImageModel)

	require.Len(t, gotBody.Contents, 1)
	require.NotNil(t, gotBody.GenerationConfig)
	assert.Equal(t, []string{"TEXT", "IMAGE"}, gotBody.GenerationConfig.ResponseModalities)
	assert.InDelta(t, 0.8, gotBody.GenerationConfig.Temperature, 0.001)
}

func TestGenerateImage_LegacyModelUsesFirstImageOnly(t *testing.T) {
	var gotBody generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(generateResponse{ //nolint:errcheck
			Candidates: []candidate{{
				Content: &content{Parts: []part{
					{InlineData: &inlineData{Data: "aGVsbG8="}},
				}},
			}},
		})
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	_, err := client.GenerateImage(context.Background(), ImageRequest{
		Prompt: "a cat",
		Images: []string{"img1", "img2", "img3"},
		Model:  LegacyImageModel,
	})

	require.NoError(t, err)

	// one text part plus exactly one image part
	require.Len(t, gotBody.Contents, 1)
	assert.Len(t, gotBody.Contents[0].Parts, 2)
}

func TestGenerateImage_NoImageInResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{ //nolint:errcheck
			Candidates: []candidate{{
				Content: &content{Parts: []part{{Text: "sorry, no image"}}},
			}},
		})
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "a cat"})

	require.Error(t, err, "a response without image data is a failure, not an empty success")
}

func TestGenerateImage_QuotaErrorCarriesRetryDelay(t *testing.T) {
	body := `{
		"error": {
			"code": 429,
			"message": "Resource has been exhausted",
			"details": [
				{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "30s"}
			]
		}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(body)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "a cat"})

	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsQuotaExceeded())
	assert.Equal(t, "30s", apiErr.RetryDelay)
}

func TestGenerateImage_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"internal"}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "a cat"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.False(t, apiErr.IsQuotaExceeded())
}

func TestGenerateText_Success(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		json.NewEncoder(w).Encode(generateResponse{ //nolint:errcheck
			Candidates: []candidate{{
				Content: &content{Parts: []part{{Text: "  an enhanced prompt  "}}},
			}},
		})
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	text, err := client.GenerateText(context.Background(), TextRequest{Prompt: "improve this"})

	require.NoError(t, err)
	assert.Equal(t, "an enhanced prompt", text, "surrounding whitespace is trimmed")
	assert.True(t, strings.Contains(gotPath, TextModel))
}

func TestGenerateText_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{}) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)

	_, err := client.GenerateText(context.Background(), TextRequest{Prompt: "improve this"})

	assert.Error(t, err)
}
