package errors

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scopophobic/vinciUI/internal/logger"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// represents a standardized error response
type ErrorResponse struct {
	Error          string     `json:"error"`                    // error code (e.g., "unauthorized", "content_blocked")
	Message        string     `json:"message"`                  // user-friendly message
	Details        string     `json:"details,omitempty"`        // optional details (sanitized in production)
	Flags          []string   `json:"flags,omitempty"`          // moderation flags, when content was blocked
	ResetTime      *time.Time `json:"resetTime,omitempty"`      // when a quota window resets
	RemainingQuota *int       `json:"remainingQuota,omitempty"` // quota left after this denial
	RetryDelay     string     `json:"retryDelay,omitempty"`     // upstream retry hint, when present
}

// standard error codes
const (
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeValidationError   = "validation_error"
	CodeServerError       = "server_error"
	CodeBadRequest        = "bad_request"
	CodeRateLimitExceeded = "rate_limit_exceeded"
	CodeContentBlocked    = "content_blocked"
	CodeUpstreamQuota     = "upstream_quota_exceeded"
	CodeUpstreamFailure   = "generation_failed"
	CodeUpstreamTimeout   = "generation_timeout"
)

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeUnauthorized,
		Message: message,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"
	details := ""

	if err != nil {
		details = sanitizeError(err)
		if strings.Contains(err.Error(), "binding") || strings.Contains(err.Error(), "validation") {
			message = "request validation failed"
		}
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
		Details: details,
	})
}

// returns a 400 error for content rejected by moderation
func ContentBlocked(c *gin.Context, message string, flags []string) {
	if message == "" {
		message = "content blocked by moderation policy"
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeContentBlocked,
		Message: message,
		Flags:   flags,
	})
}

// returns a 429 error for a quota or cooldown denial from the rate limiter
func RateLimited(c *gin.Context, message string, resetTime *time.Time, remainingQuota int) {
	if message == "" {
		message = "rate limit exceeded"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:          CodeRateLimitExceeded,
		Message:        message,
		ResetTime:      resetTime,
		RemainingQuota: &remainingQuota,
	})
}

// returns a 429 error for quota exhaustion reported by the upstream API
func UpstreamQuota(c *gin.Context, message, retryDelay string) {
	if message == "" {
		message = "upstream API quota exceeded, please try again later"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:      CodeUpstreamQuota,
		Message:    message,
		RetryDelay: retryDelay,
	})
}

// returns a 500 error for an upstream call that failed or returned no
// usable payload
func UpstreamFailure(c *gin.Context, message string, err error) {
	if message == "" {
		message = "generation failed"
	}

	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeUpstreamFailure,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 504 error for an upstream call that exceeded its deadline
func UpstreamTimeout(c *gin.Context, message string) {
	if message == "" {
		message = "generation timed out"
	}

	c.JSON(http.StatusGatewayTimeout, ErrorResponse{
		Error:   CodeUpstreamTimeout,
		Message: message,
	})
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()
	env := os.Getenv("ENVIRONMENT")

	if env != "production" {
		return errMsg
	}

	if strings.Contains(errMsg, "database") || strings.Contains(errMsg, "sql") {
		return "database operation failed"
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") {
		return "connection error occurred"
	}

	if strings.Contains(errMsg, "timeout") {
		return "request timed out"
	}

	if strings.Contains(errMsg, "permission") || strings.Contains(errMsg, "unauthorized") {
		return "permission denied"
	}

	if strings.Contains(errMsg, "not found") {
		return "resource not found"
	}

	return "an error occurred"
}
