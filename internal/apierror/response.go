package apierror

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// RequestIDKey is the gin context key holding the request correlation ID.
const RequestIDKey = "request_id"

// WriteProblem writes a ProblemDetails response to the gin context.
// It sets the correct Content-Type header and, if RetryAfter is set,
// also sets the Retry-After header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)

	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}

	c.JSON(problem.Status, problem)
}

// GetRequestID extracts the request ID from the gin context.
// Returns empty string if not found.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Request-ID")
}

// NewInvalidRequestError creates the 400 response for a request that violates
// the API contract or a cross-field rule. An empty error list is replaced by a
// single DefaultError so the client always sees at least one reason.
func NewInvalidRequestError(requestID string, errs []ProblemError) *ProblemDetails {
	if len(errs) == 0 {
		errs = []ProblemError{NewDefaultError(DetailInvalidRequest)}
	}
	return &ProblemDetails{
		Type:      TypeInvalidRequest,
		Title:     TitleInvalidRequest,
		Status:    http.StatusBadRequest,
		Detail:    DetailInvalidRequest,
		RequestID: requestID,
		Errors:    errs,
	}
}

// NewNotFoundError creates a 404 Not Found response.
func NewNotFoundError(requestID, resource, id string) *ProblemDetails {
	return &ProblemDetails{
		Type:      TypeNotFound,
		Title:     TitleNotFound,
		Status:    http.StatusNotFound,
		Detail:    fmt.Sprintf("%s with ID '%s' was not found", resource, id),
		RequestID: requestID,
	}
}

// NewRateLimitError creates a 429 Too Many Requests response.
// retryAfter specifies seconds until the client should retry.
func NewRateLimitError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:       TypeRateLimit,
		Title:      TitleRateLimit,
		Status:     http.StatusTooManyRequests,
		Detail:     fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds", retryAfter),
		RequestID:  requestID,
		RetryAfter: &retryAfter,
	}
}

// NewInternalError creates a 500 Internal Server Error response.
// IMPORTANT: This intentionally hides internal error details from the client.
// The actual error should be logged server-side for debugging.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:      TypeInternal,
		Title:     TitleInternal,
		Status:    http.StatusInternalServerError,
		Detail:    "An unexpected error occurred",
		RequestID: requestID,
	}
}

// NewBadRequestError creates a 400 Bad Request response for malformed requests.
func NewBadRequestError(requestID, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:      TypeBadRequest,
		Title:     TitleBadRequest,
		Status:    http.StatusBadRequest,
		Detail:    detail,
		RequestID: requestID,
	}
}
