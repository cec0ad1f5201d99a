package apierror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	// Set gin to test mode to reduce noise in test output
	gin.SetMode(gin.TestMode)
}

func TestProblemDetailsJSON(t *testing.T) {
	problem := &ProblemDetails{
		Type:      TypeInvalidRequest,
		Title:     TitleInvalidRequest,
		Status:    http.StatusBadRequest,
		Detail:    DetailInvalidRequest,
		Instance:  "/api/v1/authors",
		RequestID: "req-abc123",
		Errors: []ProblemError{
			NewPointerError("Missing required property", "/name"),
			NewParameterError("Missing required query parameter", "required_parameter"),
			NewDefaultError("Something else"),
		},
	}

	data, err := json.Marshal(problem)
	if err != nil {
		t.Fatalf("Failed to marshal ProblemDetails: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	// Check standard RFC 9457 fields
	if result["type"] != TypeInvalidRequest {
		t.Errorf("Expected type=%q, got %q", TypeInvalidRequest, result["type"])
	}
	if result["title"] != TitleInvalidRequest {
		t.Errorf("Expected title=%q, got %q", TitleInvalidRequest, result["title"])
	}
	if result["status"] != float64(http.StatusBadRequest) {
		t.Errorf("Expected status=%d, got %v", http.StatusBadRequest, result["status"])
	}
	if result["instance"] != "/api/v1/authors" {
		t.Errorf("Expected instance=%q, got %q", "/api/v1/authors", result["instance"])
	}
	if result["request_id"] != "req-abc123" {
		t.Errorf("Expected request_id=%q, got %q", "req-abc123", result["request_id"])
	}

	errs, ok := result["errors"].([]interface{})
	if !ok || len(errs) != 3 {
		t.Fatalf("Expected 3 errors, got %v", result["errors"])
	}

	pointer := errs[0].(map[string]interface{})
	if pointer["detail"] != "Missing required property" || pointer["pointer"] != "/name" {
		t.Errorf("Unexpected pointer error: %v", pointer)
	}
	if _, exists := pointer["parameter"]; exists {
		t.Errorf("Expected pointer error without parameter, got %v", pointer)
	}

	parameter := errs[1].(map[string]interface{})
	if parameter["detail"] != "Missing required query parameter" || parameter["parameter"] != "required_parameter" {
		t.Errorf("Unexpected parameter error: %v", parameter)
	}
	if _, exists := parameter["pointer"]; exists {
		t.Errorf("Expected parameter error without pointer, got %v", parameter)
	}

	def := errs[2].(map[string]interface{})
	if len(def) != 1 || def["detail"] != "Something else" {
		t.Errorf("Expected default error with only a detail, got %v", def)
	}
}

func TestProblemDetailsJSONOmitsEmpty(t *testing.T) {
	// Minimal problem - should omit empty fields
	problem := &ProblemDetails{
		Type:   TypeInternal,
		Title:  TitleInternal,
		Status: http.StatusInternalServerError,
	}

	data, err := json.Marshal(problem)
	if err != nil {
		t.Fatalf("Failed to marshal ProblemDetails: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	// These fields should be omitted (not present) when empty
	omittedFields := []string{"detail", "instance", "request_id", "retry_after", "errors"}
	for _, field := range omittedFields {
		if _, exists := result[field]; exists {
			t.Errorf("Expected field %q to be omitted when empty, but it was present", field)
		}
	}

	// Required fields should always be present
	requiredFields := []string{"type", "title", "status"}
	for _, field := range requiredFields {
		if _, exists := result[field]; !exists {
			t.Errorf("Expected required field %q to be present", field)
		}
	}
}

func TestProblemErrorConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  ProblemError
		want ProblemError
	}{
		{"pointer keeps leading slash", NewPointerError("bad", "/a/b"), PointerError{Detail: "bad", Pointer: "/a/b"}},
		{"pointer gains leading slash", NewPointerError("bad", "a/b"), PointerError{Detail: "bad", Pointer: "/a/b"}},
		{"empty pointer is the root", NewPointerError("bad", ""), PointerError{Detail: "bad", Pointer: "/"}},
		{"parameter", NewParameterError("bad", "size"), ParameterError{Detail: "bad", Parameter: "size"}},
		{"parameter without name", NewParameterError("bad", ""), DefaultError{Detail: "bad"}},
		{"blank detail", NewDefaultError("  "), DefaultError{Detail: genericDetail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %#v, got %#v", tt.want, tt.got)
			}
		})
	}
}

func TestDetailAndLocation(t *testing.T) {
	tests := []struct {
		err      ProblemError
		detail   string
		location string
	}{
		{NewParameterError("Missing required header", "Required-Header"), "Missing required header", "Required-Header"},
		{NewPointerError("Not nullable property", "/nullable"), "Not nullable property", "/nullable"},
		{NewDefaultError("raw"), "raw", ""},
	}

	for _, tt := range tests {
		if got := Detail(tt.err); got != tt.detail {
			t.Errorf("Detail(%#v)=%q, expected %q", tt.err, got, tt.detail)
		}
		if got := Location(tt.err); got != tt.location {
			t.Errorf("Location(%#v)=%q, expected %q", tt.err, got, tt.location)
		}
	}
}

func TestWriteProblemContentType(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	problem := NewInternalError("req-123")
	WriteProblem(c, problem)

	contentType := w.Header().Get("Content-Type")
	if contentType != ContentTypeProblemJSON {
		t.Errorf("Expected Content-Type=%q, got %q", ContentTypeProblemJSON, contentType)
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status=%d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestWriteProblemRetryAfter(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	problem := NewRateLimitError("req-456", 120)
	WriteProblem(c, problem)

	retryAfterHeader := w.Header().Get("Retry-After")
	if retryAfterHeader != "120" {
		t.Errorf("Expected Retry-After header=%q, got %q", "120", retryAfterHeader)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal response body: %v", err)
	}
	if result["retry_after"] != float64(120) {
		t.Errorf("Expected retry_after in body=%d, got %v", 120, result["retry_after"])
	}
}

func TestWriteProblemNoRetryAfterWhenNil(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	WriteProblem(c, NewInternalError("req-789"))

	if retryAfterHeader := w.Header().Get("Retry-After"); retryAfterHeader != "" {
		t.Errorf("Expected no Retry-After header, got %q", retryAfterHeader)
	}
}

func TestNewInvalidRequestError(t *testing.T) {
	errs := []ProblemError{
		NewPointerError("Missing required property", "/name"),
		NewPointerError("Missing required property", "/date_of_birth"),
	}

	problem := NewInvalidRequestError("req-abc", errs)

	if problem.Type != TypeInvalidRequest {
		t.Errorf("Expected type=%q, got %q", TypeInvalidRequest, problem.Type)
	}
	if problem.Title != TitleInvalidRequest {
		t.Errorf("Expected title=%q, got %q", TitleInvalidRequest, problem.Title)
	}
	if problem.Status != http.StatusBadRequest {
		t.Errorf("Expected status=%d, got %d", http.StatusBadRequest, problem.Status)
	}
	if problem.Detail != DetailInvalidRequest {
		t.Errorf("Expected detail=%q, got %q", DetailInvalidRequest, problem.Detail)
	}
	if len(problem.Errors) != 2 {
		t.Errorf("Expected 2 errors, got %d", len(problem.Errors))
	}
}

func TestNewInvalidRequestErrorNeverEmpty(t *testing.T) {
	for _, errs := range [][]ProblemError{nil, {}} {
		problem := NewInvalidRequestError("req-abc", errs)
		if len(problem.Errors) != 1 {
			t.Fatalf("Expected 1 substituted error, got %d", len(problem.Errors))
		}
		if _, ok := problem.Errors[0].(DefaultError); !ok {
			t.Errorf("Expected a DefaultError, got %T", problem.Errors[0])
		}
	}
}

func TestNewInternalErrorHidesDetails(t *testing.T) {
	problem := NewInternalError("req-xyz")

	// The detail should be generic, not exposing internal error information
	expectedDetail := "An unexpected error occurred"
	if problem.Detail != expectedDetail {
		t.Errorf("Expected detail=%q, got %q", expectedDetail, problem.Detail)
	}
}

func TestNewNotFoundError(t *testing.T) {
	problem := NewNotFoundError("req-123", "Author", "0190d7c2-7b7e-7f1a-9d1c-2f4d1c7a9b10")

	if problem.Type != TypeNotFound {
		t.Errorf("Expected type=%q, got %q", TypeNotFound, problem.Type)
	}
	if problem.Status != http.StatusNotFound {
		t.Errorf("Expected status=%d, got %d", http.StatusNotFound, problem.Status)
	}
	if problem.Detail != "Author with ID '0190d7c2-7b7e-7f1a-9d1c-2f4d1c7a9b10' was not found" {
		t.Errorf("Unexpected detail: %q", problem.Detail)
	}
}

func TestProblemDetailsError(t *testing.T) {
	p1 := &ProblemDetails{
		Type:   TypeBadRequest,
		Title:  TitleBadRequest,
		Detail: "Custom error message",
	}
	if p1.Error() != "Custom error message" {
		t.Errorf("Expected Error()=%q, got %q", "Custom error message", p1.Error())
	}

	// Falls back to title
	p2 := &ProblemDetails{
		Type:  TypeBadRequest,
		Title: TitleBadRequest,
	}
	if p2.Error() != TitleBadRequest {
		t.Errorf("Expected Error()=%q, got %q", TitleBadRequest, p2.Error())
	}
}

func TestGetRequestID(t *testing.T) {
	// Test with request_id in gin context
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "ctx-req-123")

	requestID := GetRequestID(c)
	if requestID != "ctx-req-123" {
		t.Errorf("Expected request_id=%q, got %q", "ctx-req-123", requestID)
	}

	// Test with X-Request-ID header fallback
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest("GET", "/test", nil)
	c2.Request.Header.Set("X-Request-ID", "header-req-456")

	requestID2 := GetRequestID(c2)
	if requestID2 != "header-req-456" {
		t.Errorf("Expected request_id from header=%q, got %q", "header-req-456", requestID2)
	}

	// Test with neither (returns empty)
	c3, _ := gin.CreateTestContext(httptest.NewRecorder())
	c3.Request = httptest.NewRequest("GET", "/test", nil)

	requestID3 := GetRequestID(c3)
	if requestID3 != "" {
		t.Errorf("Expected empty request_id, got %q", requestID3)
	}
}
