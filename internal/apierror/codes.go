package apierror

// Problem type URIs following the /problems/* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeInvalidRequest indicates the request does not match the API contract (400)
	TypeInvalidRequest = "/problems/invalid-request"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "/problems/not-found"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "/problems/rate-limit"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "/problems/internal"

	// TypeBadRequest indicates a malformed request the contract could not describe (400)
	TypeBadRequest = "/problems/bad-request"
)

// Titles for each problem type - human-readable summaries
const (
	TitleInvalidRequest = "Request validation error"
	TitleNotFound       = "Resource Not Found"
	TitleRateLimit      = "Rate Limit Exceeded"
	TitleInternal       = "Internal Server Error"
	TitleBadRequest     = "Bad Request"
)

// DetailInvalidRequest is the fixed detail of every invalid-request problem.
const DetailInvalidRequest = "Request parameters or body are invalid compared to the specification. See errors for more information"
