package schema

import "strings"

// DefaultWhitelist lists the path prefixes that never go through validation:
// API documentation and operational endpoints.
var DefaultWhitelist = []string{"/swagger/", "/openapi.yml", "/api/doc/", "/health", "/metrics"}

// Whitelist is a set of path prefixes exempt from validation.
type Whitelist []string

// Matches reports whether path starts with any whitelisted prefix.
func (w Whitelist) Matches(path string) bool {
	for _, prefix := range w {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
