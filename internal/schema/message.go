// Package schema validates incoming HTTP requests against the OpenAPI
// contract and reports every deviation as a RawMessage.
package schema

import (
	"fmt"
	"strings"
)

// Level is the severity assigned to a message. Only LevelError rejects a request.
type Level int

const (
	LevelIgnore Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelIgnore:
		return "ignore"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a level name, as returned by Level.String, to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore":
		return LevelIgnore, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelError, fmt.Errorf("unknown validation level %q", s)
	}
}

// Location is where a request parameter lives.
type Location string

const (
	LocationQuery  Location = "query"
	LocationHeader Location = "header"
	LocationPath   Location = "path"
	LocationCookie Location = "cookie"
)

// Message keys. They classify a message independently of its text.
const (
	KeyPathMissing           = "validation.request.path.missing"
	KeyOperationNotAllowed   = "validation.request.operation.notAllowed"
	KeyParameterEmpty        = "validation.request.parameter.missing"
	KeyBodyMissing           = "validation.request.body.missing"
	KeyBodyInvalidJSON       = "validation.request.body.schema.invalidJson"
	KeyContentTypeNotAllowed = "validation.request.contentType.notAllowed"
	KeyUnknown               = "validation.request.unknown"

	KeyBodySchemaPrefix      = "validation.request.body.schema."
	KeyParameterSchemaPrefix = "validation.request.parameter.schema."

	KeyBodyRequired             = KeyBodySchemaPrefix + "required"
	KeyBodyType                 = KeyBodySchemaPrefix + "type"
	KeyBodyAdditionalProperties = KeyBodySchemaPrefix + "additionalProperties"

	KeyQueryParameterMissing  = "validation.request.parameter.query.missing"
	KeyHeaderParameterMissing = "validation.request.parameter.header.missing"
	KeyPathParameterMissing   = "validation.request.parameter.path.missing"
)

// ParameterMissingKey returns the key reported when a required parameter at
// the given location is absent.
func ParameterMissingKey(in Location) string {
	return "validation.request.parameter." + string(in) + ".missing"
}

// IsParameterMissing reports whether key flags an absent or empty parameter.
func IsParameterMissing(key string) bool {
	if key == KeyParameterEmpty {
		return true
	}
	return strings.HasPrefix(key, "validation.request.parameter.") &&
		strings.HasSuffix(key, ".missing") &&
		!strings.HasPrefix(key, KeyParameterSchemaPrefix)
}

// Context identifies the request element a message is about.
type Context struct {
	ParameterName     string
	ParameterLocation Location
	// BodyPath is the JSON pointer of the offending body element, if any.
	BodyPath string
}

// RawMessage is a single validation message.
type RawMessage struct {
	Level   Level
	Key     string
	Text    string
	Context *Context
}

// String implements fmt.Stringer.
func (m RawMessage) String() string {
	return fmt.Sprintf("%s %s: %s", m.Level, m.Key, m.Text)
}

// Parameter returns the parameter name and location of the message, if it has one.
func (m RawMessage) Parameter() (string, Location, bool) {
	if m.Context == nil || m.Context.ParameterName == "" {
		return "", "", false
	}
	return m.Context.ParameterName, m.Context.ParameterLocation, true
}
