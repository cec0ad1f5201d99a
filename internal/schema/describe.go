package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
)

var (
	missingPropertyReason     = regexp.MustCompile(`^property "(.*)" is missing$`)
	unsupportedPropertyReason = regexp.MustCompile(`^property "(.*)" is unsupported$`)
)

func parameterMessages(route *routers.Route, e *openapi3filter.RequestError) []RawMessage {
	p := e.Parameter
	in := Location(p.In)
	ctx := &Context{ParameterName: p.Name, ParameterLocation: in}

	switch {
	case errors.Is(e.Err, openapi3filter.ErrInvalidRequired):
		return []RawMessage{{
			Key: ParameterMissingKey(in),
			Text: fmt.Sprintf("%s parameter '%s' is required on path '%s' but not found in request.",
				locationTitle(in), p.Name, route.Path),
			Context: ctx,
		}}
	case errors.Is(e.Err, openapi3filter.ErrInvalidEmptyValue):
		return []RawMessage{{
			Key:     KeyParameterEmpty,
			Text:    fmt.Sprintf("Parameter '%s' is required but is missing.", p.Name),
			Context: ctx,
		}}
	}

	var parseErr *openapi3filter.ParseError
	if errors.As(e.Err, &parseErr) {
		return []RawMessage{{
			Key:     KeyParameterSchemaPrefix + "type",
			Text:    typeMismatch("string", parameterSchema(p)),
			Context: ctx,
		}}
	}

	var msgs []RawMessage
	for _, se := range schemaErrors(e.Err, nil) {
		msgs = append(msgs, RawMessage{
			Key:     KeyParameterSchemaPrefix + schemaField(se),
			Text:    describeSchemaError(se),
			Context: ctx,
		})
	}
	if len(msgs) == 0 {
		msgs = append(msgs, RawMessage{Key: KeyUnknown, Text: e.Error(), Context: ctx})
	}
	return msgs
}

func bodyMessages(e *openapi3filter.RequestError) []RawMessage {
	if errors.Is(e.Err, openapi3filter.ErrInvalidRequired) {
		return []RawMessage{{Key: KeyBodyMissing, Text: "A request body is required but none found."}}
	}

	if e.Err == nil && strings.HasPrefix(e.Reason, "header Content-Type") {
		return []RawMessage{{Key: KeyContentTypeNotAllowed, Text: contentTypeText(e)}}
	}

	var parseErr *openapi3filter.ParseError
	if errors.As(e.Err, &parseErr) {
		if parseErr.Kind == openapi3filter.KindUnsupportedFormat {
			return []RawMessage{{Key: KeyContentTypeNotAllowed, Text: contentTypeText(e)}}
		}
		reason := parseErr.Reason
		if parseErr.Cause != nil {
			reason = parseErr.Cause.Error()
		}
		return []RawMessage{{Key: KeyBodyInvalidJSON, Text: "Unable to parse JSON - " + reason}}
	}

	var msgs []RawMessage
	for _, se := range schemaErrors(e.Err, nil) {
		msgs = append(msgs, bodySchemaMessage(se))
	}
	if len(msgs) == 0 {
		msgs = append(msgs, RawMessage{Key: KeyUnknown, Text: e.Error()})
	}
	return msgs
}

func contentTypeText(e *openapi3filter.RequestError) string {
	contentType := e.Input.Request.Header.Get("Content-Type")
	allowed := make([]string, 0, len(e.RequestBody.Content))
	for mime := range e.RequestBody.Content {
		allowed = append(allowed, mime)
	}
	sort.Strings(allowed)
	return fmt.Sprintf("Request Content-Type header '%s' does not match any allowed types. Must be one of: %s.",
		contentType, strings.Join(allowed, ", "))
}

// schemaErrors flattens nested multi errors into their schema errors.
func schemaErrors(err error, out []*openapi3.SchemaError) []*openapi3.SchemaError {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			out = schemaErrors(inner, out)
		}
	case *openapi3.SchemaError:
		out = append(out, e)
	}
	return out
}

func bodySchemaMessage(se *openapi3.SchemaError) RawMessage {
	parts := se.JSONPointer()
	text := describeSchemaError(se)

	if se.SchemaField == "required" {
		// The pointer of a missing property error may end with the property
		// itself; the message is located at its parent object.
		if m := missingPropertyReason.FindStringSubmatch(se.Reason); m != nil {
			if n := len(parts); n > 0 && parts[n-1] == m[1] {
				parts = parts[:n-1]
			}
		}
	}

	pointer := toPointer(parts)
	if pointer != "" {
		text = fmt.Sprintf("[Path '%s'] %s", pointer, text)
	}

	return RawMessage{
		Key:     KeyBodySchemaPrefix + schemaField(se),
		Text:    text,
		Context: &Context{BodyPath: pointer},
	}
}

// schemaField classifies a schema error. A null instance of a non-nullable
// schema is a type mismatch.
func schemaField(se *openapi3.SchemaError) string {
	if se.SchemaField == "nullable" {
		return "type"
	}
	return se.SchemaField
}

func toPointer(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = strings.ReplaceAll(strings.ReplaceAll(p, "~", "~0"), "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}

// describeSchemaError renders a schema error with the literal found and
// expected values.
func describeSchemaError(se *openapi3.SchemaError) string {
	s := se.Schema
	if s == nil {
		return se.Reason
	}

	switch se.SchemaField {
	case "required":
		if m := missingPropertyReason.FindStringSubmatch(se.Reason); m != nil {
			return fmt.Sprintf(`Object has missing required properties (["%s"])`, m[1])
		}
	case "additionalProperties":
		if m := unsupportedPropertyReason.FindStringSubmatch(se.Reason); m != nil {
			return fmt.Sprintf(`Object instance has properties which are not allowed by the schema: ["%s"]`, m[1])
		}
	case "type", "nullable":
		return typeMismatch(instanceType(se.Value), s)
	case "minimum":
		if s.Min != nil {
			return fmt.Sprintf("Numeric instance is lower than the required minimum (minimum: %s, found: %s)",
				formatNumber(*s.Min), formatValue(se.Value))
		}
	case "maximum":
		if s.Max != nil {
			return fmt.Sprintf("Numeric instance is greater than the required maximum (maximum: %s, found: %s)",
				formatNumber(*s.Max), formatValue(se.Value))
		}
	case "multipleOf":
		if s.MultipleOf != nil {
			return fmt.Sprintf("Numeric instance is not a multiple of %s (found: %s)",
				formatNumber(*s.MultipleOf), formatValue(se.Value))
		}
	case "minLength":
		if v, ok := se.Value.(string); ok {
			return fmt.Sprintf(`String "%s" is too short (length: %d, required minimum: %d)`,
				v, len([]rune(v)), s.MinLength)
		}
	case "maxLength":
		if v, ok := se.Value.(string); ok && s.MaxLength != nil {
			return fmt.Sprintf(`String "%s" is too long (length: %d, maximum allowed: %d)`,
				v, len([]rune(v)), *s.MaxLength)
		}
	case "pattern":
		if v, ok := se.Value.(string); ok {
			return fmt.Sprintf(`ECMA 262 regex "%s" does not match input string "%s"`, s.Pattern, v)
		}
	case "format":
		if v, ok := se.Value.(string); ok {
			return formatMismatch(s.Format, v)
		}
	case "enum":
		return fmt.Sprintf("Instance value (%s) not found in enum (possible values: %s)",
			jsonText(se.Value), jsonText(s.Enum))
	case "minItems":
		if v, ok := se.Value.([]any); ok {
			return fmt.Sprintf("Array is too short: must have at least %d elements but instance has %d elements",
				s.MinItems, len(v))
		}
	case "maxItems":
		if v, ok := se.Value.([]any); ok && s.MaxItems != nil {
			return fmt.Sprintf("Array is too long: must have at most %d elements but instance has %d elements",
				*s.MaxItems, len(v))
		}
	case "uniqueItems":
		return "Array must not contain duplicate elements"
	}

	return se.Reason
}

func formatMismatch(format, value string) string {
	switch format {
	case "date":
		return fmt.Sprintf(`String "%s" is invalid against requested date format(s) yyyy-MM-dd`, value)
	case "date-time":
		return fmt.Sprintf(`String "%s" is invalid against requested date format(s) yyyy-MM-dd'T'HH:mm:ssZ`, value)
	case "uuid":
		return fmt.Sprintf(`Input string "%s" is not a valid UUID`, value)
	default:
		return fmt.Sprintf(`String "%s" is invalid against requested format "%s"`, value, format)
	}
}

func typeMismatch(found string, s *openapi3.Schema) string {
	return fmt.Sprintf("Instance type (%s) does not match any allowed primitive type (allowed: [%s])",
		found, allowedTypes(s))
}

func parameterSchema(p *openapi3.Parameter) *openapi3.Schema {
	if p.Schema == nil {
		return nil
	}
	return p.Schema.Value
}

func allowedTypes(s *openapi3.Schema) string {
	if s == nil || s.Type == nil {
		return ""
	}
	types := s.Type.Slice()
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = strconv.Quote(t)
	}
	return strings.Join(quoted, ",")
}

// instanceType names the JSON type of a decoded value. Integral numbers are
// reported as integer.
func instanceType(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case json.Number:
		if _, err := x.Int64(); err == nil {
			return "integer"
		}
		return "number"
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return "integer"
		}
		return "number"
	case int, int32, int64, uint, uint32, uint64:
		return "integer"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return formatNumber(x)
	case json.Number:
		return x.String()
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

func jsonText(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func locationTitle(in Location) string {
	switch in {
	case LocationQuery:
		return "Query"
	case LocationHeader:
		return "Header"
	case LocationPath:
		return "Path"
	case LocationCookie:
		return "Cookie"
	default:
		return string(in)
	}
}
