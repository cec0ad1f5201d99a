package constraint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
)

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	indexSuffix     = regexp.MustCompile(`\[(\d+)\]`)
)

// ToProblemErrors converts violations, in order, to problem errors.
func ToProblemErrors(violations []Violation) []apierror.ProblemError {
	errs := make([]apierror.ProblemError, 0, len(violations))
	for _, v := range violations {
		errs = append(errs, ToProblemError(v))
	}
	return errs
}

// ToProblemError converts a single violation. Field violations become pointer
// errors located at the snake_case field path; object violations use their
// pointer when they have one.
func ToProblemError(v Violation) apierror.ProblemError {
	switch {
	case v.Field != "":
		return apierror.NewPointerError(fieldDetail(v), FieldPointer(v.Field))
	case v.Pointer != "":
		return apierror.NewPointerError(v.Message, v.Pointer)
	default:
		return apierror.NewDefaultError(v.Message)
	}
}

func fieldDetail(v Violation) string {
	switch value := v.Value.(type) {
	case nil:
		return v.Message
	case string:
		return fmt.Sprintf(`String "%s" %s`, value, v.Message)
	default:
		return fmt.Sprintf(`"%v" %s`, value, v.Message)
	}
}

// FieldPointer converts a property path to a JSON pointer:
// "Details[1].Language" becomes "/details/1/language".
func FieldPointer(path string) string {
	path = indexSuffix.ReplaceAllString(path, ".$1")

	var b strings.Builder
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			continue
		}
		b.WriteString("/")
		b.WriteString(SnakeCase(segment))
	}
	return b.String()
}

// SnakeCase converts a Go identifier to snake_case. Acronyms stay together:
// "HTTPServer" becomes "http_server" and "AuthorID" becomes "author_id".
func SnakeCase(s string) string {
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = wordBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
