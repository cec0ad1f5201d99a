// Package constraint checks field level constraints declared as struct tags
// and cross-field rules declared as typed Rule values.
package constraint

import (
	"fmt"
	"strings"
)

// Violation is a single failed constraint.
type Violation struct {
	// Rule is the tag or rule name that failed.
	Rule string
	// Field is the property path of the offending field, using Go field
	// names and list indexes ("Details[1].Language"). Empty for violations
	// about the object as a whole.
	Field string
	// Value is the rejected value, nil when there is none to show.
	Value any
	// Message describes the failure.
	Message string
	// Pointer locates an object level violation in the request body.
	Pointer string
}

// ValidationError is returned when a value violates at least one constraint.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Field != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
		} else {
			parts = append(parts, v.Message)
		}
	}
	return "constraint violations: " + strings.Join(parts, "; ")
}
