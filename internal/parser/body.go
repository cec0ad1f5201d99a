package parser

import (
	"regexp"
	"strings"

	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
	"github.com/JonnyWalker81/librarium/backend/internal/schema"
)

const (
	detailMissingProperty = "Missing required property"
	detailNotNullable     = "Not nullable property"
)

var (
	requiredPropertyPattern = regexp.MustCompile(`^(\[Path '(.*)'\] )?Object has missing required properties \(\["(.*)"\]\)$`)
	nullInstancePattern     = regexp.MustCompile(`^\[Path '(.*)'\] Instance type \(null\) does not match any allowed primitive type \(allowed: \[(.*)\]\)$`)
	pathPrefixPattern       = regexp.MustCompile(`^\[Path '(.*)'\] (.*)$`)
)

// RequiredBodyProperty reports a missing body property at
// <parent pointer>/<property>.
func RequiredBodyProperty() Parser {
	return &patternParser{
		name:    "required-body-property",
		order:   OrderRequiredBodyProperty,
		pattern: requiredPropertyPattern,
		accept: func(msg schema.RawMessage) bool {
			return msg.Key == schema.KeyBodyRequired
		},
		extract: func(groups []string) []apierror.ProblemError {
			parent := strings.TrimSuffix(groups[2], pointerDelimiter)
			return []apierror.ProblemError{
				apierror.NewPointerError(detailMissingProperty, parent+pointerDelimiter+groups[3]),
			}
		},
	}
}

// NonNullableBodyElement reports a null value sent for a non-nullable body element.
func NonNullableBodyElement() Parser {
	return &patternParser{
		name:    "non-nullable-body-element",
		order:   OrderNonNullableBodyElement,
		pattern: nullInstancePattern,
		accept: func(msg schema.RawMessage) bool {
			return msg.Key == schema.KeyBodyType && nullInstancePattern.MatchString(msg.Text)
		},
		extract: func(groups []string) []apierror.ProblemError {
			return []apierror.ProblemError{apierror.NewPointerError(detailNotNullable, groups[1])}
		},
	}
}

// Default accepts every message. A "[Path '<pointer>'] <reason>" text becomes
// a PointerError, anything else a DefaultError with the raw text.
func Default() Parser {
	return defaultInstance
}

type defaultParser struct {
	patternParser
}

var defaultInstance = &defaultParser{patternParser{
	name:    "default",
	order:   unordered,
	pattern: pathPrefixPattern,
	accept:  always,
	extract: func(groups []string) []apierror.ProblemError {
		return []apierror.ProblemError{apierror.NewPointerError(groups[2], groups[1])}
	},
}}
