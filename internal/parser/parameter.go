package parser

import (
	"github.com/JonnyWalker81/librarium/backend/internal/apierror"
	"github.com/JonnyWalker81/librarium/backend/internal/schema"
)

const (
	detailMissingQueryParameter = "Missing required query parameter"
	detailMissingHeader         = "Missing required header"
)

// RequiredParameter reports an absent or empty required query parameter or header.
func RequiredParameter() Parser {
	return requiredParameterParser{}
}

type requiredParameterParser struct{}

func (requiredParameterParser) CanParse(msg schema.RawMessage) bool {
	_, in, ok := msg.Parameter()
	if !ok || !schema.IsParameterMissing(msg.Key) {
		return false
	}
	return in == schema.LocationQuery || in == schema.LocationHeader
}

func (requiredParameterParser) ExtractErrors(msg schema.RawMessage) []apierror.ProblemError {
	name, in, _ := msg.Parameter()
	detail := detailMissingQueryParameter
	if in == schema.LocationHeader {
		detail = detailMissingHeader
	}
	return []apierror.ProblemError{apierror.NewParameterError(detail, name)}
}

func (requiredParameterParser) Order() int { return OrderRequiredParameter }

func (requiredParameterParser) String() string { return "required-parameter" }

// ParameterConstraint attributes any other parameter message to its
// parameter, keeping the validator's text as detail.
func ParameterConstraint() Parser {
	return parameterConstraintParser{}
}

type parameterConstraintParser struct{}

func (parameterConstraintParser) CanParse(msg schema.RawMessage) bool {
	_, _, ok := msg.Parameter()
	return ok
}

func (parameterConstraintParser) ExtractErrors(msg schema.RawMessage) []apierror.ProblemError {
	name, _, _ := msg.Parameter()
	return []apierror.ProblemError{apierror.NewParameterError(msg.Text, name)}
}

func (parameterConstraintParser) Order() int { return OrderParameterConstraint }

func (parameterConstraintParser) String() string { return "parameter-constraint" }
