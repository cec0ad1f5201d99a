package apierror

import (
	"encoding/json"
	"fmt"
	"strings"
)

// genericDetail replaces an empty detail so every error carries a message.
const genericDetail = "Invalid request"

// ProblemError is a single error reported inside a problem response.
// The set of implementations is closed: ParameterError, PointerError and DefaultError.
type ProblemError interface {
	problemError()
}

// ParameterError blames a named request parameter (query, header or path).
type ParameterError struct {
	Detail    string `json:"detail"`
	Parameter string `json:"parameter"`
}

// PointerError blames a location in the request body, addressed by a JSON pointer.
type PointerError struct {
	Detail  string `json:"detail"`
	Pointer string `json:"pointer"`
}

// DefaultError is an error that cannot be attributed to a parameter or body location.
type DefaultError struct {
	Detail string `json:"detail"`
}

func (ParameterError) problemError() {}
func (PointerError) problemError()   {}
func (DefaultError) problemError()   {}

// NewParameterError creates a ParameterError. An empty parameter name cannot be
// attributed, so the error degrades to a DefaultError.
func NewParameterError(detail, parameter string) ProblemError {
	if parameter == "" {
		return NewDefaultError(detail)
	}
	return ParameterError{Detail: detailOrGeneric(detail), Parameter: parameter}
}

// NewPointerError creates a PointerError. The pointer always starts with '/'.
func NewPointerError(detail, pointer string) ProblemError {
	if !strings.HasPrefix(pointer, "/") {
		pointer = "/" + pointer
	}
	return PointerError{Detail: detailOrGeneric(detail), Pointer: pointer}
}

// NewDefaultError creates a DefaultError.
func NewDefaultError(detail string) ProblemError {
	return DefaultError{Detail: detailOrGeneric(detail)}
}

// Detail returns the human-readable detail of any ProblemError.
func Detail(e ProblemError) string {
	switch v := e.(type) {
	case ParameterError:
		return v.Detail
	case PointerError:
		return v.Detail
	case DefaultError:
		return v.Detail
	default:
		panic(fmt.Sprintf("apierror: unknown problem error %T", e))
	}
}

// Location returns the parameter name or pointer an error is attributed to,
// or an empty string for a DefaultError.
func Location(e ProblemError) string {
	switch v := e.(type) {
	case ParameterError:
		return v.Parameter
	case PointerError:
		return v.Pointer
	case DefaultError:
		return ""
	default:
		panic(fmt.Sprintf("apierror: unknown problem error %T", e))
	}
}

func (e ParameterError) MarshalJSON() ([]byte, error) {
	return marshalProblemError(e)
}

func (e PointerError) MarshalJSON() ([]byte, error) {
	return marshalProblemError(e)
}

func (e DefaultError) MarshalJSON() ([]byte, error) {
	return marshalProblemError(e)
}

// marshalProblemError writes the wire shape of each variant. Only the
// attribute that applies to the variant is present.
func marshalProblemError(e ProblemError) ([]byte, error) {
	switch v := e.(type) {
	case ParameterError:
		return json.Marshal(struct {
			Detail    string `json:"detail"`
			Parameter string `json:"parameter"`
		}{v.Detail, v.Parameter})
	case PointerError:
		return json.Marshal(struct {
			Detail  string `json:"detail"`
			Pointer string `json:"pointer"`
		}{v.Detail, v.Pointer})
	case DefaultError:
		return json.Marshal(struct {
			Detail string `json:"detail"`
		}{v.Detail})
	default:
		return nil, fmt.Errorf("apierror: unknown problem error %T", e)
	}
}

func detailOrGeneric(detail string) string {
	if strings.TrimSpace(detail) == "" {
		return genericDetail
	}
	return detail
}
