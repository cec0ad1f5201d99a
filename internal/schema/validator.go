package schema

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
)

// Validator checks requests against a Contract.
// It is immutable once built and safe for concurrent use.
type Validator struct {
	contract  *Contract
	whitelist Whitelist
	levels    map[string]Level
}

// Option configures a Validator.
type Option func(*Validator)

// WithWhitelist replaces the default whitelist.
func WithWhitelist(prefixes ...string) Option {
	return func(v *Validator) {
		v.whitelist = append(Whitelist(nil), prefixes...)
	}
}

// WithLevel overrides the level assigned to messages with the given key.
func WithLevel(key string, level Level) Option {
	return func(v *Validator) {
		v.levels[key] = level
	}
}

// NewValidator builds a Validator. Additional-properties diagnostics are
// reported at info level, so unknown body properties are accepted.
func NewValidator(contract *Contract, opts ...Option) *Validator {
	v := &Validator{
		contract:  contract,
		whitelist: append(Whitelist(nil), DefaultWhitelist...),
		levels: map[string]Level{
			KeyBodyAdditionalProperties: LevelInfo,
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Whitelisted reports whether requests to path bypass validation.
func (v *Validator) Whitelisted(path string) bool {
	return v.whitelist.Matches(path)
}

// Check validates r and returns a *ValidationError holding the error-level
// messages, or nil when the request conforms or is whitelisted.
func (v *Validator) Check(r *http.Request) error {
	if v.Whitelisted(r.URL.Path) {
		return nil
	}

	var failures []RawMessage
	for _, m := range v.Validate(r) {
		if m.Level == LevelError {
			failures = append(failures, m)
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &ValidationError{Messages: failures}
}

// Validate returns every message produced for r, whatever its level.
// The request body is left readable for the handler.
func (v *Validator) Validate(r *http.Request) []RawMessage {
	route, pathParams, err := v.contract.router.FindRoute(r)
	if err != nil {
		return v.leveled([]RawMessage{routeMessage(r, err)})
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			MultiError:         true,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}

	err = openapi3filter.ValidateRequest(r.Context(), input)
	if err == nil {
		return nil
	}
	return v.leveled(collect(route, err, nil))
}

func (v *Validator) leveled(msgs []RawMessage) []RawMessage {
	for i := range msgs {
		if level, ok := v.levels[msgs[i].Key]; ok {
			msgs[i].Level = level
		} else {
			msgs[i].Level = LevelError
		}
	}
	return msgs
}

func routeMessage(r *http.Request, err error) RawMessage {
	if errors.Is(err, routers.ErrMethodNotAllowed) {
		return RawMessage{
			Key:  KeyOperationNotAllowed,
			Text: fmt.Sprintf("%s operation not allowed on path '%s'.", r.Method, r.URL.Path),
		}
	}
	return RawMessage{
		Key:  KeyPathMissing,
		Text: fmt.Sprintf("No API path found that matches request '%s'.", r.URL.Path),
	}
}

// collect flattens the (possibly nested) errors returned by openapi3filter.
func collect(route *routers.Route, err error, msgs []RawMessage) []RawMessage {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			msgs = collect(route, inner, msgs)
		}
		return msgs
	case *openapi3filter.RequestError:
		switch {
		case e.Parameter != nil:
			return append(msgs, parameterMessages(route, e)...)
		case e.RequestBody != nil:
			return append(msgs, bodyMessages(e)...)
		}
	}
	return append(msgs, RawMessage{Key: KeyUnknown, Text: err.Error()})
}
