package constraint

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Evaluator checks struct tag constraints. It is safe for concurrent use.
type Evaluator struct {
	validate *validator.Validate
}

// NewEvaluator returns an Evaluator reading `validate` tags, with the
// notblank validator registered.
func NewEvaluator() *Evaluator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("constraint: register notblank: %v", err))
	}
	return &Evaluator{validate: v}
}

// Validate checks the struct tags of value and then every rule, collecting
// all violations. It returns a *ValidationError when any constraint fails.
func Validate[T any](e *Evaluator, value T, rules ...Rule[T]) error {
	var violations []Violation

	if err := e.validate.Struct(value); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("constraint: %w", err)
		}
		for _, fe := range fieldErrs {
			violations = append(violations, fieldViolation(fe))
		}
	}

	for _, rule := range rules {
		violations = append(violations, rule.Check(value)...)
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func fieldViolation(fe validator.FieldError) Violation {
	return Violation{
		Rule:    fe.Tag(),
		Field:   fieldPath(fe.StructNamespace()),
		Value:   rejectedValue(fe.Value()),
		Message: tagMessage(fe),
	}
}

// fieldPath drops the root struct name from a namespace:
// "BookReferencingRequest.Details[1].Language" becomes "Details[1].Language".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// rejectedValue keeps scalar values worth echoing back to the client.
func rejectedValue(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.Interface()
	default:
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		return nil
	}
}

func tagMessage(fe validator.FieldError) string {
	sized := fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "notblank":
		return "must not be blank"
	case "min", "gte":
		if sized {
			return fmt.Sprintf("size must be at least %s", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max", "lte":
		if sized {
			return fmt.Sprintf("size must be at most %s", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "len":
		return fmt.Sprintf("size must be %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "unique":
		return "must not contain duplicate elements"
	case "uuid", "uuid4", "uuid7":
		return "must be a valid UUID"
	case "bcp47_language_tag", "iso3166_1_alpha2":
		return "must be a valid language code"
	default:
		return fmt.Sprintf("failed on the '%s' constraint", fe.Tag())
	}
}
