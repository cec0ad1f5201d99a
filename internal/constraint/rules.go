package constraint

import (
	"fmt"
	"strings"
	"time"
)

// Rule is a named cross-field check over values of type T.
type Rule[T any] struct {
	// Name identifies the rule in violations and logs.
	Name string
	// Pointer locates object level violations in the request body.
	// Empty means they cannot be attributed to a body location.
	Pointer string

	check func(T) []Violation
}

// NewRule builds a Rule from an arbitrary check.
func NewRule[T any](name, pointer string, check func(T) []Violation) Rule[T] {
	return Rule[T]{Name: name, Pointer: pointer, check: check}
}

// Check runs the rule. Object level violations inherit the rule's pointer.
func (r Rule[T]) Check(value T) []Violation {
	if r.check == nil {
		return nil
	}
	violations := r.check(value)
	for i := range violations {
		violations[i].Rule = r.Name
		if violations[i].Field == "" && violations[i].Pointer == "" {
			violations[i].Pointer = r.Pointer
		}
	}
	return violations
}

// Ordered requires end to be strictly after start. The rule passes when
// either bound is absent.
func Ordered[T any](name, pointer, message string, start, end func(T) *time.Time) Rule[T] {
	return NewRule(name, pointer, func(v T) []Violation {
		s, e := start(v), end(v)
		if s == nil || e == nil || e.After(*s) {
			return nil
		}
		return []Violation{{Message: message}}
	})
}

// UniqueBy rejects the first element of list whose key was already seen.
// The violation is located at the second occurrence: <list>[i].<keyField>.
func UniqueBy[T, E any, K comparable](name, list, keyField, message string, items func(T) []E, key func(E) K) Rule[T] {
	return NewRule(name, "", func(v T) []Violation {
		seen := make(map[K]struct{})
		for i, item := range items(v) {
			k := key(item)
			if _, dup := seen[k]; dup {
				return []Violation{{
					Field:   fmt.Sprintf("%s[%d].%s", list, i, keyField),
					Value:   k,
					Message: message,
				}}
			}
			seen[k] = struct{}{}
		}
		return nil
	})
}

// RequiredIf requires dependent to be non-blank whenever flag is true.
func RequiredIf[T any](name, pointer, message string, flag func(T) bool, dependent func(T) *string) Rule[T] {
	return NewRule(name, pointer, func(v T) []Violation {
		if !flag(v) {
			return nil
		}
		if d := dependent(v); d == nil || strings.TrimSpace(*d) == "" {
			return []Violation{{Message: message}}
		}
		return nil
	})
}

// ExpectedSequence requires the discriminators of list to follow expected,
// element by element. The first mismatch fails the rule, and so does a list
// shorter than expected. Elements past the expected sequence are not checked.
func ExpectedSequence[T, E any](name, list, discriminatorField string, expected []string, items func(T) []E, discriminator func(E) string) Rule[T] {
	return NewRule(name, "", func(v T) []Violation {
		elems := items(v)
		for i, want := range expected {
			if i >= len(elems) {
				return []Violation{{
					Field:   list,
					Message: fmt.Sprintf("must contain %d elements, missing %s", len(expected), want),
				}}
			}
			if got := discriminator(elems[i]); got != want {
				return []Violation{{
					Field:   fmt.Sprintf("%s[%d].%s", list, i, discriminatorField),
					Value:   got,
					Message: fmt.Sprintf("must be %s", want),
				}}
			}
		}
		return nil
	})
}
