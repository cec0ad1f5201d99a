package schema

import (
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
)

var registerFormats sync.Once

// RegisterFormats installs the string format checkers used by the contract.
// Format validators are global in kin-openapi, so this runs once per process.
func RegisterFormats() {
	registerFormats.Do(func() {
		openapi3.DefineStringFormatValidator("uuid", openapi3.NewCallbackValidator(func(s string) error {
			_, err := uuid.Parse(s)
			return err
		}))
		openapi3.DefineStringFormatValidator("date", openapi3.NewCallbackValidator(func(s string) error {
			_, err := time.Parse(time.DateOnly, s)
			return err
		}))
	})
}
