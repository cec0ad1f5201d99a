package schema

import (
	"fmt"
	"strings"
)

// ValidationError is returned when a request violates the contract.
// Messages holds the error-level messages only.
type ValidationError struct {
	Messages []RawMessage
}

func (e *ValidationError) Error() string {
	texts := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		texts = append(texts, m.Text)
	}
	return fmt.Sprintf("request does not match the contract: %s", strings.Join(texts, "; "))
}
