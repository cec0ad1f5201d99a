package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUUID indicates the string is not a valid UUID format
var ErrInvalidUUID = errors.New("invalid UUID format")

// NewID returns a time ordered UUIDv7, falling back to a random UUIDv4 when
// the clock sequence cannot be read.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// ParseID parses a resource ID taken from a request path.
func ParseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidUUID, err)
	}
	return parsed, nil
}
