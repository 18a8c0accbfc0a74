package services

import (
	"errors"
	"fmt"
)

// Request-scoped error kinds the controllers translate to statuses.
// Nothing in here is treated as fatal to the process.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrGenerationTimeout = errors.New("generation request timed out")
)

// GenerationParseError means the generation service answered with something
// that is not JSON. The raw body is kept so the caller can show or log it.
type GenerationParseError struct {
	Raw string
	Err error
}

func (e *GenerationParseError) Error() string {
	return fmt.Sprintf("generation output is not valid JSON: %v", e.Err)
}

func (e *GenerationParseError) Unwrap() error { return e.Err }
