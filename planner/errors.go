package planner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrGenerationFailed covers exhausted retries against the model API.
	ErrGenerationFailed = errors.New("itinerary generation failed")
	// ErrParseFailure means the model response contained no usable day plan.
	ErrParseFailure = errors.New("unusable model response")
	// ErrNotFound is returned by Store implementations for absent or
	// deleted itineraries.
	ErrNotFound = errors.New("itinerary not found")
)

// FieldError describes a single invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors carries every violated field, not just the first.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "invalid trip request: " + strings.Join(parts, "; ")
}
