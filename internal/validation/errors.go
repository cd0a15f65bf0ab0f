package validation

import (
	"fmt"
	"strings"
)

// Violation is a field-scoped validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries every violation found in one validation pass.
type Error struct {
	Violations []Violation
}

func newError(violations ...Violation) *Error {
	return &Error{Violations: violations}
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
