package pkg

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across layers.  Handlers map these to HTTP status
// codes; the orchestrator maps them to degraded results instead of failing
// the request.
var (
	// ErrNotFound indicates the patient record is absent.  Context
	// aggregation degrades to an empty context rather than surfacing it.
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable indicates the completion service failed after
	// exhausting retries.  Callers substitute a fixed unavailable message.
	ErrServiceUnavailable = errors.New("completion service unavailable")
)

// ValidationError rejects malformed or oversized input before any context or
// model work happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validatef builds a ValidationError for the given field.
func Validatef(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
