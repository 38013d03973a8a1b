package domain

import "fmt"

// ValidationError reports malformed input on a single field.
// Validation always happens before any disk access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
