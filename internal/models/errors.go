package models

import "fmt"

// ValidationError reports recoverable bad input: a room with non-positive
// dimensions, an answer recorded beyond the script length, or an unknown
// damage type. It is returned to the immediate caller and never results in a
// partial write to the project aggregate.
type ValidationError struct {
	Field  string // Input field or parameter that failed validation
	Reason string // Human-readable reason
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
