package parsing

import "fmt"

// ParseError represents a single value that could not be coerced to its typed form
type ParseError struct {
	Value   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s (%q): %v", e.Message, e.Value, e.Cause)
	}
	return fmt.Sprintf("parse error: %s (%q)", e.Message, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
