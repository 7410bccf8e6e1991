package ingestion

import (
	"fmt"
	"strings"
)

// SchemaError means the export does not match the expected table layout.
// It is fatal: the pipeline cannot proceed with an incompatible export.
type SchemaError struct {
	Message string
	Missing []string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("schema error: %s: missing columns %s", e.Message, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("schema error: %s", e.Message)
}

// LoadError represents an error reading or parsing an export document
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error for %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
