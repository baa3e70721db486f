// Package validate defines the structured validation error reported to
// callers for missing or out-of-range request fields.
package validate

import "fmt"

// Error names the offending field and what was wrong with it. Handlers
// map it to a 400 response; it never indicates an internal fault.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errorf builds an Error for a field.
func Errorf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}
