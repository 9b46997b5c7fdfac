package errors

import (
	"fmt"
	"maps"
	"net/http"
)

// ValidationError reports per-field input problems. It satisfies AppError and
// additionally exposes the field→message map for the response body.
type ValidationError struct {
	object string
	fields map[string]string
}

// NewValidationError creates a ValidationError for the named input object.
func NewValidationError(object string, fields map[string]string) *ValidationError {
	return &ValidationError{
		object: object,
		fields: fields,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message()
}

// Is makes errors.Is(err, ErrValidationFailed) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return ErrValidationFailed.ErrorCode()
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return fmt.Sprintf("Validation failed for object='%s'. Error count: %d", e.object, len(e.fields))
}

// Details returns detailed error information
func (e *ValidationError) Details() string {
	return ""
}

// Fields returns a copy of the field→message map.
func (e *ValidationError) Fields() map[string]string {
	return maps.Clone(e.fields)
}
