package model

// ValidationError is a local field check failure. It is raised before any
// request is built.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Invalid builds a ValidationError
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
