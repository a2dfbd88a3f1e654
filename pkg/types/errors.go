package types

import "errors"

// ValidationError reports a field value that failed its format rule.
// The message is meant for the end user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Field validation errors. Match with errors.Is, or errors.As for any
// *ValidationError.
var (
	ErrInvalidPhone    = &ValidationError{Message: "Incorrect phone format"}
	ErrInvalidBirthday = &ValidationError{Message: "Incorrect date format. Use DD.MM.YYYY."}
)

// Lookup errors.
var (
	ErrNotFound = errors.New("contact not found")
)
