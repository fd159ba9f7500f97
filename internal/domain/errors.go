package domain

import "fmt"

// InvalidInputError is returned when a request field cannot be used.
// It is a caller error and never stops the process.
type InvalidInputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidInputError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Cause != nil {
		return "invalid input: " + msg + ": " + e.Cause.Error()
	}
	return "invalid input: " + msg
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// NewInvalidInput builds an InvalidInputError with a formatted message.
func NewInvalidInput(field, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConfigurationError is returned when tax rules fail validation at load.
// The engine must not serve requests with rules that produced one.
type ConfigurationError struct {
	Table   string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	prefix := "configuration"
	if e.Table != "" {
		prefix = "configuration: " + e.Table
	}
	if e.Cause != nil {
		return prefix + ": " + e.Message + ": " + e.Cause.Error()
	}
	return prefix + ": " + e.Message
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}
