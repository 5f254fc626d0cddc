package proxy

import (
	"github.com/pkg/errors"
)

// ErrUnsupportedEvent is returned when an event does not carry the
// discriminating fields of the expected api gateway payload version.
var ErrUnsupportedEvent = errors.New("unsupported api gateway event")

// BodyParseError reports a request body that could not be decoded according to
// its content type.
type BodyParseError struct {
	Reason string
	Err    error
}

func (e *BodyParseError) Error() string {
	return "failed parsing request body: " + e.Reason
}

func (e *BodyParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports data rejected by a Validator. Details holds the
// validator specific payload, usually a list of field level issues.
type ValidationError struct {
	Reason  string
	Details interface{}
	Err     error
}

// NewValidationError returns a ValidationError for the given reason and
// details. Validator adapters use it to report rejected values.
func NewValidationError(reason string, details interface{}) *ValidationError {
	return &ValidationError{Reason: reason, Details: details}
}

func (e *ValidationError) Error() string {
	return "request validation failed: " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
