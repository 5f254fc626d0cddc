package proxy

import (
	"github.com/pkg/errors"
)

// Source selects the part of a request a Validator checks.
type Source string

const (
	// SourceBody validates the json body, nil when the body is not json.
	SourceBody Source = "body"
	// SourceQuery validates the single value query string parameters.
	SourceQuery Source = "query"
	// SourcePath validates the path parameters.
	SourcePath Source = "path"
)

// Validator is the capability a schema validation library is wrapped in. On
// success it returns the, possibly transformed, validated value. Adapters
// should report rejected values with a ValidationError.
type Validator[T any] interface {
	Validate(value interface{}) (T, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc[T any] func(value interface{}) (T, error)

// Validate calls f(value).
func (f ValidatorFunc[T]) Validate(value interface{}) (T, error) {
	return f(value)
}

// Validate resolves the data for source from req and checks it with v.
//
// Errors resolving the data, such as a BodyParseError, are returned as is. Any
// error returned by v is returned as a ValidationError: errors that already
// are one are returned unchanged, all others are wrapped with their message as
// the reason and themselves as the details.
func Validate[T any](req Request, v Validator[T], source Source) (T, error) {
	var zero T

	value, err := req.Source(source)
	if err != nil {
		return zero, err
	}

	out, err := v.Validate(value)
	if err != nil {
		return zero, asValidationError(err)
	}

	return out, nil
}

func asValidationError(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}

	return &ValidationError{Reason: err.Error(), Details: err, Err: err}
}
