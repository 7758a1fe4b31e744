package message

import (
	"errors"
	"fmt"
)

// ErrUnsupportedKind is returned for kinds the platform defines but this package does not build.
var ErrUnsupportedKind = errors.New("message kind not yet supported")

// ValidationError reports caller input that cannot produce a valid message.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func required(field string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s required", field)}
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
