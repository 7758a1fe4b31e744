package response

import "fmt"

// ServerError is returned for 5xx responses. The body is not inspected.
type ServerError struct {
	StatusCode int
	Host       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%d response from %s", e.StatusCode, e.Host)
}

// DecodeError wraps a malformed JSON body.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %d response body: %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
