package service

import "errors"

// ErrServiceUnavailable is returned while the circuit breaker rejects calls.
var ErrServiceUnavailable = errors.New("service unavailable")
