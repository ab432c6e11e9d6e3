package backend

import (
	"errors"
	"fmt"
	"strings"
)

// StatusError indicates the backend answered with a non-2xx status. Body is
// the raw response text, which callers classify.
type StatusError struct {
	Op         Op
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, body)
}

// TransportError indicates the request never produced a response.
type TransportError struct {
	Op  Op
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError indicates a 2xx response whose payload could not be used.
type DecodeError struct {
	Op  Op
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Body returns the response body of a failed call. Calls that never got a
// response have no body.
func Body(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Body
	}
	return ""
}

// StatusCode returns the HTTP status of a status error, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
