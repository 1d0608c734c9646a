package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures: connection refused, DNS,
// timeouts. The caller cannot tell whether the request was processed.
var ErrUnavailable = errors.New("server unavailable")

// Error is an HTTP-level rejection carrying the status code and the
// server-provided detail text, when present.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// AsError unwraps err into *Error if it is an HTTP-level rejection.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
