package client

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is the sentinel wrapped by every [TransportError].
	ErrTransport = errors.New("transport failure")
	// ErrInvalidRequest is joined with ErrTransport when the request context
	// fails validation after request interception.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrDecode is returned by [Response.JSON] and [Response.Decode] when
	// the body is not valid JSON.
	ErrDecode = errors.New("decoding body")
)

// TransportError is recorded in [BaseResult.Err] when a call produced no
// HTTP status.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", ErrTransport, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}
