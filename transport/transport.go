// Package transport defines the collaborator that performs the actual
// network call for a [github.com/adamwoolhether/restpipe/client.Client],
// along with implementations built on [net/http] and go-resty.
package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
)

// headerContentLength is dropped from outgoing header sets,
// net/http derives it from the body.
const headerContentLength = "Content-Length"

// readBufSize is the largest chunk handed to a Sink in one call.
const readBufSize = 32 << 10

var (
	// ErrNilRequest is returned by Perform when given a nil *Request.
	ErrNilRequest = errors.New("request must not be nil")
)

// Request is everything a Transport needs to issue one call.
type Request struct {
	URL string
	// Method is the verb to use. Empty means the transport default (GET).
	Method  string
	Headers map[string]string
	// Body is sent as-is when non-nil.
	Body []byte
	// NoBody suppresses reading of the response body.
	NoBody bool
}

// Result is the outcome of a call that reached the server.
type Result struct {
	StatusCode int
	Headers    map[string]string
}

// Sink receives response bytes incrementally, in arrival order.
// p is only valid for the duration of the call.
type Sink func(p []byte)

// Transport performs an HTTP call, delivering body bytes to sink as they
// arrive. A non-nil error means no usable status was obtained.
type Transport interface {
	Perform(ctx context.Context, req *Request, sink Sink) (Result, error)
}

// Func adapts a plain function to the Transport interface.
type Func func(ctx context.Context, req *Request, sink Sink) (Result, error)

func (f Func) Perform(ctx context.Context, req *Request, sink Sink) (Result, error) {
	return f(ctx, req, sink)
}

// flatten keeps the first value of every header key, as received.
func flatten(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}

	return out
}

func method(req *Request) string {
	if req.Method == "" {
		return http.MethodGet
	}

	return req.Method
}

func newReadBuf() any {
	b := make([]byte, readBufSize)
	return &b
}

// drainPooled reads r into sink using a buffer borrowed from pool.
func drainPooled(pool *sync.Pool, r io.Reader, sink Sink) error {
	bp := pool.Get().(*[]byte)
	defer pool.Put(bp)

	return readInto(r, *bp, sink)
}
