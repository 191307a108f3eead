// Package transporttest provides a scripted in-memory Transport for tests.
package transporttest

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/adamwoolhether/restpipe/transport"
)

// Fake replays a fixed outcome for every call and records each request it
// receives. It is safe for concurrent use.
type Fake struct {
	// Chunks are delivered to the sink in order, one call per element.
	Chunks     []string
	StatusCode int
	Headers    map[string]string
	// Err, when set, is returned after Chunks have been delivered.
	Err error

	mu   sync.Mutex
	reqs []transport.Request
}

// Perform implements transport.Transport.
func (f *Fake) Perform(_ context.Context, req *transport.Request, sink transport.Sink) (transport.Result, error) {
	cpy := *req
	cpy.Headers = maps.Clone(req.Headers)
	cpy.Body = slices.Clone(req.Body)

	f.mu.Lock()
	f.reqs = append(f.reqs, cpy)
	f.mu.Unlock()

	if !req.NoBody && sink != nil {
		for _, c := range f.Chunks {
			sink([]byte(c))
		}
	}

	if f.Err != nil {
		return transport.Result{}, f.Err
	}

	return transport.Result{
		StatusCode: f.StatusCode,
		Headers:    maps.Clone(f.Headers),
	}, nil
}

// Requests returns copies of every request received so far.
func (f *Fake) Requests() []transport.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.reqs)
}

// Last returns the most recent request, or false if none was received.
func (f *Fake) Last() (transport.Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.reqs) == 0 {
		return transport.Request{}, false
	}

	return f.reqs[len(f.reqs)-1], true
}
