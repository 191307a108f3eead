package transport

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-resty/resty/v2"
)

// Resty is a Transport backed by a go-resty client. Response bodies are
// left unparsed so they can be streamed into the sink.
type Resty struct {
	rc      *resty.Client
	bufPool sync.Pool
}

// NewResty wraps rc. A nil rc gets a fresh resty.New().
func NewResty(rc *resty.Client) *Resty {
	if rc == nil {
		rc = resty.New()
	}

	return &Resty{rc: rc, bufPool: sync.Pool{New: newReadBuf}}
}

func (t *Resty) Perform(ctx context.Context, req *Request, sink Sink) (Result, error) {
	if req == nil {
		return Result{}, ErrNilRequest
	}

	r := t.rc.R().
		SetContext(ctx).
		SetDoNotParseResponse(true)

	for k, v := range req.Headers {
		if http.CanonicalHeaderKey(k) == headerContentLength {
			continue
		}
		r.SetHeader(k, v)
	}

	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(method(req), req.URL)
	if err != nil {
		return Result{}, fmt.Errorf("exec resty: %w", err)
	}

	raw := resp.RawBody()
	defer func() {
		if raw != nil {
			_ = raw.Close()
		}
	}()

	res := Result{
		StatusCode: resp.StatusCode(),
		Headers:    flatten(resp.Header()),
	}

	if req.NoBody || sink == nil || raw == nil {
		return res, nil
	}

	if err := drainPooled(&t.bufPool, raw, sink); err != nil {
		return Result{}, fmt.Errorf("reading body: %w", err)
	}

	return res, nil
}

// CloseIdleConnections releases idle connections held by the resty client.
func (t *Resty) CloseIdleConnections() {
	t.rc.GetClient().CloseIdleConnections()
}
