package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/hashicorp/go-retryablehttp"
)

// HTTP is a Transport backed by an [http.Client]. The RoundTripper chain is
// assembled by NewHTTP: base transport, then User-Agent, then throttle.
// Retries, when enabled, wrap the whole client.
type HTTP struct {
	c       *http.Client
	logger  *slog.Logger
	bufPool sync.Pool
}

// NewHTTP builds an HTTP transport. Without options it uses a fresh
// [http.Client] over [http.DefaultTransport].
func NewHTTP(optFns ...Option) (*HTTP, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying transport option: %w", err)
		}
	}

	t := &HTTP{
		logger: slog.Default(),
		bufPool: sync.Pool{New: newReadBuf},
	}
	if opts.logger != nil {
		t.logger = opts.logger
	}

	hc := &http.Client{}
	if opts.client != nil {
		cpy := *opts.client
		hc = &cpy
	}

	if opts.timeout != nil {
		hc.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var rt http.RoundTripper
	switch {
	case opts.rt != nil:
		rt = opts.rt
	case hc.Transport != nil:
		rt = hc.Transport
	default:
		rt = http.DefaultTransport
	}
	if opts.userAgent != "" {
		rt = userAgent{value: opts.userAgent, base: rt}
	}
	if opts.throttle != nil {
		throttled, err := NewThrottle(*opts.throttle, func() *slog.Logger { return t.logger }, rt)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		rt = throttled
	}
	hc.Transport = rt

	if opts.retry != nil {
		rc := retryablehttp.NewClient()
		rc.HTTPClient = hc
		rc.RetryMax = opts.retry.Max
		rc.RetryWaitMin = opts.retry.WaitMin
		rc.RetryWaitMax = opts.retry.WaitMax
		rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
		rc.Logger = nil
		if opts.logger != nil {
			rc.Logger = opts.logger
		}
		std := rc.StandardClient()
		std.CheckRedirect = hc.CheckRedirect
		hc = std
	}

	t.c = hc

	return t, nil
}

// Perform issues the call and streams the body into sink as it is read.
func (t *HTTP) Perform(ctx context.Context, req *Request, sink Sink) (Result, error) {
	if req == nil {
		return Result{}, ErrNilRequest
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	hreq, err := http.NewRequestWithContext(ctx, method(req), req.URL, body)
	if err != nil {
		return Result{}, fmt.Errorf("instantiating request: %w", err)
	}

	for k, v := range req.Headers {
		if http.CanonicalHeaderKey(k) == headerContentLength {
			continue
		}
		hreq.Header[k] = []string{v}
	}

	resp, err := t.c.Do(hreq)
	if err != nil {
		return Result{}, fmt.Errorf("exec http do: %w", err)
	}

	defer func() {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			t.logger.Error("failed to discard unused body", "error", err)
		}
		if err := resp.Body.Close(); err != nil {
			t.logger.Error("failed to close response body", "error", err)
		}
	}()

	res := Result{
		StatusCode: resp.StatusCode,
		Headers:    flatten(resp.Header),
	}

	if req.NoBody || sink == nil {
		return res, nil
	}

	if err := t.drain(resp.Body, sink); err != nil {
		return Result{}, fmt.Errorf("reading body: %w", err)
	}

	return res, nil
}

// CloseIdleConnections releases idle keep-alive connections held by the client.
func (t *HTTP) CloseIdleConnections() {
	t.c.CloseIdleConnections()
}

// drain hands every read from r to sink until EOF.
func (t *HTTP) drain(r io.Reader, sink Sink) error {
	return drainPooled(&t.bufPool, r, sink)
}

func readInto(r io.Reader, buf []byte, sink Sink) error {
	for {
		n, err := r.Read(buf)
		if n > 0 {
			sink(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
