package client

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/restpipe/client/task"
	"github.com/adamwoolhether/restpipe/transport"
)

const tracerName = "github.com/adamwoolhether/restpipe/client"

// Client runs every verb, in every execution mode, through one request
// pipeline over a [transport.Transport].
type Client struct {
	transport transport.Transport
	runner    *task.Runner
	logger    *slog.Logger
	tracer    trace.Tracer

	reqInt  atomic.Pointer[requestSlot]
	respInt atomic.Pointer[responseSlot]

	closeOnce sync.Once
}

// Build creates a [Client] from the given options. Without WithTransport,
// an [transport.HTTP] transport is built from the HTTP-level options.
func Build(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	c := &Client{
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}

	if opts.logger != nil {
		c.logger = opts.logger
	}

	if opts.tracer != nil {
		c.tracer = opts.tracer
	}

	switch {
	case opts.transport != nil && len(opts.httpOpts) > 0:
		return nil, errors.New("http transport options cannot be combined with a custom transport")
	case opts.transport != nil:
		c.transport = opts.transport
	default:
		ht, err := transport.NewHTTP(append(opts.httpOpts, transport.WithLogger(c.logger))...)
		if err != nil {
			return nil, fmt.Errorf("configuring transport: %w", err)
		}
		c.transport = ht
	}

	runner, err := task.NewRunner(opts.workers, c.logger)
	if err != nil {
		return nil, fmt.Errorf("configuring workers: %w", err)
	}
	c.runner = runner

	c.SetRequestInterceptor(opts.reqInt)
	c.SetResponseInterceptor(opts.respInt)

	return c, nil
}

// Close waits for in-flight async calls, then releases the worker pool and
// any idle transport connections. Async calls made after Close fault with
// [task.ErrWorker]; synchronous calls keep working.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.runner.Close()

		if ic, ok := c.transport.(interface{ CloseIdleConnections() }); ok {
			ic.CloseIdleConnections()
		}
	})
}
