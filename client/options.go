package client

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/restpipe/transport"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	transport transport.Transport
	httpOpts  []transport.Option
	logger    *slog.Logger
	tracer    trace.Tracer
	workers   int
	reqInt    RequestInterceptor
	respInt   ResponseInterceptor
}

// WithTransport replaces the default HTTP transport entirely. It cannot be
// combined with the HTTP-level options below.
func WithTransport(t transport.Transport) Option {
	return func(o *options) error {
		if t == nil {
			return errors.New("transport must not be nil")
		}
		o.transport = t
		return nil
	}
}

// WithHTTPClient sets the [http.Client] used by the default transport.
func WithHTTPClient(hc *http.Client) Option {
	return httpOption(transport.WithClient(hc))
}

// WithRoundTripper sets the base [http.RoundTripper] of the default transport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return httpOption(transport.WithRoundTripper(rt))
}

// WithTimeout sets the per-call timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return httpOption(transport.WithTimeout(d))
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return httpOption(transport.WithUserAgent(header))
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return httpOption(transport.WithThrottle(rps, burst))
}

// WithRetry lets the default transport retry connection errors and 5xx
// responses. The client core itself never retries.
func WithRetry(maxRetries int, waitMin, waitMax time.Duration) Option {
	return httpOption(transport.WithRetry(maxRetries, waitMin, waitMax))
}

// WithNoFollowRedirects prevents the default transport from following redirects.
func WithNoFollowRedirects() Option {
	return httpOption(transport.WithNoFollowRedirects())
}

// WithLogger injects a custom [slog.Logger] into the [Client] and its default transport.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used for per-call spans. Defaults to the
// global OpenTelemetry tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// WithWorkers caps the number of async calls running at once. Beyond the
// cap, new async calls fault instead of queueing. Zero means no practical cap.
func WithWorkers(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return errors.New("workers must not be negative")
		}
		o.workers = n
		return nil
	}
}

// WithRequestInterceptor attaches an initial request interceptor.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(o *options) error {
		o.reqInt = i
		return nil
	}
}

// WithResponseInterceptor attaches an initial response interceptor.
func WithResponseInterceptor(i ResponseInterceptor) Option {
	return func(o *options) error {
		o.respInt = i
		return nil
	}
}

// httpOption defers a transport option until Build assembles the default transport.
func httpOption(opt transport.Option) Option {
	return func(o *options) error {
		o.httpOpts = append(o.httpOpts, opt)
		return nil
	}
}
