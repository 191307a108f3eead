package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring an [HTTP] transport via [NewHTTP].
type Option func(*options) error

type options struct {
	client            *http.Client
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	throttle          *ThrottleConfig
	retry             *RetryConfig
	noFollowRedirects bool
	logger            *slog.Logger
}

// RetryConfig bounds the retryablehttp policy used by [WithRetry].
type RetryConfig struct {
	Max     int
	WaitMin time.Duration
	WaitMax time.Duration
}

// WithClient replaces the default [http.Client].
func WithClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithRoundTripper sets a custom [http.RoundTripper] as the base of the chain.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("round tripper must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTimeout sets the overall per-call timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to every call.
func WithUserAgent(header string) Option {
	return func(o *options) error {
		o.userAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, ErrMustNotBeZero)
		}
		o.throttle = &ThrottleConfig{RPS: rps, Burst: burst}
		return nil
	}
}

// WithRetry retries connection errors and 5xx responses with exponential
// backoff. Once retries are exhausted the last response is returned as-is.
func WithRetry(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(o *options) error {
		if maxRetries < 0 {
			return errors.New("max retries must not be negative")
		}
		if waitMin < 0 || waitMax < waitMin {
			return fmt.Errorf("invalid retry wait bounds [%s, %s]", waitMin, waitMax)
		}
		o.retry = &RetryConfig{Max: maxRetries, WaitMin: waitMin, WaitMax: waitMax}
		return nil
	}
}

// WithNoFollowRedirects returns redirect responses instead of following them.
func WithNoFollowRedirects() Option {
	return func(o *options) error {
		o.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects the logger used by the throttle and retry layers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
