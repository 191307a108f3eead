package transport

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// ThrottleConfig holds the token bucket's refill rate and capacity.
type ThrottleConfig struct {
	RPS   int
	Burst int
}

// throttle is an http.RoundTripper gating outbound calls
// on a time/rate token bucket.
type throttle struct {
	limiter *rate.Limiter
	cfg     ThrottleConfig
	next    http.RoundTripper
	logFn   func() *slog.Logger
}

// NewThrottle wraps next with a token bucket limiter. logFn is resolved per
// request, so the logger may be swapped after construction. A nil logger
// disables the exhaustion log lines.
func NewThrottle(cfg ThrottleConfig, logFn func() *slog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if cfg.RPS <= 0 || cfg.Burst <= 0 {
		return nil, fmt.Errorf("rps[%d] and burst[%d] %w", cfg.RPS, cfg.Burst, ErrMustNotBeZero)
	}
	if next == nil {
		next = http.DefaultTransport
	}
	if logFn == nil {
		logFn = func() *slog.Logger { return nil }
	}

	t := &throttle{
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		cfg:     cfg,
		next:    next,
		logFn:   logFn,
	}

	return t, nil
}

func (t *throttle) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	logger := t.logFn()
	if logger != nil && t.limiter.Tokens() < 1 {
		start := time.Now()
		logger.Info("throttle tokens exhausted", "method", r.Method, "host", r.URL.Host, "rate", t.cfg.RPS, "burst", t.cfg.Burst)
		defer func() {
			logger.Info("throttle wait complete", "method", r.Method, "host", r.URL.Host, "waited", time.Since(start).String())
		}()
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w post-wait: %w", ErrContextEnded, err)
	}

	return t.next.RoundTrip(r)
}
