// Package interceptor provides ready-made request and response
// interceptors for a [client.Client].
package interceptor

import (
	"log/slog"
	"maps"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/adamwoolhether/restpipe/client"
)

// Headers returns a request interceptor that adds every entry of h the
// call does not already set.
func Headers(h map[string]string) client.RequestInterceptor {
	h = maps.Clone(h)

	return client.RequestInterceptorFunc(func(rc *client.RequestContext) {
		if rc.Headers == nil {
			rc.Headers = make(map[string]string, len(h))
		}
		for k, v := range h {
			if _, ok := rc.Headers[k]; !ok {
				rc.Headers[k] = v
			}
		}
	})
}

// Propagate returns a request interceptor that injects the trace context of
// the call into its headers using the global text map propagator.
func Propagate() client.RequestInterceptor {
	return PropagateWith(otel.GetTextMapPropagator())
}

// PropagateWith is Propagate with an explicit propagator.
func PropagateWith(p propagation.TextMapPropagator) client.RequestInterceptor {
	return client.RequestInterceptorFunc(func(rc *client.RequestContext) {
		if rc.Headers == nil {
			rc.Headers = make(map[string]string)
		}
		p.Inject(rc.Context(), propagation.MapCarrier(rc.Headers))
	})
}

// Logger logs both ends of every call. It implements both interceptor
// interfaces, so the same value can be attached to either slot.
type Logger struct {
	log   *slog.Logger
	level slog.Level
}

// Log returns a Logger writing at the given level.
func Log(log *slog.Logger, level slog.Level) *Logger {
	if log == nil {
		log = slog.Default()
	}

	return &Logger{log: log, level: level}
}

func (l *Logger) InterceptRequest(rc *client.RequestContext) {
	l.log.Log(rc.Context(), l.level, "outgoing request",
		"id", rc.ID,
		"method", rc.Method,
		"url", rc.URL,
		"headers", len(rc.Headers),
	)
}

func (l *Logger) InterceptResponse(rc *client.RequestContext, resp *client.Response) {
	l.log.Log(rc.Context(), l.level, "response received",
		"id", rc.ID,
		"method", rc.Method,
		"url", rc.URL,
		"status", resp.StatusCode,
		"success", resp.Success,
		"bytes", len(resp.Body),
	)
}
