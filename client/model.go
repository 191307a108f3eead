package client

import (
	"context"
	"fmt"
	"maps"

	"github.com/goccy/go-json"
)

// BaseResult is the outcome of a call, minus any body.
type BaseResult struct {
	StatusCode int
	Headers    map[string]string
	// Success is true iff 200 <= StatusCode < 300.
	Success bool
	// Err is set when no status was obtained: the transport failed or the
	// request was rejected before dispatch. It is a *TransportError.
	Err error
}

// Failed reports whether the call never produced an HTTP status.
func (r *BaseResult) Failed() bool {
	return r.Err != nil
}

// Response is a BaseResult carrying the full response body.
type Response struct {
	BaseResult
	Body string
}

// JSON parses Body into a generic value (maps, slices, float64, string,
// bool, nil). Parse failures wrap ErrDecode.
func (r *Response) JSON() (any, error) {
	var v any
	if err := r.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}

// Decode parses Body into dest, which must be a pointer.
func (r *Response) Decode(dest any) error {
	if err := json.Unmarshal([]byte(r.Body), dest); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return nil
}

// StreamChunk is one fragment of a streamed body. The final chunk of every
// stream has IsLast set and empty Data.
type StreamChunk struct {
	Data   string
	IsLast bool
}

// StreamConsumer receives the chunks of a streamed call in order.
type StreamConsumer func(chunk StreamChunk)

// RequestContext is the per-call request state seen and edited by
// interceptors. It is built from copies of the caller's arguments.
type RequestContext struct {
	// ID correlates log lines and spans for one call.
	ID      string
	URL     string `validate:"required,url"`
	Method  string `validate:"required"`
	Payload any
	Headers map[string]string

	ctx context.Context
}

// Context returns the context the call was made with.
func (rc *RequestContext) Context() context.Context {
	if rc.ctx == nil {
		return context.Background()
	}

	return rc.ctx
}

func newRequestContext(ctx context.Context, id, method, url string, payload any, headers map[string]string) *RequestContext {
	h := maps.Clone(headers)
	if h == nil {
		h = make(map[string]string)
	}

	return &RequestContext{
		ID:      id,
		URL:     url,
		Method:  method,
		Payload: clonePayload(payload),
		Headers: h,
		ctx:     ctx,
	}
}

// clonePayload deep copies the generic JSON containers so interceptors
// cannot reach caller-owned maps and slices. Other values are returned as-is.
func clonePayload(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = clonePayload(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = clonePayload(e)
		}
		return out
	case json.RawMessage:
		return append(json.RawMessage(nil), t...)
	default:
		return v
	}
}

// classify reports whether code is a 2xx status.
func classify(code int) bool {
	return code >= 200 && code < 300
}
