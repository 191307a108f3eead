package client

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/restpipe/transport"
)

const headerContentLength = "Content-Length"

// call is the pipeline state of one request, shared by the buffered and
// streaming paths.
type call struct {
	rc    *RequestContext
	req   *transport.Request
	respI ResponseInterceptor
	span  trace.Span
	// err is set when the request was rejected before dispatch.
	err error
}

// execute runs one buffered call: request interception, dispatch,
// classification, response interception.
func (c *Client) execute(ctx context.Context, method, url string, payload any, headers map[string]string) *Response {
	ctx, cl := c.begin(ctx, "restpipe.execute", method, url, payload, headers)
	defer cl.span.End()

	var resp Response
	if cl.err != nil {
		resp.Err = cl.err
		return &resp
	}

	var body bytes.Buffer
	res, err := c.transport.Perform(ctx, cl.req, func(p []byte) {
		body.Write(p)
	})
	if err != nil {
		resp.Err = c.fail(cl, err)
		return &resp
	}

	resp.BaseResult = c.complete(cl, res)
	resp.Body = body.String()

	if cl.respI != nil {
		cl.respI.InterceptResponse(cl.rc, &resp)
	}

	return &resp
}

// begin loads the interceptors, opens the span, builds and intercepts the
// request context, then validates and encodes it for the transport.
func (c *Client) begin(ctx context.Context, op, method, url string, payload any, headers map[string]string) (context.Context, *call) {
	if ctx == nil {
		ctx = context.Background()
	}

	reqI, respI := c.interceptors()

	id := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, op, trace.WithSpanKind(trace.SpanKindClient))

	rc := newRequestContext(ctx, id, method, url, payload, headers)
	if reqI != nil {
		reqI.InterceptRequest(rc)
	}

	span.SetAttributes(
		attribute.String("http.request.method", rc.Method),
		attribute.String("url.full", rc.URL),
		attribute.String("restpipe.request_id", id),
	)

	cl := &call{rc: rc, respI: respI, span: span}

	if err := check(rc); err != nil {
		cl.err = c.fail(cl, fmt.Errorf("%w: %w", ErrInvalidRequest, err))
		return ctx, cl
	}

	req, err := encode(rc)
	if err != nil {
		cl.err = c.fail(cl, fmt.Errorf("%w: %w", ErrInvalidRequest, err))
		return ctx, cl
	}
	cl.req = req

	c.logger.Debug("dispatching request", "id", id, "method", rc.Method, "url", rc.URL)

	return ctx, cl
}

// fail records a call that produced no status.
func (c *Client) fail(cl *call, err error) error {
	terr := &TransportError{Method: cl.rc.Method, URL: cl.rc.URL, Err: err}

	c.logger.Error("request failed", "id", cl.rc.ID, "method", cl.rc.Method, "url", cl.rc.URL, "error", err)
	cl.span.RecordError(terr)
	cl.span.SetStatus(codes.Error, terr.Error())

	return terr
}

// complete classifies a transport result.
func (c *Client) complete(cl *call, res transport.Result) BaseResult {
	headers := res.Headers
	if headers == nil {
		headers = make(map[string]string)
	}

	br := BaseResult{
		StatusCode: res.StatusCode,
		Headers:    headers,
		Success:    classify(res.StatusCode),
	}

	cl.span.SetAttributes(attribute.Int("http.response.status_code", br.StatusCode))
	if !br.Success {
		cl.span.SetStatus(codes.Error, http.StatusText(br.StatusCode))
	}
	c.logger.Debug("request complete", "id", cl.rc.ID, "status", br.StatusCode)

	return br
}

// encode applies the body policy: GET, HEAD and DELETE never carry a body,
// every other method sends the JSON payload with its length. GET goes out
// as the transport default verb.
func encode(rc *RequestContext) (*transport.Request, error) {
	h := maps.Clone(rc.Headers)
	if h == nil {
		h = make(map[string]string)
	}

	req := &transport.Request{
		URL:     rc.URL,
		Headers: h,
	}

	if rc.Method != http.MethodGet {
		req.Method = rc.Method
	}

	if rc.Method == http.MethodHead {
		req.NoBody = true
	}

	if sendsBody(rc.Method) {
		b, err := json.Marshal(rc.Payload)
		if err != nil {
			return nil, fmt.Errorf("encoding payload: %w", err)
		}
		req.Body = b
		req.Headers[headerContentLength] = strconv.Itoa(len(b))
	}

	return req, nil
}

func sendsBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return false
	default:
		return true
	}
}
