package client

// RequestInterceptor observes or rewrites a call's request state before
// dispatch. Mutating rc is its only output.
type RequestInterceptor interface {
	InterceptRequest(rc *RequestContext)
}

// ResponseInterceptor observes or rewrites a produced response. It is not
// invoked when the call failed at the transport level.
type ResponseInterceptor interface {
	InterceptResponse(rc *RequestContext, resp *Response)
}

// RequestInterceptorFunc adapts a function to [RequestInterceptor].
type RequestInterceptorFunc func(rc *RequestContext)

func (f RequestInterceptorFunc) InterceptRequest(rc *RequestContext) { f(rc) }

// ResponseInterceptorFunc adapts a function to [ResponseInterceptor].
type ResponseInterceptorFunc func(rc *RequestContext, resp *Response)

func (f ResponseInterceptorFunc) InterceptResponse(rc *RequestContext, resp *Response) {
	f(rc, resp)
}

// The interceptor slots hold these wrappers so the interfaces can live
// behind atomic pointers.
type requestSlot struct{ RequestInterceptor }
type responseSlot struct{ ResponseInterceptor }

// SetRequestInterceptor replaces the request interceptor. Passing nil
// removes it. Calls already dispatched keep the one they started with.
func (c *Client) SetRequestInterceptor(i RequestInterceptor) {
	if i == nil {
		c.reqInt.Store(nil)
		return
	}
	c.reqInt.Store(&requestSlot{i})
}

// SetResponseInterceptor replaces the response interceptor. Passing nil
// removes it. Calls already dispatched keep the one they started with.
func (c *Client) SetResponseInterceptor(i ResponseInterceptor) {
	if i == nil {
		c.respInt.Store(nil)
		return
	}
	c.respInt.Store(&responseSlot{i})
}

// interceptors loads both slots once per call.
func (c *Client) interceptors() (RequestInterceptor, ResponseInterceptor) {
	var (
		reqI  RequestInterceptor
		respI ResponseInterceptor
	)
	if s := c.reqInt.Load(); s != nil {
		reqI = s.RequestInterceptor
	}
	if s := c.respInt.Load(); s != nil {
		respI = s.ResponseInterceptor
	}

	return reqI, respI
}
