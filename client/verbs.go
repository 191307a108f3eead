package client

import (
	"context"
	"net/http"
)

// Get performs a GET request. headers may be nil.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) *Response {
	return c.execute(ctx, http.MethodGet, url, nil, headers)
}

// Post performs a POST request with payload encoded as JSON.
func (c *Client) Post(ctx context.Context, url string, payload any, headers map[string]string) *Response {
	return c.execute(ctx, http.MethodPost, url, payload, headers)
}

// Put performs a PUT request with payload encoded as JSON.
func (c *Client) Put(ctx context.Context, url string, payload any, headers map[string]string) *Response {
	return c.execute(ctx, http.MethodPut, url, payload, headers)
}

// Patch performs a PATCH request with payload encoded as JSON.
func (c *Client) Patch(ctx context.Context, url string, payload any, headers map[string]string) *Response {
	return c.execute(ctx, http.MethodPatch, url, payload, headers)
}

// Delete performs a DELETE request. No body is sent.
func (c *Client) Delete(ctx context.Context, url string, headers map[string]string) *Response {
	return c.execute(ctx, http.MethodDelete, url, nil, headers)
}

// Head performs a HEAD request. The body is never read.
func (c *Client) Head(ctx context.Context, url string, headers map[string]string) *Response {
	return c.execute(ctx, http.MethodHead, url, nil, headers)
}

// GetStream performs a GET request, delivering the body to consumer as it arrives.
func (c *Client) GetStream(ctx context.Context, url string, consumer StreamConsumer, headers map[string]string) *BaseResult {
	return c.executeStream(ctx, http.MethodGet, url, nil, headers, consumer)
}

// PostStream performs a POST request, delivering the body to consumer as it arrives.
func (c *Client) PostStream(ctx context.Context, url string, payload any, consumer StreamConsumer, headers map[string]string) *BaseResult {
	return c.executeStream(ctx, http.MethodPost, url, payload, headers, consumer)
}

// PutStream performs a PUT request, delivering the body to consumer as it arrives.
func (c *Client) PutStream(ctx context.Context, url string, payload any, consumer StreamConsumer, headers map[string]string) *BaseResult {
	return c.executeStream(ctx, http.MethodPut, url, payload, headers, consumer)
}

// PatchStream performs a PATCH request, delivering the body to consumer as it arrives.
func (c *Client) PatchStream(ctx context.Context, url string, payload any, consumer StreamConsumer, headers map[string]string) *BaseResult {
	return c.executeStream(ctx, http.MethodPatch, url, payload, headers, consumer)
}

// DeleteStream performs a DELETE request, delivering the body to consumer as it arrives.
func (c *Client) DeleteStream(ctx context.Context, url string, consumer StreamConsumer, headers map[string]string) *BaseResult {
	return c.executeStream(ctx, http.MethodDelete, url, nil, headers, consumer)
}

// HeadStream performs a HEAD request. consumer only ever sees the final chunk.
func (c *Client) HeadStream(ctx context.Context, url string, consumer StreamConsumer, headers map[string]string) *BaseResult {
	return c.executeStream(ctx, http.MethodHead, url, nil, headers, consumer)
}
