package client

import (
	"context"
	"maps"

	"github.com/adamwoolhether/restpipe/client/task"
)

// Async variants schedule their synchronous counterpart on the client's
// worker pool and return at once. Headers and payload are copied before
// returning, so the caller may reuse them. Wait on the handle yields the
// same result the synchronous call would have; its error is only ever a
// worker fault wrapping [task.ErrWorker].

// GetAsync is the non-blocking form of [Client.Get].
func (c *Client) GetAsync(ctx context.Context, url string, headers map[string]string) *task.Handle[*Response] {
	headers = maps.Clone(headers)
	return task.Go(c.runner, func() *Response { return c.Get(ctx, url, headers) })
}

// PostAsync is the non-blocking form of [Client.Post].
func (c *Client) PostAsync(ctx context.Context, url string, payload any, headers map[string]string) *task.Handle[*Response] {
	headers, payload = maps.Clone(headers), clonePayload(payload)
	return task.Go(c.runner, func() *Response { return c.Post(ctx, url, payload, headers) })
}

// PutAsync is the non-blocking form of [Client.Put].
func (c *Client) PutAsync(ctx context.Context, url string, payload any, headers map[string]string) *task.Handle[*Response] {
	headers, payload = maps.Clone(headers), clonePayload(payload)
	return task.Go(c.runner, func() *Response { return c.Put(ctx, url, payload, headers) })
}

// PatchAsync is the non-blocking form of [Client.Patch].
func (c *Client) PatchAsync(ctx context.Context, url string, payload any, headers map[string]string) *task.Handle[*Response] {
	headers, payload = maps.Clone(headers), clonePayload(payload)
	return task.Go(c.runner, func() *Response { return c.Patch(ctx, url, payload, headers) })
}

// DeleteAsync is the non-blocking form of [Client.Delete].
func (c *Client) DeleteAsync(ctx context.Context, url string, headers map[string]string) *task.Handle[*Response] {
	headers = maps.Clone(headers)
	return task.Go(c.runner, func() *Response { return c.Delete(ctx, url, headers) })
}

// HeadAsync is the non-blocking form of [Client.Head].
func (c *Client) HeadAsync(ctx context.Context, url string, headers map[string]string) *task.Handle[*Response] {
	headers = maps.Clone(headers)
	return task.Go(c.runner, func() *Response { return c.Head(ctx, url, headers) })
}

// GetStreamAsync is the non-blocking form of [Client.GetStream].
// consumer runs on the worker goroutine.
func (c *Client) GetStreamAsync(ctx context.Context, url string, consumer StreamConsumer, headers map[string]string) *task.Handle[*BaseResult] {
	headers = maps.Clone(headers)
	return task.Go(c.runner, func() *BaseResult { return c.GetStream(ctx, url, consumer, headers) })
}

// PostStreamAsync is the non-blocking form of [Client.PostStream].
func (c *Client) PostStreamAsync(ctx context.Context, url string, payload any, consumer StreamConsumer, headers map[string]string) *task.Handle[*BaseResult] {
	headers, payload = maps.Clone(headers), clonePayload(payload)
	return task.Go(c.runner, func() *BaseResult { return c.PostStream(ctx, url, payload, consumer, headers) })
}

// PutStreamAsync is the non-blocking form of [Client.PutStream].
func (c *Client) PutStreamAsync(ctx context.Context, url string, payload any, consumer StreamConsumer, headers map[string]string) *task.Handle[*BaseResult] {
	headers, payload = maps.Clone(headers), clonePayload(payload)
	return task.Go(c.runner, func() *BaseResult { return c.PutStream(ctx, url, payload, consumer, headers) })
}

// PatchStreamAsync is the non-blocking form of [Client.PatchStream].
func (c *Client) PatchStreamAsync(ctx context.Context, url string, payload any, consumer StreamConsumer, headers map[string]string) *task.Handle[*BaseResult] {
	headers, payload = maps.Clone(headers), clonePayload(payload)
	return task.Go(c.runner, func() *BaseResult { return c.PatchStream(ctx, url, payload, consumer, headers) })
}

// DeleteStreamAsync is the non-blocking form of [Client.DeleteStream].
func (c *Client) DeleteStreamAsync(ctx context.Context, url string, consumer StreamConsumer, headers map[string]string) *task.Handle[*BaseResult] {
	headers = maps.Clone(headers)
	return task.Go(c.runner, func() *BaseResult { return c.DeleteStream(ctx, url, consumer, headers) })
}

// HeadStreamAsync is the non-blocking form of [Client.HeadStream].
func (c *Client) HeadStreamAsync(ctx context.Context, url string, consumer StreamConsumer, headers map[string]string) *task.Handle[*BaseResult] {
	headers = maps.Clone(headers)
	return task.Go(c.runner, func() *BaseResult { return c.HeadStream(ctx, url, consumer, headers) })
}
