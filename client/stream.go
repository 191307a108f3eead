package client

import (
	"context"
	"maps"
)

// executeStream runs one call whose body is forwarded to consumer as it
// arrives. After the transport returns, successful or not, consumer gets
// exactly one empty IsLast chunk; only then is the result evaluated.
func (c *Client) executeStream(ctx context.Context, method, url string, payload any, headers map[string]string, consumer StreamConsumer) *BaseResult {
	if consumer == nil {
		consumer = func(StreamChunk) {}
	}

	ctx, cl := c.begin(ctx, "restpipe.stream", method, url, payload, headers)
	defer cl.span.End()

	if cl.err != nil {
		consumer(StreamChunk{IsLast: true})
		return &BaseResult{Err: cl.err}
	}

	res, err := c.transport.Perform(ctx, cl.req, func(p []byte) {
		consumer(StreamChunk{Data: string(p)})
	})

	consumer(StreamChunk{IsLast: true})

	if err != nil {
		return &BaseResult{Err: c.fail(cl, err)}
	}

	br := c.complete(cl, res)

	// Streamed bodies are never aggregated, so the response interceptor
	// sees status and headers only. Header edits are kept.
	if cl.respI != nil {
		tmp := Response{BaseResult: br}
		tmp.Headers = maps.Clone(br.Headers)
		cl.respI.InterceptResponse(cl.rc, &tmp)
		br.Headers = tmp.Headers
	}

	return &br
}
