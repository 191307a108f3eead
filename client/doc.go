// Package client provides an HTTP client that runs every verb through a
// single request pipeline, in blocking, streaming and asynchronous forms.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//	defer c.Close()
//
// Options may also come from the environment or a TOML file through
// [LoadConfig] and [DecodeConfig], then [Config.Options].
//
// # Making Requests
//
// HTTP-level failures are values, not errors. Check Success, StatusCode and
// Err on the result:
//
//	resp := c.Post(ctx, "https://api.example.com/items", map[string]any{"name": "a"}, nil)
//	if resp.Err != nil { ... }    // no status: transport failure
//	if !resp.Success { ... }      // non-2xx status
//	v, err := resp.JSON()         // decoded lazily
//
// GET, HEAD and DELETE never send a body. Every other verb sends its payload
// encoded as JSON along with a Content-Length header.
//
// # Streaming
//
// Stream variants hand the body to a [StreamConsumer] as it arrives and end
// every stream with exactly one empty chunk marked IsLast, even when the
// transport failed:
//
//	res := c.GetStream(ctx, u, func(ch client.StreamChunk) {
//		if ch.IsLast { return }
//		os.Stdout.WriteString(ch.Data)
//	}, nil)
//
// # Async
//
// Async variants run the same call on a worker pool and return a
// [task.Handle]:
//
//	h := c.GetAsync(ctx, u, nil)
//	// ... do other work ...
//	resp, err := h.Wait() // err is only ever a worker fault
//
// # Interceptors
//
// One [RequestInterceptor] and one [ResponseInterceptor] may be attached at a
// time with [Client.SetRequestInterceptor] and [Client.SetResponseInterceptor].
// Setting a new one replaces the old; setting nil removes it. See the
// [github.com/adamwoolhether/restpipe/interceptor] package for ready-made ones.
package client
