package client_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/restpipe/client"
	"github.com/adamwoolhether/restpipe/transport/transporttest"
)

// collect returns a consumer appending every chunk to out.
func collect(out *[]client.StreamChunk) client.StreamConsumer {
	return func(ch client.StreamChunk) {
		*out = append(*out, ch)
	}
}

func TestClient_GetStream(t *testing.T) {
	c := newTestClient(t, &transporttest.Fake{
		Chunks:     []string{"ab", "cd"},
		StatusCode: http.StatusOK,
	})

	var chunks []client.StreamChunk
	res := c.GetStream(t.Context(), testURL, collect(&chunks), nil)

	exp := []client.StreamChunk{
		{Data: "ab"},
		{Data: "cd"},
		{Data: "", IsLast: true},
	}
	if diff := cmp.Diff(exp, chunks); diff != "" {
		t.Errorf("chunks mismatch (-exp +got):\n%s", diff)
	}

	if res.StatusCode != http.StatusOK || !res.Success || res.Err != nil {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestClient_StreamTransportFailure(t *testing.T) {
	c := newTestClient(t, &transporttest.Fake{
		Chunks: []string{"ab"},
		Err:    errConnRefused,
	})

	var called bool
	c.SetResponseInterceptor(client.ResponseInterceptorFunc(func(*client.RequestContext, *client.Response) {
		called = true
	}))

	var chunks []client.StreamChunk
	res := c.GetStream(t.Context(), testURL, collect(&chunks), nil)

	exp := []client.StreamChunk{
		{Data: "ab"},
		{IsLast: true},
	}
	if diff := cmp.Diff(exp, chunks); diff != "" {
		t.Errorf("chunks mismatch (-exp +got):\n%s", diff)
	}

	if res.Success || res.StatusCode != 0 {
		t.Errorf("expected failed result, got %+v", res)
	}
	if !errors.Is(res.Err, errConnRefused) {
		t.Errorf("expected wrapped cause, got %v", res.Err)
	}
	if called {
		t.Error("response interceptor must not run on transport failure")
	}
}

func TestClient_StreamInvalidRequest(t *testing.T) {
	fake := &transporttest.Fake{StatusCode: http.StatusOK}
	c := newTestClient(t, fake)

	var chunks []client.StreamChunk
	res := c.PostStream(t.Context(), testURL, make(chan int), collect(&chunks), nil)

	if diff := cmp.Diff([]client.StreamChunk{{IsLast: true}}, chunks); diff != "" {
		t.Errorf("chunks mismatch (-exp +got):\n%s", diff)
	}
	if !errors.Is(res.Err, client.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", res.Err)
	}
	if len(fake.Requests()) != 0 {
		t.Error("transport must not be called for an invalid request")
	}
}

func TestClient_StreamMatchesBufferedBody(t *testing.T) {
	testCases := map[string][]string{
		"empty":  nil,
		"single": {`{"id":1}`},
		"many":   {"al", "pha", "-", "bet", "a"},
	}

	for name, parts := range testCases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, &transporttest.Fake{Chunks: parts, StatusCode: http.StatusOK})

			resp := c.Get(t.Context(), testURL, nil)

			var sb strings.Builder
			var lasts int
			res := c.GetStream(t.Context(), testURL, func(ch client.StreamChunk) {
				if ch.IsLast {
					lasts++
					return
				}
				sb.WriteString(ch.Data)
			}, nil)

			if sb.String() != resp.Body {
				t.Errorf("streamed %q, buffered %q", sb.String(), resp.Body)
			}
			if lasts != 1 {
				t.Errorf("expected exactly one terminal chunk, got %d", lasts)
			}
			if diff := cmp.Diff(resp.BaseResult, *res); diff != "" {
				t.Errorf("result mismatch (-buffered +streamed):\n%s", diff)
			}
		})
	}
}

func TestClient_StreamResponseInterceptor(t *testing.T) {
	c := newTestClient(t, &transporttest.Fake{
		Chunks:     []string{"ab", "cd"},
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "text/plain"},
	})

	var calls int
	c.SetResponseInterceptor(client.ResponseInterceptorFunc(func(_ *client.RequestContext, resp *client.Response) {
		calls++

		if resp.Body != "" {
			t.Errorf("streamed body must not be aggregated, got %q", resp.Body)
		}

		resp.Headers["X-Intercepted"] = "yes"
		resp.StatusCode = http.StatusTeapot
	}))

	res := c.GetStream(t.Context(), testURL, nil, nil)

	if calls != 1 {
		t.Fatalf("expected 1 interceptor call, got %d", calls)
	}

	exp := client.BaseResult{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":  "text/plain",
			"X-Intercepted": "yes",
		},
		Success: true,
	}
	if diff := cmp.Diff(exp, *res); diff != "" {
		t.Errorf("result mismatch (-exp +got):\n%s", diff)
	}
}

func TestClient_StreamVerbs(t *testing.T) {
	payload := map[string]any{"a": "b"}

	testCases := map[string]struct {
		call      func(c *client.Client, consume client.StreamConsumer) *client.BaseResult
		expMethod string
		expBody   string
		expNoBody bool
	}{
		"get": {
			call: func(c *client.Client, fn client.StreamConsumer) *client.BaseResult {
				return c.GetStream(t.Context(), testURL, fn, nil)
			},
		},
		"head": {
			call: func(c *client.Client, fn client.StreamConsumer) *client.BaseResult {
				return c.HeadStream(t.Context(), testURL, fn, nil)
			},
			expMethod: http.MethodHead,
			expNoBody: true,
		},
		"delete": {
			call: func(c *client.Client, fn client.StreamConsumer) *client.BaseResult {
				return c.DeleteStream(t.Context(), testURL, fn, nil)
			},
			expMethod: http.MethodDelete,
		},
		"post": {
			call: func(c *client.Client, fn client.StreamConsumer) *client.BaseResult {
				return c.PostStream(t.Context(), testURL, payload, fn, nil)
			},
			expMethod: http.MethodPost,
			expBody:   `{"a":"b"}`,
		},
		"put": {
			call: func(c *client.Client, fn client.StreamConsumer) *client.BaseResult {
				return c.PutStream(t.Context(), testURL, payload, fn, nil)
			},
			expMethod: http.MethodPut,
			expBody:   `{"a":"b"}`,
		},
		"patch": {
			call: func(c *client.Client, fn client.StreamConsumer) *client.BaseResult {
				return c.PatchStream(t.Context(), testURL, payload, fn, nil)
			},
			expMethod: http.MethodPatch,
			expBody:   `{"a":"b"}`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			fake := &transporttest.Fake{Chunks: []string{"x"}, StatusCode: http.StatusOK}
			c := newTestClient(t, fake)

			var chunks []client.StreamChunk
			res := tc.call(c, collect(&chunks))
			if res.Err != nil {
				t.Fatalf("expected no error, got: %v", res.Err)
			}

			got, _ := fake.Last()
			if got.Method != tc.expMethod {
				t.Errorf("expected method %q, got %q", tc.expMethod, got.Method)
			}
			if string(got.Body) != tc.expBody {
				t.Errorf("expected body %q, got %q", tc.expBody, got.Body)
			}

			exp := []client.StreamChunk{{Data: "x"}, {IsLast: true}}
			if tc.expNoBody {
				exp = []client.StreamChunk{{IsLast: true}}
			}
			if diff := cmp.Diff(exp, chunks); diff != "" {
				t.Errorf("chunks mismatch (-exp +got):\n%s", diff)
			}
		})
	}
}
