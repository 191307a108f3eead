// Package restpipe exposes the client builder.
package restpipe

import (
	"github.com/adamwoolhether/restpipe/client"
)

// NewClient instantiates a new *client.Client with the provided options.
// If not specified, an HTTP transport over a fresh http.Client is used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// NewClientFromEnv builds a client from environment variables carrying the
// given prefix, see client.LoadConfig. Extra options are applied last and
// cannot include client.WithTransport, since the config targets the
// default HTTP transport.
func NewClientFromEnv(prefix string, opts ...client.Option) (*client.Client, error) {
	cfg, err := client.LoadConfig(prefix)
	if err != nil {
		return nil, err
	}

	return client.Build(append(cfg.Options(), opts...)...)
}
