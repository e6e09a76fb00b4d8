// Package httpreq exposes the client and request builders.
package httpreq

import (
	"github.com/adamwoolhether/httpreq/client"
	"github.com/adamwoolhether/httpreq/extract"
	"github.com/adamwoolhether/httpreq/request"
)

// NewClient instantiates a new *Client with the provided options.
// If not specified, a fresh http.Client and a clone of the default
// transport are used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// NewRequest starts a Request for rawURL that owns a client built
// from opts. Closing the Request closes that client.
func NewRequest[R any](rawURL string, ext extract.Extractor[R], opts ...client.Option) (*request.Request[R], error) {
	return request.New(rawURL, ext, opts...)
}
