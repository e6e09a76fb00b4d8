package request

import (
	"fmt"
	"maps"
	"net/http"
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/text/encoding"

	"github.com/adamwoolhether/httpreq/client"
	"github.com/adamwoolhether/httpreq/extract"
)

// Request accumulates the configuration of a single HTTP call and
// converts the response into an R through its [extract.Extractor].
//
// Configuration methods return the same *Request so calls can be
// chained. A Request is not safe for concurrent use.
type Request[R any] struct {
	url         string
	params      *linkedhashmap.Map
	headers     http.Header
	body        *string
	contentType string
	charset     string
	enc         encoding.Encoding
	before      func(*http.Request)
	after       func(*http.Response)
	extractor   extract.Extractor[R]

	client *client.Client
	owned  bool
	closed bool

	// charsetErr is set by a failed Encode and reported by the next
	// terminal call; a later successful Encode clears it.
	charsetErr error
}

// New creates a Request for rawURL that builds and owns its client.
// The client is released by [Request.Close].
func New[R any](rawURL string, ext extract.Extractor[R], opts ...client.Option) (*Request[R], error) {
	c, err := client.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("building client: %w", err)
	}

	r := NewWithClient(rawURL, c, ext)
	r.owned = true

	return r, nil
}

// NewWithClient creates a Request for rawURL executed by c.
// The caller keeps ownership of c: [Request.Close] leaves it open.
func NewWithClient[R any](rawURL string, c *client.Client, ext extract.Extractor[R]) *Request[R] {
	r := &Request[R]{
		url:       rawURL,
		params:    linkedhashmap.New(),
		headers:   make(http.Header),
		extractor: ext,
		client:    c,
	}

	return r.Encode(defaultCharset)
}

// Param sets a parameter. A name that is already present keeps its
// position and takes the new value.
func (r *Request[R]) Param(name, value string) *Request[R] {
	r.params.Put(name, value)
	return r
}

// Params merges params into the parameters, in sorted key order.
func (r *Request[R]) Params(params map[string]string) *Request[R] {
	for _, k := range slices.Sorted(maps.Keys(params)) {
		r.params.Put(k, params[k])
	}
	return r
}

// Header sets a header, replacing any previous value.
func (r *Request[R]) Header(name, value string) *Request[R] {
	r.headers.Set(name, value)
	return r
}

// Headers merges headers into the configured headers.
func (r *Request[R]) Headers(headers map[string]string) *Request[R] {
	for k, v := range headers {
		r.headers.Set(k, v)
	}
	return r
}

// Cookie sets the raw Cookie header.
func (r *Request[R]) Cookie(cookie string) *Request[R] {
	return r.Header("Cookie", cookie)
}

// ResultAsJSONString asks the server for JSON via the Accept header.
func (r *Request[R]) ResultAsJSONString() *Request[R] {
	return r.Header("Accept", contentTypeJSON)
}

// RequestBody sets a raw body sent verbatim by POST, PUT and PATCH in
// place of the form-encoded parameters. The content type becomes
// application/json; call [Request.ContentType] afterwards to change it.
func (r *Request[R]) RequestBody(body string) *Request[R] {
	r.body = &body
	return r.ContentType(contentTypeJSON)
}

// ContentType sets the content type of the raw body.
func (r *Request[R]) ContentType(contentType string) *Request[R] {
	r.contentType = contentType
	return r
}

// Encode sets the charset used to form-encode parameters, e.g. "utf-8"
// or "gbk". Names follow the WHATWG encoding labels.
func (r *Request[R]) Encode(charset string) *Request[R] {
	enc, name, err := lookupCharset(charset)
	if err != nil {
		r.charsetErr = err
		return r
	}

	r.charsetErr = nil
	r.enc = enc
	r.charset = name
	return r
}

// Before registers a hook run on every outgoing request just before it
// is sent. It replaces any previously registered hook.
func (r *Request[R]) Before(hook func(*http.Request)) *Request[R] {
	r.before = hook
	return r
}

// After registers a hook run on every response before result
// extraction. It replaces any previously registered hook.
func (r *Request[R]) After(hook func(*http.Response)) *Request[R] {
	r.after = hook
	return r
}

// Download returns a Downloader bound to this Request's configuration.
func (r *Request[R]) Download() *Downloader[R] {
	return &Downloader[R]{req: r}
}

// Close releases the client if the Request built it. A client supplied
// through [NewWithClient] stays open. Close is idempotent.
func (r *Request[R]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if r.owned && r.client != nil {
		if err := r.client.Close(); err != nil {
			return fmt.Errorf("closing client: %w", err)
		}
	}

	return nil
}
