package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/adamwoolhether/httpreq/internal/validate"
)

// Get sends the parameters as a query string appended to the URL.
func (r *Request[R]) Get(ctx context.Context) (R, error) {
	return r.do(ctx, http.MethodGet)
}

// Post sends the raw body if one is set, the form-encoded parameters otherwise.
func (r *Request[R]) Post(ctx context.Context) (R, error) {
	return r.do(ctx, http.MethodPost)
}

// Put sends the raw body if one is set, the form-encoded parameters otherwise.
func (r *Request[R]) Put(ctx context.Context) (R, error) {
	return r.do(ctx, http.MethodPut)
}

// Patch sends the raw body if one is set, the form-encoded parameters otherwise.
func (r *Request[R]) Patch(ctx context.Context) (R, error) {
	return r.do(ctx, http.MethodPatch)
}

// Delete sends no body; parameters are ignored.
func (r *Request[R]) Delete(ctx context.Context) (R, error) {
	return r.do(ctx, http.MethodDelete)
}

func (r *Request[R]) do(ctx context.Context, method string) (R, error) {
	req, err := r.build(ctx, method)
	if err != nil {
		var zero R
		return zero, err
	}

	return r.send(req)
}

// send executes req and extracts the result.
func (r *Request[R]) send(req *http.Request) (R, error) {
	resp, err := r.execute(req)
	if err != nil {
		var zero R
		return zero, err
	}

	return r.extract(resp)
}

// check reports configuration problems collected so far.
func (r *Request[R]) check() error {
	if r.closed {
		return ErrClosed
	}
	if r.charsetErr != nil {
		return r.charsetErr
	}

	s := state{
		URL:          r.url,
		HasClient:    r.client != nil,
		HasExtractor: r.extractor != nil,
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	return nil
}

// build creates the verb-specific *http.Request with body and headers applied.
func (r *Request[R]) build(ctx context.Context, method string) (*http.Request, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	target := r.url
	var body io.Reader
	var contentType string

	switch method {
	case http.MethodGet:
		query, err := formEncode(r.params, r.enc)
		if err != nil {
			return nil, fmt.Errorf("encoding query: %w", err)
		}
		target = appendQuery(target, query)

	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if r.body != nil {
			body = strings.NewReader(*r.body)
			contentType = r.contentType
			break
		}

		form, err := formEncode(r.params, r.enc)
		if err != nil {
			return nil, fmt.Errorf("encoding form: %w", err)
		}
		body = strings.NewReader(form)
		contentType = contentTypeForm + "; charset=" + r.charset
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	r.applyHeaders(req)

	return req, nil
}

// applyHeaders copies the configured headers onto req, overriding any
// body-derived Content-Type.
func (r *Request[R]) applyHeaders(req *http.Request) {
	for k, v := range r.headers {
		req.Header[k] = append([]string(nil), v...)
	}
}

// execute runs the hooks around the client call.
func (r *Request[R]) execute(req *http.Request) (*http.Response, error) {
	if r.before != nil {
		r.before(req)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}

	if r.after != nil {
		r.after(resp)
	}

	return resp, nil
}

// extract converts resp into an R and releases the body.
func (r *Request[R]) extract(resp *http.Response) (R, error) {
	defer r.release(resp)

	v, err := r.extractor.Extract(resp)
	if err != nil {
		return v, fmt.Errorf("extracting result: %w", err)
	}

	return v, nil
}

// release drains whatever the caller left unread so the connection
// can be reused, then closes the body.
func (r *Request[R]) release(resp *http.Response) {
	logger := r.client.Logger()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		logger.Error("failed to discard unused body", "error", err)
	}
	if err := resp.Body.Close(); err != nil {
		logger.Error("failed to close response body", "error", err)
	}
}
