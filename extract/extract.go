// Package extract converts completed HTTP responses into caller-defined
// result values. An [Extractor] is the single extension point of a
// request builder: it decides what a response means, including whether
// a status code is an error.
//
// Extractors read the body but never close it; the builder drains and
// closes it once extraction returns.
package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"

	"github.com/adamwoolhether/httpreq/client"
)

// Extractor converts a response into a value of type R.
type Extractor[R any] interface {
	Extract(resp *http.Response) (R, error)
}

// Func adapts an ordinary function to the Extractor interface.
type Func[R any] func(resp *http.Response) (R, error)

// Extract calls f(resp).
func (f Func[R]) Extract(resp *http.Response) (R, error) {
	return f(resp)
}

// None ignores the response and yields the zero value of R.
func None[R any]() Extractor[R] {
	return Func[R](func(*http.Response) (R, error) {
		var zero R
		return zero, nil
	})
}

// Status yields the response status code.
func Status() Extractor[int] {
	return Func[int](func(resp *http.Response) (int, error) {
		return resp.StatusCode, nil
	})
}

// Bytes yields the raw response body.
func Bytes() Extractor[[]byte] {
	return Func[[]byte](func(resp *http.Response) ([]byte, error) {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}

		return b, nil
	})
}

// String yields the response body as UTF-8 text, transcoding from the
// charset declared in the Content-Type header or sniffed from the body.
func String() Extractor[string] {
	return Func[string](func(resp *http.Response) (string, error) {
		r, err := utf8Body(resp)
		if err != nil {
			return "", err
		}

		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("reading body: %w", err)
		}

		return string(b), nil
	})
}

// JSONOption is a functional option for [JSON].
type JSONOption func(*json.Decoder)

// UseNumber tells the decoder to use [json.Decoder.UseNumber],
// preserving number precision as [json.Number] instead of float64.
func UseNumber() JSONOption {
	return func(d *json.Decoder) { d.UseNumber() }
}

// DisallowUnknownFields rejects objects carrying keys that don't map
// onto the destination type.
func DisallowUnknownFields() JSONOption {
	return func(d *json.Decoder) { d.DisallowUnknownFields() }
}

// JSON decodes the response body into a T.
func JSON[T any](opts ...JSONOption) Extractor[T] {
	return Func[T](func(resp *http.Response) (T, error) {
		var val T

		d := json.NewDecoder(resp.Body)
		for _, opt := range opts {
			opt(d)
		}

		if err := d.Decode(&val); err != nil {
			return val, fmt.Errorf("decoding body: %w", err)
		}

		return val, nil
	})
}

// Expect wraps next so that any status other than code produces a
// [*client.UnexpectedStatusError] instead of a value.
func Expect[R any](code int, next Extractor[R]) Extractor[R] {
	return Func[R](func(resp *http.Response) (R, error) {
		if resp.StatusCode != code {
			var zero R
			return zero, client.StatusError(resp)
		}

		return next.Extract(resp)
	})
}

func utf8Body(resp *http.Response) (io.Reader, error) {
	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detecting body charset: %w", err)
	}

	return r, nil
}
