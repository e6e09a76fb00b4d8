package request

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adamwoolhether/httpreq/client/download"
)

// Downloader streams a response body to a file or writer instead of
// extracting it. It holds at most one executed response at a time.
type Downloader[R any] struct {
	req      *Request[R]
	resp     *http.Response
	consumed bool
}

// Get executes a GET with the Request's parameters and keeps the
// response for the next write.
func (d *Downloader[R]) Get(ctx context.Context) (*Downloader[R], error) {
	return d.fetch(ctx, http.MethodGet)
}

// Post executes a POST with the Request's body or parameters and keeps
// the response for the next write.
func (d *Downloader[R]) Post(ctx context.Context) (*Downloader[R], error) {
	return d.fetch(ctx, http.MethodPost)
}

func (d *Downloader[R]) fetch(ctx context.Context, method string) (*Downloader[R], error) {
	// A previous response never outlives a new attempt, successful or not.
	d.discard()
	d.consumed = false

	req, err := d.req.build(ctx, method)
	if err != nil {
		return d, err
	}

	resp, err := d.req.execute(req)
	if err != nil {
		return d, err
	}

	d.resp = resp

	return d, nil
}

// WriteFile writes the response body to target, executing a GET first
// if nothing was fetched yet.
//
// An existing regular file is overwritten. For an existing directory the
// file name comes from the Content-Disposition header, else from the last
// segment of the URL path, else "unknown". Any other target fails with
// [ErrInvalidTarget].
//
// When the status is not 200 nothing is written; the Request's extractor
// runs on the response and its result is returned instead. On success
// the zero R is returned.
func (d *Downloader[R]) WriteFile(ctx context.Context, target string, opts ...download.Option) (R, error) {
	var zero R

	info, err := os.Stat(target)
	if err != nil || !(info.Mode().IsRegular() || info.IsDir()) {
		d.discard()
		if err != nil {
			return zero, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
		}
		return zero, fmt.Errorf("%w: %s", ErrInvalidTarget, target)
	}

	resp, err := d.take(ctx)
	if err != nil {
		return zero, err
	}

	if resp.StatusCode != http.StatusOK {
		return d.req.extract(resp)
	}
	defer d.req.release(resp)

	destPath := target
	if info.IsDir() {
		destPath = filepath.Join(target, fileName(resp, d.req.url))
	}

	if err := download.Handle(ctx, resp.Body, resp.ContentLength, destPath, d.req.client.Logger(), opts...); err != nil {
		return zero, fmt.Errorf("download: %w", err)
	}

	return zero, nil
}

// WriteTo copies the response body into w, executing a GET first if
// nothing was fetched yet. w is never closed. Non-200 responses are
// handled as in [Downloader.WriteFile].
func (d *Downloader[R]) WriteTo(ctx context.Context, w io.Writer, opts ...download.Option) (R, error) {
	var zero R

	resp, err := d.take(ctx)
	if err != nil {
		return zero, err
	}

	if resp.StatusCode != http.StatusOK {
		return d.req.extract(resp)
	}
	defer d.req.release(resp)

	if _, err := download.Stream(ctx, w, resp.Body, resp.ContentLength, d.req.client.Logger(), opts...); err != nil {
		return zero, fmt.Errorf("download: %w", err)
	}

	return zero, nil
}

// take hands over the cached response, fetching one when none was
// executed yet.
func (d *Downloader[R]) take(ctx context.Context) (*http.Response, error) {
	if d.resp == nil {
		if d.consumed {
			return nil, ErrConsumed
		}
		if _, err := d.Get(ctx); err != nil {
			return nil, err
		}
	}

	resp := d.resp
	d.resp = nil
	d.consumed = true

	return resp, nil
}

// discard releases a cached response that will never be written.
func (d *Downloader[R]) discard() {
	if d.resp == nil {
		return
	}

	d.req.release(d.resp)
	d.resp = nil
	d.consumed = true
}

// fileName picks the on-disk name for a download written into a directory.
func fileName(resp *http.Response, rawURL string) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if name := dispositionFileName(cd); name != "" {
			return name
		}
	}

	if u, err := url.Parse(rawURL); err == nil {
		if name := safeBase(path.Base(u.Path)); name != "" {
			return name
		}
	}

	return fallbackFileName
}

func dispositionFileName(cd string) string {
	if _, params, err := mime.ParseMediaType(cd); err == nil {
		return safeBase(params["filename"])
	}

	// Servers send malformed dispositions often enough that a plain
	// scan for filename= is worth doing.
	for part := range strings.SplitSeq(cd, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), "filename") {
			return safeBase(strings.Trim(strings.TrimSpace(v), `"`))
		}
	}

	return ""
}

// safeBase strips any directory components so a name can't escape
// the target directory. It returns "" for names with nothing left.
func safeBase(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	switch name {
	case ".", "/", "..":
		return ""
	}

	return name
}
