package request

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Upload posts the file at path as a multipart part named "file",
// followed by one text part per parameter.
func (r *Request[R]) Upload(ctx context.Context, path string) (R, error) {
	return r.UploadField(ctx, defaultUploadField, path)
}

// UploadField posts the file at path as a multipart part named field,
// followed by one text part per parameter in insertion order.
func (r *Request[R]) UploadField(ctx context.Context, field, path string) (R, error) {
	var zero R

	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	return r.UploadReader(ctx, field, filepath.Base(path), f)
}

// UploadReader is UploadField for content that doesn't live on disk;
// fileName is reported as the part's file name.
func (r *Request[R]) UploadReader(ctx context.Context, field, fileName string, content io.Reader) (R, error) {
	var zero R

	if err := r.check(); err != nil {
		return zero, err
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	done := make(chan struct{})
	go func() {
		defer close(done)
		pw.CloseWithError(r.writeMultipart(mw, field, fileName, content))
	}()
	defer func() {
		// Unblocks the writer if the transport stopped reading early.
		pr.Close()
		<-done
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, pr)
	if err != nil {
		return zero, fmt.Errorf("instantiating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.applyHeaders(req)

	return r.send(req)
}

// writeMultipart streams the file part followed by one text part per
// parameter in insertion order.
func (r *Request[R]) writeMultipart(mw *multipart.Writer, field, fileName string, content io.Reader) error {
	part, err := mw.CreateFormFile(field, fileName)
	if err != nil {
		return fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("writing file part: %w", err)
	}

	it := r.params.Iterator()
	for it.Next() {
		if err := mw.WriteField(it.Key().(string), it.Value().(string)); err != nil {
			return fmt.Errorf("writing field %s: %w", it.Key(), err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	return nil
}
