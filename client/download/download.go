package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Handle streams body into the file at destPath.
//
// An existing file is truncated and written in place, so its mode, owner
// and any symlink pointing at it are kept. A missing file is created with
// mode 0666 before umask and removed again if the copy fails; a failed
// copy into an existing file leaves it partially written.
func Handle(ctx context.Context, body io.Reader, contentLength int64, destPath string, logger *slog.Logger, optFns ...Option) error {
	opts, err := apply(optFns)
	if err != nil {
		return err
	}

	file, created, err := openDest(destPath, opts.skipExisting)
	if err != nil {
		return err
	}
	if file == nil {
		logger.Info("skipping existing file", "path", destPath)
		return nil
	}

	var successful bool
	defer func() {
		if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			logger.Error("defer closing destination file", "error", err)
		}
		if created && !successful {
			if err := os.Remove(destPath); err != nil {
				logger.Error("failed to remove partial file", "path", destPath, "error", err)
			}
		}
	}()

	if _, err := stream(ctx, file, body, contentLength, logger, opts); err != nil {
		return err
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("syncing file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}

	successful = true

	return nil
}

// openDest opens destPath for writing, reporting whether the file was
// created by this call. It returns a nil file when skipExisting is set
// and the file is already there.
func openDest(destPath string, skipExisting bool) (*os.File, bool, error) {
	file, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if err == nil {
		return file, true, nil
	}
	if !errors.Is(err, os.ErrExist) {
		return nil, false, fmt.Errorf("creating file: %w", err)
	}

	if skipExisting {
		return nil, false, nil
	}

	file, err = os.OpenFile(destPath, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return nil, false, fmt.Errorf("opening existing file: %w", err)
	}

	return file, false, nil
}

// Stream copies body into w, applying the checksum and progress options.
// w is never closed. WithSkipExisting has no effect here.
func Stream(ctx context.Context, w io.Writer, body io.Reader, contentLength int64, logger *slog.Logger, optFns ...Option) (int64, error) {
	opts, err := apply(optFns)
	if err != nil {
		return 0, err
	}

	return stream(ctx, w, body, contentLength, logger, opts)
}

func stream(ctx context.Context, w io.Writer, body io.Reader, contentLength int64, logger *slog.Logger, opts options) (int64, error) {
	body = &contextReader{ctx: ctx, r: body}

	writer := w
	if opts.checksum != nil {
		opts.checksum.begin()
		writer = io.MultiWriter(writer, opts.checksum)
	}

	if opts.progress {
		m := newMeter(writer, logger, contentLength)
		defer m.done()
		writer = m
	}

	n, err := io.Copy(writer, body)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return n, fmt.Errorf("%w: %w", ErrDownloadCancelled, err)
		}

		return n, fmt.Errorf("copying body: %w", err)
	}

	if contentLength >= 0 && n != contentLength {
		return n, &Error{
			Err:     ErrContentLengthMismatch,
			Written: n,
			Detail:  fmt.Sprintf("Content-Length was %d", contentLength),
		}
	}

	if err := opts.checksum.check(n); err != nil {
		return n, err
	}

	return n, nil
}

func apply(optFns []Option) (options, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return options{}, fmt.Errorf("applying option: %w", err)
		}
	}

	return opts, nil
}

// contextReader fails reads once ctx is done, so a stalled copy
// stops with the caller's cancellation.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	return cr.r.Read(p)
}
