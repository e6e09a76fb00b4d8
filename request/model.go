package request

import (
	"errors"

	"github.com/adamwoolhether/httpreq/internal/validate"
)

var (
	// ErrClosed is returned by terminal calls made after [Request.Close].
	ErrClosed = errors.New("request closed")
	// ErrUnknownCharset is recorded by [Request.Encode] for a charset
	// without a known encoder and returned by the next terminal call.
	ErrUnknownCharset = errors.New("unknown charset")
	// ErrInvalidTarget is returned when a download destination is neither
	// an existing regular file nor an existing directory.
	ErrInvalidTarget = errors.New("download target is neither a file nor a directory")
	// ErrConsumed is returned when a Downloader's response has already
	// been written out and no new one was fetched.
	ErrConsumed = errors.New("download response already consumed")
)

// FieldErrors is returned when a Request's configuration fails validation.
type FieldErrors = validate.FieldErrors

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
	defaultCharset  = "utf-8"

	// defaultUploadField names the file part of [Request.Upload].
	defaultUploadField = "file"
	// fallbackFileName names downloads when neither the response nor the
	// URL suggests a file name.
	fallbackFileName = "unknown"
)

// state is the part of a Request checked before every execution.
type state struct {
	URL          string `field:"url" validate:"required,url"`
	HasClient    bool   `field:"client" validate:"required"`
	HasExtractor bool   `field:"extractor" validate:"required"`
}
