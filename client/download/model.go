package download

import (
	"errors"
	"fmt"
)

var (
	ErrContentLengthMismatch = errors.New("content length mismatch")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
	ErrDownloadCancelled     = errors.New("download cancelled")
)

// Error is returned when a body was copied but failed verification.
// Written counts the bytes copied before the failure was detected.
type Error struct {
	Err     error
	Written int64
	Detail  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v after %d bytes: %s", e.Err, e.Written, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}
