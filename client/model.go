package client

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxErrBodySize caps the amount of response body read when
// building an error for an unexpected status code.
const maxErrBodySize = 4 << 10 // 4KB

var (
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrAuthFailure is joined with [ErrUnexpectedStatusCode] when the server
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")
)

// UnexpectedStatusError is returned when the HTTP response status code
// does not match the expected value.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}

// StatusError builds an [UnexpectedStatusError] from resp, reading at
// most 4KB of its body.
func StatusError(resp *http.Response) *UnexpectedStatusError {
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
	if err != nil {
		b = []byte("unable to read body")
	}

	sentinel := ErrUnexpectedStatusCode
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		sentinel = errors.Join(ErrAuthFailure, ErrUnexpectedStatusCode)
	}

	return &UnexpectedStatusError{
		StatusCode: resp.StatusCode,
		Body:       string(b),
		Err:        sentinel,
	}
}
