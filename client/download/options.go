package download

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
)

// Option defines optional settings for [Handle] and [Stream].
type Option func(*options) error

type options struct {
	checksum     *digest
	progress     bool
	skipExisting bool
}

// WithChecksum enables checksum validation of the copied bytes.
// h is a hash.Hash instance (e.g. sha256.New()), and expected is the
// hex-encoded expected checksum in either case.
func WithChecksum(h hash.Hash, expected string) Option {
	return func(opts *options) error {
		if h == nil {
			return errors.New("hash must not be nil")
		}

		if expected == "" {
			return errors.New("expected checksum must not be empty")
		}

		want, err := hex.DecodeString(expected)
		if err != nil {
			return fmt.Errorf("expected checksum is not hex: %w", err)
		}

		opts.checksum = &digest{h: h, want: want}
		return nil
	}
}

// WithProgress enables periodic progress logging via the supplied logger.
func WithProgress() Option {
	return func(opts *options) error {
		opts.progress = true
		return nil
	}
}

// WithSkipExisting causes Handle to return nil immediately when
// the destination file already exists.
func WithSkipExisting() Option {
	return func(opts *options) error {
		opts.skipExisting = true
		return nil
	}
}
