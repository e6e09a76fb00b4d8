package download

import (
	"bytes"
	"encoding/hex"
	"hash"
)

// digest hashes the bytes of one copy and compares the sum against the
// expected value given to WithChecksum.
type digest struct {
	h    hash.Hash
	want []byte
}

// begin resets the hash so an Option reused across downloads starts clean.
func (d *digest) begin() {
	if d != nil {
		d.h.Reset()
	}
}

func (d *digest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

// check reports ErrChecksumMismatch with both sums in hex. A nil digest
// always passes.
func (d *digest) check(written int64) error {
	if d == nil {
		return nil
	}

	got := d.h.Sum(nil)
	if bytes.Equal(got, d.want) {
		return nil
	}

	return &Error{
		Err:     ErrChecksumMismatch,
		Written: written,
		Detail:  "want " + hex.EncodeToString(d.want) + ", got " + hex.EncodeToString(got),
	}
}
