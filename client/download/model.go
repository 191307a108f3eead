package download

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
)

var (
	ErrContentLengthMismatch = errors.New("content length mismatch")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
	ErrUnexpectedStatus      = errors.New("unexpected status")
)

// Error carries the detail of a failed download check.
type Error struct {
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// digest hashes the bytes written through it and compares the result to
// the expected hex string. A nil digest always matches.
type digest struct {
	h    hash.Hash
	want string
}

func (d *digest) Write(p []byte) (int, error) {
	return d.h.Write(p)
}

func (d *digest) check() error {
	if d == nil {
		return nil
	}

	if got := hex.EncodeToString(d.h.Sum(nil)); got != d.want {
		return &Error{
			Err:    ErrChecksumMismatch,
			Detail: fmt.Sprintf("expected %s, got %s", d.want, got),
		}
	}

	return nil
}
