// Package crypto holds the primitives the scalar generators are built on:
// the RFC 9380 expand_message constructions (XMD over SHA-256 and XOF over
// SHAKE-256) exposed as incremental byte streams, and the BLS12-381 scalar
// type with its wide-reduction decoder.
//
// Constant-time note: scalar reduction of wide inputs goes through math/big
// inside gnark-crypto. That is fine for deriving blinding scalars from fresh
// seeds but the package makes no constant-time claims.
package crypto

import (
	"errors"
	"io"
)

// MaxDSTSize is the largest domain separation tag accepted by either
// expander. Longer tags would have to be pre-hashed (RFC 9380 Section 5.3.3),
// which none of the ciphersuites here need.
const MaxDSTSize = 255

// Errors returned by the expanders.
var (
	ErrExpandTooLong = errors.New("expand_message: requested output length out of range")
	ErrDSTTooLong    = errors.New("expand_message: DST too long")
)

// Expander is the output of a single expand_message invocation. Bytes are
// produced on demand; Read returns io.EOF once the declared output length has
// been consumed.
type Expander interface {
	io.Reader

	// Remaining reports how many bytes of the declared output are unread.
	Remaining() int
}

// ExpandFunc starts an expand_message invocation over msg and dst producing
// exactly lenInBytes bytes.
type ExpandFunc func(msg, dst []byte, lenInBytes int) (Expander, error)

// readAll drains a freshly started expander into a single buffer.
func readAll(e Expander) ([]byte, error) {
	out := make([]byte, e.Remaining())
	if _, err := io.ReadFull(e, out); err != nil {
		return nil, err
	}
	return out, nil
}

// dstPrime returns DST || I2OSP(len(DST), 1).
func dstPrime(dst []byte) []byte {
	out := make([]byte, len(dst)+1)
	copy(out, dst)
	out[len(dst)] = byte(len(dst))
	return out
}
