package crypto

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// MaxXOFLength is the largest output of expand_message_xof; the length is
// encoded into msg_prime as a two-byte integer.
const MaxXOFLength = 1<<16 - 1

// xofExpander is expand_message_xof (RFC 9380 Section 5.3.2) over SHAKE-256:
//
//	msg_prime = msg || I2OSP(len_in_bytes, 2) || DST_prime
//	uniform_bytes = SHAKE256(msg_prime, len_in_bytes)
type xofExpander struct {
	xof       sha3.ShakeHash
	remaining int
}

// NewExpanderXOF starts expand_message_xof with SHAKE-256.
func NewExpanderXOF(msg, dst []byte, lenInBytes int) (Expander, error) {
	if lenInBytes < 0 || lenInBytes > MaxXOFLength {
		return nil, ErrExpandTooLong
	}
	if len(dst) > MaxDSTSize {
		return nil, ErrDSTTooLong
	}

	xof := sha3.NewShake256()
	xof.Write(msg)
	xof.Write([]byte{byte(lenInBytes >> 8), byte(lenInBytes)})
	xof.Write(dstPrime(dst))

	return &xofExpander{xof: xof, remaining: lenInBytes}, nil
}

// ExpandMessageXOF returns all lenInBytes bytes of expand_message_xof at once.
func ExpandMessageXOF(msg, dst []byte, lenInBytes int) ([]byte, error) {
	e, err := NewExpanderXOF(msg, dst, lenInBytes)
	if err != nil {
		return nil, err
	}
	return readAll(e)
}

func (e *xofExpander) Remaining() int { return e.remaining }

func (e *xofExpander) Read(p []byte) (int, error) {
	if e.remaining == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n, err := e.xof.Read(p[:min(len(p), e.remaining)])
	e.remaining -= n
	return n, err
}
