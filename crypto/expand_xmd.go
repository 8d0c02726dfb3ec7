package crypto

import (
	"crypto/sha256"
	"hash"
	"io"
)

// SHA-256 parameters of expand_message_xmd.
const (
	xmdBlockSize = sha256.Size      // b_in_bytes
	xmdRateSize  = sha256.BlockSize // r_in_bytes

	// MaxXMDLength is the largest output expand_message_xmd with SHA-256 can
	// produce: ell = ceil(len_in_bytes / b_in_bytes) must not exceed 255.
	MaxXMDLength = 255 * xmdBlockSize
)

// xmdExpander is expand_message_xmd (RFC 9380 Section 5.3.1) computed one
// b_i block at a time:
//
//	msg_prime = Z_pad || msg || I2OSP(len_in_bytes, 2) || I2OSP(0, 1) || DST_prime
//	b_0 = H(msg_prime)
//	b_1 = H(b_0 || I2OSP(1, 1) || DST_prime)
//	b_i = H(strxor(b_0, b_{i-1}) || I2OSP(i, 1) || DST_prime)
type xmdExpander struct {
	h         hash.Hash
	dstPrime  []byte
	b0        [xmdBlockSize]byte
	prev      [xmdBlockSize]byte
	buf       []byte // unread tail of prev
	index     int    // i of the most recent b_i
	remaining int
}

// NewExpanderXMD starts expand_message_xmd with SHA-256. The zero-length
// request is valid and yields an exhausted stream.
func NewExpanderXMD(msg, dst []byte, lenInBytes int) (Expander, error) {
	if lenInBytes < 0 || lenInBytes > MaxXMDLength {
		return nil, ErrExpandTooLong
	}
	if len(dst) > MaxDSTSize {
		return nil, ErrDSTTooLong
	}

	e := &xmdExpander{
		h:         sha256.New(),
		dstPrime:  dstPrime(dst),
		remaining: lenInBytes,
	}

	var zPad [xmdRateSize]byte
	e.h.Write(zPad[:])
	e.h.Write(msg)
	e.h.Write([]byte{byte(lenInBytes >> 8), byte(lenInBytes)})
	e.h.Write([]byte{0})
	e.h.Write(e.dstPrime)
	e.h.Sum(e.b0[:0])

	return e, nil
}

// ExpandMessageXMD returns all lenInBytes bytes of expand_message_xmd at once.
func ExpandMessageXMD(msg, dst []byte, lenInBytes int) ([]byte, error) {
	e, err := NewExpanderXMD(msg, dst, lenInBytes)
	if err != nil {
		return nil, err
	}
	return readAll(e)
}

func (e *xmdExpander) Remaining() int { return e.remaining }

func (e *xmdExpander) Read(p []byte) (int, error) {
	if e.remaining == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := 0
	for n < len(p) && e.remaining > 0 {
		if len(e.buf) == 0 {
			e.nextBlock()
		}
		k := copy(p[n:], e.buf[:min(len(e.buf), e.remaining)])
		e.buf = e.buf[k:]
		e.remaining -= k
		n += k
	}
	return n, nil
}

func (e *xmdExpander) nextBlock() {
	e.index++
	e.h.Reset()
	if e.index == 1 {
		e.h.Write(e.b0[:])
	} else {
		var x [xmdBlockSize]byte
		for j := range x {
			x[j] = e.b0[j] ^ e.prev[j]
		}
		e.h.Write(x[:])
	}
	e.h.Write([]byte{byte(e.index)})
	e.h.Write(e.dstPrime)
	e.h.Sum(e.prev[:0])
	e.buf = e.prev[:]
}
