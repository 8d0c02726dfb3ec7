package scalargen

import "encoding/binary"

// Domain tag layout of a chained derivation. Epochs are numbered from 1 and
// every tag is a 4-byte big-endian counter followed by a body:
//
//	epoch 1:     I2OSP(len(base), 4) || base
//	epoch i+1:   I2OSP(i, 4)         || last ReservedTagBytes bytes of epoch i
const (
	// CounterSize is the width of the big-endian counter prefix.
	CounterSize = 4

	// ReservedTagBytes is the number of bytes reserved at the end of each
	// chained epoch to become the body of the next epoch's tag. Together with
	// the counter the tag stays within the 255-byte DST limit.
	ReservedTagBytes = 250
)

// DomainTag is a domain separation tag passed to expand_message.
type DomainTag []byte

// EncodeCounter returns I2OSP(n, 4).
func EncodeCounter(n uint32) [CounterSize]byte {
	var b [CounterSize]byte
	binary.BigEndian.PutUint32(b[:], n)
	return b
}

// DecodeCounter reads the counter prefix of a tag. ok is false if the tag is
// shorter than CounterSize.
func DecodeCounter(tag DomainTag) (n uint32, ok bool) {
	if len(tag) < CounterSize {
		return 0, false
	}
	return binary.BigEndian.Uint32(tag[:CounterSize]), true
}

// InitialTag returns the tag of the first epoch: the base tag prefixed by
// its own length.
func InitialTag(base []byte) DomainTag {
	return prefixed(uint32(len(base)), base)
}

// NextTag returns the tag of epoch+1, built from the tail bytes reserved at
// the end of epoch's expansion.
func NextTag(epoch uint32, tail []byte) DomainTag {
	return prefixed(epoch, tail)
}

func prefixed(counter uint32, body []byte) DomainTag {
	c := EncodeCounter(counter)
	tag := make(DomainTag, 0, CounterSize+len(body))
	tag = append(tag, c[:]...)
	return append(tag, body...)
}
