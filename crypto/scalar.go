package crypto

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Scalar encoding sizes.
const (
	// ScalarSize is the canonical big-endian encoding length of a scalar.
	ScalarSize = fr.Bytes

	// WideScalarSize is the width of the buffer a chunk is reduced from.
	WideScalarSize = 2 * ScalarSize

	// ScalarChunkSize is the number of uniform bytes consumed per derived
	// scalar: ceil((ceil(log2(r)) + k) / 8) = ceil((255 + 128) / 8) = 48
	// for k = 128 bits of security. Reducing this many bytes mod r leaves a
	// statistical distance from uniform below 2^-128.
	ScalarChunkSize = 48
)

// Scalar errors.
var (
	ErrInvalidChunkLength = errors.New("scalar: chunk must be exactly 48 bytes")
	ErrNonCanonicalScalar = errors.New("scalar: encoding is not below the group order")
)

// scalarOrder is r, the order of the BLS12-381 prime-order subgroups.
var scalarOrder = uint256.MustFromBig(fr.Modulus())

// Scalar is an element of the BLS12-381 scalar field. The zero value is the
// scalar 0. Values are always fully reduced, so two Scalars are equal exactly
// when == reports them equal.
type Scalar struct {
	e fr.Element
}

// ScalarOrder returns a copy of the field order r.
func ScalarOrder() *uint256.Int {
	return new(uint256.Int).Set(scalarOrder)
}

// ScalarFromWideBytes interprets b as a big-endian 512-bit integer and
// reduces it modulo r.
func ScalarFromWideBytes(b [WideScalarSize]byte) Scalar {
	var s Scalar
	s.e.SetBytes(b[:])
	return s
}

// ScalarFromChunk decodes one ScalarChunkSize chunk of expander output. The
// chunk is zero-extended on the high-order side to WideScalarSize bytes and
// reduced, which is OS2IP(chunk) mod r as in RFC 9380 hash_to_field.
func ScalarFromChunk(chunk []byte) (Scalar, error) {
	if len(chunk) != ScalarChunkSize {
		return Scalar{}, ErrInvalidChunkLength
	}
	var wide [WideScalarSize]byte
	copy(wide[WideScalarSize-ScalarChunkSize:], chunk)
	return ScalarFromWideBytes(wide), nil
}

// ScalarFromCanonical decodes a 32-byte big-endian scalar, rejecting any
// value that is not strictly below r.
func ScalarFromCanonical(b [ScalarSize]byte) (Scalar, error) {
	if !new(uint256.Int).SetBytes32(b[:]).Lt(scalarOrder) {
		return Scalar{}, ErrNonCanonicalScalar
	}
	var s Scalar
	s.e.SetBytes(b[:])
	return s, nil
}

// RandomScalar samples a uniform scalar from the operating system's
// randomness source.
func RandomScalar() (Scalar, error) {
	var s Scalar
	if _, err := s.e.SetRandom(); err != nil {
		return Scalar{}, err
	}
	return s, nil
}

// Bytes returns the canonical big-endian encoding.
func (s Scalar) Bytes() [ScalarSize]byte { return s.e.Bytes() }

// Hex returns the 0x-prefixed big-endian encoding.
func (s Scalar) Hex() string {
	b := s.e.Bytes()
	return hexutil.Encode(b[:])
}

// String implements fmt.Stringer.
func (s Scalar) String() string { return s.Hex() }

// BigInt returns the scalar as a new big.Int.
func (s Scalar) BigInt() *big.Int { return s.e.BigInt(new(big.Int)) }

// Uint256 returns the scalar as a 256-bit integer.
func (s Scalar) Uint256() *uint256.Int {
	b := s.e.Bytes()
	return new(uint256.Int).SetBytes32(b[:])
}

// IsCanonical reports whether the integer value is below r. It holds for
// every Scalar built by this package.
func (s Scalar) IsCanonical() bool { return s.Uint256().Lt(scalarOrder) }

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool { return s.e.IsZero() }

// Equal reports whether s and o are the same field element.
func (s Scalar) Equal(o Scalar) bool { return s.e.Equal(&o.e) }
