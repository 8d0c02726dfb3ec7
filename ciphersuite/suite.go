// Package ciphersuite defines the BLS12-381 BBS ciphersuites the scalar
// generators can run under. A suite fixes the expansion primitive, the
// per-scalar chunk length and the largest output one expansion may produce.
package ciphersuite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eth2030/bbsrand/crypto"
)

// SeedSize is SCALAR_LEN, the length of a seed fed to the expander.
const SeedSize = crypto.ScalarSize

// randomScalarsDST is appended to the suite's API identifier to form the
// base domain separation tag of every random-scalar derivation.
const randomScalarsDST = "H2G_HM2S_RANDOM_SCALARS_DST_"

// Suite errors.
var (
	ErrUnknownSuite = errors.New("ciphersuite: unknown suite")
	ErrInvalidSuite = errors.New("ciphersuite: invalid parameters")
)

// Suite is a set of fixed ciphersuite constants.
type Suite struct {
	// Name is the short name used on the command line.
	Name string

	// ID is the ciphersuite identifier.
	ID string

	// ExpandLen is EXPAND_LEN, the bytes of expander output per scalar.
	ExpandLen int

	// ScalarLen is SCALAR_LEN, the seed length.
	ScalarLen int

	// MaxBytesNum is the largest output length one expander invocation may
	// be asked for.
	MaxBytesNum int

	// BaseTag is the base domain separation tag of random-scalar
	// derivations under this suite.
	BaseTag string

	// Expand starts the suite's expand_message.
	Expand crypto.ExpandFunc
}

var (
	// BLS12381SHA256 is the BBS ciphersuite over expand_message_xmd with
	// SHA-256. One expansion yields at most 255 hash blocks.
	BLS12381SHA256 = &Suite{
		Name:        "sha256",
		ID:          "BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_",
		ExpandLen:   crypto.ScalarChunkSize,
		ScalarLen:   SeedSize,
		MaxBytesNum: crypto.MaxXMDLength,
		Expand:      crypto.NewExpanderXMD,
		BaseTag:     "BBS_BLS12381G1_XMD:SHA-256_SSWU_RO_" + randomScalarsDST,
	}

	// BLS12381SHAKE256 is the BBS ciphersuite over expand_message_xof with
	// SHAKE-256.
	BLS12381SHAKE256 = &Suite{
		Name:        "shake256",
		ID:          "BBS_BLS12381G1_XOF:SHAKE-256_SSWU_RO_",
		ExpandLen:   crypto.ScalarChunkSize,
		ScalarLen:   SeedSize,
		MaxBytesNum: crypto.MaxXOFLength,
		Expand:      crypto.NewExpanderXOF,
		BaseTag:     "BBS_BLS12381G1_XOF:SHAKE-256_SSWU_RO_" + randomScalarsDST,
	}
)

// All returns every supported suite.
func All() []*Suite {
	return []*Suite{BLS12381SHA256, BLS12381SHAKE256}
}

// ByName looks a suite up by short name or full identifier. The match is
// case-insensitive.
func ByName(name string) (*Suite, error) {
	for _, s := range All() {
		if strings.EqualFold(name, s.Name) || strings.EqualFold(name, s.ID) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSuite, name)
}

// BaseDST returns a copy of the base domain separation tag.
func (s *Suite) BaseDST() []byte { return []byte(s.BaseTag) }

// Validate checks that the constants are usable by the generators.
func (s *Suite) Validate() error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: nil suite", ErrInvalidSuite)
	case s.Expand == nil:
		return fmt.Errorf("%w: %s has no expander", ErrInvalidSuite, s.Name)
	case s.ExpandLen != crypto.ScalarChunkSize:
		return fmt.Errorf("%w: %s expand length %d, decoder needs %d",
			ErrInvalidSuite, s.Name, s.ExpandLen, crypto.ScalarChunkSize)
	case s.ScalarLen != SeedSize:
		return fmt.Errorf("%w: %s seed length %d, want %d", ErrInvalidSuite, s.Name, s.ScalarLen, SeedSize)
	case s.MaxBytesNum < s.ExpandLen:
		return fmt.Errorf("%w: %s max bytes %d below one chunk", ErrInvalidSuite, s.Name, s.MaxBytesNum)
	case len(s.BaseTag) == 0 || len(s.BaseTag) > crypto.MaxDSTSize:
		return fmt.Errorf("%w: %s base DST length %d", ErrInvalidSuite, s.Name, len(s.BaseTag))
	}
	return nil
}

// String returns the suite identifier.
func (s *Suite) String() string { return s.ID }
