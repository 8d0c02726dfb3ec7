package scalargen

import (
	"crypto/rand"
	"fmt"

	"github.com/eth2030/bbsrand/ciphersuite"
)

// Seed is the secret input of one expansion chain.
type Seed [ciphersuite.SeedSize]byte

// EntropySource fills buffers with non-deterministic bytes.
type EntropySource interface {
	Fill(p []byte) error
}

// EntropyFunc adapts a function to EntropySource.
type EntropyFunc func(p []byte) error

// Fill calls f(p).
func (f EntropyFunc) Fill(p []byte) error { return f(p) }

// SystemEntropy reads from the operating system's CSPRNG.
type SystemEntropy struct{}

// Fill implements EntropySource.
func (SystemEntropy) Fill(p []byte) error {
	_, err := rand.Read(p)
	return err
}

// drawSeed reads one fresh seed from src.
func drawSeed(src EntropySource) (Seed, error) {
	var seed Seed
	if err := src.Fill(seed[:]); err != nil {
		return Seed{}, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return seed, nil
}
