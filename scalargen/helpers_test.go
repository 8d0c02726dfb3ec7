package scalargen

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/eth2030/bbsrand/ciphersuite"
	"github.com/eth2030/bbsrand/crypto"
	"github.com/eth2030/bbsrand/log"
	"github.com/eth2030/bbsrand/metrics"
)

// recordingEntropy fills buffers with a deterministic SHA-256 stream and
// keeps a copy of everything it handed out.
type recordingEntropy struct {
	calls int
	fills [][]byte
}

func (r *recordingEntropy) Fill(p []byte) error {
	r.calls++
	for off := 0; off < len(p); off += sha256.Size {
		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], uint64(r.calls)<<16|uint64(off))
		sum := sha256.Sum256(ctr[:])
		copy(p[off:], sum[:])
	}
	r.fills = append(r.fills, append([]byte(nil), p...))
	return nil
}

var errNoEntropy = errors.New("no entropy")

func failingEntropy() EntropySource {
	return EntropyFunc(func([]byte) error { return errNoEntropy })
}

// smallSuite is the SHA-256 suite with a budget of exactly perEpoch chained
// scalars, so epoch boundaries are cheap to cross.
func smallSuite(perEpoch int) *ciphersuite.Suite {
	s := *ciphersuite.BLS12381SHA256
	s.Name = "sha256-small"
	s.MaxBytesNum = ReservedTagBytes + perEpoch*s.ExpandLen
	return &s
}

// testOpts keeps test generators quiet and their metrics private.
func testOpts(extra ...Option) (*metrics.Registry, []Option) {
	reg := metrics.NewRegistry()
	return reg, append([]Option{WithLogger(log.Discard()), WithMetrics(reg)}, extra...)
}

func testSeed(b byte) Seed {
	var s Seed
	for i := range s {
		s[i] = b + byte(i)
	}
	return s
}

func requireCanonical(t *testing.T, batch []crypto.Scalar) {
	t.Helper()
	for i, s := range batch {
		if !s.IsCanonical() {
			t.Fatalf("scalar %d (%s) is not canonical", i, s.Hex())
		}
	}
}

func mustChained(t *testing.T, suite *ciphersuite.Suite, opts []Option) *ChainedGenerator {
	t.Helper()
	g, err := NewChained(suite, opts...)
	if err != nil {
		t.Fatalf("NewChained(%s): %v", suite.Name, err)
	}
	return g
}

func mustMixed(t *testing.T, suite *ciphersuite.Suite, opts []Option) *MixedGenerator {
	t.Helper()
	g, err := NewMixed(suite, opts...)
	if err != nil {
		t.Fatalf("NewMixed(%s): %v", suite.Name, err)
	}
	return g
}

func mustNew(t *testing.T, s Strategy, suite *ciphersuite.Suite, opts []Option) Generator {
	t.Helper()
	g, err := New(s, suite, opts...)
	if err != nil {
		t.Fatalf("New(%s, %s): %v", s, suite.Name, err)
	}
	return g
}

func mustFromSeed(t *testing.T, g *ChainedGenerator, seed Seed, count int) []crypto.Scalar {
	t.Helper()
	batch, err := g.GenerateFromSeed(seed, count)
	if err != nil {
		t.Fatalf("GenerateFromSeed(%d): %v", count, err)
	}
	return batch
}

func mustHashToScalars(t *testing.T, suite *ciphersuite.Suite, msg, dst []byte, n int) []crypto.Scalar {
	t.Helper()
	out, err := HashToScalars(suite, msg, dst, n)
	if err != nil {
		t.Fatalf("HashToScalars(%d): %v", n, err)
	}
	return out
}

func mustExpand(t *testing.T, f crypto.ExpandFunc, msg, dst []byte, n int) []byte {
	t.Helper()
	e, err := f(msg, dst, n)
	if err != nil {
		t.Fatalf("expand %d bytes: %v", n, err)
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(e, out); err != nil {
		t.Fatalf("read %d expanded bytes: %v", n, err)
	}
	return out
}

func mustChunkScalar(t *testing.T, chunk []byte) crypto.Scalar {
	t.Helper()
	s, err := crypto.ScalarFromChunk(chunk)
	if err != nil {
		t.Fatal(err)
	}
	return s
}
