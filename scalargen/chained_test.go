package scalargen

import (
	"bytes"
	"errors"
	"testing"

	"github.com/eth2030/bbsrand/ciphersuite"
	"github.com/eth2030/bbsrand/crypto"
	"github.com/eth2030/bbsrand/metrics"
)

func TestChainedPerEpochCount(t *testing.T) {
	_, opts := testOpts()
	for suite, want := range map[*ciphersuite.Suite]int{
		ciphersuite.BLS12381SHA256:   164,
		ciphersuite.BLS12381SHAKE256: 1360,
	} {
		g, err := NewChained(suite, opts...)
		if err != nil {
			t.Fatal(err)
		}
		if got := g.PerEpochCount(); got != want {
			t.Fatalf("%s: per epoch = %d, want %d", suite.Name, got, want)
		}
	}
}

func TestChainedCounts(t *testing.T) {
	_, opts := testOpts()
	g, err := NewChained(ciphersuite.BLS12381SHA256, opts...)
	if err != nil {
		t.Fatal(err)
	}
	per := g.PerEpochCount()
	for _, count := range []int{0, 1, per - 1, per, per + 1, 2 * per, 2*per + 5, 400} {
		batch, err := g.Generate(count)
		if err != nil {
			t.Fatalf("count %d: %v", count, err)
		}
		if len(batch) != count {
			t.Fatalf("count %d: got %d scalars", count, len(batch))
		}
		requireCanonical(t, batch)
	}
}

func TestChainedManyEpochs(t *testing.T) {
	reg, opts := testOpts()
	g, err := NewChained(smallSuite(3), opts...)
	if err != nil {
		t.Fatal(err)
	}
	batch, err := g.GenerateFromSeed(testSeed(1), 3*40+2)
	if err != nil {
		t.Fatal(err)
	}
	if len(batch) != 122 {
		t.Fatalf("got %d scalars, want 122", len(batch))
	}
	seen := make(map[crypto.Scalar]int)
	for i, s := range batch {
		if j, dup := seen[s]; dup {
			t.Fatalf("scalar %d repeats scalar %d", i, j)
		}
		seen[s] = i
	}
	if got := reg.Gauge(metrics.NameChainEpochs).Value(); got != 41 {
		t.Fatalf("epochs = %d, want 41", got)
	}
}

func TestChainedDeterministic(t *testing.T) {
	_, opts := testOpts()
	g := mustChained(t, ciphersuite.BLS12381SHA256, opts)
	count := 2*g.PerEpochCount() + 5

	a, err := g.GenerateFromSeed(testSeed(9), count)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.GenerateFromSeed(testSeed(9), count)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("scalar %d differs between identical runs", i)
		}
	}

	// A shorter request is a prefix only within the first epoch, where the
	// tag is the same; the remainder epoch requests a different length.
	short := mustFromSeed(t, g, testSeed(9), g.PerEpochCount())
	for i := range short {
		if short[i] != a[i] {
			t.Fatalf("full-epoch scalar %d differs from the longer run", i)
		}
	}
}

func TestChainedSeedAvalanche(t *testing.T) {
	_, opts := testOpts()
	g := mustChained(t, smallSuite(4), opts)
	seed := testSeed(3)
	flipped := seed
	flipped[17] ^= 0x01

	a := mustFromSeed(t, g, seed, 30)
	b := mustFromSeed(t, g, flipped, 30)

	inA := make(map[crypto.Scalar]bool, len(a))
	for _, s := range a {
		inA[s] = true
	}
	for i, s := range b {
		if inA[s] {
			t.Fatalf("scalar %d survived a one-bit seed change", i)
		}
	}
}

func TestChainedTags(t *testing.T) {
	_, opts := testOpts()
	g := mustChained(t, ciphersuite.BLS12381SHA256, opts)
	per := g.PerEpochCount()

	for _, count := range []int{per + 1, 2*per + 5, 3 * per} {
		var tags []DomainTag
		if _, err := g.derive(testSeed(5), count, func(epoch int, tag DomainTag) {
			if epoch != len(tags)+1 {
				t.Fatalf("epoch %d visited out of order", epoch)
			}
			tags = append(tags, append(DomainTag(nil), tag...))
		}); err != nil {
			t.Fatalf("count %d: %v", count, err)
		}

		wantEpochs := (count + per - 1) / per
		if len(tags) != wantEpochs {
			t.Fatalf("count %d: %d epochs, want %d", count, len(tags), wantEpochs)
		}
		if !bytes.Equal(tags[0], InitialTag(g.suite.BaseDST())) {
			t.Fatalf("count %d: first tag is not the initial tag", count)
		}
		for i := 1; i < len(tags); i++ {
			if n, ok := DecodeCounter(tags[i]); !ok || n != uint32(i) {
				t.Fatalf("count %d: tag %d counter = %d", count, i, n)
			}
			if len(tags[i]) != CounterSize+ReservedTagBytes {
				t.Fatalf("count %d: tag %d length = %d", count, i, len(tags[i]))
			}
			for j := 0; j < i; j++ {
				if bytes.Equal(tags[i], tags[j]) {
					t.Fatalf("count %d: tags %d and %d are equal", count, i, j)
				}
			}
		}
	}
}

// Replays the chain by hand for one full epoch plus a remainder.
func TestChainedMatchesManualDerivation(t *testing.T) {
	suite := ciphersuite.BLS12381SHA256
	_, opts := testOpts()
	g := mustChained(t, suite, opts)
	per := g.PerEpochCount()
	seed := testSeed(42)

	got, err := g.GenerateFromSeed(seed, per+2)
	if err != nil {
		t.Fatal(err)
	}

	tag1 := InitialTag(suite.BaseDST())
	out1 := mustExpand(t, crypto.NewExpanderXMD, seed[:], tag1, per*suite.ExpandLen+ReservedTagBytes)
	tag2 := NextTag(1, out1[per*suite.ExpandLen:])
	out2 := mustExpand(t, crypto.NewExpanderXMD, seed[:], tag2, 2*suite.ExpandLen)

	want := func(buf []byte, i int) crypto.Scalar {
		return mustChunkScalar(t, buf[i*suite.ExpandLen:(i+1)*suite.ExpandLen])
	}
	checks := []struct {
		idx  int
		want crypto.Scalar
	}{
		{0, want(out1, 0)},
		{per - 1, want(out1, per-1)},
		{per, want(out2, 0)},
		{per + 1, want(out2, 1)},
	}
	for _, c := range checks {
		if got[c.idx] != c.want {
			t.Fatalf("scalar %d = %s, want %s", c.idx, got[c.idx].Hex(), c.want.Hex())
		}
	}
}

func TestChainedExactMultipleSkipsFinalExpansion(t *testing.T) {
	reg, opts := testOpts()
	g := mustChained(t, smallSuite(5), opts)
	if _, err := g.GenerateFromSeed(testSeed(0), 10); err != nil {
		t.Fatal(err)
	}
	if got := reg.Counter(metrics.NameExpansions).Value(); got != 2 {
		t.Fatalf("expansions = %d, want 2", got)
	}
	wantBytes := int64(2 * (5*48 + ReservedTagBytes))
	if got := reg.Counter(metrics.NameBytesExpanded).Value(); got != wantBytes {
		t.Fatalf("bytes expanded = %d, want %d", got, wantBytes)
	}
}

func TestChainedEntropyUse(t *testing.T) {
	src := &recordingEntropy{}
	reg, opts := testOpts(WithEntropy(src))
	g := mustChained(t, ciphersuite.BLS12381SHA256, opts)

	batch, err := g.Generate(0)
	if err != nil || len(batch) != 0 {
		t.Fatalf("Generate(0) = (%d, %v)", len(batch), err)
	}
	if src.calls != 0 {
		t.Fatalf("entropy drawn %d times for an empty batch", src.calls)
	}
	if reg.Counter(metrics.NameExpansions).Value() != 0 {
		t.Fatal("expansion performed for an empty batch")
	}

	batch, err = g.Generate(400)
	if err != nil {
		t.Fatal(err)
	}
	if src.calls != 1 {
		t.Fatalf("entropy drawn %d times, want 1", src.calls)
	}
	var seed Seed
	copy(seed[:], src.fills[0])
	replay := mustFromSeed(t, g, seed, 400)
	for i := range batch {
		if batch[i] != replay[i] {
			t.Fatalf("scalar %d not derived from the drawn seed", i)
		}
	}
}

func TestChainedErrors(t *testing.T) {
	_, opts := testOpts(WithEntropy(failingEntropy()))
	g := mustChained(t, ciphersuite.BLS12381SHA256, opts)

	if _, err := g.Generate(1); !errors.Is(err, ErrEntropy) {
		t.Fatalf("err = %v, want ErrEntropy", err)
	}
	if _, err := g.Generate(-1); !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("err = %v, want ErrNegativeCount", err)
	}

	tight := *ciphersuite.BLS12381SHA256
	tight.MaxBytesNum = ReservedTagBytes + 47
	if _, err := NewChained(&tight, opts...); !errors.Is(err, ciphersuite.ErrInvalidSuite) {
		t.Fatalf("tight suite: err = %v, want ErrInvalidSuite", err)
	}
	long := *ciphersuite.BLS12381SHA256
	long.BaseTag = string(bytes.Repeat([]byte{'x'}, 253))
	if _, err := NewChained(&long, opts...); !errors.Is(err, ciphersuite.ErrInvalidSuite) {
		t.Fatalf("long tag: err = %v, want ErrInvalidSuite", err)
	}
}
