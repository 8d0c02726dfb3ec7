package scalargen

import (
	"fmt"
	"math"

	"github.com/eth2030/bbsrand/ciphersuite"
	"github.com/eth2030/bbsrand/crypto"
	"github.com/eth2030/bbsrand/log"
	"github.com/eth2030/bbsrand/metrics"
)

// ChainedGenerator derives any number of scalars from a single seed. Output
// is split into epochs of PerEpochCount scalars; each full epoch expands
// PerEpochCount*ExpandLen + ReservedTagBytes bytes and the reserved tail
// becomes the body of the next epoch's tag. A final epoch covers the
// remainder without a reserved tail.
type ChainedGenerator struct {
	suite   *ciphersuite.Suite
	entropy EntropySource
	log     *log.Logger
	m       genMetrics
}

// NewChained returns a chained generator for suite. The suite must leave
// room for at least one scalar next to the reserved tag bytes, and its base
// tag plus the counter prefix must fit in a DST.
func NewChained(suite *ciphersuite.Suite, opts ...Option) (*ChainedGenerator, error) {
	if err := suite.Validate(); err != nil {
		return nil, err
	}
	if suite.MaxBytesNum < ReservedTagBytes+suite.ExpandLen {
		return nil, fmt.Errorf("%w: %s max bytes %d leaves no room after %d reserved tag bytes",
			ciphersuite.ErrInvalidSuite, suite.Name, suite.MaxBytesNum, ReservedTagBytes)
	}
	if CounterSize+len(suite.BaseTag) > crypto.MaxDSTSize {
		return nil, fmt.Errorf("%w: %s base tag too long to chain", ciphersuite.ErrInvalidSuite, suite.Name)
	}
	cfg := newConfig(opts)
	return &ChainedGenerator{
		suite:   suite,
		entropy: cfg.entropy,
		log:     cfg.logger.Module("scalargen").With("strategy", StrategyChained.String(), "suite", suite.Name),
		m:       newGenMetrics(cfg.registry),
	}, nil
}

// Name implements Generator.
func (g *ChainedGenerator) Name() string { return StrategyChained.String() }

// PerEpochCount is the number of scalars a full epoch yields:
// (MaxBytesNum - ReservedTagBytes) / ExpandLen.
func (g *ChainedGenerator) PerEpochCount() int {
	return (g.suite.MaxBytesNum - ReservedTagBytes) / g.suite.ExpandLen
}

// Generate draws one fresh seed and derives count scalars from it. A zero
// count returns an empty batch without touching the entropy source.
func (g *ChainedGenerator) Generate(count int) ([]crypto.Scalar, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	if count == 0 {
		return []crypto.Scalar{}, nil
	}
	seed, err := drawSeed(g.entropy)
	if err != nil {
		return nil, err
	}
	g.m.seeds.Inc()
	return g.GenerateFromSeed(seed, count)
}

// GenerateFromSeed derives count scalars from seed. The result depends only
// on the suite, seed and count.
func (g *ChainedGenerator) GenerateFromSeed(seed Seed, count int) ([]crypto.Scalar, error) {
	return g.derive(seed, count, nil)
}

// derive runs the epoch chain. visit, if not nil, sees each epoch's tag
// before it is expanded.
func (g *ChainedGenerator) derive(seed Seed, count int, visit func(epoch int, tag DomainTag)) ([]crypto.Scalar, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	timer := metrics.NewTimer(g.m.elapsed)
	defer timer.Stop()

	perEpoch := g.PerEpochCount()
	fullEpochs, remainder := count/perEpoch, count%perEpoch
	if uint64(fullEpochs) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d epochs", ErrCountTooLarge, fullEpochs)
	}

	batch := make([]crypto.Scalar, 0, count)
	tag := InitialTag(g.suite.BaseDST())
	for i := 1; i <= fullEpochs; i++ {
		if visit != nil {
			visit(i, tag)
		}
		scalars, tail, err := g.epoch(seed, tag, perEpoch, ReservedTagBytes)
		if err != nil {
			return nil, fmt.Errorf("epoch %d: %w", i, err)
		}
		batch = append(batch, scalars...)
		tag = NextTag(uint32(i), tail)
		g.log.Trace("chained epoch", "epoch", i, "scalars", len(scalars))
	}

	// A zero remainder needs no final expansion.
	epochs := fullEpochs
	if remainder > 0 {
		epochs++
		if visit != nil {
			visit(epochs, tag)
		}
		scalars, _, err := g.epoch(seed, tag, remainder, 0)
		if err != nil {
			return nil, fmt.Errorf("epoch %d: %w", epochs, err)
		}
		batch = append(batch, scalars...)
	}

	g.m.epochs.Set(int64(epochs))
	g.m.batch.Observe(float64(count))
	g.log.Debug("chained batch derived", "count", count, "epochs", epochs, "per_epoch", perEpoch)
	return batch, nil
}

// epoch expands n chunks plus reserve trailing bytes under tag and returns
// the decoded scalars and the trailing bytes.
func (g *ChainedGenerator) epoch(seed Seed, tag DomainTag, n, reserve int) ([]crypto.Scalar, []byte, error) {
	outputLen := n*g.suite.ExpandLen + reserve
	exp, err := NewBudgetedExpander(g.suite, seed[:], tag, outputLen)
	if err != nil {
		return nil, nil, err
	}
	scalars, err := exp.ReadScalars(n)
	if err != nil {
		return nil, nil, err
	}
	tail, err := exp.DrainTail()
	if err != nil {
		return nil, nil, err
	}
	if len(tail) != reserve {
		return nil, nil, fmt.Errorf("%w: tail of %d bytes, want %d", ErrExpanderExhausted, len(tail), reserve)
	}
	g.m.expanded(outputLen, n)
	return scalars, tail, nil
}
