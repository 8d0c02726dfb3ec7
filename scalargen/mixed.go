package scalargen

import (
	"fmt"

	"github.com/eth2030/bbsrand/ciphersuite"
	"github.com/eth2030/bbsrand/crypto"
	"github.com/eth2030/bbsrand/log"
	"github.com/eth2030/bbsrand/metrics"
)

// MaxScalarsPerExpansion is the most scalars one expansion under suite can
// carry: MaxBytesNum / ExpandLen.
func MaxScalarsPerExpansion(suite *ciphersuite.Suite) int {
	return suite.MaxBytesNum / suite.ExpandLen
}

// HashToScalars expands msg under dst and decodes n scalars from the
// output. n must not exceed MaxScalarsPerExpansion(suite).
func HashToScalars(suite *ciphersuite.Suite, msg []byte, dst []byte, n int) ([]crypto.Scalar, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}
	if limit := MaxScalarsPerExpansion(suite); n > limit {
		return nil, fmt.Errorf("%w: %d requested, %s allows %d", ErrTooManyScalars, n, suite.Name, limit)
	}
	exp, err := NewBudgetedExpander(suite, msg, dst, n*suite.ExpandLen)
	if err != nil {
		return nil, err
	}
	return exp.ReadScalars(n)
}

// MixedGenerator draws a fresh seed for every PerSeedCount scalars and
// expands each seed once, to its full budget, under the suite's base tag.
// Seeds are independent, so no tag chaining is needed.
type MixedGenerator struct {
	suite   *ciphersuite.Suite
	entropy EntropySource
	log     *log.Logger
	m       genMetrics
}

// NewMixed returns a mixed generator for suite.
func NewMixed(suite *ciphersuite.Suite, opts ...Option) (*MixedGenerator, error) {
	if err := suite.Validate(); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	return &MixedGenerator{
		suite:   suite,
		entropy: cfg.entropy,
		log:     cfg.logger.Module("scalargen").With("strategy", StrategyMixed.String(), "suite", suite.Name),
		m:       newGenMetrics(cfg.registry),
	}, nil
}

// Name implements Generator.
func (g *MixedGenerator) Name() string { return StrategyMixed.String() }

// PerSeedCount is the number of scalars drawn from each seed.
func (g *MixedGenerator) PerSeedCount() int { return MaxScalarsPerExpansion(g.suite) }

// Generate returns count scalars using ceil(count / PerSeedCount) seeds.
func (g *MixedGenerator) Generate(count int) ([]crypto.Scalar, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	timer := metrics.NewTimer(g.m.elapsed)
	defer timer.Stop()

	perSeed := g.PerSeedCount()
	full, remainder := count/perSeed, count%perSeed

	batch := make([]crypto.Scalar, 0, count)
	for i := 0; i < full; i++ {
		scalars, err := g.fromFreshSeed(perSeed)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", i, err)
		}
		batch = append(batch, scalars...)
	}
	// A zero remainder needs no extra seed.
	if remainder > 0 {
		scalars, err := g.fromFreshSeed(remainder)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", full, err)
		}
		batch = append(batch, scalars...)
	}

	g.m.batch.Observe(float64(count))
	g.log.Debug("mixed batch derived", "count", count, "seeds", full+min(remainder, 1))
	return batch, nil
}

func (g *MixedGenerator) fromFreshSeed(n int) ([]crypto.Scalar, error) {
	seed, err := drawSeed(g.entropy)
	if err != nil {
		return nil, err
	}
	g.m.seeds.Inc()
	scalars, err := HashToScalars(g.suite, seed[:], g.suite.BaseDST(), n)
	if err != nil {
		return nil, err
	}
	g.m.expanded(n*g.suite.ExpandLen, n)
	g.log.Trace("mixed seed expanded", "scalars", n)
	return scalars, nil
}
