package scalargen

import (
	"fmt"

	"github.com/eth2030/bbsrand/crypto"
	"github.com/eth2030/bbsrand/log"
	"github.com/eth2030/bbsrand/metrics"
)

// DirectGenerator samples every scalar independently from the field's
// random sampler. It involves no expansion and no domain tags.
type DirectGenerator struct {
	sample Sampler
	log    *log.Logger
	m      genMetrics
}

// NewDirect returns a direct generator. Only WithSampler, WithLogger and
// WithMetrics affect it.
func NewDirect(opts ...Option) *DirectGenerator {
	cfg := newConfig(opts)
	return &DirectGenerator{
		sample: cfg.sampler,
		log:    cfg.logger.Module("scalargen").With("strategy", StrategyDirect.String()),
		m:      newGenMetrics(cfg.registry),
	}
}

// Name implements Generator.
func (g *DirectGenerator) Name() string { return StrategyDirect.String() }

// Generate samples count scalars.
func (g *DirectGenerator) Generate(count int) ([]crypto.Scalar, error) {
	if err := checkCount(count); err != nil {
		return nil, err
	}
	timer := metrics.NewTimer(g.m.elapsed)
	defer timer.Stop()

	batch := make([]crypto.Scalar, count)
	for i := range batch {
		s, err := g.sample()
		if err != nil {
			return nil, fmt.Errorf("%w: scalar %d: %v", ErrEntropy, i, err)
		}
		batch[i] = s
	}
	g.m.sampled.Add(int64(count))
	g.m.batch.Observe(float64(count))
	g.log.Debug("direct batch sampled", "count", count)
	return batch, nil
}
