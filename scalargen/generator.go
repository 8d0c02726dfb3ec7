// Package scalargen derives batches of uniformly random BLS12-381 scalars.
//
// Three strategies are provided:
//
//   - chained: one seed, expanded epoch after epoch. Each epoch reserves the
//     tail of its output to build the next epoch's domain separation tag, so
//     any number of scalars comes from a single 32-byte seed.
//   - direct: every scalar sampled independently from the field's random
//     sampler.
//   - mixed: a fresh seed for every MaxBytesNum/ExpandLen scalars, each seed
//     expanded once under a fixed tag.
//
// All strategies return exactly the requested number of scalars.
package scalargen

import (
	"fmt"
	"strings"

	"github.com/eth2030/bbsrand/ciphersuite"
	"github.com/eth2030/bbsrand/crypto"
	"github.com/eth2030/bbsrand/log"
	"github.com/eth2030/bbsrand/metrics"
)

// Generator produces batches of random scalars.
type Generator interface {
	// Generate returns exactly count scalars in generation order.
	Generate(count int) ([]crypto.Scalar, error)

	// Name returns the strategy name.
	Name() string
}

// Strategy selects a Generator implementation.
type Strategy int

const (
	StrategyChained Strategy = iota
	StrategyDirect
	StrategyMixed
)

var strategyNames = [...]string{
	StrategyChained: "chained",
	StrategyDirect:  "direct",
	StrategyMixed:   "mixed",
}

// String returns the strategy name.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy parses a strategy name. The match is case-insensitive.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{StrategyChained, StrategyDirect, StrategyMixed}
}

// New builds the generator for strategy under suite. The direct strategy
// does not expand and ignores suite.
func New(strategy Strategy, suite *ciphersuite.Suite, opts ...Option) (Generator, error) {
	switch strategy {
	case StrategyChained:
		return NewChained(suite, opts...)
	case StrategyDirect:
		return NewDirect(opts...), nil
	case StrategyMixed:
		return NewMixed(suite, opts...)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Sampler draws one uniform scalar from a non-deterministic source.
type Sampler func() (crypto.Scalar, error)

type config struct {
	entropy  EntropySource
	sampler  Sampler
	logger   *log.Logger
	registry *metrics.Registry
}

// Option configures a generator.
type Option func(*config)

// WithEntropy sets the source seeds are drawn from. The default is
// SystemEntropy.
func WithEntropy(src EntropySource) Option {
	return func(c *config) { c.entropy = src }
}

// WithSampler sets the field sampler used by the direct strategy. The
// default is crypto.RandomScalar.
func WithSampler(s Sampler) Option {
	return func(c *config) { c.sampler = s }
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics sets the registry metrics are recorded in. The default is
// metrics.DefaultRegistry.
func WithMetrics(r *metrics.Registry) Option {
	return func(c *config) { c.registry = r }
}

func newConfig(opts []Option) config {
	c := config{
		entropy:  SystemEntropy{},
		sampler:  crypto.RandomScalar,
		logger:   log.Default(),
		registry: metrics.DefaultRegistry,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// genMetrics are the registry entries a generator updates.
type genMetrics struct {
	seeds      *metrics.Counter
	expansions *metrics.Counter
	bytes      *metrics.Counter
	derived    *metrics.Counter
	sampled    *metrics.Counter
	epochs     *metrics.Gauge
	batch      *metrics.Histogram
	elapsed    *metrics.Histogram
}

func newGenMetrics(r *metrics.Registry) genMetrics {
	return genMetrics{
		seeds:      r.Counter(metrics.NameSeedsDrawn),
		expansions: r.Counter(metrics.NameExpansions),
		bytes:      r.Counter(metrics.NameBytesExpanded),
		derived:    r.Counter(metrics.NameScalarsDerived),
		sampled:    r.Counter(metrics.NameScalarsSampled),
		epochs:     r.Gauge(metrics.NameChainEpochs),
		batch:      r.Histogram(metrics.NameBatchSize),
		elapsed:    r.Histogram(metrics.NameGenerateTime),
	}
}

// expanded records one expansion of n bytes yielding scalars scalars.
func (m genMetrics) expanded(n, scalars int) {
	m.expansions.Inc()
	m.bytes.Add(int64(n))
	m.derived.Add(int64(scalars))
}

func checkCount(count int) error {
	if count < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	return nil
}
