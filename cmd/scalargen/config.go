package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pelletier/go-toml/v2"

	"github.com/eth2030/bbsrand/ciphersuite"
	"github.com/eth2030/bbsrand/scalargen"
)

// MaxCount bounds a single CLI batch.
const MaxCount = 1 << 24

// Configuration errors.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// Config is the resolved CLI configuration. A TOML file, if given, is
// applied over DefaultConfig and flags are applied over the file.
type Config struct {
	Strategy  string `toml:"strategy"`
	Suite     string `toml:"suite"`
	Count     uint64 `toml:"count"`
	Seed      string `toml:"seed"`
	Verbosity int    `toml:"verbosity"`
	Metrics   bool   `toml:"metrics"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Strategy:  scalargen.StrategyChained.String(),
		Suite:     ciphersuite.BLS12381SHA256.Name,
		Count:     1,
		Verbosity: 3,
	}
}

// LoadConfigFile decodes the TOML file at path over cfg. Keys missing from
// the file keep their current values.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	strategy, err := scalargen.ParseStrategy(c.Strategy)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := ciphersuite.ByName(c.Suite); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Count > MaxCount {
		return fmt.Errorf("%w: count %d exceeds %d", ErrInvalidConfig, c.Count, MaxCount)
	}
	if c.Verbosity < 0 || c.Verbosity > 5 {
		return fmt.Errorf("%w: verbosity %d out of range 0-5", ErrInvalidConfig, c.Verbosity)
	}
	if c.Seed != "" {
		if strategy != scalargen.StrategyChained {
			return fmt.Errorf("%w: seed requires the chained strategy, got %s", ErrInvalidConfig, strategy)
		}
		if _, err := c.seed(); err != nil {
			return err
		}
	}
	return nil
}

// seed decodes the configured seed.
func (c *Config) seed() (scalargen.Seed, error) {
	var seed scalargen.Seed
	b, err := hexutil.Decode(c.Seed)
	if err != nil {
		return seed, fmt.Errorf("%w: seed: %v", ErrInvalidConfig, err)
	}
	if len(b) != len(seed) {
		return seed, fmt.Errorf("%w: seed is %d bytes, want %d", ErrInvalidConfig, len(b), len(seed))
	}
	copy(seed[:], b)
	return seed, nil
}
