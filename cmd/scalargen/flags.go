package main

import (
	"flag"
	"fmt"
	"strconv"
)

// flagSet wraps flag.FlagSet to add support for uint64 flags.
type flagSet struct {
	*flag.FlagSet
}

// newCustomFlagSet creates a flagSet with ContinueOnError behavior.
func newCustomFlagSet(name string) *flagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &flagSet{FlagSet: fs}
}

// Uint64Var defines a uint64 flag that rejects signs and non-decimal input.
func (fs *flagSet) Uint64Var(p *uint64, name string, value uint64, usage string) {
	*p = value
	fs.FlagSet.Var(&uint64Value{p: p}, name, usage)
}

type uint64Value struct {
	p *uint64
}

func (v *uint64Value) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatUint(*v.p, 10)
}

func (v *uint64Value) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid uint64 value %q", s)
	}
	*v.p = n
	return nil
}

// newFlagSet binds every CLI flag to cfg. configPath receives -config, which
// is not part of Config itself.
func newFlagSet(cfg *Config, configPath *string) *flagSet {
	fs := newCustomFlagSet("scalargen")
	fs.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "derivation strategy (chained, direct, mixed)")
	fs.StringVar(&cfg.Suite, "suite", cfg.Suite, "ciphersuite (sha256, shake256)")
	fs.Uint64Var(&cfg.Count, "count", cfg.Count, "number of scalars to derive")
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "0x-prefixed 32-byte seed (chained strategy only)")
	fs.IntVar(&cfg.Verbosity, "verbosity", cfg.Verbosity, "log level 0-5 (0=silent, 5=trace)")
	fs.BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "print derivation metrics to stderr")
	fs.StringVar(configPath, "config", *configPath, "TOML config file; flags override its values")
	return fs
}
