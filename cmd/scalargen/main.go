// Command scalargen derives a batch of random BLS12-381 scalars and prints
// them one per line as 0x-prefixed big-endian hex.
//
// Usage:
//
//	scalargen [flags]
//
// Flags:
//
//	--strategy   chained, direct or mixed (default: chained)
//	--suite      sha256 or shake256 (default: sha256)
//	--count      Number of scalars (default: 1)
//	--seed       Fixed 0x-prefixed 32-byte seed, chained only
//	--config     TOML config file; flags override it
//	--verbosity  Log level 0-5 (default: 3)
//	--metrics    Print derivation metrics to stderr
//	--version    Print version and exit
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/eth2030/bbsrand/ciphersuite"
	"github.com/eth2030/bbsrand/crypto"
	"github.com/eth2030/bbsrand/log"
	"github.com/eth2030/bbsrand/metrics"
	"github.com/eth2030/bbsrand/scalargen"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the actual entry point, returning an exit code. Scalars go to
// stdout; logs, errors and metrics go to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, exit, code := parseFlags(args, stdout, stderr)
	if exit {
		return code
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := log.NewWriter(stderr, log.VerbosityLevel(cfg.Verbosity))
	if cfg.Verbosity == 0 {
		logger = log.Discard()
	}
	logger = logger.Module("cli")
	logger.Info("scalargen starting", "version", version,
		"strategy", cfg.Strategy, "suite", cfg.Suite, "count", cfg.Count)

	reg := metrics.NewRegistry()
	batch, err := generate(cfg, logger, reg)
	if err != nil {
		logger.Error("derivation failed", "err", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	w := bufio.NewWriter(stdout)
	for _, s := range batch {
		fmt.Fprintln(w, s.Hex())
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(stderr, "Error: write output: %v\n", err)
		return 1
	}

	if cfg.Metrics {
		printMetrics(stderr, reg)
	}
	logger.Debug("scalargen done", "scalars", len(batch))
	return 0
}

// parseFlags resolves defaults, the optional config file and the CLI flags,
// in that order of increasing precedence. It reports whether the caller
// should exit immediately and with which code.
func parseFlags(args []string, stdout, stderr io.Writer) (Config, bool, int) {
	cfg := DefaultConfig()
	var configPath string
	fs := newFlagSet(&cfg, &configPath)
	fs.SetOutput(stderr)
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, true, 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "scalargen %s (commit %s)\n", version, commit)
		return cfg, true, 0
	}
	if configPath == "" {
		return cfg, false, 0
	}

	// Apply the file over the defaults, then the flags over the file.
	cfg = DefaultConfig()
	if err := LoadConfigFile(configPath, &cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cfg, true, 1
	}
	fs = newFlagSet(&cfg, &configPath)
	fs.SetOutput(io.Discard)
	fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return cfg, true, 2
	}
	return cfg, false, 0
}

// generate builds the configured generator and derives the batch.
func generate(cfg Config, logger *log.Logger, reg *metrics.Registry) ([]crypto.Scalar, error) {
	strategy, err := scalargen.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	suite, err := ciphersuite.ByName(cfg.Suite)
	if err != nil {
		return nil, err
	}
	opts := []scalargen.Option{scalargen.WithLogger(logger), scalargen.WithMetrics(reg)}
	count := int(cfg.Count)

	if cfg.Seed != "" {
		seed, err := cfg.seed()
		if err != nil {
			return nil, err
		}
		g, err := scalargen.NewChained(suite, opts...)
		if err != nil {
			return nil, err
		}
		return g.GenerateFromSeed(seed, count)
	}

	g, err := scalargen.New(strategy, suite, opts...)
	if err != nil {
		return nil, err
	}
	return g.Generate(count)
}

// printMetrics writes one line per registered metric, sorted by name.
func printMetrics(w io.Writer, reg *metrics.Registry) {
	for _, s := range reg.Snapshot() {
		fmt.Fprintln(w, s)
	}
}
