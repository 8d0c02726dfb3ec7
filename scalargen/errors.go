package scalargen

import "errors"

// Caller contract violations. None of these are transient; a generation call
// that returns one has produced no scalars.
var (
	// ErrOutputTooLong is returned when an expansion would exceed the
	// suite's MaxBytesNum.
	ErrOutputTooLong = errors.New("scalargen: expansion output exceeds the suite limit")

	// ErrTooManyScalars is returned when a single hash-to-scalars call asks
	// for more scalars than one expansion can carry.
	ErrTooManyScalars = errors.New("scalargen: too many scalars for one expansion")

	// ErrExpanderExhausted is returned when reading past the declared output
	// of a BudgetedExpander.
	ErrExpanderExhausted = errors.New("scalargen: expander output exhausted")

	// ErrNegativeCount is returned for a negative scalar count.
	ErrNegativeCount = errors.New("scalargen: negative scalar count")

	// ErrCountTooLarge is returned when a chained request would need more
	// epochs than the 4-byte epoch counter can number.
	ErrCountTooLarge = errors.New("scalargen: scalar count exceeds the epoch counter range")

	// ErrUnknownStrategy is returned by ParseStrategy and New.
	ErrUnknownStrategy = errors.New("scalargen: unknown strategy")

	// ErrEntropy wraps failures of the entropy source or the field sampler.
	ErrEntropy = errors.New("scalargen: entropy source failed")
)
