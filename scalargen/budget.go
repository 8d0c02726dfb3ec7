package scalargen

import (
	"fmt"
	"io"

	"github.com/eth2030/bbsrand/ciphersuite"
	"github.com/eth2030/bbsrand/crypto"
)

// BudgetedExpander hands out scalar chunks from one expand_message
// invocation whose declared length never exceeds the suite's MaxBytesNum.
// A BudgetedExpander is owned by a single generation call and is not safe
// for concurrent use.
type BudgetedExpander struct {
	suite     *ciphersuite.Suite
	stream    crypto.Expander
	outputLen int
}

// NewBudgetedExpander starts an expansion of msg under tag producing exactly
// outputLen bytes. It fails with ErrOutputTooLong if outputLen is negative or
// above suite.MaxBytesNum.
func NewBudgetedExpander(suite *ciphersuite.Suite, msg []byte, tag DomainTag, outputLen int) (*BudgetedExpander, error) {
	if outputLen < 0 || outputLen > suite.MaxBytesNum {
		return nil, fmt.Errorf("%w: %d bytes requested, %s allows %d",
			ErrOutputTooLong, outputLen, suite.Name, suite.MaxBytesNum)
	}
	stream, err := suite.Expand(msg, tag, outputLen)
	if err != nil {
		return nil, fmt.Errorf("scalargen: start expansion: %w", err)
	}
	return &BudgetedExpander{suite: suite, stream: stream, outputLen: outputLen}, nil
}

// OutputLen returns the declared length of the expansion.
func (b *BudgetedExpander) OutputLen() int { return b.outputLen }

// Remaining returns the number of unread bytes.
func (b *BudgetedExpander) Remaining() int { return b.stream.Remaining() }

// RemainingChunks returns how many whole scalar chunks are still unread.
func (b *BudgetedExpander) RemainingChunks() int {
	return b.stream.Remaining() / b.suite.ExpandLen
}

// ReadChunk returns the next ExpandLen bytes of the stream.
func (b *BudgetedExpander) ReadChunk() ([]byte, error) {
	if b.stream.Remaining() < b.suite.ExpandLen {
		return nil, fmt.Errorf("%w: %d bytes left, chunk needs %d",
			ErrExpanderExhausted, b.stream.Remaining(), b.suite.ExpandLen)
	}
	chunk := make([]byte, b.suite.ExpandLen)
	if _, err := io.ReadFull(b.stream, chunk); err != nil {
		return nil, fmt.Errorf("scalargen: read chunk: %w", err)
	}
	return chunk, nil
}

// ReadScalars decodes the next n chunks into a newly allocated slice. It
// reads nothing if fewer than n chunks remain.
func (b *BudgetedExpander) ReadScalars(n int) ([]crypto.Scalar, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	if have := b.RemainingChunks(); n > have {
		return nil, fmt.Errorf("%w: %d scalars requested, %d chunks left",
			ErrExpanderExhausted, n, have)
	}
	out := make([]crypto.Scalar, n)
	for i := range out {
		chunk, err := b.ReadChunk()
		if err != nil {
			return nil, err
		}
		if out[i], err = crypto.ScalarFromChunk(chunk); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DrainTail returns every unread byte and exhausts the expander.
func (b *BudgetedExpander) DrainTail() ([]byte, error) {
	tail := make([]byte, b.stream.Remaining())
	if _, err := io.ReadFull(b.stream, tail); err != nil {
		return nil, fmt.Errorf("scalargen: read tail: %w", err)
	}
	return tail, nil
}
