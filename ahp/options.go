package ahp

import (
	"crypto/rand"
	"fmt"
	"io"
	"runtime"
)

// ProverOption defines option for altering the behavior of InitProver. See
// the descriptions of functions returning instances of this type for
// implemented options.
type ProverOption func(*ProverConfig) error

// ProverConfig is the configuration for the prover with the options applied.
type ProverConfig struct {
	// ZeroKnowledge enables the per-instance randomizing triple that blinds
	// the witness distribution.
	ZeroKnowledge bool

	// Rand is the entropy source for zero-knowledge blinding. Defaults to
	// crypto/rand; a seeded reader makes runs bit-reproducible.
	Rand io.Reader

	// NbTasks bounds the number of parallel tasks; results do not depend on
	// it.
	NbTasks int
}

// NewProverConfig returns a default ProverConfig with given prover options
// opts applied.
func NewProverConfig(opts ...ProverOption) (ProverConfig, error) {
	opt := ProverConfig{
		Rand:    rand.Reader,
		NbTasks: runtime.NumCPU(),
	}
	for _, option := range opts {
		if err := option(&opt); err != nil {
			return ProverConfig{}, err
		}
	}
	return opt, nil
}

// WithZeroKnowledge enables zero-knowledge blinding: every instance gets
// exactly one randomizing triple (a, b, a*b) folded into its witness.
func WithZeroKnowledge() ProverOption {
	return func(opt *ProverConfig) error {
		opt.ZeroKnowledge = true
		return nil
	}
}

// WithRandomSource sets the entropy source used for blinding. Draws happen
// in a fixed order (circuit order, then instance order), so a seeded source
// yields bit-identical outputs across runs.
func WithRandomSource(r io.Reader) ProverOption {
	return func(opt *ProverConfig) error {
		if r == nil {
			return fmt.Errorf("random source is nil")
		}
		opt.Rand = r
		return nil
	}
}

// WithNbTasks sets the maximum number of parallel tasks the prover spawns.
func WithNbTasks(n int) ProverOption {
	return func(opt *ProverConfig) error {
		if n < 1 {
			return fmt.Errorf("invalid number of tasks %d", n)
		}
		opt.NbTasks = n
		return nil
	}
}
