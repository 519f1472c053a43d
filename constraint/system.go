package constraint

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/varuna/internal/utils"
)

// Synthesizer is the constraint-generation capability of a circuit instance:
// it populates a System with the instance witness. Implementations must be
// deterministic given their inputs; any failure aborts the whole batch.
type Synthesizer interface {
	Synthesize(cs *System) error
}

// System accumulates the witness assignment produced by one run of a
// Synthesizer: the public and private variable vectors and the number of
// constraints realized. The constraint matrices themselves are fixed by the
// circuit index, so only the count is tracked here.
type System struct {
	PublicVariables  []fr.Element
	PrivateVariables []fr.Element
	NbConstraints    int
}

// NewSystem returns an empty witness accumulator; the public vector starts
// with the constant wire, fixed to one.
func NewSystem() *System {
	var one fr.Element
	one.SetOne()
	return &System{
		PublicVariables: []fr.Element{one},
	}
}

// AllocPublic appends v to the public variable vector and returns its index.
func (s *System) AllocPublic(v fr.Element) int {
	s.PublicVariables = append(s.PublicVariables, v)
	return len(s.PublicVariables) - 1
}

// AllocPrivate appends v to the private variable vector and returns its
// index, offset by the current number of public variables.
func (s *System) AllocPrivate(v fr.Element) int {
	s.PrivateVariables = append(s.PrivateVariables, v)
	return len(s.PublicVariables) + len(s.PrivateVariables) - 1
}

// EnforceConstraint records one R1CS constraint.
func (s *System) EnforceConstraint() {
	s.NbConstraints++
}

// InjectRandomization folds a blinding triple (a, b, c) with c = a*b into
// the system as three private variables and the multiplicative constraint
// tying them, so the witness distribution is statistically hidden.
func (s *System) InjectRandomization(triple [3]fr.Element) {
	for _, v := range triple {
		s.AllocPrivate(v)
	}
	s.EnforceConstraint()
}

// PadToIndexerLayout pads the public variable vector with zeroes up to the
// next power of two. The indexer applies the same padding when building the
// constraint matrices; the two must agree or later opening proofs break even
// though the count checks pass.
func (s *System) PadToIndexerLayout() {
	padded := utils.NextPowerOfTwo(uint64(len(s.PublicVariables)))
	for uint64(len(s.PublicVariables)) < padded {
		var zero fr.Element
		s.PublicVariables = append(s.PublicVariables, zero)
	}
}

// NbPublicVariables returns the realized public variable count.
func (s *System) NbPublicVariables() int { return len(s.PublicVariables) }

// NbPrivateVariables returns the realized private variable count.
func (s *System) NbPrivateVariables() int { return len(s.PrivateVariables) }
