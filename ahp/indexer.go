package ahp

import (
	"encoding/hex"
	"fmt"
	"math/bits"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/varuna/constraint"
	"golang.org/x/crypto/blake2b"
)

// CircuitID uniquely identifies a circuit index; it is the BLAKE2b-256
// digest of the canonical index serialization. Both prover and verifier
// enumerate circuits of a batch in the byte order of their ids, so challenge
// and combiner derivation stays deterministic across implementations.
type CircuitID [32]byte

func (id CircuitID) String() string {
	return hex.EncodeToString(id[:8])
}

// IndexInfo records the per-circuit sizes fixed at indexing time.
type IndexInfo struct {
	NbConstraints      int
	NbPublicVariables  int
	NbPrivateVariables int
	NbNonZeroA         int
	NbNonZeroB         int
	NbNonZeroC         int
}

// NbVariables returns the total variable count, public and private.
func (info *IndexInfo) NbVariables() int {
	return info.NbPublicVariables + info.NbPrivateVariables
}

// Circuit is the precomputed, immutable index of one R1CS circuit: its sizes
// and its three sparse constraint matrices. It is created once by NewCircuit
// and shared read-only by every instance proved against it.
type Circuit struct {
	Info    IndexInfo
	A, B, C *constraint.SparseMatrix

	id CircuitID
}

// NewCircuit validates the index metadata against the matrices and computes
// the circuit id.
func NewCircuit(info IndexInfo, a, b, c *constraint.SparseMatrix) (*Circuit, error) {
	if err := validateIndex(&info, a, b, c); err != nil {
		return nil, err
	}

	circuit := &Circuit{Info: info, A: a, B: b, C: c}

	data, err := circuit.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("computing circuit id: %w", err)
	}
	circuit.id = blake2b.Sum256(data)

	return circuit, nil
}

func validateIndex(info *IndexInfo, a, b, c *constraint.SparseMatrix) error {
	if info.NbPublicVariables <= 0 || bits.OnesCount(uint(info.NbPublicVariables)) != 1 {
		return fmt.Errorf("index has %d public variables, expected a non-zero power of two", info.NbPublicVariables)
	}
	for _, m := range []struct {
		name      string
		matrix    *constraint.SparseMatrix
		nbNonZero int
	}{
		{"A", a, info.NbNonZeroA},
		{"B", b, info.NbNonZeroB},
		{"C", c, info.NbNonZeroC},
	} {
		if m.matrix == nil {
			return fmt.Errorf("matrix %s is nil", m.name)
		}
		if m.matrix.NbRows() != info.NbConstraints {
			return fmt.Errorf("matrix %s has %d rows, index records %d constraints", m.name, m.matrix.NbRows(), info.NbConstraints)
		}
		if m.matrix.NbNonZero() != m.nbNonZero {
			return fmt.Errorf("matrix %s has %d non-zero terms, index records %d", m.name, m.matrix.NbNonZero(), m.nbNonZero)
		}
		for _, col := range m.matrix.Columns {
			if col >= uint32(info.NbVariables()) {
				return fmt.Errorf("matrix %s addresses column %d, index has %d variables", m.name, col, info.NbVariables())
			}
		}
	}

	return nil
}

// ID returns the circuit id.
func (c *Circuit) ID() CircuitID {
	return c.id
}

// FormattedPublicInputIsAdmissible reports whether a padded public variable
// vector has the layout the protocol expects: a non-zero power-of-two length
// with the constant wire, one, in the first slot.
func FormattedPublicInputIsAdmissible(input []fr.Element) bool {
	if len(input) == 0 || bits.OnesCount(uint(len(input))) != 1 {
		return false
	}
	return input[0].IsOne()
}
