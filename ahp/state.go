package ahp

import (
	"bytes"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Assignment is the witness material of one circuit instance: the padded
// public and private variable vectors and the three matrix-vector products
// z_A, z_B, z_C. Immutable once built.
type Assignment struct {
	PublicVariables  []fr.Element
	PrivateVariables []fr.Element
	ZA, ZB, ZC       []fr.Element
}

// State is the prover state after initialization: for each circuit of the
// batch, the ordered list of its instances' assignments. Circuits are
// enumerated in the byte order of their ids, never in insertion order, so
// later rounds derive challenges and combiner coefficients identically on
// both sides of the protocol.
type State struct {
	circuits    []*Circuit
	assignments map[CircuitID][]Assignment
}

func newState(circuits []*Circuit, assignments map[CircuitID][]Assignment) *State {
	return &State{circuits: circuits, assignments: assignments}
}

// Circuits returns the circuits of the batch in canonical id order; the
// caller must not mutate the returned slice.
func (s *State) Circuits() []*Circuit {
	return s.circuits
}

// Assignments returns the assignments of every instance of the given
// circuit, in instance order.
func (s *State) Assignments(id CircuitID) []Assignment {
	return s.assignments[id]
}

// NbInstances returns the total number of instances across the batch.
func (s *State) NbInstances() int {
	n := 0
	for _, a := range s.assignments {
		n += len(a)
	}
	return n
}

// sortCircuits orders circuits by ascending id bytes, the canonical total
// order shared with the verifier.
func sortCircuits(circuits []*Circuit) {
	sort.Slice(circuits, func(i, j int) bool {
		return bytes.Compare(circuits[i].id[:], circuits[j].id[:]) < 0
	})
}
