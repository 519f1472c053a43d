package constraint

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Term is one non-zero entry of a constraint matrix row; Column indexes the
// concatenation of the public and private variable vectors: columns smaller
// than the number of public variables address the public vector, larger ones
// address the private vector offset by the number of public variables.
type Term struct {
	Coeff  fr.Element
	Column uint32
}

// SparseMatrix is a constraint matrix in compressed-row form: the non-zero
// terms of all rows live in the flat Coeffs and Columns arenas, and row i
// spans [RowPtr[i], RowPtr[i+1]).
//
// Immutable once built; safe for concurrent reads.
type SparseMatrix struct {
	Coeffs  []fr.Element
	Columns []uint32
	RowPtr  []uint32
}

// NewSparseMatrix packs the given rows into compressed-row form.
// It rejects columns outside [0, nbVariables) and duplicate columns within a
// row; both indicate a malformed index.
func NewSparseMatrix(rows [][]Term, nbVariables int) (*SparseMatrix, error) {
	nbNonZero := 0
	for _, row := range rows {
		nbNonZero += len(row)
	}

	m := &SparseMatrix{
		Coeffs:  make([]fr.Element, 0, nbNonZero),
		Columns: make([]uint32, 0, nbNonZero),
		RowPtr:  make([]uint32, 1, len(rows)+1),
	}

	seen := bitset.New(uint(nbVariables))
	for i, row := range rows {
		seen.ClearAll()
		for _, t := range row {
			if t.Column >= uint32(nbVariables) {
				return nil, fmt.Errorf("row %d: column %d out of range (%d variables)", i, t.Column, nbVariables)
			}
			if seen.Test(uint(t.Column)) {
				return nil, fmt.Errorf("row %d: duplicate column %d", i, t.Column)
			}
			seen.Set(uint(t.Column))
			m.Coeffs = append(m.Coeffs, t.Coeff)
			m.Columns = append(m.Columns, t.Column)
		}
		m.RowPtr = append(m.RowPtr, uint32(len(m.Columns)))
	}

	return m, nil
}

// NbRows returns the number of rows (constraints) of the matrix.
func (m *SparseMatrix) NbRows() int {
	return len(m.RowPtr) - 1
}

// NbNonZero returns the number of non-zero terms of the matrix.
func (m *SparseMatrix) NbNonZero() int {
	return len(m.Columns)
}

// Row returns the coefficients and column indices of row i as sub-slices of
// the arenas; the caller must not mutate them.
func (m *SparseMatrix) Row(i int) ([]fr.Element, []uint32) {
	start, end := m.RowPtr[i], m.RowPtr[i+1]
	return m.Coeffs[start:end], m.Columns[start:end]
}
