package constraint

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestSparseMatrixPacking(t *testing.T) {
	rows := [][]Term{
		{{Coeff: elem(1), Column: 0}, {Coeff: elem(2), Column: 3}},
		{}, // empty rows are legal
		{{Coeff: elem(5), Column: 1}},
	}

	m, err := NewSparseMatrix(rows, 4)
	require.NoError(t, err)

	require.Equal(t, 3, m.NbRows())
	require.Equal(t, 3, m.NbNonZero())
	require.Equal(t, []uint32{0, 2, 2, 3}, m.RowPtr)

	coeffs, columns := m.Row(0)
	require.Equal(t, []uint32{0, 3}, columns)
	require.Equal(t, []fr.Element{elem(1), elem(2)}, coeffs)

	coeffs, columns = m.Row(1)
	require.Empty(t, coeffs)
	require.Empty(t, columns)

	coeffs, columns = m.Row(2)
	require.Equal(t, []uint32{1}, columns)
	require.Equal(t, []fr.Element{elem(5)}, coeffs)
}

func TestSparseMatrixRejectsMalformedRows(t *testing.T) {
	t.Run("column out of range", func(t *testing.T) {
		_, err := NewSparseMatrix([][]Term{{{Coeff: elem(1), Column: 4}}}, 4)
		require.Error(t, err)
	})

	t.Run("duplicate column in a row", func(t *testing.T) {
		_, err := NewSparseMatrix([][]Term{
			{{Coeff: elem(1), Column: 2}, {Coeff: elem(3), Column: 2}},
		}, 4)
		require.Error(t, err)
	})

	t.Run("same column in different rows is fine", func(t *testing.T) {
		_, err := NewSparseMatrix([][]Term{
			{{Coeff: elem(1), Column: 2}},
			{{Coeff: elem(3), Column: 2}},
		}, 4)
		require.NoError(t, err)
	})
}
