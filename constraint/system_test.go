package constraint

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func elem(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

func TestSystemStartsWithConstantWire(t *testing.T) {
	s := NewSystem()
	require.Equal(t, 1, s.NbPublicVariables())
	require.Equal(t, 0, s.NbPrivateVariables())
	require.Equal(t, 0, s.NbConstraints)
	require.True(t, s.PublicVariables[0].IsOne())
}

func TestSystemAllocation(t *testing.T) {
	s := NewSystem()

	require.Equal(t, 1, s.AllocPublic(elem(10)))
	require.Equal(t, 2, s.AllocPublic(elem(20)))

	// private indices follow the public block
	require.Equal(t, 3, s.AllocPrivate(elem(30)))
	require.Equal(t, 4, s.AllocPrivate(elem(40)))

	s.EnforceConstraint()
	s.EnforceConstraint()

	require.Equal(t, 3, s.NbPublicVariables())
	require.Equal(t, 2, s.NbPrivateVariables())
	require.Equal(t, 2, s.NbConstraints)
}

func TestPadToIndexerLayout(t *testing.T) {
	s := NewSystem()
	s.AllocPublic(elem(10))
	s.AllocPublic(elem(20))

	s.PadToIndexerLayout()
	require.Equal(t, 4, s.NbPublicVariables())
	require.True(t, s.PublicVariables[3].IsZero())

	// already a power of two: padding is a no-op
	s.PadToIndexerLayout()
	require.Equal(t, 4, s.NbPublicVariables())
}

func TestInjectRandomization(t *testing.T) {
	s := NewSystem()
	s.AllocPrivate(elem(3))
	s.EnforceConstraint()

	var a, b, c fr.Element
	a.SetUint64(11)
	b.SetUint64(13)
	c.Mul(&a, &b)
	s.InjectRandomization([3]fr.Element{a, b, c})

	require.Equal(t, 4, s.NbPrivateVariables())
	require.Equal(t, 2, s.NbConstraints)
	require.True(t, s.PrivateVariables[1].Equal(&a))
	require.True(t, s.PrivateVariables[2].Equal(&b))
	require.True(t, s.PrivateVariables[3].Equal(&c))
}
