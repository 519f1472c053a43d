package poly

import (
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func randomPolynomial(rng *rand.Rand, size int) Polynomial {
	p := make(Polynomial, size)
	for i := range p {
		var buf [fr.Bytes]byte
		rng.Read(buf[:])
		p[i].SetBytes(buf[:])
	}
	return p
}

func TestDivideByVanishingIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	properties.Property("quo*(X^n-1) + rem == p", prop.ForAll(
		func(seed int64, logN uint8) bool {
			rng := rand.New(rand.NewSource(seed))
			d := fft.NewDomain(uint64(1) << (logN%3 + 2)) // 4, 8 or 16
			p := randomPolynomial(rng, 1+rng.Intn(64))

			quo, rem, err := p.DivideByVanishing(d)
			if err != nil {
				return false
			}
			if len(rem) > int(d.Cardinality) {
				return false
			}
			back, err := quo.MulByVanishing(d)
			if err != nil {
				return false
			}
			for i := range rem {
				back[i].Add(&back[i], &rem[i])
			}
			return back.Equal(p)
		},
		gen.Int64(),
		gen.UInt8(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestMulThenDivideByVanishing(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	d := fft.NewDomain(8)
	p := randomPolynomial(rng, 13)

	pv, err := p.MulByVanishing(d)
	require.NoError(t, err)
	quo, rem, err := pv.DivideByVanishing(d)
	require.NoError(t, err)
	require.True(t, rem.IsZero(), "multiple of the vanishing polynomial must divide exactly")
	require.True(t, quo.Equal(p))
}

func TestDivideByDegenerateDomain(t *testing.T) {
	p := make(Polynomial, 8)
	_, _, err := p.DivideByVanishing(nil)
	require.ErrorIs(t, err, ErrUndefinedDivision)
}

func TestDomainGuards(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := randomPolynomial(rng, 8)

	_, err := p.MulByVanishing(nil)
	require.ErrorIs(t, err, ErrDegenerateDomain)

	_, err = p.EvaluateOnDomain(nil)
	require.ErrorIs(t, err, ErrDegenerateDomain)

	// degree 7 does not fit a size-4 domain
	_, err = p.EvaluateOnDomain(fft.NewDomain(4))
	require.ErrorIs(t, err, ErrDomainTooSmall)

	// trailing zero coefficients do not count towards the degree
	long := make(Polynomial, 8)
	long[3].SetOne()
	_, err = long.EvaluateOnDomain(fft.NewDomain(4))
	require.NoError(t, err)
}

func TestEvalMatchesDomainEvaluation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d := fft.NewDomain(8)
	p := randomPolynomial(rng, 8)

	evals, err := p.EvaluateOnDomain(d)
	require.NoError(t, err)

	var x fr.Element
	x.SetOne()
	for k := 0; k < int(d.Cardinality); k++ {
		y := p.Eval(x)
		require.True(t, y.Equal(&evals[k]), "mismatch at point %d", k)
		x.Mul(&x, &d.Generator)
	}
}

func TestInterpolateRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	d := fft.NewDomain(16)
	p := randomPolynomial(rng, 16)

	evals, err := p.EvaluateOnDomain(d)
	require.NoError(t, err)
	back := FromEvaluations(evals, d)
	require.True(t, back.Equal(p))
}

// The division by a sub-domain's vanishing polynomial must preserve
// sparseness: a degree-15 polynomial vanishing on the size-4 sub-domain of a
// size-16 domain divides exactly, with a quotient of degree 11.
func TestDivisionByVanishingPolyPreservesSparseness(t *testing.T) {
	domain := fft.NewDomain(16)
	smallDomain := fft.NewDomain(4)

	var one, val fr.Element
	one.SetOne()
	val.Double(&one).Double(&val).Double(&val).Sub(&val, &one) // 2^3 - 1

	evals := make([]fr.Element, 16)
	var pow fr.Element
	pow.SetOne()
	for k := range evals {
		evals[k] = pow
		pow.Mul(&pow, &val)
	}
	// the points of the sub-domain sit at every 4th index
	for i := 0; i < 4; i++ {
		evals[4*i].SetZero()
	}

	p := FromEvaluations(evals, domain)
	require.Equal(t, 15, p.Degree())

	quo, rem, err := p.DivideByVanishing(smallDomain)
	require.NoError(t, err)
	require.True(t, rem.IsZero())
	require.Equal(t, 11, quo.Degree())
}
