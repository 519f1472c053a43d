// Package poly implements dense univariate polynomials over the bn254 scalar
// field in coefficient form, together with the vanishing-polynomial algebra
// of gnark-crypto radix-2 evaluation domains (divide and multiply by X**n-1).
package poly

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
)

// ErrUndefinedDivision is returned when dividing by the vanishing polynomial
// of a degenerate (nil or empty) domain.
var ErrUndefinedDivision = errors.New("division by the vanishing polynomial of a degenerate domain")

// ErrDegenerateDomain is returned by domain operations handed a nil or empty
// domain.
var ErrDegenerateDomain = errors.New("degenerate (nil or empty) domain")

// ErrDomainTooSmall is returned when a polynomial's degree is not smaller
// than the cardinality of the domain it is evaluated on.
var ErrDomainTooSmall = errors.New("polynomial degree is not smaller than the domain cardinality")

// Polynomial is a dense polynomial in canonical (coefficient) form;
// the coefficient of X**i is at index i.
type Polynomial []fr.Element

// Degree returns the degree of p. The zero polynomial has degree 0.
func (p Polynomial) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return 0
}

// IsZero returns true if every coefficient of p is zero.
func (p Polynomial) IsZero() bool {
	for i := range p {
		if !p[i].IsZero() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of p.
func (p Polynomial) Clone() Polynomial {
	r := make(Polynomial, len(p))
	copy(r, p)
	return r
}

// Eval evaluates p at x.
func (p Polynomial) Eval(x fr.Element) fr.Element {
	var r fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		r.Mul(&r, &x).Add(&r, &p[i])
	}
	return r
}

// Equal returns true if p and q define the same polynomial, ignoring
// trailing zero coefficients.
func (p Polynomial) Equal(q Polynomial) bool {
	if len(p) > len(q) {
		p, q = q, p
	}
	for i := range p {
		if !p[i].Equal(&q[i]) {
			return false
		}
	}
	for i := len(p); i < len(q); i++ {
		if !q[i].IsZero() {
			return false
		}
	}
	return true
}

// DivideByVanishing returns the quotient and remainder of the euclidean
// division of p by the vanishing polynomial X**n - 1 of d, where n is the
// domain cardinality.
func (p Polynomial) DivideByVanishing(d *fft.Domain) (quo, rem Polynomial, err error) {
	if d == nil || d.Cardinality == 0 {
		return nil, nil, ErrUndefinedDivision
	}
	n := int(d.Cardinality)

	if len(p) <= n {
		rem = p.Clone()
		return Polynomial{}, rem, nil
	}

	// X**n == 1 mod (X**n - 1); synthetic division from the top coefficient.
	quo = make(Polynomial, len(p)-n)
	for i := len(p) - 1; i >= n; i-- {
		c := p[i]
		if i < len(quo) {
			c.Add(&c, &quo[i])
		}
		quo[i-n] = c
	}

	rem = make(Polynomial, n)
	for i := 0; i < n; i++ {
		rem[i] = p[i]
		if i < len(quo) {
			rem[i].Add(&rem[i], &quo[i])
		}
	}
	return quo, rem, nil
}

// MulByVanishing returns p multiplied by the vanishing polynomial X**n - 1
// of d.
func (p Polynomial) MulByVanishing(d *fft.Domain) (Polynomial, error) {
	if d == nil || d.Cardinality == 0 {
		return nil, ErrDegenerateDomain
	}
	n := int(d.Cardinality)
	res := make(Polynomial, len(p)+n)
	for i := range p {
		res[i+n].Add(&res[i+n], &p[i])
		res[i].Sub(&res[i], &p[i])
	}
	return res, nil
}

// FromEvaluations interpolates the polynomial whose evaluations over d are
// evals. len(evals) must equal the domain cardinality.
func FromEvaluations(evals []fr.Element, d *fft.Domain) Polynomial {
	p := make(Polynomial, len(evals))
	copy(p, evals)
	d.FFTInverse(p, fft.DIF)
	fft.BitReverse(p)
	return p
}

// EvaluateOnDomain returns the evaluations of p over every point of d, in
// natural order. deg(p) must be smaller than the domain cardinality.
func (p Polynomial) EvaluateOnDomain(d *fft.Domain) ([]fr.Element, error) {
	if d == nil || d.Cardinality == 0 {
		return nil, ErrDegenerateDomain
	}
	if p.Degree() >= int(d.Cardinality) {
		return nil, ErrDomainTooSmall
	}
	evals := make([]fr.Element, d.Cardinality)
	copy(evals, p)
	d.FFT(evals, fft.DIF)
	fft.BitReverse(evals)
	return evals, nil
}

// CardinalityAsElement returns the cardinality of d cast into the field.
func CardinalityAsElement(d *fft.Domain) fr.Element {
	var s fr.Element
	s.SetUint64(d.Cardinality)
	return s
}
