package ahp

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/varuna/internal/utils"
	"github.com/consensys/varuna/poly"
)

// ApplyRandomizedSelector folds the check "p vanishes appropriately over its
// circuit's domain src" into a contribution to the single batched check over
// the shared domain target.
//
// Let H = target, H_i = src, v_H and v_H_i their vanishing polynomials, and
// s_i = (v_H / v_H_i) * (|H_i| / |H|) the selector of H_i in H. Rather than
// multiplying p by s_i*combiner and dividing the sum by v_H, both branches
// scale by the field multiplier combiner * |H_i| * |H|^-1 and divide by
// v_H_i only, which is algebraically equivalent and never materializes s_i
// nor divides by the large v_H.
//
// With remainderWitness set (zerocheck-style rounds), p is scaled in place,
// divided by v_H_i into (h_i, x_g_i), and x_g_i is re-expanded through
// x_g_i * v_H / v_H_i; the result is (h_i, x_g_i). Without it (sumcheck-style
// rounds), p must be divisible by v_H_i and the result is the scaled
// quotient with a nil witness. A non-zero remainder in either branch is an
// internal contract breach surfaced as ErrNonZeroRemainder.
func ApplyRandomizedSelector(p poly.Polynomial, combiner fr.Element, target, src *fft.Domain, remainderWitness bool) (poly.Polynomial, poly.Polynomial, error) {
	if target == nil || target.Cardinality == 0 || src == nil || src.Cardinality == 0 {
		return nil, nil, poly.ErrUndefinedDivision
	}

	srcSize := poly.CardinalityAsElement(src)
	var multiplier fr.Element
	multiplier.Mul(&combiner, &srcSize).Mul(&multiplier, &target.CardinalityInv)

	if !remainderWitness {
		// p * s_i / v_H == (p / v_H_i) * (|H_i| / |H|)
		h, rem, err := p.DivideByVanishing(src)
		if err != nil {
			return nil, nil, err
		}
		if !rem.IsZero() {
			return nil, nil, ErrNonZeroRemainder
		}
		scaleInPlace(h, &multiplier)
		return h, nil, nil
	}

	// p is clobbered here; the caller hands over ownership
	scaleInPlace(p, &multiplier)
	h, xg, err := p.DivideByVanishing(src)
	if err != nil {
		return nil, nil, err
	}

	// src is a subgroup of target, so v_H_i divides v_H and the second
	// division is exact
	xv, err := xg.MulByVanishing(target)
	if err != nil {
		return nil, nil, err
	}
	xg, rem, err := xv.DivideByVanishing(src)
	if err != nil {
		return nil, nil, err
	}
	if !rem.IsZero() {
		return nil, nil, ErrNonZeroRemainder
	}

	return h, xg, nil
}

func scaleInPlace(p poly.Polynomial, multiplier *fr.Element) {
	utils.Parallelize(len(p), func(start, end int) {
		for i := start; i < end; i++ {
			p[i].Mul(&p[i], multiplier)
		}
	})
}
