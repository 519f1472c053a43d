// Package varuna provides the prover-side core of a Varuna-style algebraic
// holographic proof (AHP) over R1CS on the BN254 scalar field.
//
// The core covers:
//   - building validated, optionally zero-knowledge-blinded witness
//     assignments against a precomputed circuit index (package ahp)
//   - initializing the prover state over a batch of circuits and instances
//   - folding per-circuit polynomial checks into a single check over the
//     shared evaluation domain without dividing by its vanishing polynomial
//
// Commitments, Fiat-Shamir transcripts and the remaining prover rounds are
// out of scope and consumed as external collaborators.
package varuna

import "github.com/blang/semver/v4"

var Version = semver.MustParse("0.1.0")
