// Package ahp implements the prover-side core of the algebraic holographic
// proof: circuit indexes and their canonical identities, witness assignment
// construction with optional zero-knowledge blinding, prover state
// initialization over a batch of circuits, and the randomized selector
// combination that folds per-domain polynomial checks into the shared
// global-domain check.
package ahp
