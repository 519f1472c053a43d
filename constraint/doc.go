// Package constraint declares the R1CS surface shared by the circuit indexer
// and the AHP prover: sparse constraint matrices in compressed-row form, the
// witness accumulator filled during constraint generation, and the
// Synthesizer capability implemented by circuit instances.
package constraint
