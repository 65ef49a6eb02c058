// Package model defines the evaluation-capability contracts the fitting
// pipeline consumes, and the one concrete implementation the pipeline
// produces: a linear model over a basis.
//
// The assembler and the error aggregator never compute physics. Anything
// that can report an energy, per-atom forces, a virial tensor and per-atom
// site energies for a configuration satisfies Evaluator; a Basis is simply
// an indexed collection of such evaluators, one per candidate function.
// The interface is selected once at the call boundary — there is no runtime
// type inspection inside the pipeline.
package model
