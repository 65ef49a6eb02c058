// Package matrix provides the dense, row-major container used for design
// matrices, together with the small set of kernels the fitting pipeline
// needs (vertical stacking, matrix-vector products) and a canonical set of
// validators shared by every kernel.
//
// Matrices here are observation-major: one row per observation, one column
// per basis function. Rows are appended in bulk during assembly, so the
// backing storage is a single flat slice for cache friendliness.
//
// All operations are deterministic, allocate predictably, and return
// package-level sentinel errors matched via errors.Is.
package matrix
