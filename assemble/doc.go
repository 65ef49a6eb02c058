// Package assemble turns a collection of observation records into one
// consistent regression problem: a design matrix of basis-function
// evaluations, a target vector of reference data, and a row weight vector.
//
// Every record occupies a contiguous block of rows in a fixed order:
//
//	[energy          1 row, if the energy key resolved      ]
//	[forces          Σ force-mask rows, if forces resolved  ]
//	[virial          6 rows (Voigt-like order), if resolved ]
//	[site energies   Σ atom-mask rows, if resolved          ]
//
// CountObservations computes the authoritative row count for one record;
// FeatureMatrix, TargetVector and WeightVector all rederive the same layout
// from the same record state, so the three outputs are row-aligned by
// construction. Records are immutable, which makes the recomputation
// idempotent.
//
// The virial contributes its six independent components extracted from the
// 3×3 tensor in the fixed order [xx, yy, zz, yz, xz, xy].
//
// A basis-evaluation failure on any record aborts the whole assembly:
// a partial design matrix with misaligned rows would be worse than a
// visible failure.
package assemble
