// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel panics on user-triggered error conditions; panics
// are reserved for programmer errors in private helpers (if any).

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Do not %w-wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("op: %w", ErrX)
// at the facade — callers still match with errors.Is.
var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are
	// non-positive. Builders must validate before allocation.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid
	// bounds. Public indexers (At/Set/Row) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between
	// operands, e.g. Stack with different column counts, or MatVec where
	// len(x) != Cols.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrRaggedRows indicates that a row-wise builder received rows of
	// unequal length.
	ErrRaggedRows = errors.New("matrix: ragged rows")

	// ErrNilMatrix indicates that a nil *Dense (receiver or argument) was
	// used.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
