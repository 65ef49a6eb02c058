// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation checks.
//   - Keep kernels minimal by delegating nil/shape/length checks here.
//   - Return plain sentinel errors (no wrapping) so call sites can wrap uniformly.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing.

package matrix

import "fmt"

// validatorErrorf tags a sentinel with the validator that raised it.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil. Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameCols ensures matrices a and b have equal column counts.
// Assumes both are non-nil (caller's responsibility). Complexity: O(1).
func ValidateSameCols(a, b *Dense) error {
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameCols", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures vector x has exactly want entries.
// Use for MatVec-like operations to avoid ad hoc length code. Complexity: O(1).
func ValidateVecLen(x []float64, want int) error {
	if len(x) != want {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}
