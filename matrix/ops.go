// SPDX-License-Identifier: MIT
// Package matrix: kernels consumed by the assembly and solve paths.
// All kernels use the central validators and return plain sentinels wrapped
// via matrixErrorf at the facade.

package matrix

import "fmt"

// Operation name constants for unified error wrapping (no magic strings).
const (
	opStack  = "Stack"
	opMatVec = "MatVec"
)

// matrixErrorf wraps err with an operation tag, preserving errors.Is/As.
// Call only with err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Stack concatenates a and b vertically: the result holds a's rows followed
// by b's rows, in order. Neither operand is mutated.
//
// Implementation:
//   - Stage 1: validate both operands non-nil and column counts equal.
//   - Stage 2: allocate (a.r+b.r)×c and bulk-copy both flat buffers.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O((ra+rb)*c) time and memory.
func Stack(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opStack, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opStack, err)
	}
	if err := ValidateSameCols(a, b); err != nil {
		return nil, matrixErrorf(opStack, err)
	}

	out := &Dense{r: a.r + b.r, c: a.c, data: make([]float64, (a.r+b.r)*a.c)}
	copy(out.data, a.data)
	copy(out.data[len(a.data):], b.data)

	return out, nil
}

// MatVec computes y = A·x with a fixed i→j traversal over the flat buffer.
//
// Implementation:
//   - Stage 1: validate A non-nil and len(x) == A.Cols().
//   - Stage 2: accumulate per row into a fresh output slice.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c) time, O(r) memory.
func MatVec(a *Dense, x []float64) ([]float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, a.c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, a.r)
	for i := 0; i < a.r; i++ {
		base := i * a.c
		var sum float64
		for j := 0; j < a.c; j++ {
			sum += a.data[base+j] * x[j]
		}
		y[i] = sum
	}

	return y, nil
}
