// SPDX-License-Identifier: MIT

// Package dataset: virial storage normalization.
// Upstream tools store the virial in three spellings; everything funnels
// through the single virialTensor function so the row-vector-list
// workaround can be removed cleanly once upstream storage is fixed.

package dataset

import "fmt"

// virialTensor normalizes a stored virial value to a full 3×3 tensor.
//
// Accepted storage:
//   - [][]float64 of shape 3×3 — the canonical nested tensor. This also
//     covers the known upstream edge case where a 3-atom cell makes the
//     virial arrive as a list of three row-vectors: horizontally
//     concatenating those rows reproduces the row-major flat tensor, which
//     is exactly how the nested form is read here.
//   - []float64 of length 9 — the row-major flat tensor.
//
// Anything else is a contract violation and fails loudly with ErrShape,
// since silently accepting it would corrupt the design matrix.
func virialTensor(v any) ([3][3]float64, error) {
	var t [3][3]float64
	switch stored := v.(type) {
	case [][]float64:
		if len(stored) != 3 {
			return t, fmt.Errorf("virial: %d rows: %w", len(stored), ErrShape)
		}
		for i, row := range stored {
			if len(row) != 3 {
				return t, fmt.Errorf("virial: row %d has %d entries: %w", i, len(row), ErrShape)
			}
			t[i] = [3]float64{row[0], row[1], row[2]}
		}

		return t, nil
	case []float64:
		if len(stored) != 9 {
			return t, fmt.Errorf("virial: flat length %d: %w", len(stored), ErrShape)
		}
		for i := 0; i < 3; i++ {
			t[i] = [3]float64{stored[3*i], stored[3*i+1], stored[3*i+2]}
		}

		return t, nil
	default:
		return t, fmt.Errorf("virial: got %T: %w", v, ErrValueType)
	}
}
