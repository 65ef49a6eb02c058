// SPDX-License-Identifier: MIT

// Package dataset: mask resolution.
// Both resolvers are pure functions of the record's construction-time mask
// key and the configuration's data: deterministic, re-entrant, no hidden
// state between calls. They are cheap and recomputed by every consumer
// (row layout, matrix, vectors) instead of cached.

package dataset

import "fmt"

// AtomMask returns the boolean selector over atoms for per-atom-energy
// rows: all-true of length NumAtoms when no mask key resolved, else the
// bool-cast of the stored array ([]bool as-is, numeric entries nonzero ⇒
// selected). A stored mask whose length is not the atom count is a loud
// ErrShape.
func (r *Record) AtomMask() ([]bool, error) {
	n := r.NumAtoms()
	if r.maskKey == "" {
		mask := make([]bool, n)
		for i := range mask {
			mask[i] = true
		}

		return mask, nil
	}

	v, _ := r.cfg.InfoValue(r.maskKey)
	switch stored := v.(type) {
	case []bool:
		if len(stored) != n {
			return nil, fmt.Errorf("Record.AtomMask: %d entries for %d atoms: %w", len(stored), n, ErrShape)
		}
		mask := make([]bool, n)
		copy(mask, stored)

		return mask, nil
	case []float64:
		if len(stored) != n {
			return nil, fmt.Errorf("Record.AtomMask: %d entries for %d atoms: %w", len(stored), n, ErrShape)
		}
		mask := make([]bool, n)
		for i, x := range stored {
			mask[i] = x != 0
		}

		return mask, nil
	default:
		return nil, fmt.Errorf("Record.AtomMask: got %T: %w", v, ErrValueType)
	}
}

// ForceMask expands AtomMask by replicating each entry three times,
// preserving atom order: force observations are 3-vectors per atom while
// the mask is defined per atom. Invariant: len == 3*len(AtomMask).
func (r *Record) ForceMask() ([]bool, error) {
	atoms, err := r.AtomMask()
	if err != nil {
		return nil, err
	}
	mask := make([]bool, 3*len(atoms))
	for i, sel := range atoms {
		mask[3*i] = sel
		mask[3*i+1] = sel
		mask[3*i+2] = sel
	}

	return mask, nil
}

// CountSelected returns the number of true entries in a mask.
func CountSelected(mask []bool) int {
	var n int
	for _, sel := range mask {
		if sel {
			n++
		}
	}

	return n
}
