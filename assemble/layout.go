// SPDX-License-Identifier: MIT

package assemble

import (
	"fmt"

	"github.com/aceforge/acefit/dataset"
)

// CountObservations returns the authoritative row count for one record:
//
//	(energy? 1) + (forces? Σ force-mask) + (virial? 6) + (site? Σ atom-mask)
//
// Every output array is sized from this value; it is recomputed wherever
// needed rather than cached (records are immutable, so recomputation is
// idempotent). The only possible error is a malformed stored mask.
func CountObservations(r *dataset.Record) (int, error) {
	var n int
	if r.HasEnergy() {
		n++
	}
	if r.HasForces() {
		fmask, err := r.ForceMask()
		if err != nil {
			return 0, fmt.Errorf("CountObservations: %w", err)
		}
		n += dataset.CountSelected(fmask)
	}
	if r.HasVirial() {
		n += VoigtComponents
	}
	if r.HasSiteEnergies() {
		amask, err := r.AtomMask()
		if err != nil {
			return 0, fmt.Errorf("CountObservations: %w", err)
		}
		n += dataset.CountSelected(amask)
	}

	return n, nil
}

// TotalObservations sums CountObservations over records.
func TotalObservations(records []*dataset.Record) (int, error) {
	var total int
	for i, r := range records {
		n, err := CountObservations(r)
		if err != nil {
			return 0, fmt.Errorf("TotalObservations: record %d: %w", i, err)
		}
		total += n
	}

	return total, nil
}
