// SPDX-License-Identifier: MIT

// The three row-aligned assembly facades. Each walks the records in order
// and emits row blocks in the fixed layout (energy, forces, virial, site
// energies); see doc.go. The three functions share no state — alignment
// comes from rederiving the identical layout.

package assemble

import (
	"fmt"
	"math"

	"github.com/aceforge/acefit/dataset"
	"github.com/aceforge/acefit/matrix"
	"github.com/aceforge/acefit/model"
)

// FeatureMatrix evaluates the basis on every record and assembles the
// design matrix: one row per observation, one column per basis function,
// records concatenated in input order.
//
// Implementation:
//   - Stage 1: validate the basis is non-empty.
//   - Stage 2: per record, evaluate each active block (see emitRecordRows)
//     and append its rows.
//   - Stage 3: materialize a Dense; zero total rows yields an empty 0×c
//     matrix, matching the empty target and weight vectors.
//
// Any evaluation failure aborts the whole assembly and propagates.
// Complexity: O(len(records) · basis.Len() · atoms) evaluations.
func FeatureMatrix(records []*dataset.Record, basis model.Basis) (*matrix.Dense, error) {
	if basis == nil || basis.Len() == 0 {
		return nil, fmt.Errorf("FeatureMatrix: %w", ErrEmptyBasis)
	}

	var rows [][]float64
	for i, r := range records {
		recRows, err := featureRows(r, basis)
		if err != nil {
			return nil, fmt.Errorf("FeatureMatrix: record %d: %w", i, err)
		}
		rows = append(rows, recRows...)
	}
	if len(rows) == 0 {
		return matrix.NewDense(0, basis.Len())
	}

	return matrix.FromRows(rows)
}

// featureRows emits one record's row block in layout order.
func featureRows(r *dataset.Record, basis model.Basis) ([][]float64, error) {
	cfg := r.Configuration()
	cols := basis.Len()
	var rows [][]float64

	if r.HasEnergy() {
		row := make([]float64, cols)
		for j := 0; j < cols; j++ {
			e, err := basis.Func(j).Energy(cfg)
			if err != nil {
				return nil, fmt.Errorf("energy: basis %d: %w", j, err)
			}
			row[j] = e
		}
		rows = append(rows, row)
	}

	if r.HasForces() {
		fmask, err := r.ForceMask()
		if err != nil {
			return nil, err
		}
		// Evaluate each function once, then slice components across columns.
		flat := make([][]float64, cols) // flat[j] is the 3N component vector of function j
		for j := 0; j < cols; j++ {
			fs, err := basis.Func(j).Forces(cfg)
			if err != nil {
				return nil, fmt.Errorf("forces: basis %d: %w", j, err)
			}
			if len(fs) != r.NumAtoms() {
				return nil, fmt.Errorf("forces: basis %d returned %d atoms, want %d: %w",
					j, len(fs), r.NumAtoms(), dataset.ErrShape)
			}
			flat[j] = flattenForces(fs)
		}
		for comp, sel := range fmask {
			if !sel {
				continue
			}
			row := make([]float64, cols)
			for j := 0; j < cols; j++ {
				row[j] = flat[j][comp]
			}
			rows = append(rows, row)
		}
	}

	if r.HasVirial() {
		voigts := make([][VoigtComponents]float64, cols)
		for j := 0; j < cols; j++ {
			v, err := basis.Func(j).Virial(cfg)
			if err != nil {
				return nil, fmt.Errorf("virial: basis %d: %w", j, err)
			}
			voigts[j] = Voigt(v)
		}
		for k := 0; k < VoigtComponents; k++ {
			row := make([]float64, cols)
			for j := 0; j < cols; j++ {
				row[j] = voigts[j][k]
			}
			rows = append(rows, row)
		}
	}

	if r.HasSiteEnergies() {
		amask, err := r.AtomMask()
		if err != nil {
			return nil, err
		}
		for a, sel := range amask {
			if !sel {
				continue
			}
			row := make([]float64, cols)
			for j := 0; j < cols; j++ {
				e, err := basis.Func(j).SiteEnergy(cfg, a)
				if err != nil {
					return nil, fmt.Errorf("site energy: basis %d atom %d: %w", j, a, err)
				}
				row[j] = e
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// TargetVector assembles the reference values in the identical row layout:
// energy minus the record's reference baseline, masked raw force
// components, the six Voigt virial components, and site energies minus
// reference/atomCount (a per-atom baseline, not a per-row rescaling).
func TargetVector(records []*dataset.Record) ([]float64, error) {
	out := []float64{}
	for i, r := range records {
		if r.HasEnergy() {
			e, err := r.Energy()
			if err != nil {
				return nil, fmt.Errorf("TargetVector: record %d: %w", i, err)
			}
			out = append(out, e-r.EnergyReference())
		}
		if r.HasForces() {
			fmask, err := r.ForceMask()
			if err != nil {
				return nil, fmt.Errorf("TargetVector: record %d: %w", i, err)
			}
			fs, err := r.Forces()
			if err != nil {
				return nil, fmt.Errorf("TargetVector: record %d: %w", i, err)
			}
			for comp, x := range flattenForces(fs) {
				if fmask[comp] {
					out = append(out, x)
				}
			}
		}
		if r.HasVirial() {
			v, err := r.Virial()
			if err != nil {
				return nil, fmt.Errorf("TargetVector: record %d: %w", i, err)
			}
			voigt := Voigt(v)
			out = append(out, voigt[:]...)
		}
		if r.HasSiteEnergies() {
			amask, err := r.AtomMask()
			if err != nil {
				return nil, fmt.Errorf("TargetVector: record %d: %w", i, err)
			}
			es, err := r.SiteEnergies()
			if err != nil {
				return nil, fmt.Errorf("TargetVector: record %d: %w", i, err)
			}
			perAtomRef := r.EnergyReference() / float64(r.NumAtoms())
			for a, sel := range amask {
				if sel {
					out = append(out, es[a]-perAtomRef)
				}
			}
		}
	}

	return out, nil
}

// WeightVector assembles the row weights in the identical layout:
//
//	energy row:       weights.E / sqrt(atoms)
//	force rows:       weights.F            (constant per masked row)
//	virial rows:      weights.V / sqrt(atoms), six identical values
//	site-energy rows: 1.0
//
// Site-energy rows deliberately do not use the record's configured energy
// weight; that is the documented existing policy (see DESIGN.md).
func WeightVector(records []*dataset.Record) ([]float64, error) {
	out := []float64{}
	for i, r := range records {
		w := r.Weights()
		sqrtN := math.Sqrt(float64(r.NumAtoms()))
		if r.HasEnergy() {
			out = append(out, w.E/sqrtN)
		}
		if r.HasForces() {
			fmask, err := r.ForceMask()
			if err != nil {
				return nil, fmt.Errorf("WeightVector: record %d: %w", i, err)
			}
			for _, sel := range fmask {
				if sel {
					out = append(out, w.F)
				}
			}
		}
		if r.HasVirial() {
			for k := 0; k < VoigtComponents; k++ {
				out = append(out, w.V/sqrtN)
			}
		}
		if r.HasSiteEnergies() {
			amask, err := r.AtomMask()
			if err != nil {
				return nil, fmt.Errorf("WeightVector: record %d: %w", i, err)
			}
			for _, sel := range amask {
				if sel {
					out = append(out, 1.0)
				}
			}
		}
	}

	return out, nil
}

// flattenForces lays per-atom 3-vectors out as one component vector of
// length 3N, atom-major: [f0x f0y f0z f1x ...]. The order matches the
// force-mask expansion.
func flattenForces(fs [][3]float64) []float64 {
	flat := make([]float64, 3*len(fs))
	for a, f := range fs {
		flat[3*a] = f[0]
		flat[3*a+1] = f[1]
		flat[3*a+2] = f[2]
	}

	return flat
}
