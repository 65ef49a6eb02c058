// SPDX-License-Identifier: MIT

// The error-aggregation pass. For every record with an active observable,
// the fitted model's prediction is compared against the stored reference
// corrected by the record's reference-energy baseline, so a model fitted on
// the assembled targets reports zero error on its own training data.

package metrics

import (
	"fmt"

	"github.com/aceforge/acefit/assemble"
	"github.com/aceforge/acefit/dataset"
	"github.com/aceforge/acefit/model"
)

// Compute aggregates MAE/RMSE of the model over the records, globally and
// per group. Deviations per observable:
//
//	energy:      (pred − (stored − reference)) / atoms, one per config
//	forces:      componentwise over all 3·atoms values, no masking
//	virial:      per Voigt component, both sides divided by atoms
//	site energy: per masked atom, pred − (stored − reference/atoms)
//
// A model-evaluation failure aborts the pass and propagates.
func Compute(records []*dataset.Record, m model.Evaluator) (*Report, error) {
	report := NewReport()
	for i, r := range records {
		if err := observeRecord(report, r, m); err != nil {
			return nil, fmt.Errorf("metrics.Compute: record %d: %w", i, err)
		}
	}

	return report, nil
}

// observeRecord folds one record's deviations into the report.
func observeRecord(report *Report, r *dataset.Record, m model.Evaluator) error {
	cfg := r.Configuration()
	group := r.Group()
	atoms := float64(r.NumAtoms())

	if r.HasEnergy() {
		stored, err := r.Energy()
		if err != nil {
			return err
		}
		pred, err := m.Energy(cfg)
		if err != nil {
			return fmt.Errorf("energy: %w", err)
		}
		report.observe(group, Energy, (pred-(stored-r.EnergyReference()))/atoms)
	}

	if r.HasForces() {
		stored, err := r.Forces()
		if err != nil {
			return err
		}
		pred, err := m.Forces(cfg)
		if err != nil {
			return fmt.Errorf("forces: %w", err)
		}
		if len(pred) != len(stored) {
			return fmt.Errorf("forces: model returned %d atoms, want %d: %w",
				len(pred), len(stored), dataset.ErrShape)
		}
		for a := range stored {
			for k := 0; k < 3; k++ {
				report.observe(group, Forces, pred[a][k]-stored[a][k])
			}
		}
	}

	if r.HasVirial() {
		stored, err := r.Virial()
		if err != nil {
			return err
		}
		predTensor, err := m.Virial(cfg)
		if err != nil {
			return fmt.Errorf("virial: %w", err)
		}
		pred, ref := assemble.Voigt(predTensor), assemble.Voigt(stored)
		for k := 0; k < assemble.VoigtComponents; k++ {
			report.observe(group, Virial, pred[k]/atoms-ref[k]/atoms)
		}
	}

	if r.HasSiteEnergies() {
		stored, err := r.SiteEnergies()
		if err != nil {
			return err
		}
		mask, err := r.AtomMask()
		if err != nil {
			return err
		}
		perAtomRef := r.EnergyReference() / atoms
		for a, sel := range mask {
			if !sel {
				continue
			}
			pred, err := m.SiteEnergy(cfg, a)
			if err != nil {
				return fmt.Errorf("site energy: atom %d: %w", a, err)
			}
			report.observe(group, SiteEnergy, pred-(stored[a]-perAtomRef))
		}
	}

	return nil
}
