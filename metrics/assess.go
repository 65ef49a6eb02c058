// SPDX-License-Identifier: MIT

// Package metrics: pre-fit dataset assessment.
// Counts what a dataset offers per group — configurations, atomic
// environments and available observations — against what a fully observed
// dataset would offer, so gaps surface before any fitting happens.

package metrics

import "github.com/aceforge/acefit/dataset"

// AssessRow is one group's coverage: configuration and environment (atom)
// counts plus available observation counts per kind. Expected counts per
// configuration are 1 energy, 3·atoms force components and 6 virial
// components.
type AssessRow struct {
	Configurations int
	Environments   int
	EnergyObs      int
	ForceObs       int
	VirialObs      int
}

// add folds one record into the row.
func (a *AssessRow) add(r *dataset.Record) {
	n := r.NumAtoms()
	a.Configurations++
	a.Environments += n
	if r.HasEnergy() {
		a.EnergyObs++
	}
	if r.HasForces() {
		a.ForceObs += 3 * n
	}
	if r.HasVirial() {
		a.VirialObs += 6
	}
}

// Assessment is the dataset coverage report: one row per group in
// first-seen order, a totals row, and a missing row holding
// expected-minus-available observation counts over the whole dataset.
type Assessment struct {
	groups map[string]*AssessRow
	order  []string

	// Total aggregates all groups.
	Total AssessRow
	// Missing holds expected−available observation counts in the *Obs
	// fields; its Configurations and Environments stay zero.
	Missing AssessRow
}

// Assess summarizes observable coverage of the records.
// Masks deliberately do not enter the expected counts: assessment reports
// what the raw data could supply, not what a particular record
// configuration selects.
func Assess(records []*dataset.Record) *Assessment {
	a := &Assessment{groups: map[string]*AssessRow{}}
	for _, r := range records {
		row, ok := a.groups[r.Group()]
		if !ok {
			row = &AssessRow{}
			a.groups[r.Group()] = row
			a.order = append(a.order, r.Group())
		}
		row.add(r)
		a.Total.add(r)
	}

	a.Missing.EnergyObs = a.Total.Configurations - a.Total.EnergyObs
	a.Missing.ForceObs = 3*a.Total.Environments - a.Total.ForceObs
	a.Missing.VirialObs = 6*a.Total.Configurations - a.Total.VirialObs

	return a
}

// Groups returns the group labels in first-seen order.
func (a *Assessment) Groups() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)

	return out
}

// Row returns one group's coverage row; ok is false for unknown groups.
func (a *Assessment) Row(group string) (AssessRow, bool) {
	if row, found := a.groups[group]; found {
		return *row, true
	}

	return AssessRow{}, false
}
